package sequence

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
)

// npyMagic is the NumPy format signature followed by version 1.0.
var npyMagic = []byte{0x93, 'N', 'U', 'M', 'P', 'Y', 0x01, 0x00}

// WriteNPY writes a stacked dataset as a NumPy .npy file of little-endian
// float32 with shape (instances, frames, width), loadable with np.load. All
// instances must already share the same frame count and frame width.
func WriteNPY(path string, instances [][][]float32) error {
	if len(instances) == 0 {
		return fmt.Errorf("npy: nothing to write")
	}

	frames := len(instances[0])
	width := 0
	if frames > 0 {
		width = len(instances[0][0])
	}

	for i, inst := range instances {
		if len(inst) != frames {
			return fmt.Errorf("npy: instance %d has %d frames, expected %d", i, len(inst), frames)
		}
		for j, frame := range inst {
			if len(frame) != width {
				return fmt.Errorf("npy: instance %d frame %d has width %d, expected %d", i, j, len(frame), width)
			}
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("npy: failed to create %s: %w", path, err)
	}
	defer f.Close()

	header := fmt.Sprintf("{'descr': '<f4', 'fortran_order': False, 'shape': (%d, %d, %d), }",
		len(instances), frames, width)

	// Total header size (magic + length field + dict) must be a multiple of
	// 64; the dict is space-padded and newline-terminated per the format.
	padded := len(npyMagic) + 2 + len(header) + 1
	if rem := padded % 64; rem != 0 {
		header += fmt.Sprintf("%*s", 64-rem, "")
	}
	header += "\n"

	if _, err := f.Write(npyMagic); err != nil {
		return fmt.Errorf("npy: %w", err)
	}
	if err := binary.Write(f, binary.LittleEndian, uint16(len(header))); err != nil {
		return fmt.Errorf("npy: %w", err)
	}
	if _, err := f.Write([]byte(header)); err != nil {
		return fmt.Errorf("npy: %w", err)
	}

	buf := make([]byte, 4*width)
	for _, inst := range instances {
		for _, frame := range inst {
			for i, v := range frame {
				binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
			}
			if _, err := f.Write(buf[:4*len(frame)]); err != nil {
				return fmt.Errorf("npy: failed to write data: %w", err)
			}
		}
	}

	return f.Sync()
}
