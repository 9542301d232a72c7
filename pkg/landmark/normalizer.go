package landmark

import "fmt"

// Normalize forces seq to exactly maxLen frames of width features each.
// Sequences longer than maxLen lose their trailing frames; shorter ones are
// padded with zero vectors at the tail. A sequence already at maxLen is
// returned as-is.
func Normalize(seq [][]float32, width, maxLen int) ([][]float32, error) {
	if maxLen <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidMaxLen, maxLen)
	}

	switch {
	case len(seq) == maxLen:
		return seq, nil
	case len(seq) > maxLen:
		return seq[:maxLen], nil
	}

	out := make([][]float32, 0, maxLen)
	out = append(out, seq...)
	for len(out) < maxLen {
		out = append(out, make([]float32, width))
	}

	return out, nil
}
