package sequence

import (
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	log := logrus.New()
	log.SetOutput(os.Stderr)

	store, err := NewStore(t.TempDir(), log)
	require.NoError(t, err)
	return store
}

func TestStoreRoundTrip(t *testing.T) {
	store := newTestStore(t)

	frames := [][]float32{
		{0.1, 0.2, 0.3},
		{1.5, -2.25, 0},
		{0.000125, 42, -7.5},
	}

	_, err := store.Write("clip_a.json", frames)
	require.NoError(t, err)

	got, err := store.Read("clip_a.json")
	require.NoError(t, err)
	assert.Equal(t, frames, got)
}

func TestStoreListSorted(t *testing.T) {
	store := newTestStore(t)

	for _, name := range []string{"c.json", "a.json", "b.json", "ignored.txt"} {
		path := filepath.Join(store.Dir(), name)
		require.NoError(t, os.WriteFile(path, []byte("[]"), 0o644))
	}

	names, err := store.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"a.json", "b.json", "c.json"}, names)
}

func TestStoreReadMissing(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Read("nope.json")
	assert.ErrorIs(t, err, ErrSequenceNotFound)
}

func TestStorePathRejectsTraversal(t *testing.T) {
	store := newTestStore(t)

	for _, name := range []string{"../etc/passwd", "a/b.json", ""} {
		_, err := store.Path(name)
		assert.ErrorIsf(t, err, ErrSequenceNotFound, "name %q", name)
	}
}

func TestWriteNPY(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dataset.npy")

	instances := [][][]float32{
		{{1, 2}, {3, 4}, {5, 6}},
		{{7, 8}, {9, 10}, {11, 12}},
	}

	require.NoError(t, WriteNPY(path, instances))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	// Magic and version.
	require.True(t, len(data) > 10)
	assert.Equal(t, []byte{0x93, 'N', 'U', 'M', 'P', 'Y', 0x01, 0x00}, data[:8])

	headerLen := int(binary.LittleEndian.Uint16(data[8:10]))
	require.Equal(t, 0, (10+headerLen)%64)

	header := string(data[10 : 10+headerLen])
	assert.Contains(t, header, "'descr': '<f4'")
	assert.Contains(t, header, "'fortran_order': False")
	assert.Contains(t, header, "'shape': (2, 3, 2)")
	assert.Equal(t, byte('\n'), header[len(header)-1])

	payload := data[10+headerLen:]
	require.Len(t, payload, 2*3*2*4)

	first := math.Float32frombits(binary.LittleEndian.Uint32(payload[:4]))
	last := math.Float32frombits(binary.LittleEndian.Uint32(payload[len(payload)-4:]))
	assert.Equal(t, float32(1), first)
	assert.Equal(t, float32(12), last)
}

func TestWriteNPYRejectsRaggedInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.npy")

	err := WriteNPY(path, [][][]float32{
		{{1, 2}},
		{{1, 2}, {3, 4}},
	})
	require.Error(t, err)

	err = WriteNPY(path, nil)
	require.Error(t, err)
}
