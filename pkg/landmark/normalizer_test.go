package landmark

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sequenceOf(frames, width int) [][]float32 {
	seq := make([][]float32, frames)
	for i := range seq {
		seq[i] = make([]float32, width)
		for j := range seq[i] {
			seq[i][j] = float32(i + 1)
		}
	}
	return seq
}

func TestNormalizePassthrough(t *testing.T) {
	seq := sequenceOf(10, PoseFeatures)

	out, err := Normalize(seq, PoseFeatures, 10)
	require.NoError(t, err)
	assert.Equal(t, seq, out)
}

func TestNormalizePadBoundary(t *testing.T) {
	seq := sequenceOf(9, PoseFeatures)

	out, err := Normalize(seq, PoseFeatures, 10)
	require.NoError(t, err)
	require.Len(t, out, 10)

	assert.Equal(t, seq, out[:9])
	for _, v := range out[9] {
		require.Zero(t, v)
	}
}

func TestNormalizeTruncateBoundary(t *testing.T) {
	seq := sequenceOf(11, PoseFeatures)

	out, err := Normalize(seq, PoseFeatures, 10)
	require.NoError(t, err)
	require.Len(t, out, 10)

	// Trailing frame dropped, leading frames untouched.
	assert.Equal(t, seq[:10], out)
}

func TestNormalizeEmptyInputPadsToMaxLen(t *testing.T) {
	out, err := Normalize(nil, HandFeatures, 4)
	require.NoError(t, err)
	require.Len(t, out, 4)
	for _, frame := range out {
		require.Len(t, frame, HandFeatures)
	}
}

func TestNormalizeRejectsInvalidMaxLen(t *testing.T) {
	for _, maxLen := range []int{0, -1, -30} {
		_, err := Normalize(sequenceOf(3, PoseFeatures), PoseFeatures, maxLen)
		assert.ErrorIs(t, err, ErrInvalidMaxLen)
	}
}
