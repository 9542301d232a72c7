package landmark

import (
	"testing"

	"MotionTrace/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullFrame(t *testing.T) []float32 {
	t.Helper()

	vec := Encode(&entity.HolisticResult{
		Pose:      makePoints(NumPoseLandmarks, 1),
		Face:      makePoints(NumFaceLandmarks, 2),
		LeftHand:  makePoints(NumHandLandmarks, 3),
		RightHand: makePoints(NumHandLandmarks, 4),
	})
	require.Len(t, vec, TotalFeatures)
	return vec
}

func TestNewSelection(t *testing.T) {
	tests := []struct {
		name      string
		groups    []string
		wantWidth int
		wantErr   error
	}{
		{"single group", []string{"Pose"}, PoseFeatures, nil},
		{"all groups", []string{"Pose", "Face", "LeftHand", "RightHand"}, TotalFeatures, nil},
		{"hands", []string{"LeftHand", "RightHand"}, 2 * HandFeatures, nil},
		{"duplicates collapsed", []string{"Pose", "Pose"}, PoseFeatures, nil},
		{"unknown group", []string{"Pose", "Torso"}, 0, ErrInvalidSelection},
		{"empty", nil, 0, ErrInvalidSelection},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel, err := NewSelection(tt.groups...)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantWidth, sel.Width())
		})
	}
}

func TestSelectAllGroupsRoundTrip(t *testing.T) {
	frame := fullFrame(t)
	seq := [][]float32{frame, frame}

	sel, err := NewSelection("Pose", "Face", "LeftHand", "RightHand")
	require.NoError(t, err)

	out, err := Select(seq, sel)
	require.NoError(t, err)
	require.Len(t, out, 2)

	for _, got := range out {
		assert.Equal(t, frame, got)
	}
}

func TestSelectFollowsCallerOrder(t *testing.T) {
	frame := fullFrame(t)

	sel, err := NewSelection("RightHand", "Pose")
	require.NoError(t, err)

	out, err := Select([][]float32{frame}, sel)
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Len(t, out[0], HandFeatures+PoseFeatures)

	assert.Equal(t, frame[RightHandStart:RightHandEnd], out[0][:HandFeatures])
	assert.Equal(t, frame[PoseStart:PoseEnd], out[0][HandFeatures:])
}

func TestSelectRejectsMalformedFrame(t *testing.T) {
	good := fullFrame(t)
	bad := make([]float32, TotalFeatures-5)

	sel, err := NewSelection("Pose")
	require.NoError(t, err)

	_, err = Select([][]float32{good, bad}, sel)
	require.ErrorIs(t, err, ErrFeatureCountMismatch)
}
