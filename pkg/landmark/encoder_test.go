package landmark

import (
	"testing"

	"MotionTrace/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makePoints(n int, base float64) []entity.LandmarkPoint {
	points := make([]entity.LandmarkPoint, n)
	for i := range points {
		points[i] = entity.LandmarkPoint{
			X: base + float64(i),
			Y: base + float64(i) + 0.1,
			Z: base + float64(i) + 0.2,
		}
	}
	return points
}

func TestEncodeAlwaysFullWidth(t *testing.T) {
	pose := makePoints(NumPoseLandmarks, 1)
	face := makePoints(NumFaceLandmarks, 2)
	left := makePoints(NumHandLandmarks, 3)
	right := makePoints(NumHandLandmarks, 4)

	tests := []struct {
		name string
		res  *entity.HolisticResult
	}{
		{"all present", &entity.HolisticResult{Pose: pose, Face: face, LeftHand: left, RightHand: right}},
		{"all absent", &entity.HolisticResult{}},
		{"pose only", &entity.HolisticResult{Pose: pose}},
		{"face only", &entity.HolisticResult{Face: face}},
		{"hands only", &entity.HolisticResult{LeftHand: left, RightHand: right}},
		{"nil result", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vec := Encode(tt.res)
			assert.Len(t, vec, TotalFeatures)
		})
	}
}

func TestEncodeAllAbsentIsZero(t *testing.T) {
	vec := Encode(&entity.HolisticResult{})

	require.Len(t, vec, TotalFeatures)
	for i, v := range vec {
		require.Zerof(t, v, "index %d", i)
	}
}

func TestEncodePoseOnlyScenario(t *testing.T) {
	pose := makePoints(NumPoseLandmarks, 1)
	vec := Encode(&entity.HolisticResult{Pose: pose})

	require.Len(t, vec, TotalFeatures)

	for i, p := range pose {
		assert.Equal(t, float32(p.X), vec[i*3])
		assert.Equal(t, float32(p.Y), vec[i*3+1])
		assert.Equal(t, float32(p.Z), vec[i*3+2])
	}

	for i := PoseEnd; i < TotalFeatures; i++ {
		require.Zerof(t, vec[i], "index %d", i)
	}
}

func TestEncodeGroupOffsetsAreFixed(t *testing.T) {
	left := makePoints(NumHandLandmarks, 7)

	// The left hand block must land at the same offset whether or not the
	// groups before it were detected.
	withPose := Encode(&entity.HolisticResult{
		Pose:     makePoints(NumPoseLandmarks, 1),
		LeftHand: left,
	})
	withoutPose := Encode(&entity.HolisticResult{LeftHand: left})

	assert.Equal(t, withPose[LeftHandStart:LeftHandEnd], withoutPose[LeftHandStart:LeftHandEnd])
	assert.Equal(t, float32(left[0].X), withoutPose[LeftHandStart])
}

func TestEncodeCorrectsMalformedGroup(t *testing.T) {
	// One point too many in the pose list. The corrective pass must still
	// yield exactly TotalFeatures values.
	vec := Encode(&entity.HolisticResult{Pose: makePoints(NumPoseLandmarks+1, 1)})
	assert.Len(t, vec, TotalFeatures)

	// One point short: trailing zero pad keeps the width stable.
	vec = Encode(&entity.HolisticResult{Pose: makePoints(NumPoseLandmarks-1, 1)})
	assert.Len(t, vec, TotalFeatures)
	assert.Zero(t, vec[TotalFeatures-1])
}
