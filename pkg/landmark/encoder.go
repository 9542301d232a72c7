package landmark

import (
	"MotionTrace/internal/entity"

	"github.com/sirupsen/logrus"
)

// Encode flattens one detector result into a frame feature vector of exactly
// TotalFeatures values. Groups the detector did not report contribute a
// zero-filled block of the group's width, so the layout of the remaining
// groups never shifts.
func Encode(res *entity.HolisticResult) []float32 {
	vec := make([]float32, 0, TotalFeatures)

	if res != nil {
		vec = appendGroup(vec, res.Pose, PoseFeatures)
		vec = appendGroup(vec, res.Face, FaceFeatures)
		vec = appendGroup(vec, res.LeftHand, HandFeatures)
		vec = appendGroup(vec, res.RightHand, HandFeatures)
	} else {
		vec = append(vec, make([]float32, TotalFeatures)...)
	}

	// Second line of defense: a detector that reports the wrong number of
	// points per group would otherwise shift every later block. Corrected
	// here rather than failed, the way absent groups are.
	if len(vec) != TotalFeatures {
		logrus.WithFields(logrus.Fields{
			"expected": TotalFeatures,
			"got":      len(vec),
		}).Warn("Landmark feature count mismatch, padding/truncating")

		if len(vec) < TotalFeatures {
			vec = append(vec, make([]float32, TotalFeatures-len(vec))...)
		} else {
			vec = vec[:TotalFeatures]
		}
	}

	return vec
}

func appendGroup(dst []float32, points []entity.LandmarkPoint, width int) []float32 {
	if len(points) == 0 {
		return append(dst, make([]float32, width)...)
	}

	for _, p := range points {
		dst = append(dst, float32(p.X), float32(p.Y), float32(p.Z))
	}

	return dst
}
