package entity

// LandmarkPoint is one normalized 3D keypoint as reported by the holistic
// detection service.
type LandmarkPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// HolisticResult is the detector output for a single frame. A nil slice means
// the detector found nothing for that group on this frame; that is a normal
// state, not an error.
type HolisticResult struct {
	Pose      []LandmarkPoint `json:"pose,omitempty"`
	Face      []LandmarkPoint `json:"face,omitempty"`
	LeftHand  []LandmarkPoint `json:"left_hand,omitempty"`
	RightHand []LandmarkPoint `json:"right_hand,omitempty"`
}
