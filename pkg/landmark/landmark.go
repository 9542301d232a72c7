// Package landmark defines the fixed feature layout shared by everything that
// produces or consumes frame feature vectors. The offsets below are a format
// contract: persisted sequence files and dataset artifacts are sliced with
// them, so they must never change without a format version bump.
package landmark

import "errors"

const (
	NumPoseLandmarks = 33
	NumFaceLandmarks = 468
	NumHandLandmarks = 21

	// 3 values (x, y, z) per landmark point.
	PoseFeatures = NumPoseLandmarks * 3
	FaceFeatures = NumFaceLandmarks * 3
	HandFeatures = NumHandLandmarks * 3

	// TotalFeatures is the width of every frame feature vector: 1629.
	TotalFeatures = PoseFeatures + FaceFeatures + 2*HandFeatures
)

// Slice boundaries per group, derived once from the group widths in the
// canonical order Pose, Face, LeftHand, RightHand.
const (
	PoseStart      = 0
	PoseEnd        = PoseStart + PoseFeatures
	FaceStart      = PoseEnd
	FaceEnd        = FaceStart + FaceFeatures
	LeftHandStart  = FaceEnd
	LeftHandEnd    = LeftHandStart + HandFeatures
	RightHandStart = LeftHandEnd
	RightHandEnd   = RightHandStart + HandFeatures
)

var (
	ErrInvalidSelection     = errors.New("invalid landmark selection")
	ErrInvalidMaxLen        = errors.New("max length must be a positive integer")
	ErrFeatureCountMismatch = errors.New("unexpected feature count in sequence frame")
)

type Group string

const (
	GroupPose      Group = "Pose"
	GroupFace      Group = "Face"
	GroupLeftHand  Group = "LeftHand"
	GroupRightHand Group = "RightHand"
)

// Groups lists every landmark group in canonical vector order.
var Groups = []Group{GroupPose, GroupFace, GroupLeftHand, GroupRightHand}

type span struct {
	start int
	end   int
}

var groupSpans = map[Group]span{
	GroupPose:      {PoseStart, PoseEnd},
	GroupFace:      {FaceStart, FaceEnd},
	GroupLeftHand:  {LeftHandStart, LeftHandEnd},
	GroupRightHand: {RightHandStart, RightHandEnd},
}

// Width returns the number of features the group occupies in a frame vector,
// or 0 for an unknown group.
func (g Group) Width() int {
	s, ok := groupSpans[g]
	if !ok {
		return 0
	}
	return s.end - s.start
}
