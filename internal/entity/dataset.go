package entity

import "time"

type DatasetBuild struct {
	ID            string
	ArtifactPath  string
	ArtifactURL   string
	Landmarks     string
	MaxLen        int
	InstanceCount int
	FeatureWidth  int
	SkippedCount  int
	CreatedAt     time.Time
}

type BuildStatus string

const (
	BuildStatusBuilding  BuildStatus = "building"
	BuildStatusCompleted BuildStatus = "completed"
	BuildStatusFailed    BuildStatus = "failed"
)
