package dataset

type BuildDatasetRequest struct {
	Landmarks []string `json:"landmarks" validate:"required,min=1,dive,oneof=Pose Face LeftHand RightHand"`
	MaxLen    int      `json:"max_len" validate:"required,gt=0"`
}

type BuildDatasetResponse struct {
	ID            string `json:"id"`
	Status        string `json:"status"`
	InstanceCount int    `json:"instance_count"`
	MaxLen        int    `json:"max_len"`
	FeatureWidth  int    `json:"feature_width"`
	SkippedCount  int    `json:"skipped_count"`
	ArtifactPath  string `json:"artifact_path,omitempty"`
	ArtifactURL   string `json:"artifact_url,omitempty"`
}

type BuildStatusResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type DownloadDatasetResponse struct {
	URL string `json:"url"`
}
