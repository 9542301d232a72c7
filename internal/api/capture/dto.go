package capture

type UploadVideoResponse struct {
	ID           string `json:"id"`
	SequenceFile string `json:"sequence_file"`
	FrameCount   int    `json:"frame_count"`
	DurationMS   int64  `json:"duration_ms"`
}

type SequenceInfo struct {
	SequenceFile string `json:"sequence_file"`
	SourceName   string `json:"source_name,omitempty"`
	FrameCount   int    `json:"frame_count,omitempty"`
	DurationMS   int64  `json:"duration_ms,omitempty"`
	CreatedAt    string `json:"created_at,omitempty"`
}

type ListSequencesResponse struct {
	Sequences []SequenceInfo `json:"sequences"`
}

type LiveFrameResponse struct {
	Landmarks []float32 `json:"landmarks"`
}

type LiveFrameError struct {
	Error string `json:"error"`
}
