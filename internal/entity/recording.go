package entity

import "time"

type Recording struct {
	ID           string
	SequenceFile string
	SourceName   string
	FrameCount   int
	DurationMS   int64
	CreatedAt    time.Time
}
