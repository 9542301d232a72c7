package dataset

import "errors"

var (
	ErrNoValidSequences     = errors.New("no valid sequences in input directory")
	ErrBuildNotFound        = errors.New("dataset build not found")
	ErrArtifactNotAvailable = errors.New("dataset artifact not available for download")
)
