package capture

import "errors"

var (
	ErrSourceUnavailable = errors.New("could not open frame source")
	ErrEmptySequence     = errors.New("no frames recorded from source")
	ErrInvalidVideoFile  = errors.New("invalid video file")
)
