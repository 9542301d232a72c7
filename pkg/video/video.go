package video

// Frame is one decoded video frame, JPEG-encoded with channels already in the
// RGB order the detection service expects.
type Frame struct {
	Data   []byte
	Width  int
	Height int
}

// FrameSource yields the frames of one video or capture session in order.
// Next returns io.EOF once the source is exhausted. Close releases the
// underlying capture resources and must always be called.
type FrameSource interface {
	Next() (*Frame, error)
	Close() error
}
