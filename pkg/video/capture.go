package video

import (
	"fmt"
	"io"

	"gocv.io/x/gocv"
)

type fileSource struct {
	cap *gocv.VideoCapture
	bgr gocv.Mat
	rgb gocv.Mat
}

// OpenVideo opens a video file as a FrameSource. Returns an error if the
// container cannot be opened or decoded.
func OpenVideo(path string) (FrameSource, error) {
	cap, err := gocv.VideoCaptureFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open video %s: %w", path, err)
	}
	if !cap.IsOpened() {
		cap.Close()
		return nil, fmt.Errorf("could not open video %s", path)
	}

	return &fileSource{
		cap: cap,
		bgr: gocv.NewMat(),
		rgb: gocv.NewMat(),
	}, nil
}

func (s *fileSource) Next() (*Frame, error) {
	if ok := s.cap.Read(&s.bgr); !ok || s.bgr.Empty() {
		return nil, io.EOF
	}

	// Decoded frames arrive BGR; the detection service expects RGB.
	gocv.CvtColor(s.bgr, &s.rgb, gocv.ColorBGRToRGB)

	buf, err := gocv.IMEncode(gocv.JPEGFileExt, s.rgb)
	if err != nil {
		return nil, fmt.Errorf("failed to encode frame: %w", err)
	}
	defer buf.Close()

	data := make([]byte, buf.Len())
	copy(data, buf.GetBytes())

	return &Frame{
		Data:   data,
		Width:  s.rgb.Cols(),
		Height: s.rgb.Rows(),
	}, nil
}

func (s *fileSource) Close() error {
	s.bgr.Close()
	s.rgb.Close()
	return s.cap.Close()
}
