package captureService

import (
	"errors"
	"fmt"
	"io"
	"time"

	"MotionTrace/internal/api/capture"
	"MotionTrace/internal/entity"
	contextPkg "MotionTrace/pkg/context"
	"MotionTrace/pkg/landmark"
	"MotionTrace/pkg/video"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

// RecordVideo opens a video file and records its landmark sequence.
func (s *captureService) RecordVideo(ctx context.Context, videoPath string, sourceName string) (entity.Recording, error) {
	src, err := s.openSource(videoPath)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"video":      videoPath,
			"error":      err.Error(),
		}).Warn("Could not open video file")
		return entity.Recording{}, fmt.Errorf("%w: %s", capture.ErrSourceUnavailable, videoPath)
	}
	defer src.Close()

	return s.Record(ctx, src, sourceName)
}

// Record drives the detector over every frame of src in order, encodes one
// feature vector per frame and persists the completed sequence. Nothing is
// written when zero frames were recorded.
func (s *captureService) Record(ctx context.Context, src video.FrameSource, sourceName string) (entity.Recording, error) {
	requestID := contextPkg.GetRequestID(ctx)
	start := time.Now()

	frames := make([][]float32, 0, 256)

	for {
		frame, err := src.Next()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				s.log.WithFields(logrus.Fields{
					"request_id": requestID,
					"source":     sourceName,
					"frame":      len(frames),
					"error":      err.Error(),
				}).Warn("Frame read failed, stopping recording early")
			}
			break
		}

		result, err := s.trackingDetector.Detect(frame.Data)
		if err != nil {
			return entity.Recording{}, fmt.Errorf("detection failed on frame %d: %w", len(frames), err)
		}

		frames = append(frames, landmark.Encode(result))
	}

	if len(frames) == 0 {
		return entity.Recording{}, fmt.Errorf("%w: %s", capture.ErrEmptySequence, sourceName)
	}

	fileName, err := s.utils.SequenceFileName(sourceName, time.Now())
	if err != nil {
		return entity.Recording{}, err
	}

	if _, err := s.store.Write(fileName, frames); err != nil {
		return entity.Recording{}, err
	}

	recording := entity.Recording{
		ID:           sequenceID(fileName),
		SequenceFile: fileName,
		SourceName:   sourceName,
		FrameCount:   len(frames),
		DurationMS:   time.Since(start).Milliseconds(),
		CreatedAt:    time.Now(),
	}

	if s.repo != nil {
		client, err := s.repo.NewClient(false)
		if err == nil {
			err = client.Recordings.CreateRecording(ctx, recording)
		}
		if err != nil {
			// The sequence file is already on disk; losing the catalog row
			// is not worth failing the recording over.
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"file":       fileName,
				"error":      err.Error(),
			}).Error("Failed to store recording metadata")
		}
	}

	s.log.WithFields(logrus.Fields{
		"request_id":  requestID,
		"source":      sourceName,
		"file":        fileName,
		"frames":      recording.FrameCount,
		"duration_ms": recording.DurationMS,
	}).Info("Recording completed")

	return recording, nil
}
