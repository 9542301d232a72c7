package captureService

import (
	"strings"

	"MotionTrace/internal/entity"
	"MotionTrace/pkg/landmark"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

// ProcessLiveFrame runs one webcam frame through the static-image detector
// and returns its feature vector. A frame where nothing was detected is a
// legitimate result: the vector is all zeros, not an error. Errors here are
// per-call (bad payload, detector unreachable) and never tear down the
// caller's connection.
func (s *captureService) ProcessLiveFrame(frame []byte) ([]float32, error) {
	result, err := s.liveDetector.Detect(frame)
	if err != nil {
		return nil, err
	}

	return landmark.Encode(result), nil
}

// ListSequences returns the stored sequence files in name order, enriched
// with catalog metadata where a recording row exists.
func (s *captureService) ListSequences(ctx context.Context) ([]entity.Recording, error) {
	names, err := s.store.List()
	if err != nil {
		return nil, err
	}

	byFile := make(map[string]entity.Recording)
	if s.repo != nil {
		client, err := s.repo.NewClient(false)
		if err == nil {
			recordings, err := client.Recordings.ListRecordings(ctx)
			if err != nil {
				s.log.WithFields(logrus.Fields{
					"error": err.Error(),
				}).Warn("Failed to load recording catalog, listing files only")
			}
			for _, rec := range recordings {
				byFile[rec.SequenceFile] = rec
			}
		}
	}

	sequences := make([]entity.Recording, 0, len(names))
	for _, name := range names {
		if rec, ok := byFile[name]; ok {
			sequences = append(sequences, rec)
			continue
		}
		sequences = append(sequences, entity.Recording{
			ID:           sequenceID(name),
			SequenceFile: name,
		})
	}

	return sequences, nil
}

func (s *captureService) SequencePath(name string) (string, error) {
	return s.store.Path(name)
}

func sequenceID(fileName string) string {
	base := strings.TrimSuffix(fileName, "_landmarks.json")
	if i := strings.LastIndex(base, "_"); i >= 0 {
		return base[i+1:]
	}
	return base
}
