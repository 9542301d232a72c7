package captureService

import (
	"errors"
	"io"
	"os"
	"testing"

	"MotionTrace/internal/api/capture"
	"MotionTrace/internal/entity"
	"MotionTrace/pkg/landmark"
	"MotionTrace/pkg/sequence"
	"MotionTrace/pkg/utils"
	"MotionTrace/pkg/video"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/context"
)

type stubSource struct {
	frames [][]byte
	pos    int
	closed bool
}

func (s *stubSource) Next() (*video.Frame, error) {
	if s.pos >= len(s.frames) {
		return nil, io.EOF
	}
	data := s.frames[s.pos]
	s.pos++
	return &video.Frame{Data: data, Width: 640, Height: 480}, nil
}

func (s *stubSource) Close() error {
	s.closed = true
	return nil
}

type stubDetector struct {
	results []*entity.HolisticResult
	err     error
	calls   int
}

func (d *stubDetector) Detect(frame []byte) (*entity.HolisticResult, error) {
	d.calls++
	if d.err != nil {
		return nil, d.err
	}
	if len(d.results) == 0 {
		return &entity.HolisticResult{}, nil
	}
	res := d.results[(d.calls-1)%len(d.results)]
	return res, nil
}

func (d *stubDetector) Close() {}

func newTestService(t *testing.T, det *stubDetector) (*captureService, *sequence.Store) {
	t.Helper()

	log := logrus.New()
	log.SetOutput(os.Stderr)

	store, err := sequence.NewStore(t.TempDir(), log)
	require.NoError(t, err)

	svc := &captureService{
		log:              log,
		store:            store,
		trackingDetector: det,
		liveDetector:     det,
		utils:            utils.New(),
	}

	return svc, store
}

func TestRecordPersistsSequence(t *testing.T) {
	det := &stubDetector{
		results: []*entity.HolisticResult{
			{Pose: []entity.LandmarkPoint{{X: 0.5, Y: 0.5, Z: 0}}},
		},
	}
	svc, store := newTestService(t, det)

	src := &stubSource{frames: [][]byte{{1}, {2}, {3}}}

	rec, err := svc.Record(context.Background(), src, "clip.mp4")
	require.NoError(t, err)

	assert.Equal(t, 3, rec.FrameCount)
	assert.Equal(t, 3, det.calls)
	assert.Equal(t, "clip.mp4", rec.SourceName)
	assert.NotEmpty(t, rec.ID)

	frames, err := store.Read(rec.SequenceFile)
	require.NoError(t, err)
	require.Len(t, frames, 3)
	for _, frame := range frames {
		assert.Len(t, frame, landmark.TotalFeatures)
	}
}

func TestRecordEmptySourceFails(t *testing.T) {
	svc, store := newTestService(t, &stubDetector{})

	_, err := svc.Record(context.Background(), &stubSource{}, "empty.mp4")
	require.ErrorIs(t, err, capture.ErrEmptySequence)

	// Nothing may be written for a failed recording.
	names, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestRecordDetectorFailureAborts(t *testing.T) {
	det := &stubDetector{err: errors.New("detector gone")}
	svc, store := newTestService(t, det)

	_, err := svc.Record(context.Background(), &stubSource{frames: [][]byte{{1}}}, "clip.mp4")
	require.Error(t, err)

	names, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestRecordVideoSourceUnavailable(t *testing.T) {
	svc, _ := newTestService(t, &stubDetector{})
	svc.openSource = func(path string) (video.FrameSource, error) {
		return nil, errors.New("no such file")
	}

	_, err := svc.RecordVideo(context.Background(), "/missing.mp4", "missing.mp4")
	require.ErrorIs(t, err, capture.ErrSourceUnavailable)
}

func TestProcessLiveFrameEncodesResult(t *testing.T) {
	det := &stubDetector{
		results: []*entity.HolisticResult{
			{LeftHand: []entity.LandmarkPoint{{X: 0.25, Y: 0.75, Z: -0.1}}},
		},
	}
	svc, _ := newTestService(t, det)

	vec, err := svc.ProcessLiveFrame([]byte{0xff, 0xd8})
	require.NoError(t, err)
	require.Len(t, vec, landmark.TotalFeatures)
	assert.Equal(t, float32(0.25), vec[landmark.LeftHandStart])
}

func TestListSequencesWithoutCatalog(t *testing.T) {
	det := &stubDetector{}
	svc, _ := newTestService(t, det)

	src := &stubSource{frames: [][]byte{{1}}}
	rec, err := svc.Record(context.Background(), src, "a.mp4")
	require.NoError(t, err)

	sequences, err := svc.ListSequences(context.Background())
	require.NoError(t, err)
	require.Len(t, sequences, 1)
	assert.Equal(t, rec.SequenceFile, sequences[0].SequenceFile)
}
