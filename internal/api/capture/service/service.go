package captureService

import (
	captureRepository "MotionTrace/internal/api/capture/repository"
	"MotionTrace/internal/entity"
	"MotionTrace/pkg/detector"
	"MotionTrace/pkg/sequence"
	"MotionTrace/pkg/utils"
	"MotionTrace/pkg/video"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type ICaptureService interface {
	RecordVideo(ctx context.Context, videoPath string, sourceName string) (entity.Recording, error)
	Record(ctx context.Context, src video.FrameSource, sourceName string) (entity.Recording, error)
	ProcessLiveFrame(frame []byte) ([]float32, error)
	ListSequences(ctx context.Context) ([]entity.Recording, error)
	SequencePath(name string) (string, error)
}

type captureService struct {
	log              *logrus.Logger
	repo             captureRepository.Repository
	store            *sequence.Store
	trackingDetector detector.Detector
	liveDetector     detector.Detector
	utils            utils.IUtils
	openSource       func(path string) (video.FrameSource, error)
}

// NewCaptureService wires the recording pipeline. repo and liveDetector may
// be nil for batch CLI use, where there is no database and no live socket.
func NewCaptureService(
	log *logrus.Logger,
	repo captureRepository.Repository,
	store *sequence.Store,
	trackingDetector detector.Detector,
	liveDetector detector.Detector,
	utils utils.IUtils,
) ICaptureService {
	return &captureService{
		log:              log,
		repo:             repo,
		store:            store,
		trackingDetector: trackingDetector,
		liveDetector:     liveDetector,
		utils:            utils,
		openSource:       video.OpenVideo,
	}
}
