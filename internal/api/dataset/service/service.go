package datasetService

import (
	datasetRepository "MotionTrace/internal/api/dataset/repository"
	"MotionTrace/internal/entity"
	"MotionTrace/pkg/redis"
	"MotionTrace/pkg/s3"
	"MotionTrace/pkg/sequence"
	"MotionTrace/pkg/utils"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type IDatasetService interface {
	BuildDataset(ctx context.Context, landmarks []string, maxLen int) (entity.DatasetBuild, error)
	GetBuildStatus(ctx context.Context, buildID string) (entity.BuildStatus, error)
	PresignArtifact(ctx context.Context, buildID string) (string, error)
}

type datasetService struct {
	log         *logrus.Logger
	repo        datasetRepository.Repository
	store       *sequence.Store
	redis       redis.IRedis
	s3          s3.ItfS3
	utils       utils.IUtils
	artifactDir string
}

// NewDatasetService wires the dataset assembler. repo, redis and s3 may be
// nil for CLI use, where builds run once and the artifact stays on disk.
func NewDatasetService(
	log *logrus.Logger,
	repo datasetRepository.Repository,
	store *sequence.Store,
	redisClient redis.IRedis,
	s3Client s3.ItfS3,
	utils utils.IUtils,
	artifactDir string,
) IDatasetService {
	return &datasetService{
		log:         log,
		repo:        repo,
		store:       store,
		redis:       redisClient,
		s3:          s3Client,
		utils:       utils,
		artifactDir: artifactDir,
	}
}
