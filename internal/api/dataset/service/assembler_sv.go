package datasetService

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"MotionTrace/internal/api/dataset"
	"MotionTrace/internal/entity"
	contextPkg "MotionTrace/pkg/context"
	"MotionTrace/pkg/landmark"
	"MotionTrace/pkg/log"
	"MotionTrace/pkg/redis"
	"MotionTrace/pkg/sequence"

	"golang.org/x/net/context"
)

const buildStatusTTL = 24 * time.Hour

// BuildDataset reads every stored sequence, keeps the selected landmark
// groups, normalizes each sequence to maxLen frames and writes the stacked
// result as a single NPY artifact of shape (instances, maxLen, width).
// Selection and maxLen are validated before any file is touched. Individual
// unreadable or malformed sequence files are skipped with a warning; only an
// input directory with zero usable sequences fails the build.
func (s *datasetService) BuildDataset(ctx context.Context, landmarks []string, maxLen int) (entity.DatasetBuild, error) {
	requestID := contextPkg.GetRequestID(ctx)

	sel, err := landmark.NewSelection(landmarks...)
	if err != nil {
		return entity.DatasetBuild{}, err
	}
	if maxLen <= 0 {
		return entity.DatasetBuild{}, fmt.Errorf("%w: got %d", landmark.ErrInvalidMaxLen, maxLen)
	}

	buildID, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		return entity.DatasetBuild{}, err
	}

	s.setStatus(ctx, buildID, entity.BuildStatusBuilding)

	build, err := s.assemble(ctx, buildID, sel, landmarks, maxLen)
	if err != nil {
		s.setStatus(ctx, buildID, entity.BuildStatusFailed)
		return entity.DatasetBuild{}, err
	}

	s.setStatus(ctx, buildID, entity.BuildStatusCompleted)

	s.log.WithFields(log.Fields{
		"request_id": requestID,
		"build_id":   build.ID,
		"instances":  build.InstanceCount,
		"skipped":    build.SkippedCount,
		"max_len":    build.MaxLen,
		"width":      build.FeatureWidth,
		"artifact":   build.ArtifactPath,
	}).Info("Dataset build completed")

	return build, nil
}

func (s *datasetService) assemble(ctx context.Context, buildID string, sel landmark.Selection, landmarks []string, maxLen int) (entity.DatasetBuild, error) {
	names, err := s.store.List()
	if err != nil {
		return entity.DatasetBuild{}, err
	}

	instances := make([][][]float32, 0, len(names))
	skipped := 0

	for _, name := range names {
		frames, err := s.store.Read(name)
		if err != nil {
			s.log.WithFields(log.Fields{
				"build_id": buildID,
				"file":     name,
				"error":    err.Error(),
			}).Warn("Skipping unreadable sequence file")
			skipped++
			continue
		}

		selected, err := landmark.Select(frames, sel)
		if err != nil {
			s.log.WithFields(log.Fields{
				"build_id": buildID,
				"file":     name,
				"error":    err.Error(),
			}).Warn("Skipping malformed sequence file")
			skipped++
			continue
		}

		normalized, err := landmark.Normalize(selected, sel.Width(), maxLen)
		if err != nil {
			return entity.DatasetBuild{}, err
		}

		instances = append(instances, normalized)
	}

	if len(instances) == 0 {
		return entity.DatasetBuild{}, fmt.Errorf("%w: %s", dataset.ErrNoValidSequences, s.store.Dir())
	}

	if err := os.MkdirAll(s.artifactDir, 0o755); err != nil {
		return entity.DatasetBuild{}, fmt.Errorf("failed to create artifact directory %s: %w", s.artifactDir, err)
	}

	artifactPath := filepath.Join(s.artifactDir, buildID+"_dataset.npy")
	if err := sequence.WriteNPY(artifactPath, instances); err != nil {
		return entity.DatasetBuild{}, err
	}

	build := entity.DatasetBuild{
		ID:            buildID,
		ArtifactPath:  artifactPath,
		Landmarks:     strings.Join(landmarks, ","),
		MaxLen:        maxLen,
		InstanceCount: len(instances),
		FeatureWidth:  sel.Width(),
		SkippedCount:  skipped,
		CreatedAt:     time.Now(),
	}

	if s.s3 != nil {
		url, err := s.s3.UploadLocalFile(artifactPath, "datasets/"+filepath.Base(artifactPath))
		if err != nil {
			s.log.WithFields(log.Fields{
				"build_id": buildID,
				"error":    err.Error(),
			}).Warn("Failed to upload dataset artifact, keeping local copy only")
		} else {
			build.ArtifactURL = url
		}
	}

	if s.repo != nil {
		if err := s.catalogBuild(ctx, build); err != nil {
			// The artifact is already on disk; losing the catalog row is not
			// worth failing the build over.
			s.log.WithFields(log.Fields{
				"build_id": buildID,
				"error":    err.Error(),
			}).Warn("Failed to catalog dataset build")
		}
	}

	return build, nil
}

func (s *datasetService) catalogBuild(ctx context.Context, build entity.DatasetBuild) error {
	client, err := s.repo.NewClient(false)
	if err != nil {
		return err
	}
	return client.Builds.CreateBuild(ctx, build)
}

func (s *datasetService) setStatus(ctx context.Context, buildID string, status entity.BuildStatus) {
	if s.redis == nil {
		return
	}
	if err := s.redis.SetBuildStatus(ctx, buildID, string(status), buildStatusTTL); err != nil {
		s.log.WithFields(log.Fields{
			"build_id": buildID,
			"status":   string(status),
			"error":    err.Error(),
		}).Warn("Failed to update build status")
	}
}

// GetBuildStatus resolves a build's status from Redis first, falling back to
// the catalog for builds whose status key already expired.
func (s *datasetService) GetBuildStatus(ctx context.Context, buildID string) (entity.BuildStatus, error) {
	if s.redis != nil {
		status, err := s.redis.GetBuildStatus(ctx, buildID)
		if err == nil {
			return entity.BuildStatus(status), nil
		}
		if !errors.Is(err, redis.ErrBuildStatusNotFound) {
			return "", err
		}
	}

	if s.repo == nil {
		return "", dataset.ErrBuildNotFound
	}

	client, err := s.repo.NewClient(false)
	if err != nil {
		return "", err
	}

	if _, err := client.Builds.GetBuildByID(ctx, buildID); err != nil {
		return "", err
	}

	// A cataloged build without a live status key finished long ago.
	return entity.BuildStatusCompleted, nil
}

// PresignArtifact returns a temporary download URL for a completed build's
// artifact. Builds that never reached S3 cannot be downloaded over HTTP.
func (s *datasetService) PresignArtifact(ctx context.Context, buildID string) (string, error) {
	if s.repo == nil || s.s3 == nil {
		return "", dataset.ErrArtifactNotAvailable
	}

	client, err := s.repo.NewClient(false)
	if err != nil {
		return "", err
	}

	build, err := client.Builds.GetBuildByID(ctx, buildID)
	if err != nil {
		return "", err
	}

	if build.ArtifactURL == "" {
		return "", fmt.Errorf("%w: build %s", dataset.ErrArtifactNotAvailable, buildID)
	}

	return s.s3.PresignUrl(build.ArtifactURL)
}
