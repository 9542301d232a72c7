package datasetRepository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"MotionTrace/internal/api/dataset"
	"MotionTrace/internal/entity"
	contextPkg "MotionTrace/pkg/context"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type BuildDB struct {
	ID            string    `db:"id"`
	ArtifactPath  string    `db:"artifact_path"`
	ArtifactURL   string    `db:"artifact_url"`
	Landmarks     string    `db:"landmarks"`
	MaxLen        int       `db:"max_len"`
	InstanceCount int       `db:"instance_count"`
	FeatureWidth  int       `db:"feature_width"`
	SkippedCount  int       `db:"skipped_count"`
	CreatedAt     time.Time `db:"created_at"`
}

func (r *buildRepository) makeBuild(row BuildDB) entity.DatasetBuild {
	return entity.DatasetBuild{
		ID:            row.ID,
		ArtifactPath:  row.ArtifactPath,
		ArtifactURL:   row.ArtifactURL,
		Landmarks:     row.Landmarks,
		MaxLen:        row.MaxLen,
		InstanceCount: row.InstanceCount,
		FeatureWidth:  row.FeatureWidth,
		SkippedCount:  row.SkippedCount,
		CreatedAt:     row.CreatedAt,
	}
}

func (r *buildRepository) CreateBuild(ctx context.Context, build entity.DatasetBuild) error {
	requestID := contextPkg.GetRequestID(ctx)

	argsKV := map[string]interface{}{
		"id":             build.ID,
		"artifact_path":  build.ArtifactPath,
		"artifact_url":   build.ArtifactURL,
		"landmarks":      build.Landmarks,
		"max_len":        build.MaxLen,
		"instance_count": build.InstanceCount,
		"feature_width":  build.FeatureWidth,
		"skipped_count":  build.SkippedCount,
		"created_at":     build.CreatedAt,
	}

	query, args, err := sqlx.Named(queryCreateBuild, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateBuild")
		return err
	}
	query = r.q.Rebind(query)

	_, err = r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating dataset build")
		return err
	}

	return nil
}

func (r *buildRepository) GetBuildByID(ctx context.Context, id string) (entity.DatasetBuild, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var row BuildDB

	argsKV := map[string]interface{}{
		"id": id,
	}

	query, args, err := sqlx.Named(queryGetBuildByID, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetBuildByID named query preparation err")
		return entity.DatasetBuild{}, err
	}

	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(ctx, query, args...).StructScan(&row); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.DatasetBuild{}, dataset.ErrBuildNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetBuildByID execution err")
		return entity.DatasetBuild{}, err
	}

	return r.makeBuild(row), nil
}
