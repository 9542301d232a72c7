package captureRepository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"MotionTrace/internal/entity"
	contextPkg "MotionTrace/pkg/context"
	"MotionTrace/pkg/sequence"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type RecordingDB struct {
	ID           string    `db:"id"`
	SequenceFile string    `db:"sequence_file"`
	SourceName   string    `db:"source_name"`
	FrameCount   int       `db:"frame_count"`
	DurationMS   int64     `db:"duration_ms"`
	CreatedAt    time.Time `db:"created_at"`
}

func (r *recordingRepository) makeRecording(row RecordingDB) entity.Recording {
	return entity.Recording{
		ID:           row.ID,
		SequenceFile: row.SequenceFile,
		SourceName:   row.SourceName,
		FrameCount:   row.FrameCount,
		DurationMS:   row.DurationMS,
		CreatedAt:    row.CreatedAt,
	}
}

func (r *recordingRepository) CreateRecording(ctx context.Context, recording entity.Recording) error {
	requestID := contextPkg.GetRequestID(ctx)

	argsKV := map[string]interface{}{
		"id":            recording.ID,
		"sequence_file": recording.SequenceFile,
		"source_name":   recording.SourceName,
		"frame_count":   recording.FrameCount,
		"duration_ms":   recording.DurationMS,
		"created_at":    recording.CreatedAt,
	}

	query, args, err := sqlx.Named(queryCreateRecording, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateRecording")
		return err
	}
	query = r.q.Rebind(query)

	_, err = r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating recording")
		return err
	}

	return nil
}

func (r *recordingRepository) GetRecordingBySequenceFile(ctx context.Context, sequenceFile string) (entity.Recording, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var row RecordingDB

	argsKV := map[string]interface{}{
		"sequence_file": sequenceFile,
	}

	query, args, err := sqlx.Named(queryGetRecordingBySequenceFile, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetRecordingBySequenceFile named query preparation err")
		return entity.Recording{}, err
	}

	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(ctx, query, args...).StructScan(&row); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Recording{}, sequence.ErrSequenceNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetRecordingBySequenceFile execution err")
		return entity.Recording{}, err
	}

	return r.makeRecording(row), nil
}

func (r *recordingRepository) ListRecordings(ctx context.Context) ([]entity.Recording, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var rows []RecordingDB

	query := r.q.Rebind(queryListRecordings)

	if err := r.q.SelectContext(ctx, &rows, query); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ListRecordings execution err")
		return nil, err
	}

	recordings := make([]entity.Recording, 0, len(rows))
	for _, row := range rows {
		recordings = append(recordings, r.makeRecording(row))
	}

	return recordings, nil
}
