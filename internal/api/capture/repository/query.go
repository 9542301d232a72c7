package captureRepository

const (
	queryCreateRecording = `
		INSERT INTO recordings (
			id, sequence_file, source_name, frame_count,
			duration_ms, created_at
		) VALUES (
			:id, :sequence_file, :source_name, :frame_count,
			:duration_ms, :created_at
		)
	`

	queryGetRecordingBySequenceFile = `
		SELECT
			id, sequence_file, source_name, frame_count,
			duration_ms, created_at
		FROM recordings
		WHERE sequence_file = :sequence_file
	`

	queryListRecordings = `
		SELECT
			id, sequence_file, source_name, frame_count,
			duration_ms, created_at
		FROM recordings
		ORDER BY created_at DESC
	`
)
