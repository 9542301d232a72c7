package datasetRepository

const (
	queryCreateBuild = `
		INSERT INTO dataset_builds (
			id, artifact_path, artifact_url, landmarks, max_len,
			instance_count, feature_width, skipped_count, created_at
		) VALUES (
			:id, :artifact_path, :artifact_url, :landmarks, :max_len,
			:instance_count, :feature_width, :skipped_count, :created_at
		)
	`

	queryGetBuildByID = `
		SELECT
			id, artifact_path, artifact_url, landmarks, max_len,
			instance_count, feature_width, skipped_count, created_at
		FROM dataset_builds
		WHERE id = :id
	`
)
