package scanRepository

const (
	queryCreateScan = `
		INSERT INTO scans (
			id,
			operator_id,
			file_name,
			image_sha256,
			success,
			payload,
			strategy,
			merchant_name,
			nmid,
			amount,
			archive_url,
			created_at
		) VALUES (
			:id,
			:operator_id,
			:file_name,
			:image_sha256,
			:success,
			:payload,
			:strategy,
			:merchant_name,
			:nmid,
			:amount,
			:archive_url,
			:created_at
		)
	`

	queryGetScanByID = `
		SELECT
			id,
			operator_id,
			file_name,
			image_sha256,
			success,
			payload,
			strategy,
			merchant_name,
			nmid,
			amount,
			archive_url,
			created_at
		FROM scans
		WHERE id = :id AND operator_id = :operator_id
	`

	queryGetScansByIDs = `
		SELECT
			id,
			operator_id,
			file_name,
			image_sha256,
			success,
			payload,
			strategy,
			merchant_name,
			nmid,
			amount,
			archive_url,
			created_at
		FROM scans
		WHERE operator_id = ? AND id IN (?)
	`

	queryGetScansByOperatorID = `
		SELECT
			id,
			operator_id,
			file_name,
			image_sha256,
			success,
			payload,
			strategy,
			merchant_name,
			nmid,
			amount,
			archive_url,
			created_at
		FROM scans
		WHERE operator_id = :operator_id
		ORDER BY created_at DESC
		LIMIT :limit OFFSET :offset
	`

	queryCountScansByOperatorID = `
		SELECT COUNT(*)
		FROM scans
		WHERE operator_id = :operator_id
	`
)
