package cardRepository

const (
	queryCreateBatch = `
		INSERT INTO card_batches (
			id,
			operator_id,
			title,
			subtitle,
			footer_code,
			created_at
		) VALUES (
			:id,
			:operator_id,
			:title,
			:subtitle,
			:footer_code,
			:created_at
		)
	`

	queryCreateBatchItem = `
		INSERT INTO card_batch_items (
			batch_id,
			scan_id,
			position
		) VALUES (
			:batch_id,
			:scan_id,
			:position
		)
	`

	queryGetBatchByID = `
		SELECT
			id,
			operator_id,
			title,
			subtitle,
			footer_code,
			created_at
		FROM card_batches
		WHERE id = :id AND operator_id = :operator_id
	`

	queryGetBatchItems = `
		SELECT
			batch_id,
			scan_id,
			position
		FROM card_batch_items
		WHERE batch_id = :batch_id
		ORDER BY position ASC
	`

	queryGetBatchesByOperatorID = `
		SELECT
			id,
			operator_id,
			title,
			subtitle,
			footer_code,
			created_at
		FROM card_batches
		WHERE operator_id = :operator_id
		ORDER BY created_at DESC
	`

	queryUpsertSettings = `
		INSERT INTO card_settings (
			operator_id,
			title,
			subtitle,
			footer_code,
			updated_at
		) VALUES (
			:operator_id,
			:title,
			:subtitle,
			:footer_code,
			:updated_at
		)
		ON CONFLICT (operator_id) DO UPDATE SET
			title = EXCLUDED.title,
			subtitle = EXCLUDED.subtitle,
			footer_code = EXCLUDED.footer_code,
			updated_at = EXCLUDED.updated_at
	`

	queryGetSettings = `
		SELECT
			operator_id,
			title,
			subtitle,
			footer_code,
			updated_at
		FROM card_settings
		WHERE operator_id = :operator_id
	`
)
