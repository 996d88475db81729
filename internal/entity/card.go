package entity

import "time"

type CardBatch struct {
	ID         string    `db:"id"`
	OperatorID string    `db:"operator_id"`
	Title      string    `db:"title"`
	Subtitle   string    `db:"subtitle"`
	FooterCode string    `db:"footer_code"`
	CreatedAt  time.Time `db:"created_at"`
}

type CardBatchItem struct {
	BatchID  string `db:"batch_id"`
	ScanID   string `db:"scan_id"`
	Position int    `db:"position"`
}

type CardSettings struct {
	OperatorID string    `db:"operator_id"`
	Title      string    `db:"title"`
	Subtitle   string    `db:"subtitle"`
	FooterCode string    `db:"footer_code"`
	UpdatedAt  time.Time `db:"updated_at"`
}
