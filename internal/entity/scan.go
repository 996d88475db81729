package entity

import "time"

type Scan struct {
	ID           string    `db:"id"`
	OperatorID   string    `db:"operator_id"`
	FileName     string    `db:"file_name"`
	ImageSHA256  string    `db:"image_sha256"`
	Success      bool      `db:"success"`
	Payload      string    `db:"payload"`
	Strategy     string    `db:"strategy"`
	MerchantName string    `db:"merchant_name"`
	NMID         string    `db:"nmid"`
	Amount       string    `db:"amount"`
	ArchiveURL   string    `db:"archive_url"`
	CreatedAt    time.Time `db:"created_at"`
}
