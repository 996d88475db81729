package scan

import (
	"time"

	"ProjectQRIS/pkg/qris"
)

type ScanResult struct {
	Success  bool   `json:"success"`
	Data     string `json:"data,omitempty"`
	Strategy string `json:"strategy"`
}

type ScanResponse struct {
	ID         string       `json:"id"`
	FileName   string       `json:"file_name,omitempty"`
	Result     ScanResult   `json:"result"`
	Fields     *qris.Fields `json:"fields,omitempty"`
	ArchiveURL string       `json:"archive_url,omitempty"`
	CreatedAt  time.Time    `json:"created_at"`
}

type ScanHistoryResponse struct {
	Scans []ScanResponse `json:"scans"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
	Total int            `json:"total"`
}

// BulkScanError is sent over the bulk WebSocket when a frame cannot be
// processed at all (e.g. not an image); decode failures are reported as
// a normal ScanResponse with success=false.
type BulkScanError struct {
	Error string `json:"error"`
}
