package card

import "time"

const DefaultTitle = "RETRIBUSI PARKIR"

type CreateBatchRequest struct {
	ScanIDs    []string `json:"scan_ids" validate:"required,min=1,dive,required"`
	Title      string   `json:"title"`
	Subtitle   string   `json:"subtitle"`
	FooterCode string   `json:"footer_code"`
}

type BatchItemResponse struct {
	ScanID       string `json:"scan_id"`
	Position     int    `json:"position"`
	MerchantName string `json:"merchant_name,omitempty"`
	NMID         string `json:"nmid,omitempty"`
	Amount       string `json:"amount,omitempty"`
	Payload      string `json:"payload,omitempty"`
}

type BatchResponse struct {
	ID         string              `json:"id"`
	Title      string              `json:"title"`
	Subtitle   string              `json:"subtitle,omitempty"`
	FooterCode string              `json:"footer_code,omitempty"`
	Items      []BatchItemResponse `json:"items,omitempty"`
	CreatedAt  time.Time           `json:"created_at"`
}

type BatchListResponse struct {
	Batches []BatchResponse `json:"batches"`
}

type SettingsRequest struct {
	Title      string `json:"title"`
	Subtitle   string `json:"subtitle"`
	FooterCode string `json:"footer_code"`
}

type SettingsResponse struct {
	Title      string    `json:"title"`
	Subtitle   string    `json:"subtitle,omitempty"`
	FooterCode string    `json:"footer_code,omitempty"`
	UpdatedAt  time.Time `json:"updated_at"`
}
