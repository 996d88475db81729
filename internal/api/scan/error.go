package scan

import (
	"ProjectQRIS/pkg/response"
)

var (
	ErrQRNotDetected = response.NewError(422, "QR code could not be detected")
	ErrInvalidImage  = response.NewError(400, "uploaded file is not a decodable image")
	ErrScanNotFound  = response.NewError(404, "scan not found")
)
