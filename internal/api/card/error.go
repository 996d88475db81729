package card

import (
	"ProjectQRIS/pkg/response"
)

var (
	ErrBatchNotFound = response.NewError(404, "card batch not found")
	ErrEmptyBatch    = response.NewError(400, "card batch needs at least one successful scan")
)
