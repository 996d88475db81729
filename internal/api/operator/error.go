package operator

import (
	"ProjectQRIS/pkg/response"
)

var (
	ErrInvalidEmailOrPassword = response.NewError(400, "invalid email or password")
	ErrOperatorNotFound       = response.NewError(404, "operator not found")
)
