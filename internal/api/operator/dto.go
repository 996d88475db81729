package operator

import "ProjectQRIS/internal/entity"

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken string                   `json:"access_token"`
	ExpiresAt   int64                    `json:"expires_at"`
	Operator    entity.OperatorLoginData `json:"operator"`
}

type ProfileResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}
