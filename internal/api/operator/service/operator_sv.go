package operatorService

import (
	"errors"
	"time"

	"ProjectQRIS/internal/api/operator"
	"ProjectQRIS/internal/entity"
	jwtPkg "ProjectQRIS/pkg/jwt"
	"golang.org/x/net/context"
)

const sessionDuration = 24 * time.Hour

// Login deliberately answers "invalid email or password" for unknown
// emails too, so the endpoint does not leak which accounts exist.
func (s *service) Login(ctx context.Context, req operator.LoginRequest) (operator.LoginResponse, error) {
	repoClient, err := s.repository.NewClient(false)
	if err != nil {
		s.log.WithField("error", err.Error()).Error("[OperatorService][Login] failed to create repository client")
		return operator.LoginResponse{}, err
	}

	op, err := repoClient.Operator.GetOperatorByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, operator.ErrOperatorNotFound) {
			return operator.LoginResponse{}, operator.ErrInvalidEmailOrPassword
		}
		return operator.LoginResponse{}, err
	}

	if err := s.bcryptUtils.ComparePassword(op.Password, req.Password); err != nil {
		return operator.LoginResponse{}, operator.ErrInvalidEmailOrPassword
	}

	loginData := entity.OperatorLoginData{
		ID:    op.ID,
		Email: op.Email,
		Name:  op.Name,
	}

	accessToken, expiresAt, err := jwtPkg.Sign(map[string]interface{}{
		"id":    loginData.ID,
		"email": loginData.Email,
		"name":  loginData.Name,
	}, sessionDuration)
	if err != nil {
		s.log.WithField("error", err.Error()).Error("[OperatorService][Login] failed to sign token")
		return operator.LoginResponse{}, err
	}

	return operator.LoginResponse{
		AccessToken: accessToken,
		ExpiresAt:   expiresAt,
		Operator:    loginData,
	}, nil
}

func (s *service) GetProfile(ctx context.Context, id string) (operator.ProfileResponse, error) {
	repoClient, err := s.repository.NewClient(false)
	if err != nil {
		s.log.WithField("error", err.Error()).Error("[OperatorService][GetProfile] failed to create repository client")
		return operator.ProfileResponse{}, err
	}

	op, err := repoClient.Operator.GetOperatorByID(ctx, id)
	if err != nil {
		return operator.ProfileResponse{}, err
	}

	return operator.ProfileResponse{
		ID:    op.ID,
		Email: op.Email,
		Name:  op.Name,
	}, nil
}
