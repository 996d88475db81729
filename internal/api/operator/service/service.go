package operatorService

import (
	"ProjectQRIS/internal/api/operator"
	operatorRepository "ProjectQRIS/internal/api/operator/repository"
	"ProjectQRIS/pkg/bcrypt"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type Service interface {
	Login(ctx context.Context, req operator.LoginRequest) (operator.LoginResponse, error)
	GetProfile(ctx context.Context, id string) (operator.ProfileResponse, error)
}

func New(
	repository operatorRepository.Repository,
	bcryptUtils bcrypt.IBcrypt,
	log *logrus.Logger,
) Service {
	return &service{
		repository:  repository,
		bcryptUtils: bcryptUtils,
		log:         log,
	}
}

type service struct {
	repository  operatorRepository.Repository
	bcryptUtils bcrypt.IBcrypt
	log         *logrus.Logger
}
