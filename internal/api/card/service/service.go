package cardService

import (
	"ProjectQRIS/internal/api/card"
	cardRepository "ProjectQRIS/internal/api/card/repository"
	scanRepository "ProjectQRIS/internal/api/scan/repository"
	"ProjectQRIS/pkg/utils"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type Service interface {
	CreateBatch(ctx context.Context, operatorID string, req card.CreateBatchRequest) (card.BatchResponse, error)
	GetBatchByID(ctx context.Context, operatorID, id string) (card.BatchResponse, error)
	GetBatches(ctx context.Context, operatorID string) (card.BatchListResponse, error)
	UpsertSettings(ctx context.Context, operatorID string, req card.SettingsRequest) (card.SettingsResponse, error)
	GetSettings(ctx context.Context, operatorID string) (card.SettingsResponse, error)
}

func New(
	repository cardRepository.Repository,
	scanRepo scanRepository.Repository,
	utils utils.IUtils,
	log *logrus.Logger,
) Service {
	return &service{
		repository: repository,
		scanRepo:   scanRepo,
		utils:      utils,
		log:        log,
	}
}

type service struct {
	repository cardRepository.Repository
	scanRepo   scanRepository.Repository
	utils      utils.IUtils
	log        *logrus.Logger
}
