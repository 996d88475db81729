package scanService

import (
	"ProjectQRIS/internal/api/scan"
	scanRepository "ProjectQRIS/internal/api/scan/repository"
	"ProjectQRIS/pkg/qrscan"
	"ProjectQRIS/pkg/redis"
	"ProjectQRIS/pkg/s3"
	"ProjectQRIS/pkg/utils"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type Service interface {
	ScanImage(ctx context.Context, operatorID, fileName string, data []byte) (scan.ScanResponse, error)
	GetScanByID(ctx context.Context, operatorID, id string) (scan.ScanResponse, error)
	GetScanHistory(ctx context.Context, operatorID string, page, limit int) (scan.ScanHistoryResponse, error)
}

func New(
	repository scanRepository.Repository,
	scanner *qrscan.Scanner,
	redis redis.IRedis,
	s3Client s3.ItfS3,
	utils utils.IUtils,
	log *logrus.Logger,
) Service {
	return &service{
		repository: repository,
		scanner:    scanner,
		redis:      redis,
		s3:         s3Client,
		utils:      utils,
		log:        log,
	}
}

type service struct {
	repository scanRepository.Repository
	scanner    *qrscan.Scanner
	redis      redis.IRedis
	s3         s3.ItfS3
	utils      utils.IUtils
	log        *logrus.Logger
}
