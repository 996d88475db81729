package scanService

import (
	"errors"
	"image"
	"net/http"
	"strings"
	"time"

	"ProjectQRIS/internal/api/scan"
	"ProjectQRIS/internal/entity"
	"ProjectQRIS/pkg/qris"
	"ProjectQRIS/pkg/qrscan"
	"ProjectQRIS/pkg/redis"
	"golang.org/x/net/context"
)

const (
	scanCacheTTL     = 24 * time.Hour
	strategyCached   = "cached"
	contentTypeImage = "image/jpeg"
)

// ScanImage runs the whole pipeline for one uploaded photo: decode the
// bytes, consult the cache, run the decode cascade, parse the QRIS
// payload, archive the image and record the attempt. Failed decodes are
// recorded too, so the history shows what the operator actually pointed
// the camera at.
func (s *service) ScanImage(ctx context.Context, operatorID, fileName string, data []byte) (scan.ScanResponse, error) {
	img, err := s.utils.DecodeImage(data)
	if err != nil {
		s.log.WithField("error", err.Error()).Warn("[ScanService][ScanImage] uploaded bytes are not a decodable image")
		return scan.ScanResponse{}, scan.ErrInvalidImage
	}

	imageHash := s.utils.HashBytes(data)

	result := s.lookupOrScan(ctx, imageHash, img)

	var fields *qris.Fields
	if result.Success {
		parsed := qris.Parse(result.Data)
		fields = &parsed
	}

	archiveURL := s.archiveImage(fileName, data)

	id, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		s.log.WithField("error", err.Error()).Error("[ScanService][ScanImage] failed to generate scan id")
		return scan.ScanResponse{}, err
	}

	record := entity.Scan{
		ID:          id,
		OperatorID:  operatorID,
		FileName:    fileName,
		ImageSHA256: imageHash,
		Success:     result.Success,
		Payload:     result.Data,
		Strategy:    result.Strategy,
		ArchiveURL:  archiveURL,
		CreatedAt:   time.Now().UTC(),
	}
	if fields != nil {
		record.MerchantName = fields.MerchantName
		record.NMID = fields.NMID
		record.Amount = fields.Amount
	}

	repoClient, err := s.repository.NewClient(false)
	if err != nil {
		s.log.WithField("error", err.Error()).Error("[ScanService][ScanImage] failed to create repository client")
		return scan.ScanResponse{}, err
	}

	if err := repoClient.Scan.CreateScan(ctx, record); err != nil {
		return scan.ScanResponse{}, err
	}

	if result.Success && result.Strategy != strategyCached {
		cacheErr := s.redis.SetScan(ctx, imageHash, redis.CachedScan{
			Payload:  result.Data,
			Strategy: result.Strategy,
		}, scanCacheTTL)
		if cacheErr != nil {
			s.log.WithField("error", cacheErr.Error()).Warn("[ScanService][ScanImage] failed to cache scan result")
		}
	}

	return scan.ScanResponse{
		ID:       record.ID,
		FileName: record.FileName,
		Result: scan.ScanResult{
			Success:  record.Success,
			Data:     record.Payload,
			Strategy: record.Strategy,
		},
		Fields:     fields,
		ArchiveURL: record.ArchiveURL,
		CreatedAt:  record.CreatedAt,
	}, nil
}

// lookupOrScan prefers the cache so a re-uploaded photo skips the full
// cascade. Cache trouble is treated as a miss.
func (s *service) lookupOrScan(ctx context.Context, imageHash string, img image.Image) qrscan.Result {
	cached, err := s.redis.GetScan(ctx, imageHash)
	if err == nil {
		return qrscan.Result{
			Success:  true,
			Data:     cached.Payload,
			Strategy: strategyCached,
		}
	}
	if !errors.Is(err, redis.ErrCacheMiss) {
		s.log.WithField("error", err.Error()).Warn("[ScanService][ScanImage] scan cache lookup failed")
	}

	return s.scanner.Scan(img)
}

// archiveImage pushes the original upload to object storage. An empty
// return means the archive is simply missing for this scan.
func (s *service) archiveImage(fileName string, data []byte) string {
	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		contentType = contentTypeImage
	}

	archiveURL, err := s.s3.UploadBytes(fileName, data, contentType)
	if err != nil {
		s.log.WithField("error", err.Error()).Warn("[ScanService][ScanImage] failed to archive image")
		return ""
	}

	return archiveURL
}

func (s *service) GetScanByID(ctx context.Context, operatorID, id string) (scan.ScanResponse, error) {
	repoClient, err := s.repository.NewClient(false)
	if err != nil {
		s.log.WithField("error", err.Error()).Error("[ScanService][GetScanByID] failed to create repository client")
		return scan.ScanResponse{}, err
	}

	record, err := repoClient.Scan.GetScanByID(ctx, operatorID, id)
	if err != nil {
		return scan.ScanResponse{}, err
	}

	return s.toScanResponse(record), nil
}

func (s *service) GetScanHistory(ctx context.Context, operatorID string, page, limit int) (scan.ScanHistoryResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	repoClient, err := s.repository.NewClient(false)
	if err != nil {
		s.log.WithField("error", err.Error()).Error("[ScanService][GetScanHistory] failed to create repository client")
		return scan.ScanHistoryResponse{}, err
	}

	records, total, err := repoClient.Scan.GetScansByOperatorID(ctx, operatorID, limit, (page-1)*limit)
	if err != nil {
		return scan.ScanHistoryResponse{}, err
	}

	scans := make([]scan.ScanResponse, 0, len(records))
	for _, record := range records {
		scans = append(scans, s.toScanResponse(record))
	}

	return scan.ScanHistoryResponse{
		Scans: scans,
		Page:  page,
		Limit: limit,
		Total: total,
	}, nil
}

func (s *service) toScanResponse(record entity.Scan) scan.ScanResponse {
	resp := scan.ScanResponse{
		ID:       record.ID,
		FileName: record.FileName,
		Result: scan.ScanResult{
			Success:  record.Success,
			Data:     record.Payload,
			Strategy: record.Strategy,
		},
		ArchiveURL: record.ArchiveURL,
		CreatedAt:  record.CreatedAt,
	}

	if record.Success {
		resp.Fields = &qris.Fields{
			MerchantName: record.MerchantName,
			NMID:         record.NMID,
			Amount:       record.Amount,
			Raw:          record.Payload,
		}
	}

	return resp
}
