package cardService

import (
	"database/sql"
	"errors"
	"time"

	"ProjectQRIS/internal/api/card"
	"ProjectQRIS/internal/entity"
	"golang.org/x/net/context"
)

// CreateBatch turns a set of previous scans into a printable card
// batch. Only scans that belong to the operator and actually decoded
// are kept; requesting nothing usable is a client error.
func (s *service) CreateBatch(ctx context.Context, operatorID string, req card.CreateBatchRequest) (card.BatchResponse, error) {
	scanClient, err := s.scanRepo.NewClient(false)
	if err != nil {
		s.log.WithField("error", err.Error()).Error("[CardService][CreateBatch] failed to create scan repository client")
		return card.BatchResponse{}, err
	}

	scans, err := scanClient.Scan.GetScansByIDs(ctx, operatorID, req.ScanIDs)
	if err != nil {
		return card.BatchResponse{}, err
	}

	scanByID := make(map[string]entity.Scan, len(scans))
	for _, sc := range scans {
		if sc.Success {
			scanByID[sc.ID] = sc
		}
	}

	items := make([]entity.CardBatchItem, 0, len(req.ScanIDs))
	itemResponses := make([]card.BatchItemResponse, 0, len(req.ScanIDs))
	for _, scanID := range req.ScanIDs {
		sc, ok := scanByID[scanID]
		if !ok {
			continue
		}

		position := len(items)
		items = append(items, entity.CardBatchItem{
			ScanID:   scanID,
			Position: position,
		})
		itemResponses = append(itemResponses, card.BatchItemResponse{
			ScanID:       scanID,
			Position:     position,
			MerchantName: sc.MerchantName,
			NMID:         sc.NMID,
			Amount:       sc.Amount,
			Payload:      sc.Payload,
		})
	}

	if len(items) == 0 {
		return card.BatchResponse{}, card.ErrEmptyBatch
	}

	title := req.Title
	if title == "" {
		title = card.DefaultTitle
	}

	id, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		s.log.WithField("error", err.Error()).Error("[CardService][CreateBatch] failed to generate batch id")
		return card.BatchResponse{}, err
	}

	batch := entity.CardBatch{
		ID:         id,
		OperatorID: operatorID,
		Title:      title,
		Subtitle:   req.Subtitle,
		FooterCode: req.FooterCode,
		CreatedAt:  time.Now().UTC(),
	}
	for i := range items {
		items[i].BatchID = batch.ID
	}

	repoClient, err := s.repository.NewClient(true)
	if err != nil {
		s.log.WithField("error", err.Error()).Error("[CardService][CreateBatch] failed to create repository client")
		return card.BatchResponse{}, err
	}

	if err := repoClient.Card.CreateBatch(ctx, batch, items); err != nil {
		if rbErr := repoClient.Rollback(); rbErr != nil {
			s.log.WithField("error", rbErr.Error()).Error("[CardService][CreateBatch] failed to rollback")
		}
		return card.BatchResponse{}, err
	}

	if err := repoClient.Commit(); err != nil {
		s.log.WithField("error", err.Error()).Error("[CardService][CreateBatch] failed to commit")
		return card.BatchResponse{}, err
	}

	return card.BatchResponse{
		ID:         batch.ID,
		Title:      batch.Title,
		Subtitle:   batch.Subtitle,
		FooterCode: batch.FooterCode,
		Items:      itemResponses,
		CreatedAt:  batch.CreatedAt,
	}, nil
}

func (s *service) GetBatchByID(ctx context.Context, operatorID, id string) (card.BatchResponse, error) {
	repoClient, err := s.repository.NewClient(false)
	if err != nil {
		s.log.WithField("error", err.Error()).Error("[CardService][GetBatchByID] failed to create repository client")
		return card.BatchResponse{}, err
	}

	batch, err := repoClient.Card.GetBatchByID(ctx, operatorID, id)
	if err != nil {
		return card.BatchResponse{}, err
	}

	items, err := repoClient.Card.GetBatchItems(ctx, batch.ID)
	if err != nil {
		return card.BatchResponse{}, err
	}

	scanIDs := make([]string, 0, len(items))
	for _, item := range items {
		scanIDs = append(scanIDs, item.ScanID)
	}

	scanClient, err := s.scanRepo.NewClient(false)
	if err != nil {
		s.log.WithField("error", err.Error()).Error("[CardService][GetBatchByID] failed to create scan repository client")
		return card.BatchResponse{}, err
	}

	scans, err := scanClient.Scan.GetScansByIDs(ctx, operatorID, scanIDs)
	if err != nil {
		return card.BatchResponse{}, err
	}

	scanByID := make(map[string]entity.Scan, len(scans))
	for _, sc := range scans {
		scanByID[sc.ID] = sc
	}

	itemResponses := make([]card.BatchItemResponse, 0, len(items))
	for _, item := range items {
		resp := card.BatchItemResponse{
			ScanID:   item.ScanID,
			Position: item.Position,
		}
		if sc, ok := scanByID[item.ScanID]; ok {
			resp.MerchantName = sc.MerchantName
			resp.NMID = sc.NMID
			resp.Amount = sc.Amount
			resp.Payload = sc.Payload
		}
		itemResponses = append(itemResponses, resp)
	}

	return card.BatchResponse{
		ID:         batch.ID,
		Title:      batch.Title,
		Subtitle:   batch.Subtitle,
		FooterCode: batch.FooterCode,
		Items:      itemResponses,
		CreatedAt:  batch.CreatedAt,
	}, nil
}

func (s *service) GetBatches(ctx context.Context, operatorID string) (card.BatchListResponse, error) {
	repoClient, err := s.repository.NewClient(false)
	if err != nil {
		s.log.WithField("error", err.Error()).Error("[CardService][GetBatches] failed to create repository client")
		return card.BatchListResponse{}, err
	}

	batches, err := repoClient.Card.GetBatchesByOperatorID(ctx, operatorID)
	if err != nil {
		return card.BatchListResponse{}, err
	}

	responses := make([]card.BatchResponse, 0, len(batches))
	for _, batch := range batches {
		responses = append(responses, card.BatchResponse{
			ID:         batch.ID,
			Title:      batch.Title,
			Subtitle:   batch.Subtitle,
			FooterCode: batch.FooterCode,
			CreatedAt:  batch.CreatedAt,
		})
	}

	return card.BatchListResponse{Batches: responses}, nil
}

func (s *service) UpsertSettings(ctx context.Context, operatorID string, req card.SettingsRequest) (card.SettingsResponse, error) {
	title := req.Title
	if title == "" {
		title = card.DefaultTitle
	}

	settings := entity.CardSettings{
		OperatorID: operatorID,
		Title:      title,
		Subtitle:   req.Subtitle,
		FooterCode: req.FooterCode,
		UpdatedAt:  time.Now().UTC(),
	}

	repoClient, err := s.repository.NewClient(false)
	if err != nil {
		s.log.WithField("error", err.Error()).Error("[CardService][UpsertSettings] failed to create repository client")
		return card.SettingsResponse{}, err
	}

	if err := repoClient.Card.UpsertSettings(ctx, settings); err != nil {
		return card.SettingsResponse{}, err
	}

	return card.SettingsResponse{
		Title:      settings.Title,
		Subtitle:   settings.Subtitle,
		FooterCode: settings.FooterCode,
		UpdatedAt:  settings.UpdatedAt,
	}, nil
}

// GetSettings falls back to the built-in defaults when the operator has
// never saved anything.
func (s *service) GetSettings(ctx context.Context, operatorID string) (card.SettingsResponse, error) {
	repoClient, err := s.repository.NewClient(false)
	if err != nil {
		s.log.WithField("error", err.Error()).Error("[CardService][GetSettings] failed to create repository client")
		return card.SettingsResponse{}, err
	}

	settings, err := repoClient.Card.GetSettings(ctx, operatorID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return card.SettingsResponse{Title: card.DefaultTitle}, nil
		}
		return card.SettingsResponse{}, err
	}

	return card.SettingsResponse{
		Title:      settings.Title,
		Subtitle:   settings.Subtitle,
		FooterCode: settings.FooterCode,
		UpdatedAt:  settings.UpdatedAt,
	}, nil
}
