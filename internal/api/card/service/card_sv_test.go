package cardService

import (
	"database/sql"
	"errors"
	"io"
	"testing"

	"ProjectQRIS/internal/api/card"
	cardRepository "ProjectQRIS/internal/api/card/repository"
	scanRepository "ProjectQRIS/internal/api/scan/repository"
	"ProjectQRIS/internal/entity"
	"ProjectQRIS/pkg/utils"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type fakeCardStore struct {
	batches  map[string]entity.CardBatch
	items    map[string][]entity.CardBatchItem
	settings map[string]entity.CardSettings
}

func newFakeCardStore() *fakeCardStore {
	return &fakeCardStore{
		batches:  map[string]entity.CardBatch{},
		items:    map[string][]entity.CardBatchItem{},
		settings: map[string]entity.CardSettings{},
	}
}

func (f *fakeCardStore) CreateBatch(_ context.Context, batch entity.CardBatch, items []entity.CardBatchItem) error {
	f.batches[batch.ID] = batch
	f.items[batch.ID] = items
	return nil
}

func (f *fakeCardStore) GetBatchByID(_ context.Context, operatorID, id string) (entity.CardBatch, error) {
	batch, ok := f.batches[id]
	if !ok || batch.OperatorID != operatorID {
		return entity.CardBatch{}, card.ErrBatchNotFound
	}
	return batch, nil
}

func (f *fakeCardStore) GetBatchItems(_ context.Context, batchID string) ([]entity.CardBatchItem, error) {
	return f.items[batchID], nil
}

func (f *fakeCardStore) GetBatchesByOperatorID(_ context.Context, operatorID string) ([]entity.CardBatch, error) {
	out := []entity.CardBatch{}
	for _, b := range f.batches {
		if b.OperatorID == operatorID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeCardStore) UpsertSettings(_ context.Context, settings entity.CardSettings) error {
	f.settings[settings.OperatorID] = settings
	return nil
}

func (f *fakeCardStore) GetSettings(_ context.Context, operatorID string) (entity.CardSettings, error) {
	s, ok := f.settings[operatorID]
	if !ok {
		return entity.CardSettings{}, sql.ErrNoRows
	}
	return s, nil
}

type fakeCardRepo struct {
	store      *fakeCardStore
	commits    int
	rollbacks  int
	nextClient error
}

func (f *fakeCardRepo) NewClient(tx bool) (cardRepository.Client, error) {
	if f.nextClient != nil {
		return cardRepository.Client{}, f.nextClient
	}
	return cardRepository.Client{
		Card: f.store,
		Commit: func() error {
			f.commits++
			return nil
		},
		Rollback: func() error {
			f.rollbacks++
			return nil
		},
	}, nil
}

type fakeScanStore struct {
	scans map[string]entity.Scan
}

func (f *fakeScanStore) CreateScan(_ context.Context, sc entity.Scan) error {
	f.scans[sc.ID] = sc
	return nil
}

func (f *fakeScanStore) GetScanByID(_ context.Context, operatorID, id string) (entity.Scan, error) {
	return entity.Scan{}, errors.New("not implemented")
}

func (f *fakeScanStore) GetScansByIDs(_ context.Context, operatorID string, ids []string) ([]entity.Scan, error) {
	out := []entity.Scan{}
	for _, id := range ids {
		if sc, ok := f.scans[id]; ok && sc.OperatorID == operatorID {
			out = append(out, sc)
		}
	}
	return out, nil
}

func (f *fakeScanStore) GetScansByOperatorID(_ context.Context, operatorID string, limit, offset int) ([]entity.Scan, int, error) {
	return nil, 0, nil
}

type fakeScanRepo struct {
	store *fakeScanStore
}

func (f *fakeScanRepo) NewClient(tx bool) (scanRepository.Client, error) {
	return scanRepository.Client{
		Scan:     f.store,
		Commit:   func() error { return nil },
		Rollback: func() error { return nil },
	}, nil
}

func newTestService(cardStore *fakeCardStore, scanStore *fakeScanStore) Service {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return New(&fakeCardRepo{store: cardStore}, &fakeScanRepo{store: scanStore}, utils.New(), logger)
}

func seedScans(store *fakeScanStore, operatorID string, successes, failures int) []string {
	ids := []string{}
	for i := 0; i < successes; i++ {
		id := "ok-" + string(rune('a'+i))
		store.scans[id] = entity.Scan{
			ID:           id,
			OperatorID:   operatorID,
			Success:      true,
			Payload:      "000201",
			MerchantName: "MERCHANT " + string(rune('A'+i)),
			NMID:         "ID000000000" + string(rune('0'+i)),
		}
		ids = append(ids, id)
	}
	for i := 0; i < failures; i++ {
		id := "bad-" + string(rune('a'+i))
		store.scans[id] = entity.Scan{ID: id, OperatorID: operatorID, Success: false}
		ids = append(ids, id)
	}
	return ids
}

func TestCreateBatchKeepsOnlySuccessfulScans(t *testing.T) {
	cardStore := newFakeCardStore()
	scanStore := &fakeScanStore{scans: map[string]entity.Scan{}}
	ids := seedScans(scanStore, "op-1", 2, 1)

	svc := newTestService(cardStore, scanStore)

	resp, err := svc.CreateBatch(context.Background(), "op-1", card.CreateBatchRequest{
		ScanIDs:  ids,
		Subtitle: "Pasar Minggu",
	})
	if err != nil {
		t.Fatalf("CreateBatch: %v", err)
	}

	if resp.Title != card.DefaultTitle {
		t.Fatalf("title = %q, want default %q", resp.Title, card.DefaultTitle)
	}
	if len(resp.Items) != 2 {
		t.Fatalf("items = %d, want 2 (failed scan dropped)", len(resp.Items))
	}
	for i, item := range resp.Items {
		if item.Position != i {
			t.Fatalf("item %d has position %d", i, item.Position)
		}
		if item.MerchantName == "" {
			t.Fatalf("item %d missing merchant name", i)
		}
	}

	stored, ok := cardStore.batches[resp.ID]
	if !ok {
		t.Fatal("batch not persisted")
	}
	if stored.Subtitle != "Pasar Minggu" {
		t.Fatalf("stored subtitle = %q", stored.Subtitle)
	}
	if len(cardStore.items[resp.ID]) != 2 {
		t.Fatalf("persisted items = %d, want 2", len(cardStore.items[resp.ID]))
	}
}

func TestCreateBatchRejectsAllFailedScans(t *testing.T) {
	cardStore := newFakeCardStore()
	scanStore := &fakeScanStore{scans: map[string]entity.Scan{}}
	ids := seedScans(scanStore, "op-1", 0, 2)

	svc := newTestService(cardStore, scanStore)

	_, err := svc.CreateBatch(context.Background(), "op-1", card.CreateBatchRequest{ScanIDs: ids})
	if !errors.Is(err, card.ErrEmptyBatch) {
		t.Fatalf("err = %v, want ErrEmptyBatch", err)
	}
	if len(cardStore.batches) != 0 {
		t.Fatal("nothing should be persisted for an empty batch")
	}
}

func TestCreateBatchIgnoresOtherOperatorsScans(t *testing.T) {
	cardStore := newFakeCardStore()
	scanStore := &fakeScanStore{scans: map[string]entity.Scan{}}
	ids := seedScans(scanStore, "op-2", 2, 0)

	svc := newTestService(cardStore, scanStore)

	_, err := svc.CreateBatch(context.Background(), "op-1", card.CreateBatchRequest{ScanIDs: ids})
	if !errors.Is(err, card.ErrEmptyBatch) {
		t.Fatalf("err = %v, want ErrEmptyBatch for foreign scans", err)
	}
}

func TestGetBatchByIDJoinsScanFields(t *testing.T) {
	cardStore := newFakeCardStore()
	scanStore := &fakeScanStore{scans: map[string]entity.Scan{}}
	ids := seedScans(scanStore, "op-1", 2, 0)

	svc := newTestService(cardStore, scanStore)

	created, err := svc.CreateBatch(context.Background(), "op-1", card.CreateBatchRequest{ScanIDs: ids, Title: "KARTU UJI"})
	if err != nil {
		t.Fatalf("CreateBatch: %v", err)
	}

	fetched, err := svc.GetBatchByID(context.Background(), "op-1", created.ID)
	if err != nil {
		t.Fatalf("GetBatchByID: %v", err)
	}

	if fetched.Title != "KARTU UJI" {
		t.Fatalf("title = %q", fetched.Title)
	}
	if len(fetched.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(fetched.Items))
	}
	if fetched.Items[0].NMID == "" {
		t.Fatal("expected scan fields joined onto batch items")
	}

	if _, err := svc.GetBatchByID(context.Background(), "op-2", created.ID); !errors.Is(err, card.ErrBatchNotFound) {
		t.Fatalf("foreign operator should get ErrBatchNotFound, got %v", err)
	}
}

func TestSettingsRoundTripAndDefaults(t *testing.T) {
	cardStore := newFakeCardStore()
	scanStore := &fakeScanStore{scans: map[string]entity.Scan{}}
	svc := newTestService(cardStore, scanStore)

	defaults, err := svc.GetSettings(context.Background(), "op-1")
	if err != nil {
		t.Fatalf("GetSettings: %v", err)
	}
	if defaults.Title != card.DefaultTitle {
		t.Fatalf("default title = %q, want %q", defaults.Title, card.DefaultTitle)
	}

	saved, err := svc.UpsertSettings(context.Background(), "op-1", card.SettingsRequest{
		Subtitle:   "Dinas Perhubungan",
		FooterCode: "DH-01",
	})
	if err != nil {
		t.Fatalf("UpsertSettings: %v", err)
	}
	if saved.Title != card.DefaultTitle {
		t.Fatalf("empty title should fall back to default, got %q", saved.Title)
	}

	fetched, err := svc.GetSettings(context.Background(), "op-1")
	if err != nil {
		t.Fatalf("GetSettings after upsert: %v", err)
	}
	if fetched.Subtitle != "Dinas Perhubungan" || fetched.FooterCode != "DH-01" {
		t.Fatalf("settings not persisted: %+v", fetched)
	}
}
