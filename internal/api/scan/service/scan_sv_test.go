package scanService

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"testing"
	"time"

	"ProjectQRIS/internal/api/scan"
	scanRepository "ProjectQRIS/internal/api/scan/repository"
	"ProjectQRIS/internal/entity"
	"ProjectQRIS/pkg/qrscan"
	"ProjectQRIS/pkg/redis"
	"ProjectQRIS/pkg/utils"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

func tlv(tag, value string) string {
	return fmt.Sprintf("%s%02d%s", tag, len(value), value)
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 10, 10))); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

type fakeScanStore struct {
	created []entity.Scan
	byID    map[string]entity.Scan
}

func (f *fakeScanStore) CreateScan(_ context.Context, sc entity.Scan) error {
	f.created = append(f.created, sc)
	return nil
}

func (f *fakeScanStore) GetScanByID(_ context.Context, operatorID, id string) (entity.Scan, error) {
	sc, ok := f.byID[id]
	if !ok || sc.OperatorID != operatorID {
		return entity.Scan{}, scan.ErrScanNotFound
	}
	return sc, nil
}

func (f *fakeScanStore) GetScansByIDs(_ context.Context, operatorID string, ids []string) ([]entity.Scan, error) {
	out := make([]entity.Scan, 0, len(ids))
	for _, id := range ids {
		if sc, ok := f.byID[id]; ok && sc.OperatorID == operatorID {
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

type fakeCache struct {
	entries map[string]redis.CachedScan
	sets    int
}

func (f *fakeCache) SetScan(_ context.Context, imageHash string, sc redis.CachedScan, _ time.Duration) error {
	if f.entries == nil {
		f.entries = map[string]redis.CachedScan{}
	}
	f.entries[imageHash] = sc
	f.sets++
	return nil
}

func (f *fakeCache) GetScan(_ context.Context, imageHash string) (redis.CachedScan, error) {
	sc, ok := f.entries[imageHash]
	if !ok {
		return redis.CachedScan{}, redis.ErrCacheMiss
	}
	return sc, nil
}

type fakeArchive struct {
	uploads int
	fail    bool
}

func (f *fakeArchive) UploadBytes(fileName string, data []byte, contentType string) (string, error) {
	f.uploads++
	if f.fail {
		return "", errors.New("bucket unavailable")
	}
	return "https://bucket.example.com/" + fileName, nil
}

func (f *fakeArchive) PresignUrl(fileUrl string) (string, error) { return fileUrl, nil }
func (f *fakeArchive) DeleteFile(fileUrl string) error           { return nil }

type stubDecoder struct {
	payload string
	calls   int
}

func (d *stubDecoder) Decode(img image.Image) (string, error) {
	d.calls++
	if d.payload == "" {
		return "", errors.New("not found")
	}
	return d.payload, nil
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestService(dec *stubDecoder, store *fakeScanStore, cache *fakeCache, archive *fakeArchive) Service {
	logger := quietLogger()
	return New(
		&fakeScanRepo{store: store},
		qrscan.NewWithDecoder(dec, logger),
		cache,
		archive,
		utils.New(),
		logger,
	)
}

func TestScanImageSuccessRecordsAndCaches(t *testing.T) {
	payload := "000201" + tlv("59", "WARUNG BU SITI") + tlv("51", tlv("02", "ID1234567890")) + tlv("54", "150000")
	dec := &stubDecoder{payload: payload}
	store := &fakeScanStore{}
	cache := &fakeCache{}
	archive := &fakeArchive{}

	svc := newTestService(dec, store, cache, archive)

	resp, err := svc.ScanImage(context.Background(), "op-1", "card.png", pngBytes(t))
	if err != nil {
		t.Fatalf("ScanImage: %v", err)
	}

	if !resp.Result.Success {
		t.Fatal("expected successful result")
	}
	if resp.Result.Strategy != "direct" {
		t.Fatalf("strategy = %q, want direct", resp.Result.Strategy)
	}
	if resp.Fields == nil {
		t.Fatal("expected parsed fields on success")
	}
	if resp.Fields.MerchantName != "WARUNG BU SITI" {
		t.Fatalf("merchant = %q", resp.Fields.MerchantName)
	}
	if resp.Fields.NMID != "ID1234567890" {
		t.Fatalf("nmid = %q", resp.Fields.NMID)
	}
	if resp.Fields.Amount != "Rp. 150.000" {
		t.Fatalf("amount = %q", resp.Fields.Amount)
	}

	if len(store.created) != 1 {
		t.Fatalf("expected 1 stored scan, got %d", len(store.created))
	}
	if store.created[0].MerchantName != "WARUNG BU SITI" {
		t.Fatalf("stored merchant = %q", store.created[0].MerchantName)
	}
	if cache.sets != 1 {
		t.Fatalf("expected 1 cache write, got %d", cache.sets)
	}
	if archive.uploads != 1 {
		t.Fatalf("expected 1 archive upload, got %d", archive.uploads)
	}
}

func TestScanImageCacheHitSkipsDecoder(t *testing.T) {
	payload := "000201" + tlv("59", "MERCHANT")
	dec := &stubDecoder{payload: payload}
	store := &fakeScanStore{}
	cache := &fakeCache{}
	archive := &fakeArchive{}

	svc := newTestService(dec, store, cache, archive)

	data := pngBytes(t)
	if _, err := svc.ScanImage(context.Background(), "op-1", "card.png", data); err != nil {
		t.Fatalf("first ScanImage: %v", err)
	}
	decodeCalls := dec.calls

	resp, err := svc.ScanImage(context.Background(), "op-1", "card.png", data)
	if err != nil {
		t.Fatalf("second ScanImage: %v", err)
	}

	if dec.calls != decodeCalls {
		t.Fatalf("decoder called again on cache hit: %d -> %d", decodeCalls, dec.calls)
	}
	if resp.Result.Strategy != "cached" {
		t.Fatalf("strategy = %q, want cached", resp.Result.Strategy)
	}
	if !resp.Result.Success {
		t.Fatal("cached result should be successful")
	}
	if cache.sets != 1 {
		t.Fatalf("cache hit must not rewrite the entry, sets = %d", cache.sets)
	}
	if len(store.created) != 2 {
		t.Fatalf("every upload should be recorded, got %d rows", len(store.created))
	}
}

func TestScanImageExhaustionStillRecorded(t *testing.T) {
	dec := &stubDecoder{}
	store := &fakeScanStore{}
	cache := &fakeCache{}
	archive := &fakeArchive{}

	svc := newTestService(dec, store, cache, archive)

	resp, err := svc.ScanImage(context.Background(), "op-1", "blurry.png", pngBytes(t))
	if err != nil {
		t.Fatalf("ScanImage: %v", err)
	}

	if resp.Result.Success {
		t.Fatal("expected failed result")
	}
	if resp.Result.Strategy != qrscan.StrategyNone {
		t.Fatalf("strategy = %q, want %q", resp.Result.Strategy, qrscan.StrategyNone)
	}
	if resp.Fields != nil {
		t.Fatal("failed scans must not carry fields")
	}
	if len(store.created) != 1 {
		t.Fatalf("failed scan should still be recorded, got %d rows", len(store.created))
	}
	if store.created[0].Success {
		t.Fatal("stored row should be marked unsuccessful")
	}
	if cache.sets != 0 {
		t.Fatalf("failures must not be cached, sets = %d", cache.sets)
	}
}

func TestScanImageArchiveFailureIsBestEffort(t *testing.T) {
	payload := "000201" + tlv("59", "MERCHANT")
	dec := &stubDecoder{payload: payload}
	store := &fakeScanStore{}
	svc := newTestService(dec, store, &fakeCache{}, &fakeArchive{fail: true})

	resp, err := svc.ScanImage(context.Background(), "op-1", "card.png", pngBytes(t))
	if err != nil {
		t.Fatalf("ScanImage should survive archive failure: %v", err)
	}
	if resp.ArchiveURL != "" {
		t.Fatalf("archive url should be empty on failure, got %q", resp.ArchiveURL)
	}
	if !resp.Result.Success {
		t.Fatal("scan itself should still succeed")
	}
}

func TestScanImageRejectsNonImage(t *testing.T) {
	svc := newTestService(&stubDecoder{}, &fakeScanStore{}, &fakeCache{}, &fakeArchive{})

	_, err := svc.ScanImage(context.Background(), "op-1", "notes.txt", []byte("plain text"))
	if !errors.Is(err, scan.ErrInvalidImage) {
		t.Fatalf("err = %v, want ErrInvalidImage", err)
	}
}
