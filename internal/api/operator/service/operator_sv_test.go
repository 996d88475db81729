package operatorService

import (
	"errors"
	"io"
	"testing"
	"time"

	"ProjectQRIS/internal/api/operator"
	operatorRepository "ProjectQRIS/internal/api/operator/repository"
	"ProjectQRIS/internal/entity"
	"ProjectQRIS/pkg/bcrypt"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type fakeOperatorStore struct {
	byEmail map[string]entity.Operator
}

func (f *fakeOperatorStore) GetOperatorByEmail(_ context.Context, email string) (entity.Operator, error) {
	op, ok := f.byEmail[email]
	if !ok {
		return entity.Operator{}, operator.ErrOperatorNotFound
	}
	return op, nil
}

func (f *fakeOperatorStore) GetOperatorByID(_ context.Context, id string) (entity.Operator, error) {
	for _, op := range f.byEmail {
		if op.ID == id {
			return op, nil
		}
	}
	return entity.Operator{}, operator.ErrOperatorNotFound
}

type fakeOperatorRepo struct {
	store *fakeOperatorStore
}

func (f *fakeOperatorRepo) NewClient(tx bool) (operatorRepository.Client, error) {
	return operatorRepository.Client{
		Operator: f.store,
		Commit:   func() error { return nil },
		Rollback: func() error { return nil },
	}, nil
}

func newTestService(t *testing.T, password string) Service {
	t.Helper()
	t.Setenv("JWT_ACCESS_TOKEN_SECRET", "test-secret")

	bcryptUtils := bcrypt.NewWithCost(4)
	hashed, err := bcryptUtils.HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	store := &fakeOperatorStore{
		byEmail: map[string]entity.Operator{
			"petugas@parkir.id": {
				ID:        "op-1",
				Email:     "petugas@parkir.id",
				Name:      "Petugas Satu",
				Password:  hashed,
				CreatedAt: time.Now(),
			},
		},
	}

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	return New(&fakeOperatorRepo{store: store}, bcryptUtils, logger)
}

func TestLoginSuccess(t *testing.T) {
	svc := newTestService(t, "rahasia123")

	resp, err := svc.Login(context.Background(), operator.LoginRequest{
		Email:    "petugas@parkir.id",
		Password: "rahasia123",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	if resp.AccessToken == "" {
		t.Fatal("expected access token")
	}
	if resp.ExpiresAt <= time.Now().Unix() {
		t.Fatalf("expires_at %d is not in the future", resp.ExpiresAt)
	}
	if resp.Operator.ID != "op-1" || resp.Operator.Name != "Petugas Satu" {
		t.Fatalf("unexpected operator data: %+v", resp.Operator)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newTestService(t, "rahasia123")

	_, err := svc.Login(context.Background(), operator.LoginRequest{
		Email:    "petugas@parkir.id",
		Password: "salah",
	})
	if !errors.Is(err, operator.ErrInvalidEmailOrPassword) {
		t.Fatalf("err = %v, want ErrInvalidEmailOrPassword", err)
	}
}

func TestLoginUnknownEmailDoesNotLeakExistence(t *testing.T) {
	svc := newTestService(t, "rahasia123")

	_, err := svc.Login(context.Background(), operator.LoginRequest{
		Email:    "nobody@parkir.id",
		Password: "rahasia123",
	})
	if !errors.Is(err, operator.ErrInvalidEmailOrPassword) {
		t.Fatalf("unknown email must report invalid credentials, got %v", err)
	}
}

func TestGetProfile(t *testing.T) {
	svc := newTestService(t, "rahasia123")

	profile, err := svc.GetProfile(context.Background(), "op-1")
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if profile.Email != "petugas@parkir.id" {
		t.Fatalf("email = %q", profile.Email)
	}

	if _, err := svc.GetProfile(context.Background(), "missing"); !errors.Is(err, operator.ErrOperatorNotFound) {
		t.Fatalf("err = %v, want ErrOperatorNotFound", err)
	}
}
