package cardRepository

import (
	"ProjectQRIS/internal/entity"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type SQLExecutor interface {
	sqlx.ExtContext
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
	Rebind(query string) string
}

func New(db *sqlx.DB, log *logrus.Logger) Repository {
	return &repository{
		DB:  db,
		log: log,
	}
}

type repository struct {
	DB  *sqlx.DB
	log *logrus.Logger
}

type Repository interface {
	NewClient(tx bool) (Client, error)
}

func (r *repository) NewClient(tx bool) (Client, error) {
	var sqlExecutor SQLExecutor
	var commitFunc, rollbackFunc func() error

	sqlExecutor = r.DB

	if tx {
		txx, err := r.DB.Beginx()
		if err != nil {
			return Client{}, err
		}

		sqlExecutor = txx
		commitFunc = txx.Commit
		rollbackFunc = txx.Rollback
	} else {
		commitFunc = func() error { return nil }
		rollbackFunc = func() error { return nil }
	}

	return Client{
		Card:     &cardRepository{q: sqlExecutor, log: r.log},
		Commit:   commitFunc,
		Rollback: rollbackFunc,
	}, nil
}

type Client struct {
	Card interface {
		CreateBatch(ctx context.Context, batch entity.CardBatch, items []entity.CardBatchItem) error
		GetBatchByID(ctx context.Context, operatorID, id string) (entity.CardBatch, error)
		GetBatchItems(ctx context.Context, batchID string) ([]entity.CardBatchItem, error)
		GetBatchesByOperatorID(ctx context.Context, operatorID string) ([]entity.CardBatch, error)
		UpsertSettings(ctx context.Context, settings entity.CardSettings) error
		GetSettings(ctx context.Context, operatorID string) (entity.CardSettings, error)
	}

	Commit   func() error
	Rollback func() error
}

type cardRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}
