package cardRepository

import (
	"database/sql"
	"errors"

	"ProjectQRIS/internal/api/card"
	"ProjectQRIS/internal/entity"
	"github.com/jmoiron/sqlx"
	"golang.org/x/net/context"
)

func (r *cardRepository) CreateBatch(ctx context.Context, batch entity.CardBatch, items []entity.CardBatchItem) error {
	query, args, err := sqlx.Named(queryCreateBatch, batch)
	if err != nil {
		r.log.WithField("error", err.Error()).Error("[CardRepository][CreateBatch] failed to bind named query")
		return err
	}

	query = r.q.Rebind(query)

	_, err = r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithField("error", err.Error()).Error("[CardRepository][CreateBatch] failed to insert batch")
		return err
	}

	for _, item := range items {
		itemQuery, itemArgs, err := sqlx.Named(queryCreateBatchItem, item)
		if err != nil {
			r.log.WithField("error", err.Error()).Error("[CardRepository][CreateBatch] failed to bind item query")
			return err
		}

		itemQuery = r.q.Rebind(itemQuery)

		_, err = r.q.ExecContext(ctx, itemQuery, itemArgs...)
		if err != nil {
			r.log.WithField("error", err.Error()).Error("[CardRepository][CreateBatch] failed to insert batch item")
			return err
		}
	}

	return nil
}

func (r *cardRepository) GetBatchByID(ctx context.Context, operatorID, id string) (entity.CardBatch, error) {
	argsKV := map[string]interface{}{
		"id":          id,
		"operator_id": operatorID,
	}

	query, args, err := sqlx.Named(queryGetBatchByID, argsKV)
	if err != nil {
		r.log.WithField("error", err.Error()).Error("[CardRepository][GetBatchByID] failed to bind named query")
		return entity.CardBatch{}, err
	}

	query = r.q.Rebind(query)

	var result entity.CardBatch
	err = r.q.QueryRowxContext(ctx, query, args...).StructScan(&result)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.CardBatch{}, card.ErrBatchNotFound
		}

		r.log.WithField("error", err.Error()).Error("[CardRepository][GetBatchByID] failed to get batch")
		return entity.CardBatch{}, err
	}

	return result, nil
}

func (r *cardRepository) GetBatchItems(ctx context.Context, batchID string) ([]entity.CardBatchItem, error) {
	query, args, err := sqlx.Named(queryGetBatchItems, map[string]interface{}{"batch_id": batchID})
	if err != nil {
		r.log.WithField("error", err.Error()).Error("[CardRepository][GetBatchItems] failed to bind named query")
		return nil, err
	}

	query = r.q.Rebind(query)

	items := make([]entity.CardBatchItem, 0)
	err = r.q.SelectContext(ctx, &items, query, args...)
	if err != nil {
		r.log.WithField("error", err.Error()).Error("[CardRepository][GetBatchItems] failed to get batch items")
		return nil, err
	}

	return items, nil
}

func (r *cardRepository) GetBatchesByOperatorID(ctx context.Context, operatorID string) ([]entity.CardBatch, error) {
	query, args, err := sqlx.Named(queryGetBatchesByOperatorID, map[string]interface{}{"operator_id": operatorID})
	if err != nil {
		r.log.WithField("error", err.Error()).Error("[CardRepository][GetBatchesByOperatorID] failed to bind named query")
		return nil, err
	}

	query = r.q.Rebind(query)

	batches := make([]entity.CardBatch, 0)
	err = r.q.SelectContext(ctx, &batches, query, args...)
	if err != nil {
		r.log.WithField("error", err.Error()).Error("[CardRepository][GetBatchesByOperatorID] failed to get batches")
		return nil, err
	}

	return batches, nil
}

func (r *cardRepository) UpsertSettings(ctx context.Context, settings entity.CardSettings) error {
	query, args, err := sqlx.Named(queryUpsertSettings, settings)
	if err != nil {
		r.log.WithField("error", err.Error()).Error("[CardRepository][UpsertSettings] failed to bind named query")
		return err
	}

	query = r.q.Rebind(query)

	_, err = r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithField("error", err.Error()).Error("[CardRepository][UpsertSettings] failed to upsert settings")
		return err
	}

	return nil
}

func (r *cardRepository) GetSettings(ctx context.Context, operatorID string) (entity.CardSettings, error) {
	query, args, err := sqlx.Named(queryGetSettings, map[string]interface{}{"operator_id": operatorID})
	if err != nil {
		r.log.WithField("error", err.Error()).Error("[CardRepository][GetSettings] failed to bind named query")
		return entity.CardSettings{}, err
	}

	query = r.q.Rebind(query)

	var result entity.CardSettings
	err = r.q.QueryRowxContext(ctx, query, args...).StructScan(&result)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.CardSettings{}, sql.ErrNoRows
		}

		r.log.WithField("error", err.Error()).Error("[CardRepository][GetSettings] failed to get settings")
		return entity.CardSettings{}, err
	}

	return result, nil
}
