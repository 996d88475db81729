package operatorRepository

import (
	"database/sql"
	"errors"

	"ProjectQRIS/internal/api/operator"
	"ProjectQRIS/internal/entity"
	"github.com/jmoiron/sqlx"
	"golang.org/x/net/context"
)

func (r *operatorRepository) GetOperatorByEmail(ctx context.Context, email string) (entity.Operator, error) {
	query, args, err := sqlx.Named(queryGetOperatorByEmail, map[string]interface{}{"email": email})
	if err != nil {
		r.log.WithField("error", err.Error()).Error("[OperatorRepository][GetOperatorByEmail] failed to bind named query")
		return entity.Operator{}, err
	}

	query = r.q.Rebind(query)

	var result entity.Operator
	err = r.q.QueryRowxContext(ctx, query, args...).StructScan(&result)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Operator{}, operator.ErrOperatorNotFound
		}

		r.log.WithField("error", err.Error()).Error("[OperatorRepository][GetOperatorByEmail] failed to get operator")
		return entity.Operator{}, err
	}

	return result, nil
}

func (r *operatorRepository) GetOperatorByID(ctx context.Context, id string) (entity.Operator, error) {
	query, args, err := sqlx.Named(queryGetOperatorByID, map[string]interface{}{"id": id})
	if err != nil {
		r.log.WithField("error", err.Error()).Error("[OperatorRepository][GetOperatorByID] failed to bind named query")
		return entity.Operator{}, err
	}

	query = r.q.Rebind(query)

	var result entity.Operator
	err = r.q.QueryRowxContext(ctx, query, args...).StructScan(&result)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Operator{}, operator.ErrOperatorNotFound
		}

		r.log.WithField("error", err.Error()).Error("[OperatorRepository][GetOperatorByID] failed to get operator")
		return entity.Operator{}, err
	}

	return result, nil
}
