package scanRepository

import (
	"database/sql"
	"errors"

	"ProjectQRIS/internal/api/scan"
	"ProjectQRIS/internal/entity"
	"github.com/jmoiron/sqlx"
	"golang.org/x/net/context"
)

func (r *scanRepository) CreateScan(ctx context.Context, scan entity.Scan) error {
	query, args, err := sqlx.Named(queryCreateScan, scan)
	if err != nil {
		r.log.WithField("error", err.Error()).Error("[ScanRepository][CreateScan] failed to bind named query")
		return err
	}

	query = r.q.Rebind(query)

	_, err = r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithField("error", err.Error()).Error("[ScanRepository][CreateScan] failed to insert scan")
		return err
	}

	return nil
}

func (r *scanRepository) GetScanByID(ctx context.Context, operatorID, id string) (entity.Scan, error) {
	argsKV := map[string]interface{}{
		"id":          id,
		"operator_id": operatorID,
	}

	query, args, err := sqlx.Named(queryGetScanByID, argsKV)
	if err != nil {
		r.log.WithField("error", err.Error()).Error("[ScanRepository][GetScanByID] failed to bind named query")
		return entity.Scan{}, err
	}

	query = r.q.Rebind(query)

	var result entity.Scan
	err = r.q.QueryRowxContext(ctx, query, args...).StructScan(&result)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Scan{}, scan.ErrScanNotFound
		}

		r.log.WithField("error", err.Error()).Error("[ScanRepository][GetScanByID] failed to get scan")
		return entity.Scan{}, err
	}

	return result, nil
}

func (r *scanRepository) GetScansByIDs(ctx context.Context, operatorID string, ids []string) ([]entity.Scan, error) {
	if len(ids) == 0 {
		return []entity.Scan{}, nil
	}

	query, args, err := sqlx.In(queryGetScansByIDs, operatorID, ids)
	if err != nil {
		r.log.WithField("error", err.Error()).Error("[ScanRepository][GetScansByIDs] failed to expand query")
		return nil, err
	}

	query = r.q.Rebind(query)

	results := make([]entity.Scan, 0, len(ids))
	err = r.q.SelectContext(ctx, &results, query, args...)
	if err != nil {
		r.log.WithField("error", err.Error()).Error("[ScanRepository][GetScansByIDs] failed to get scans")
		return nil, err
	}

	return results, nil
}

func (r *scanRepository) GetScansByOperatorID(ctx context.Context, operatorID string, limit, offset int) ([]entity.Scan, int, error) {
	argsKV := map[string]interface{}{
		"operator_id": operatorID,
		"limit":       limit,
		"offset":      offset,
	}

	query, args, err := sqlx.Named(queryGetScansByOperatorID, argsKV)
	if err != nil {
		r.log.WithField("error", err.Error()).Error("[ScanRepository][GetScansByOperatorID] failed to bind named query")
		return nil, 0, err
	}

	query = r.q.Rebind(query)

	results := make([]entity.Scan, 0)
	err = r.q.SelectContext(ctx, &results, query, args...)
	if err != nil {
		r.log.WithField("error", err.Error()).Error("[ScanRepository][GetScansByOperatorID] failed to get scans")
		return nil, 0, err
	}

	countQuery, countArgs, err := sqlx.Named(queryCountScansByOperatorID, argsKV)
	if err != nil {
		r.log.WithField("error", err.Error()).Error("[ScanRepository][GetScansByOperatorID] failed to bind count query")
		return nil, 0, err
	}

	countQuery = r.q.Rebind(countQuery)

	var total int
	err = r.q.QueryRowxContext(ctx, countQuery, countArgs...).Scan(&total)
	if err != nil {
		r.log.WithField("error", err.Error()).Error("[ScanRepository][GetScansByOperatorID] failed to count scans")
		return nil, 0, err
	}

	return results, total, nil
}
