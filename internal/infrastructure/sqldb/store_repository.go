package sqldb

import (
	"context"

	"github.com/jhoicas/Videoclub-api/internal/domain/repository"
)

var _ repository.StoreRepository = (*StoreRepo)(nil)

// StoreRepo implementación de StoreRepository.
type StoreRepo struct {
	q Querier
	d Dialect
}

// NewStoreRepository construye el adaptador.
func NewStoreRepository(q Querier, d Dialect) *StoreRepo {
	return &StoreRepo{q: q, d: d}
}

// ListManagedBy ids de las tiendas que gestiona staffID, ordenados.
func (r *StoreRepo) ListManagedBy(ctx context.Context, staffID int64) ([]int64, error) {
	query := `SELECT store_id FROM store_manager WHERE staff_id = ? ORDER BY store_id`
	rows, err := r.q.QueryContext(ctx, r.d.Rebind(query), staffID)
	if err != nil {
		return nil, r.d.wrap("list managed stores", err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, r.d.wrap("scan managed store", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, r.d.wrap("list managed stores", err)
	}
	return ids, nil
}
