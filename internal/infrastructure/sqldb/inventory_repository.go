package sqldb

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jhoicas/Videoclub-api/internal/domain/entity"
	"github.com/jhoicas/Videoclub-api/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo implementación de InventoryRepository (usable con DB o tx).
type InventoryRepo struct {
	q Querier
	d Dialect
}

// NewInventoryRepository construye el adaptador. Pasar *sql.DB o *sql.Tx (Querier).
func NewInventoryRepository(q Querier, d Dialect) *InventoryRepo {
	return &InventoryRepo{q: q, d: d}
}

// GetByID obtiene una copia por id; nil, nil si no existe.
func (r *InventoryRepo) GetByID(ctx context.Context, id int64) (*entity.InventoryItem, error) {
	query := `SELECT inventory_id, film_id, store_id FROM inventory WHERE inventory_id = ?`
	var it entity.InventoryItem
	err := r.q.QueryRowContext(ctx, r.d.Rebind(query), id).Scan(&it.ID, &it.FilmID, &it.StoreID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, r.d.wrap("get inventory", err)
	}
	return &it, nil
}
