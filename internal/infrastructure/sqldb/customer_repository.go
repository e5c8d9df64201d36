package sqldb

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jhoicas/Videoclub-api/internal/domain/entity"
	"github.com/jhoicas/Videoclub-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación de CustomerRepository (usable con DB o tx).
type CustomerRepo struct {
	q Querier
	d Dialect
}

// NewCustomerRepository construye el adaptador. Pasar *sql.DB o *sql.Tx (Querier).
func NewCustomerRepository(q Querier, d Dialect) *CustomerRepo {
	return &CustomerRepo{q: q, d: d}
}

// GetByID obtiene un cliente por ID.
func (r *CustomerRepo) GetByID(ctx context.Context, id int64) (*entity.Customer, error) {
	query := `
		SELECT customer_id, store_id, first_name, last_name, COALESCE(email, ''), active
		FROM customer WHERE customer_id = ?`
	var c entity.Customer
	err := r.q.QueryRowContext(ctx, r.d.Rebind(query), id).Scan(
		&c.ID, &c.StoreID, &c.FirstName, &c.LastName, &c.Email, &c.Active,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, r.d.wrap("get customer", err)
	}
	return &c, nil
}
