package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jhoicas/Videoclub-api/internal/domain/entity"
	"github.com/jhoicas/Videoclub-api/internal/domain/repository"
)

var _ repository.RentalRepository = (*RentalRepo)(nil)

// RentalRepo implementación de RentalRepository (usable con DB o tx).
type RentalRepo struct {
	q Querier
	d Dialect
}

// NewRentalRepository construye el adaptador. Pasar *sql.DB o *sql.Tx (Querier).
func NewRentalRepository(q Querier, d Dialect) *RentalRepo {
	return &RentalRepo{q: q, d: d}
}

// CountOpenByInventory alquileres sin devolver del ítem.
func (r *RentalRepo) CountOpenByInventory(ctx context.Context, inventoryID int64) (int, error) {
	query := `SELECT COUNT(*) FROM rental WHERE inventory_id = ? AND return_date IS NULL`
	var n int
	if err := r.q.QueryRowContext(ctx, r.d.Rebind(query), inventoryID).Scan(&n); err != nil {
		return 0, r.d.wrap("count open rentals", err)
	}
	return n, nil
}

// Create inserta el alquiler y asigna rental.ID.
func (r *RentalRepo) Create(ctx context.Context, rental *entity.Rental) error {
	query := `
		INSERT INTO rental (rental_date, inventory_id, customer_id, staff_id)
		VALUES (?, ?, ?, ?)
		RETURNING rental_id`
	err := r.q.QueryRowContext(ctx, r.d.Rebind(query),
		rental.RentalDate, rental.InventoryID, rental.CustomerID, rental.StaffID,
	).Scan(&rental.ID)
	if err != nil {
		return r.d.wrap("insert rental", err)
	}
	return nil
}

// GetByID obtiene un alquiler; nil, nil si no existe.
func (r *RentalRepo) GetByID(ctx context.Context, id int64) (*entity.Rental, error) {
	query := `
		SELECT rental_id, inventory_id, customer_id, staff_id, rental_date, return_date
		FROM rental WHERE rental_id = ?`
	var (
		rt       entity.Rental
		returned sql.NullTime
	)
	err := r.q.QueryRowContext(ctx, r.d.Rebind(query), id).Scan(
		&rt.ID, &rt.InventoryID, &rt.CustomerID, &rt.StaffID, &rt.RentalDate, &returned,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, r.d.wrap("get rental", err)
	}
	if returned.Valid {
		t := returned.Time
		rt.ReturnDate = &t
	}
	return &rt, nil
}

// MarkReturned fija return_date si el alquiler sigue abierto.
func (r *RentalRepo) MarkReturned(ctx context.Context, id int64, at time.Time) (bool, error) {
	query := `UPDATE rental SET return_date = ? WHERE rental_id = ? AND return_date IS NULL`
	res, err := r.q.ExecContext(ctx, r.d.Rebind(query), at, id)
	if err != nil {
		return false, r.d.wrap("mark rental returned", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, r.d.wrap("mark rental returned", err)
	}
	return n == 1, nil
}
