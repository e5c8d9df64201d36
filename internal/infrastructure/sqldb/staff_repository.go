package sqldb

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jhoicas/Videoclub-api/internal/domain/entity"
	"github.com/jhoicas/Videoclub-api/internal/domain/repository"
)

var _ repository.StaffRepository = (*StaffRepo)(nil)

// StaffRepo implementación de StaffRepository.
type StaffRepo struct {
	q Querier
	d Dialect
}

// NewStaffRepository construye el adaptador.
func NewStaffRepository(q Querier, d Dialect) *StaffRepo {
	return &StaffRepo{q: q, d: d}
}

const staffColumns = `staff_id, first_name, last_name, username, store_id, active`

// GetByID obtiene un empleado por ID.
func (r *StaffRepo) GetByID(ctx context.Context, id int64) (*entity.Staff, error) {
	return r.getOne(ctx, "get staff", `SELECT `+staffColumns+` FROM staff WHERE staff_id = ?`, id)
}

// GetByUsername obtiene un empleado por username.
func (r *StaffRepo) GetByUsername(ctx context.Context, username string) (*entity.Staff, error) {
	return r.getOne(ctx, "get staff by username", `SELECT `+staffColumns+` FROM staff WHERE username = ?`, username)
}

func (r *StaffRepo) getOne(ctx context.Context, op, query string, arg any) (*entity.Staff, error) {
	var s entity.Staff
	err := r.q.QueryRowContext(ctx, r.d.Rebind(query), arg).Scan(
		&s.ID, &s.FirstName, &s.LastName, &s.Username, &s.StoreID, &s.Active,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, r.d.wrap(op, err)
	}
	return &s, nil
}
