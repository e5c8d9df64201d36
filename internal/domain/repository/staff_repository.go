package repository

import (
	"context"

	"github.com/jhoicas/Videoclub-api/internal/domain/entity"
)

// StaffRepository define el puerto de persistencia para Staff.
type StaffRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Staff, error)
	GetByUsername(ctx context.Context, username string) (*entity.Staff, error)
}
