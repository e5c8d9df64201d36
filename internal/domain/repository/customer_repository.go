package repository

import (
	"context"

	"github.com/jhoicas/Videoclub-api/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para Customer.
type CustomerRepository interface {
	// GetByID devuelve nil, nil si el cliente no existe.
	GetByID(ctx context.Context, id int64) (*entity.Customer, error)
}
