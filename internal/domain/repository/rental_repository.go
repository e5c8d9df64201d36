package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Videoclub-api/internal/domain/entity"
)

// RentalRepository define el puerto de persistencia para Rental.
// Las implementaciones traducen los errores del motor: violación de unicidad del
// alquiler abierto -> domain.ErrConflict, FK inexistente -> domain.ErrNotFound,
// aborto por aislamiento -> domain.ErrSerializationFailure.
type RentalRepository interface {
	CountOpenByInventory(ctx context.Context, inventoryID int64) (int, error)
	Create(ctx context.Context, rental *entity.Rental) error
	GetByID(ctx context.Context, id int64) (*entity.Rental, error)
	// MarkReturned cierra un alquiler abierto. Devuelve false si no había alquiler abierto con ese id.
	MarkReturned(ctx context.Context, id int64, at time.Time) (bool, error)
}
