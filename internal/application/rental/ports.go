package rental

import (
	"context"
	"time"

	"github.com/jhoicas/Videoclub-api/internal/domain/repository"
)

// TxOptions opciones de la transacción de alquiler.
type TxOptions struct {
	// Serializable pide el aislamiento más estricto del motor (SERIALIZABLE en PostgreSQL).
	Serializable bool
}

// TxRunner ejecuta fn dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Hace Commit si fn devuelve nil y Rollback en cualquier otro caso. Los abortos por
// aislamiento (también en el Commit) se devuelven envolviendo domain.ErrSerializationFailure.
type TxRunner interface {
	RunRental(ctx context.Context, opts TxOptions, fn func(
		invRepo repository.InventoryRepository,
		customerRepo repository.CustomerRepository,
		staffRepo repository.StaffRepository,
		rentalRepo repository.RentalRepository,
	) error) error
}

// Observer recibe el resultado de cada asignación (métricas).
type Observer interface {
	ObserveAllocation(outcome string, attempts int, elapsed time.Duration)
}

type nopObserver struct{}

func (nopObserver) ObserveAllocation(string, int, time.Duration) {}
