package rental

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Videoclub-api/internal/application/dto"
	"github.com/jhoicas/Videoclub-api/internal/domain"
	"github.com/jhoicas/Videoclub-api/internal/domain/entity"
	"github.com/jhoicas/Videoclub-api/internal/domain/repository"
)

// ReturnUseCase cierra un alquiler abierto (fija return_date), liberando el ítem.
type ReturnUseCase struct {
	txRunner TxRunner
	now      func() time.Time
}

// NewReturnUseCase construye el caso de uso.
func NewReturnUseCase(txRunner TxRunner) *ReturnUseCase {
	return &ReturnUseCase{txRunner: txRunner, now: time.Now}
}

// WithClock reemplaza el reloj.
func (uc *ReturnUseCase) WithClock(now func() time.Time) *ReturnUseCase {
	if now != nil {
		uc.now = now
	}
	return uc
}

// Return marca el alquiler como devuelto. NotFound si no existe, Conflict si ya estaba cerrado.
func (uc *ReturnUseCase) Return(ctx context.Context, rentalID int64) (*dto.RentalRecord, error) {
	const op = "rental.return"
	if rentalID <= 0 {
		return nil, &domain.Error{Kind: domain.KindNotFound, Op: op, Err: domain.ErrNotFound}
	}

	var closed *entity.Rental
	err := uc.txRunner.RunRental(ctx, TxOptions{}, func(
		_ repository.InventoryRepository,
		_ repository.CustomerRepository,
		_ repository.StaffRepository,
		rentalRepo repository.RentalRepository,
	) error {
		r, err := rentalRepo.GetByID(ctx, rentalID)
		if err != nil {
			return err
		}
		if r == nil {
			return fmt.Errorf("alquiler %d: %w", rentalID, domain.ErrNotFound)
		}
		if !r.Open() {
			return fmt.Errorf("alquiler %d ya devuelto: %w", rentalID, domain.ErrConflict)
		}
		at := uc.now().UTC()
		ok, err := rentalRepo.MarkReturned(ctx, rentalID, at)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("alquiler %d ya devuelto: %w", rentalID, domain.ErrConflict)
		}
		r.ReturnDate = &at
		closed = r
		return nil
	})
	if err != nil {
		return nil, domain.NewError(op, err)
	}
	return toRentalRecord(closed), nil
}
