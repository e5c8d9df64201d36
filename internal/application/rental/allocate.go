package rental

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Videoclub-api/internal/application/dto"
	"github.com/jhoicas/Videoclub-api/internal/domain"
	"github.com/jhoicas/Videoclub-api/internal/domain/entity"
	"github.com/jhoicas/Videoclub-api/internal/domain/repository"
)

// Resultados publicados al Observer.
const (
	OutcomeOK       = "ok"
	OutcomeNotFound = "not_found"
	OutcomeConflict = "conflict"
	OutcomeInternal = "internal"
)

// AllocationEngine asigna un ítem de inventario a un cliente de forma transaccional:
// verifica referencias, cuenta alquileres abiertos e inserta el Rental.
// No guarda estado mutable compartido: la corrección bajo concurrencia la da el motor
// de BD (índice único parcial o aislamiento SERIALIZABLE, según Strategy).
type AllocationEngine struct {
	txRunner TxRunner
	cfg      Config
	log      zerolog.Logger
	observer Observer
	now      func() time.Time
}

// NewAllocationEngine construye el motor. MaxAttempts se acota a [1, MaxAttemptsLimit].
func NewAllocationEngine(txRunner TxRunner, cfg Config, log zerolog.Logger) *AllocationEngine {
	cfg.MaxAttempts = max(1, min(cfg.MaxAttempts, MaxAttemptsLimit))
	if cfg.Strategy == "" {
		cfg.Strategy = StrategyConstraint
	}
	return &AllocationEngine{
		txRunner: txRunner,
		cfg:      cfg,
		log:      log,
		observer: nopObserver{},
		now:      time.Now,
	}
}

// WithObserver registra el observador de métricas.
func (e *AllocationEngine) WithObserver(o Observer) *AllocationEngine {
	if o != nil {
		e.observer = o
	}
	return e
}

// WithClock reemplaza el reloj (fecha de alquiler y devolución).
func (e *AllocationEngine) WithClock(now func() time.Time) *AllocationEngine {
	if now != nil {
		e.now = now
	}
	return e
}

// Strategy estrategia configurada.
func (e *AllocationEngine) Strategy() Strategy { return e.cfg.Strategy }

// Allocate alquila inventoryID a customerID, procesado por staffID.
//
// Errores (siempre *domain.Error):
//   - KindNotFound  → alguno de los ids no existe; no se escribe nada.
//   - KindConflict  → el ítem ya tiene un alquiler abierto; no se escribe nada.
//   - KindInternal  → fallo de BD, commit, contexto cancelado o reintentos agotados.
//
// Solo los fallos de serialización se reintentan (hasta MaxAttempts intentos en total).
func (e *AllocationEngine) Allocate(ctx context.Context, inventoryID, customerID, staffID int64) (*dto.RentalRecord, error) {
	const op = "rental.allocate"
	start := time.Now()

	if inventoryID <= 0 || customerID <= 0 || staffID <= 0 {
		e.observer.ObserveAllocation(OutcomeNotFound, 0, time.Since(start))
		return nil, &domain.Error{Kind: domain.KindNotFound, Op: op, Err: domain.ErrNotFound}
	}

	var (
		rec     *dto.RentalRecord
		err     error
		attempt int
	)
	for attempt = 1; ; attempt++ {
		rec, err = e.attempt(ctx, inventoryID, customerID, staffID)
		if err == nil || !errors.Is(err, domain.ErrSerializationFailure) {
			break
		}
		if attempt >= e.cfg.MaxAttempts {
			err = fmt.Errorf("%d intentos agotados: %w", attempt, err)
			break
		}
		e.log.Warn().Err(err).
			Int64("inventory_id", inventoryID).
			Int("attempt", attempt).
			Msg("alquiler abortado por serialización, reintentando")
		if werr := e.backoff(ctx, attempt); werr != nil {
			err = werr
			break
		}
	}

	if err != nil {
		derr := domain.NewError(op, err)
		kind := domain.KindOf(derr)
		e.observer.ObserveAllocation(outcomeFor(kind), attempt, time.Since(start))
		if kind == domain.KindInternal {
			e.log.Error().Err(err).
				Int64("inventory_id", inventoryID).
				Int64("customer_id", customerID).
				Int64("staff_id", staffID).
				Int("attempts", attempt).
				Msg("alquiler fallido")
		}
		return nil, derr
	}
	e.observer.ObserveAllocation(OutcomeOK, attempt, time.Since(start))
	return rec, nil
}

// attempt una ejecución completa de la transacción.
func (e *AllocationEngine) attempt(ctx context.Context, inventoryID, customerID, staffID int64) (*dto.RentalRecord, error) {
	var created *entity.Rental
	opts := TxOptions{Serializable: e.cfg.Strategy == StrategySerializable}

	err := e.txRunner.RunRental(ctx, opts, func(
		invRepo repository.InventoryRepository,
		customerRepo repository.CustomerRepository,
		staffRepo repository.StaffRepository,
		rentalRepo repository.RentalRepository,
	) error {
		item, err := invRepo.GetByID(ctx, inventoryID)
		if err != nil {
			return err
		}
		if item == nil {
			return fmt.Errorf("inventario %d: %w", inventoryID, domain.ErrNotFound)
		}
		customer, err := customerRepo.GetByID(ctx, customerID)
		if err != nil {
			return err
		}
		if customer == nil {
			return fmt.Errorf("cliente %d: %w", customerID, domain.ErrNotFound)
		}
		staff, err := staffRepo.GetByID(ctx, staffID)
		if err != nil {
			return err
		}
		if staff == nil {
			return fmt.Errorf("empleado %d: %w", staffID, domain.ErrNotFound)
		}

		open, err := rentalRepo.CountOpenByInventory(ctx, inventoryID)
		if err != nil {
			return err
		}
		if open > 0 {
			return fmt.Errorf("inventario %d: %w", inventoryID, domain.ErrConflict)
		}

		r := &entity.Rental{
			InventoryID: inventoryID,
			CustomerID:  customerID,
			StaffID:     staffID,
			RentalDate:  e.now().UTC(),
		}
		if err := rentalRepo.Create(ctx, r); err != nil {
			return err
		}
		created = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toRentalRecord(created), nil
}

// backoff espera BackoffDelay más jitter, o termina antes si el contexto se cancela.
func (e *AllocationEngine) backoff(ctx context.Context, attempt int) error {
	d := BackoffDelay(e.cfg.RetryBackoff, attempt)
	if d <= 0 {
		return ctx.Err()
	}
	d += time.Duration(rand.Int64N(int64(min(e.cfg.RetryBackoff, d))))
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func outcomeFor(k domain.Kind) string {
	switch k {
	case domain.KindNotFound:
		return OutcomeNotFound
	case domain.KindConflict:
		return OutcomeConflict
	default:
		return OutcomeInternal
	}
}

func toRentalRecord(r *entity.Rental) *dto.RentalRecord {
	if r == nil {
		return nil
	}
	return &dto.RentalRecord{
		ID:          r.ID,
		InventoryID: r.InventoryID,
		CustomerID:  r.CustomerID,
		StaffID:     r.StaffID,
		RentalDate:  r.RentalDate,
		ReturnDate:  r.ReturnDate,
	}
}
