package rental_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Videoclub-api/internal/application/rental"
	"github.com/jhoicas/Videoclub-api/internal/domain"
	"github.com/jhoicas/Videoclub-api/internal/domain/entity"
	"github.com/jhoicas/Videoclub-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes: un "motor" en memoria; runner serializa las transacciones con un mutex y
// permite inyectar errores por intento (antes de fn o en el commit).
// ──────────────────────────────────────────────────────────────────────────────

type fakeStore struct {
	mu        sync.Mutex
	inventory map[int64]bool
	customers map[int64]bool
	staff     map[int64]bool
	rentals   []*entity.Rental
	nextID    int64

	// beginErrs / commitErrs se consumen en orden, uno por llamada a RunRental.
	beginErrs  []error
	commitErrs []error
	calls      int
	lastOpts   rental.TxOptions
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		inventory: map[int64]bool{1: true, 2: true},
		customers: map[int64]bool{10: true, 11: true},
		staff:     map[int64]bool{100: true},
	}
}

func (s *fakeStore) openCount(inventoryID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, r := range s.rentals {
		if r.InventoryID == inventoryID && r.Open() {
			n++
		}
	}
	return n
}

type fakeTx struct {
	store   *fakeStore
	pending []*entity.Rental
}

func (t *fakeTx) GetByID(_ context.Context, id int64) (*entity.InventoryItem, error) {
	if !t.store.inventory[id] {
		return nil, nil
	}
	return &entity.InventoryItem{ID: id, FilmID: 1, StoreID: 1}, nil
}

type fakeCustomers struct{ *fakeTx }

func (c fakeCustomers) GetByID(_ context.Context, id int64) (*entity.Customer, error) {
	if !c.store.customers[id] {
		return nil, nil
	}
	return &entity.Customer{ID: id, StoreID: 1}, nil
}

type fakeStaff struct{ *fakeTx }

func (s fakeStaff) GetByID(_ context.Context, id int64) (*entity.Staff, error) {
	if !s.store.staff[id] {
		return nil, nil
	}
	return &entity.Staff{ID: id, Username: "mike"}, nil
}

func (s fakeStaff) GetByUsername(context.Context, string) (*entity.Staff, error) { return nil, nil }

type fakeRentals struct{ *fakeTx }

func (r fakeRentals) CountOpenByInventory(_ context.Context, inventoryID int64) (int, error) {
	n := 0
	for _, x := range r.store.rentals {
		if x.InventoryID == inventoryID && x.Open() {
			n++
		}
	}
	return n, nil
}

func (r fakeRentals) Create(_ context.Context, x *entity.Rental) error {
	r.store.nextID++
	x.ID = r.store.nextID
	r.pending = append(r.pending, x)
	return nil
}

func (r fakeRentals) GetByID(_ context.Context, id int64) (*entity.Rental, error) {
	for _, x := range r.store.rentals {
		if x.ID == id {
			cp := *x
			return &cp, nil
		}
	}
	return nil, nil
}

func (r fakeRentals) MarkReturned(_ context.Context, id int64, at time.Time) (bool, error) {
	for _, x := range r.store.rentals {
		if x.ID == id && x.Open() {
			x.ReturnDate = &at
			return true, nil
		}
	}
	return false, nil
}

// fn recibe cuatro puertos distintos: adaptamos fakeTx a cada uno.
func (s *fakeStore) ports(tx *fakeTx) (repository.InventoryRepository, repository.CustomerRepository, repository.StaffRepository, repository.RentalRepository) {
	return tx, fakeCustomers{tx}, fakeStaff{tx}, fakeRentals{tx}
}

type recordingObserver struct {
	mu       sync.Mutex
	outcomes []string
	attempts []int
}

func (o *recordingObserver) ObserveAllocation(outcome string, attempts int, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.outcomes = append(o.outcomes, outcome)
	o.attempts = append(o.attempts, attempts)
}

var fixedNow = time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

func newEngine(t *testing.T, store *fakeStore, cfg rental.Config) (*rental.AllocationEngine, *recordingObserver) {
	t.Helper()
	obs := &recordingObserver{}
	eng := rental.NewAllocationEngine(&runner{store: store}, cfg, zerolog.Nop()).
		WithObserver(obs).
		WithClock(func() time.Time { return fixedNow })
	return eng, obs
}

// runner es el TxRunner usado en los tests: delega en fakeStore y entrega puertos tipados.
type runner struct{ store *fakeStore }

func (r *runner) RunRental(ctx context.Context, opts rental.TxOptions, fn func(
	repository.InventoryRepository,
	repository.CustomerRepository,
	repository.StaffRepository,
	repository.RentalRepository,
) error) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.lastOpts = opts
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(s.beginErrs) > 0 {
		err := s.beginErrs[0]
		s.beginErrs = s.beginErrs[1:]
		if err != nil {
			return err
		}
	}
	tx := &fakeTx{store: s}
	if err := fn(s.ports(tx)); err != nil {
		return err
	}
	if len(s.commitErrs) > 0 {
		err := s.commitErrs[0]
		s.commitErrs = s.commitErrs[1:]
		if err != nil {
			return fmt.Errorf("commit transaction: %w", err)
		}
	}
	s.rentals = append(s.rentals, tx.pending...)
	return nil
}

func serializationErr() error {
	return fmt.Errorf("insert rental: %w", domain.ErrSerializationFailure)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestAllocate_Exito(t *testing.T) {
	store := newFakeStore()
	eng, obs := newEngine(t, store, rental.Config{MaxAttempts: 3})

	rec, err := eng.Allocate(context.Background(), 1, 10, 100)
	require.NoError(t, err)
	require.NotNil(t, rec)

	assert.Equal(t, int64(1), rec.ID)
	assert.Equal(t, int64(1), rec.InventoryID)
	assert.Equal(t, int64(10), rec.CustomerID)
	assert.Equal(t, int64(100), rec.StaffID)
	assert.Equal(t, fixedNow, rec.RentalDate)
	assert.Nil(t, rec.ReturnDate)
	assert.Equal(t, 1, store.openCount(1))
	assert.Equal(t, []string{rental.OutcomeOK}, obs.outcomes)
	assert.False(t, store.lastOpts.Serializable, "la estrategia por defecto no pide SERIALIZABLE")
}

func TestAllocate_EstrategiaSerializablePideAislamiento(t *testing.T) {
	store := newFakeStore()
	eng, _ := newEngine(t, store, rental.Config{Strategy: rental.StrategySerializable, MaxAttempts: 3})

	_, err := eng.Allocate(context.Background(), 1, 10, 100)
	require.NoError(t, err)
	assert.True(t, store.lastOpts.Serializable)
}

func TestAllocate_ConflictoSiYaHayAlquilerAbierto(t *testing.T) {
	store := newFakeStore()
	eng, obs := newEngine(t, store, rental.Config{MaxAttempts: 3})

	_, err := eng.Allocate(context.Background(), 1, 10, 100)
	require.NoError(t, err)

	// Repetir la llamada sigue devolviendo Conflict mientras el alquiler esté abierto.
	for i := 0; i < 3; i++ {
		rec, err := eng.Allocate(context.Background(), 1, 11, 100)
		assert.Nil(t, rec)
		assert.ErrorIs(t, err, domain.ErrConflict)
		assert.Equal(t, domain.KindConflict, domain.KindOf(err))
	}
	assert.Equal(t, 1, store.openCount(1), "un conflicto no debe escribir filas")
	assert.Equal(t, rental.OutcomeConflict, obs.outcomes[len(obs.outcomes)-1])
}

func TestAllocate_NotFoundPorCadaReferencia(t *testing.T) {
	cases := []struct {
		name                   string
		inventory, cust, staff int64
	}{
		{"inventario inexistente", 999, 10, 100},
		{"cliente inexistente", 1, 999, 100},
		{"empleado inexistente", 1, 10, 999},
		{"id no positivo", 0, 10, 100},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := newFakeStore()
			eng, _ := newEngine(t, store, rental.Config{MaxAttempts: 3})

			rec, err := eng.Allocate(context.Background(), tc.inventory, tc.cust, tc.staff)
			assert.Nil(t, rec)
			assert.ErrorIs(t, err, domain.ErrNotFound)
			assert.NotErrorIs(t, err, domain.ErrInternal)
			assert.Empty(t, store.rentals, "NotFound no debe dejar escrituras parciales")
		})
	}
}

func TestAllocate_ReintentaFallosDeSerializacion(t *testing.T) {
	store := newFakeStore()
	store.beginErrs = []error{serializationErr()}
	store.commitErrs = []error{domain.ErrSerializationFailure}
	// intento 1: aborta antes de fn; intento 2: aborta en commit; intento 3: ok.
	eng, obs := newEngine(t, store, rental.Config{MaxAttempts: 3})

	rec, err := eng.Allocate(context.Background(), 2, 10, 100)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, 3, store.calls)
	assert.Equal(t, 1, store.openCount(2))
	assert.Equal(t, []int{3}, obs.attempts)
}

func TestAllocate_ReintentosAgotadosEsInternal(t *testing.T) {
	store := newFakeStore()
	store.beginErrs = []error{serializationErr(), serializationErr(), serializationErr(), serializationErr()}
	eng, obs := newEngine(t, store, rental.Config{MaxAttempts: 3})

	rec, err := eng.Allocate(context.Background(), 1, 10, 100)
	assert.Nil(t, rec)
	assert.ErrorIs(t, err, domain.ErrInternal)
	assert.NotErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, 3, store.calls, "el número de intentos está acotado")
	assert.Equal(t, []string{rental.OutcomeInternal}, obs.outcomes)
}

func TestAllocate_OtrosFallosNoSeReintentan(t *testing.T) {
	store := newFakeStore()
	store.beginErrs = []error{errors.New("begin transaction: connection refused")}
	eng, _ := newEngine(t, store, rental.Config{MaxAttempts: 5})

	_, err := eng.Allocate(context.Background(), 1, 10, 100)
	assert.ErrorIs(t, err, domain.ErrInternal)
	assert.Equal(t, 1, store.calls)
}

func TestAllocate_ContextoCanceladoEsInternal(t *testing.T) {
	store := newFakeStore()
	eng, _ := newEngine(t, store, rental.Config{MaxAttempts: 3})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := eng.Allocate(ctx, 1, 10, 100)
	assert.ErrorIs(t, err, domain.ErrInternal)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, store.openCount(1))
}

func TestAllocate_BackoffRespetaElContexto(t *testing.T) {
	store := newFakeStore()
	store.beginErrs = []error{serializationErr(), serializationErr()}
	eng, _ := newEngine(t, store, rental.Config{MaxAttempts: 3, RetryBackoff: time.Hour})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := eng.Allocate(ctx, 1, 10, 100)
	assert.ErrorIs(t, err, domain.ErrInternal)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, store.calls)
}

func TestAllocate_ConcurrenteUnSoloGanador(t *testing.T) {
	store := newFakeStore()
	eng, _ := newEngine(t, store, rental.Config{MaxAttempts: 3})

	const n = 16
	results := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = eng.Allocate(context.Background(), 1, 10+int64(i%2), 100)
		}(i)
	}
	wg.Wait()

	var ok, conflicts int
	for _, err := range results {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, domain.ErrConflict):
			conflicts++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, n-1, conflicts)
	assert.Equal(t, 1, store.openCount(1))
}

func TestParseStrategy(t *testing.T) {
	s, err := rental.ParseStrategy("")
	require.NoError(t, err)
	assert.Equal(t, rental.StrategyConstraint, s)
	assert.True(t, s.RequiresOpenRentalIndex())

	s, err = rental.ParseStrategy(" Serializable ")
	require.NoError(t, err)
	assert.Equal(t, rental.StrategySerializable, s)
	assert.False(t, s.RequiresOpenRentalIndex())

	_, err = rental.ParseStrategy("optimistic")
	assert.Error(t, err)
}

func TestBackoffDelay_Acotado(t *testing.T) {
	base := 10 * time.Millisecond
	assert.Equal(t, time.Duration(0), rental.BackoffDelay(0, 3))
	assert.Equal(t, base, rental.BackoffDelay(base, 1))
	assert.Equal(t, 40*time.Millisecond, rental.BackoffDelay(base, 3))
	for _, attempt := range []int{8, 64, 70, 1 << 20} {
		d := rental.BackoffDelay(base, attempt)
		assert.Positive(t, d, "intento %d", attempt)
		assert.LessOrEqual(t, d, rental.MaxRetryBackoff, "intento %d", attempt)
	}
	assert.Equal(t, rental.MaxRetryBackoff, rental.BackoffDelay(time.Hour, 1))
}

func TestAllocate_MaxAttemptsAcotado(t *testing.T) {
	store := newFakeStore()
	for range rental.MaxAttemptsLimit + 5 {
		store.beginErrs = append(store.beginErrs, serializationErr())
	}
	eng, _ := newEngine(t, store, rental.Config{MaxAttempts: 1000})

	_, err := eng.Allocate(context.Background(), 1, 10, 100)
	assert.ErrorIs(t, err, domain.ErrInternal)
	assert.Equal(t, rental.MaxAttemptsLimit, store.calls)
}
