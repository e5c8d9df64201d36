package sqldb

import (
	"context"

	"github.com/jhoicas/Videoclub-api/internal/application/rental"
	"github.com/jhoicas/Videoclub-api/internal/domain/repository"
)

var _ rental.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción de BD.
type TxRunner struct {
	db *DB
}

// NewTxRunner construye el runner.
func NewTxRunner(db *DB) *TxRunner {
	return &TxRunner{db: db}
}

// RunRental inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) RunRental(ctx context.Context, opts rental.TxOptions, fn func(
	invRepo repository.InventoryRepository,
	customerRepo repository.CustomerRepository,
	staffRepo repository.StaffRepository,
	rentalRepo repository.RentalRepository,
) error) error {
	d := r.db.Dialect
	tx, err := r.db.SQL.BeginTx(ctx, d.TxOptions(opts.Serializable))
	if err != nil {
		return d.wrap("begin transaction", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(
		NewInventoryRepository(tx, d),
		NewCustomerRepository(tx, d),
		NewStaffRepository(tx, d),
		NewRentalRepository(tx, d),
	); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return d.wrap("commit transaction", err)
	}
	return nil
}
