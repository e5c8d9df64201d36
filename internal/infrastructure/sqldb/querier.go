package sqldb

import (
	"context"
	"database/sql"
)

// Querier lo implementan *sql.DB y *sql.Tx: los repositorios funcionan igual fuera o dentro
// de una transacción.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
