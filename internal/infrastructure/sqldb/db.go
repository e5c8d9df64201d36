package sqldb

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jhoicas/Videoclub-api/pkg/config"
)

// DB conexión abierta junto al dialecto del motor.
type DB struct {
	SQL     *sql.DB
	Dialect Dialect
	closeFn func() error
}

// Open abre la base configurada (DB_DRIVER): PostgreSQL vía pgx o SQLite embebido.
func Open(ctx context.Context, cfg config.DBConfig) (*DB, error) {
	d, err := ParseDialect(cfg.Driver)
	if err != nil {
		return nil, err
	}
	switch d {
	case SQLite:
		return OpenSQLite(ctx, cfg.SQLitePath)
	default:
		return openPostgres(ctx, cfg)
	}
}

// Close libera las conexiones.
func (db *DB) Close() error {
	if db == nil || db.closeFn == nil {
		return nil
	}
	return db.closeFn()
}

// Ping verifica la conexión (health check).
func (db *DB) Ping(ctx context.Context) error {
	if err := db.SQL.PingContext(ctx); err != nil {
		return fmt.Errorf("ping %s: %w", db.Dialect, err)
	}
	return nil
}
