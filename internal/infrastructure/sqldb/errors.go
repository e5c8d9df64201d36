package sqldb

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/jhoicas/Videoclub-api/internal/domain"
)

// Códigos SQLSTATE relevantes.
const (
	pgUniqueViolation      = "23505"
	pgForeignKeyViolation  = "23503"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
)

func classifyPostgres(err error) error {
	var pgErr *pgconn.PgError
	code := ""
	if errors.As(err, &pgErr) {
		code = pgErr.Code
	} else if strings.Contains(err.Error(), pgUniqueViolation) {
		code = pgUniqueViolation
	}
	switch code {
	case pgUniqueViolation:
		return domain.ErrConflict
	case pgForeignKeyViolation:
		return domain.ErrNotFound
	case pgSerializationFailure, pgDeadlockDetected:
		return domain.ErrSerializationFailure
	}
	return nil
}

func classifySQLite(err error) error {
	var sqlErr *sqlite.Error
	if !errors.As(err, &sqlErr) {
		return nil
	}
	switch code := sqlErr.Code(); {
	case code == sqlite3.SQLITE_CONSTRAINT_UNIQUE, code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return domain.ErrConflict
	case code == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
		return domain.ErrNotFound
	case code&0xff == sqlite3.SQLITE_BUSY, code&0xff == sqlite3.SQLITE_LOCKED:
		// Extended codes (SQLITE_BUSY_SNAPSHOT, ...) comparten el código primario en el byte bajo.
		return domain.ErrSerializationFailure
	}
	return nil
}
