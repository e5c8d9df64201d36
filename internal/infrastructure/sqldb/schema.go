package sqldb

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"strings"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// openRentalIndex garantiza a nivel de BD un único alquiler abierto por ítem.
const openRentalIndex = `CREATE UNIQUE INDEX IF NOT EXISTS rental_open_inventory_uq ON rental (inventory_id) WHERE return_date IS NULL`

// postgresFoldFunc plegado de mayúsculas con la colación ICU raíz, independiente del
// LC_CTYPE de la base. PostgreSQL 18 trae casefold(); antes se emula con lower() más
// los dos casos en que el plegado de Unicode difiere de la minúscula.
const (
	postgresFoldFunc     = "videoclub_fold"
	postgresICUCollation = "und-x-icu"
	postgresFoldPG18     = `CREATE OR REPLACE FUNCTION videoclub_fold(t text) RETURNS text
LANGUAGE sql IMMUTABLE STRICT PARALLEL SAFE
AS $$ SELECT casefold(t COLLATE "und-x-icu") $$`
	postgresFoldLegacy = `CREATE OR REPLACE FUNCTION videoclub_fold(t text) RETURNS text
LANGUAGE sql IMMUTABLE STRICT PARALLEL SAFE
AS $$ SELECT replace(replace(lower(t COLLATE "und-x-icu"), 'ς', 'σ'), 'ß', 'ss') $$`
)

// ErrICUMissing el servidor PostgreSQL no tiene soporte ICU (colación und-x-icu).
var ErrICUMissing = errors.New("postgres sin colación ICU " + postgresICUCollation)

// EnsureSchema crea las tablas si no existen. withOpenRentalIndex añade el índice único parcial
// sobre alquileres abiertos (estrategia "constraint"); sin él la exclusión depende del aislamiento
// serializable.
func EnsureSchema(ctx context.Context, db *DB, withOpenRentalIndex bool) error {
	raw, err := schemaFS.ReadFile("schema/" + string(db.Dialect) + ".sql")
	if err != nil {
		return fmt.Errorf("leer esquema %s: %w", db.Dialect, err)
	}
	stmts := splitStatements(string(raw))
	if withOpenRentalIndex {
		stmts = append(stmts, openRentalIndex)
	}
	if db.Dialect == Postgres {
		fold, err := postgresFoldDDL(ctx, db.SQL)
		if err != nil {
			return err
		}
		stmts = append(stmts, fold)
	}
	for _, stmt := range stmts {
		if _, err := db.SQL.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("aplicar esquema: %w", err)
		}
	}
	return nil
}

// postgresFoldDDL elige la definición de videoclub_fold según la versión del servidor.
func postgresFoldDDL(ctx context.Context, q Querier) (string, error) {
	var icu bool
	if err := q.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM pg_collation WHERE collname = $1)`, postgresICUCollation,
	).Scan(&icu); err != nil {
		return "", fmt.Errorf("consultar colaciones: %w", err)
	}
	if !icu {
		return "", ErrICUMissing
	}
	var version int
	if err := q.QueryRowContext(ctx,
		`SELECT current_setting('server_version_num')::int`,
	).Scan(&version); err != nil {
		return "", fmt.Errorf("consultar versión: %w", err)
	}
	if version >= 180000 {
		return postgresFoldPG18, nil
	}
	return postgresFoldLegacy, nil
}

func splitStatements(script string) []string {
	var out []string
	for _, part := range strings.Split(script, ";") {
		if s := strings.TrimSpace(part); s != "" {
			out = append(out, s)
		}
	}
	return out
}
