package sqldb

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
)

// Dialect diferencias entre motores que afectan a las consultas y a la clasificación de errores.
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

// ParseDialect acepta "postgres"/"postgresql"/"pgx" o "sqlite"/"sqlite3".
func ParseDialect(s string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "postgres", "postgresql", "pgx":
		return Postgres, nil
	case "sqlite", "sqlite3":
		return SQLite, nil
	}
	return "", fmt.Errorf("driver de BD desconocido: %q", s)
}

// Rebind convierte los marcadores "?" al formato del motor ($1, $2... en PostgreSQL).
func (d Dialect) Rebind(query string) string {
	if d != Postgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Fold expresión SQL que pliega expr igual que search.Fold. Ambas funciones las
// instala el propio paquete (UDF en SQLite, EnsureSchema en PostgreSQL).
func (d Dialect) Fold(expr string) string {
	if d == SQLite {
		return "casefold(" + expr + ")"
	}
	return postgresFoldFunc + "(" + expr + ")"
}

// TxOptions opciones de BeginTx. En SQLite las escrituras ya son serializables
// (BEGIN IMMEDIATE vía DSN), así que no se pide nivel explícito.
func (d Dialect) TxOptions(serializable bool) *sql.TxOptions {
	if d == Postgres && serializable {
		return &sql.TxOptions{Isolation: sql.LevelSerializable}
	}
	return nil
}

// wrap añade contexto al error y, si el motor lo identifica, el centinela de dominio
// correspondiente (conflicto, referencia inexistente, aborto por serialización).
func (d Dialect) wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var sentinel error
	switch d {
	case Postgres:
		sentinel = classifyPostgres(err)
	case SQLite:
		sentinel = classifySQLite(err)
	}
	if sentinel != nil {
		return fmt.Errorf("%s: %w: %w", op, sentinel, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
