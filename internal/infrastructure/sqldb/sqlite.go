package sqldb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"strings"
	"sync"

	"modernc.org/sqlite"

	"github.com/jhoicas/Videoclub-api/internal/domain/search"
)

var registerCasefold sync.Once

// casefold(x) pliega mayúsculas con las mismas reglas que search.Fold; lower() de SQLite
// solo entiende ASCII.
func registerFunctions() {
	registerCasefold.Do(func() {
		sqlite.MustRegisterDeterministicScalarFunction("casefold", 1,
			func(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
				switch v := args[0].(type) {
				case nil:
					return nil, nil
				case string:
					return search.Fold(v), nil
				case []byte:
					return search.Fold(string(v)), nil
				default:
					return search.Fold(fmt.Sprint(v)), nil
				}
			})
	})
}

// sqliteDSN fija las pragmas que cada conexión necesita: claves foráneas activas, espera ante
// bloqueos y BEGIN IMMEDIATE para que las transacciones de escritura tomen el lock al empezar.
func sqliteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + strings.Join([]string{
		"_pragma=foreign_keys(1)",
		"_pragma=busy_timeout(10000)",
		"_pragma=journal_mode(WAL)",
		"_txlock=immediate",
	}, "&")
}

// OpenSQLite abre (o crea) una base SQLite en path.
func OpenSQLite(ctx context.Context, path string) (*DB, error) {
	if path == "" {
		return nil, fmt.Errorf("ruta SQLite vacía")
	}
	registerFunctions()
	sqlDB, err := sql.Open("sqlite", sqliteDSN(path))
	if err != nil {
		return nil, fmt.Errorf("abrir sqlite: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	return &DB{SQL: sqlDB, Dialect: SQLite, closeFn: sqlDB.Close}, nil
}
