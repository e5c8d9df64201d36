package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrConflict     = errors.New("el ítem de inventario ya tiene un alquiler abierto")
	ErrInternal     = errors.New("fallo interno, reintentar más tarde")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")

	// ErrSerializationFailure lo devuelve la capa de persistencia cuando el motor aborta la
	// transacción por aislamiento (SQLSTATE 40001/40P01, SQLITE_BUSY). Es reintentable.
	ErrSerializationFailure = errors.New("fallo de serialización de la transacción")
)

// Kind clasifica un fallo en las tres categorías que ve el llamador.
type Kind string

const (
	KindNotFound Kind = "NOT_FOUND"
	KindConflict Kind = "CONFLICT"
	KindInternal Kind = "INTERNAL"
)

// Error es el resultado tipado de las operaciones del núcleo (alquiler y búsqueda).
// Conserva la causa original para logs, pero el llamador decide solo por Kind.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Is permite errors.Is(err, domain.ErrConflict) etc. sobre el resultado tipado,
// aunque la causa envuelta sea un error del driver.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Kind == KindNotFound
	case ErrConflict:
		return e.Kind == KindConflict
	case ErrInternal:
		return e.Kind == KindInternal
	}
	return false
}

// KindOf clasifica cualquier error. Todo lo que no sea NotFound/Conflict es Internal.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrConflict):
		return KindConflict
	default:
		return KindInternal
	}
}

// NewError envuelve err en un *Error clasificado. Devuelve nil si err es nil.
func NewError(op string, err error) error {
	if err == nil {
		return nil
	}
	var de *Error
	if errors.As(err, &de) {
		return err
	}
	return &Error{Kind: KindOf(err), Op: op, Err: err}
}
