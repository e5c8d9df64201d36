package repository

import "context"

// StoreRepository resuelve la relación "gestiona" entre Staff y Store.
type StoreRepository interface {
	// ListManagedBy devuelve los ids de las tiendas que gestiona el empleado, ordenados.
	// Un empleado sin tiendas (o inexistente) produce un slice vacío.
	ListManagedBy(ctx context.Context, staffID int64) ([]int64, error)
}
