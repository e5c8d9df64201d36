package repository

import (
	"context"

	"github.com/jhoicas/Videoclub-api/internal/domain/entity"
	"github.com/jhoicas/Videoclub-api/internal/domain/search"
)

// FilmInventoryRow proyección ligera de un ítem de inventario con los datos de su película.
type FilmInventoryRow struct {
	InventoryID int64
	Title       string
	Description string
}

// CustomerRow proyección ligera de un cliente.
type CustomerRow struct {
	ID        int64
	FirstName string
	LastName  string
}

// FilmInventoryDetail vista de un ítem con su película y disponibilidad.
type FilmInventoryDetail struct {
	Item      entity.InventoryItem
	Film      entity.Film
	Available bool
}

// SearchRepository ejecuta búsquedas de solo lectura sobre proyecciones.
type SearchRepository interface {
	SearchFilmInventory(ctx context.Context, c search.Criteria) ([]FilmInventoryRow, error)
	SearchCustomers(ctx context.Context, c search.Criteria) ([]CustomerRow, error)
	// GetFilmInventory devuelve nil, nil si el ítem no existe.
	GetFilmInventory(ctx context.Context, inventoryID int64) (*FilmInventoryDetail, error)
}
