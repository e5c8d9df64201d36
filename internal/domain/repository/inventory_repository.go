package repository

import (
	"context"

	"github.com/jhoicas/Videoclub-api/internal/domain/entity"
)

// InventoryRepository define el puerto de persistencia para InventoryItem (solo lectura en el núcleo).
type InventoryRepository interface {
	// GetByID devuelve nil, nil si el ítem no existe.
	GetByID(ctx context.Context, id int64) (*entity.InventoryItem, error)
}
