package entity

import "github.com/shopspring/decimal"

// Film metadatos de catálogo; InventoryItem referencia una copia física.
type Film struct {
	ID          int64
	Title       string
	Description string // vacío si la columna es NULL
	RentalRate  decimal.Decimal
}
