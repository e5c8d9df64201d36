package dto

import "github.com/shopspring/decimal"

// FilmInventoryResult proyección de búsqueda de películas (una fila por copia física).
type FilmInventoryResult struct {
	InventoryID int64  `json:"inventory_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// CustomerResult proyección de búsqueda de clientes.
type CustomerResult struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// FilmInventoryDetailResponse detalle de una copia seleccionada en el formulario de alquiler.
type FilmInventoryDetailResponse struct {
	InventoryID int64           `json:"inventory_id"`
	FilmID      int64           `json:"film_id"`
	StoreID     int64           `json:"store_id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	RentalRate  decimal.Decimal `json:"rental_rate"`
	Available   bool            `json:"available"`
}

// SearchResponse envoltorio de resultados; solo uno de los slices viene informado según Kind.
type SearchResponse struct {
	Kind      string                `json:"kind"`
	Query     string                `json:"query"`
	StoreIDs  []int64               `json:"store_ids"`
	Films     []FilmInventoryResult `json:"films,omitempty"`
	Customers []CustomerResult      `json:"customers,omitempty"`
}

// ManagedStoresResponse tiendas que gestiona el empleado autenticado.
type ManagedStoresResponse struct {
	StaffID  int64   `json:"staff_id"`
	StoreIDs []int64 `json:"store_ids"`
}
