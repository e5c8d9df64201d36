package entity

// InventoryItem una copia física de un Film en una Store. Inmutable: su estado de
// alquiler se deriva de la existencia de un Rental abierto, no se guarda aquí.
type InventoryItem struct {
	ID      int64
	FilmID  int64
	StoreID int64
}
