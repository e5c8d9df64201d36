package entity

import "time"

// Rental registra una asignación de un InventoryItem a un Customer, procesada por un Staff.
// Invariante: por inventory_id existe a lo sumo un Rental con ReturnDate nil.
type Rental struct {
	ID          int64
	InventoryID int64
	CustomerID  int64
	StaffID     int64
	RentalDate  time.Time
	ReturnDate  *time.Time
}

// Open indica si el alquiler sigue abierto (ítem prestado).
func (r *Rental) Open() bool {
	return r.ReturnDate == nil
}
