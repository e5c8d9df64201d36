package dto

import "time"

// CreateRentalRequest body de POST /api/rentals. El staff sale del token.
type CreateRentalRequest struct {
	InventoryID int64 `json:"inventory_id"`
	CustomerID  int64 `json:"customer_id"`
}

// RentalRecord resultado de una asignación (o devolución) confirmada.
type RentalRecord struct {
	ID          int64      `json:"id"`
	InventoryID int64      `json:"inventory_id"`
	CustomerID  int64      `json:"customer_id"`
	StaffID     int64      `json:"staff_id"`
	RentalDate  time.Time  `json:"rental_date"`
	ReturnDate  *time.Time `json:"return_date,omitempty"`
}
