package entity

// Rol válido para el personal de tienda (claim "role" del token).
const RoleStaff = "staff"

// Staff representa un empleado. Puede gestionar una o varias tiendas (relación store_manager);
// esas tiendas acotan el alcance de sus búsquedas.
type Staff struct {
	ID        int64
	FirstName string
	LastName  string
	Username  string // único
	StoreID   int64  // tienda donde trabaja
	Active    bool
}
