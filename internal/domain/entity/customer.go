package entity

// Customer representa un cliente registrado en una tienda.
type Customer struct {
	ID        int64
	StoreID   int64
	FirstName string
	LastName  string
	Email     string
	Active    bool
}
