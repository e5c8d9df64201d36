package entity

// Store representa una tienda física del videoclub.
type Store struct {
	ID   int64
	Name string
}
