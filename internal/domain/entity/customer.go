package entity

// Customer is a buyer of finished goods (read from the catalog).
type Customer struct {
	ID   string
	Name string
}
