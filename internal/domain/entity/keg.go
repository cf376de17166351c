package entity

import "time"

// Keg statuses.
const (
	KegStatusEmpty     = "Empty"
	KegStatusFilled    = "Filled"
	KegStatusDestroyed = "Destroyed"
	KegStatusBroken    = "Broken"
)

// Keg transaction actions.
const (
	KegActionRegistered = "Registered"
	KegActionFilled     = "Filled"
	KegActionShipped    = "Shipped"
	KegActionEmptied    = "Emptied"
	KegActionUpdated    = "Updated"
)

// Keg is a durable physical asset identified by its printed code.
type Keg struct {
	Code          string
	Status        string
	ProductID     string
	LocationID    string
	CustomerID    string
	PackagingType string
	LastScanned   *time.Time
}

// KegTransaction is an append-only row of the keg history.
type KegTransaction struct {
	ID        string
	KegCode   string
	Action    string
	ProductID string
	BatchID   string
	InvoiceID string
	Date      time.Time
	Location  string // free-text location or customer descriptor
}
