package dto

import "time"

// RegisterKegRequest body of POST /api/kegs.
type RegisterKegRequest struct {
	Code          string `json:"code" validate:"required"`
	Status        string `json:"status,omitempty" validate:"omitempty,oneof=Empty Filled Destroyed Broken"`
	ProductID     string `json:"productId,omitempty"`
	LocationID    string `json:"locationId,omitempty"`
	PackagingType string `json:"packagingType,omitempty"`
}

// UpdateKegRequest body of PATCH /api/kegs/:id. Nil fields are left unchanged;
// an empty string clears the field.
type UpdateKegRequest struct {
	Status     *string `json:"status,omitempty" validate:"omitempty,oneof=Empty Filled Destroyed Broken"`
	LocationID *string `json:"locationId,omitempty"`
	CustomerID *string `json:"customerId,omitempty"`
	ProductID  *string `json:"productId,omitempty"`
}

// KegResponse is a keg.
type KegResponse struct {
	Code          string     `json:"code"`
	Status        string     `json:"status"`
	ProductID     string     `json:"productId,omitempty"`
	LocationID    string     `json:"locationId,omitempty"`
	CustomerID    string     `json:"customerId,omitempty"`
	PackagingType string     `json:"packagingType,omitempty"`
	LastScanned   *time.Time `json:"lastScanned,omitempty"`
}

// KegTransactionResponse is one row of the keg history.
type KegTransactionResponse struct {
	ID        string    `json:"id"`
	KegCode   string    `json:"kegCode"`
	Action    string    `json:"action"`
	ProductID string    `json:"productId,omitempty"`
	BatchID   string    `json:"batchId,omitempty"`
	InvoiceID string    `json:"invoiceId,omitempty"`
	Date      time.Time `json:"date"`
	Location  string    `json:"location,omitempty"`
}
