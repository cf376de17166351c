package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PromptVolumeAdjustment is the prompt value returned when a batch is short.
const PromptVolumeAdjustment = "volumeAdjustment"

// PackageRequest body of POST /api/batches/:id/package.
// AllowVolumeIncrease folds the shortfall confirmation into the same call.
type PackageRequest struct {
	PackageType         string   `json:"packageType" validate:"required"`
	Quantity            int64    `json:"quantity"`
	LocationID          string   `json:"locationId" validate:"required"`
	KegCodes            []string `json:"kegCodes,omitempty"`
	AllowVolumeIncrease bool     `json:"allowVolumeIncrease,omitempty"`
}

// PackageResponse is either a success body or a volumeAdjustment prompt (both HTTP 200).
type PackageResponse struct {
	Prompt        string           `json:"prompt,omitempty"`
	Message       string           `json:"message"`
	Shortfall     *decimal.Decimal `json:"shortfall,omitempty"`
	NewIdentifier string           `json:"newIdentifier,omitempty"`
	Quantity      int64            `json:"quantity,omitempty"`
	NewVolume     *decimal.Decimal `json:"newVolume,omitempty"`
	PackageID     string           `json:"packageId,omitempty"`
}

// UpdatePackagingRequest body of PATCH /api/batches/:id/package/:packageId.
type UpdatePackagingRequest struct {
	Quantity int64 `json:"quantity"`
}

// BatchVolumeResponse body of packaging update/delete.
type BatchVolumeResponse struct {
	Message        string          `json:"message"`
	NewBatchVolume decimal.Decimal `json:"newBatchVolume"`
}

// PackagingResponse is one packaging row.
type PackagingResponse struct {
	ID          string          `json:"id"`
	BatchID     string          `json:"batchId"`
	PackageType string          `json:"packageType"`
	Quantity    int64           `json:"quantity"`
	Volume      decimal.Decimal `json:"volume"`
	LocationID  string          `json:"locationId"`
	SiteID      string          `json:"siteId"`
	Date        time.Time       `json:"date"`
	KegCodes    []string        `json:"kegCodes"`
}
