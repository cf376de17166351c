package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateBatchRequest body of POST /api/batches.
type CreateBatchRequest struct {
	BatchID     string           `json:"batchId" validate:"required"`
	ProductID   string           `json:"productId" validate:"required"`
	RecipeID    string           `json:"recipeId" validate:"required"`
	SiteID      string           `json:"siteId" validate:"required"`
	FermenterID string           `json:"fermenterId,omitempty"`
	Status      string           `json:"status,omitempty"`
	Date        string           `json:"date,omitempty"`
	Volume      *decimal.Decimal `json:"volume,omitempty"`
	BatchType   string           `json:"batchType,omitempty"`
}

// IngredientRequest is one ingredient of the batch ingredient endpoints.
// Quantity may be omitted only on excluded (tombstone) entries.
type IngredientRequest struct {
	ItemName     string           `json:"itemName"`
	Quantity     *decimal.Decimal `json:"quantity,omitempty"`
	Unit         string           `json:"unit"`
	IsRecipe     bool             `json:"isRecipe,omitempty"`
	Excluded     bool             `json:"excluded,omitempty"`
	Proof        *decimal.Decimal `json:"proof,omitempty"`
	ProofGallons *decimal.Decimal `json:"proofGallons,omitempty"`
}

// IngredientsRequest carries either a single ingredient (flattened) or a bulk list.
type IngredientsRequest struct {
	IngredientRequest
	Ingredients []IngredientRequest `json:"ingredients,omitempty"`
}

// IsBulk reports whether the body used the {ingredients: [...]} shape.
func (r IngredientsRequest) IsBulk() bool {
	return r.Ingredients != nil
}

// EquipmentRequest body of POST/PATCH /api/batches/:id/equipment.
type EquipmentRequest struct {
	EquipmentID string `json:"equipmentId,omitempty"`
	Stage       string `json:"stage,omitempty"`
}

// AdjustVolumeRequest body of POST /api/batches/:id/adjust-volume.
type AdjustVolumeRequest struct {
	Volume *decimal.Decimal `json:"volume" validate:"required"`
	Reason string           `json:"reason" validate:"required"`
}

// PatchBatchRequest body of PATCH /api/batches/:id.
type PatchBatchRequest struct {
	Status *string          `json:"status,omitempty"`
	Volume *decimal.Decimal `json:"volume,omitempty"`
}

// IngredientResponse is one line of the combined ingredient view.
type IngredientResponse struct {
	ItemName     string           `json:"itemName"`
	Quantity     *decimal.Decimal `json:"quantity,omitempty"`
	Unit         string           `json:"unit"`
	IsRecipe     bool             `json:"isRecipe"`
	Excluded     bool             `json:"excluded,omitempty"`
	Proof        *decimal.Decimal `json:"proof,omitempty"`
	ProofGallons *decimal.Decimal `json:"proofGallons,omitempty"`
}

// BrewLogResponse is one brew log line.
type BrewLogResponse struct {
	At     time.Time `json:"at"`
	Action string    `json:"action"`
	Detail string    `json:"detail,omitempty"`
}

// BatchResponse is the full view of a batch.
type BatchResponse struct {
	BatchID               string               `json:"batchId"`
	ProductID             string               `json:"productId"`
	RecipeID              string               `json:"recipeId"`
	SiteID                string               `json:"siteId"`
	FermenterID           string               `json:"fermenterId,omitempty"`
	EquipmentID           string               `json:"equipmentId,omitempty"`
	Status                string               `json:"status"`
	Stage                 *string              `json:"stage"`
	BatchType             string               `json:"batchType,omitempty"`
	Date                  string               `json:"date"`
	Volume                *decimal.Decimal     `json:"volume"`
	AdditionalIngredients []IngredientResponse `json:"additionalIngredients"`
	Ingredients           []IngredientResponse `json:"ingredients"`
	BrewLog               []BrewLogResponse    `json:"brewLog"`
}

// IngredientsResponse body of the bulk ingredient endpoints.
type IngredientsResponse struct {
	Message     string               `json:"message"`
	Ingredients []IngredientResponse `json:"ingredients"`
}

// VolumeResponse body of adjust-volume.
type VolumeResponse struct {
	Message   string          `json:"message"`
	NewVolume decimal.Decimal `json:"newVolume"`
}
