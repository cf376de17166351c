package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/brewery-api/internal/application/batch"
	"github.com/jhoicas/brewery-api/internal/application/dto"
)

// BatchHandler serves the batch lifecycle endpoints.
type BatchHandler struct {
	uc *batch.UseCase
}

// NewBatchHandler builds the handler.
func NewBatchHandler(uc *batch.UseCase) *BatchHandler {
	return &BatchHandler{uc: uc}
}

// Create godoc
// @Summary      Create a batch
// @Description  Checks every recipe ingredient, debits them and creates the batch "In Progress".
// @Tags         batches
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateBatchRequest  true  "batch"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/batches [post]
func (h *BatchHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	b, err := h.uc.CreateBatch(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"batchId": b.BatchID})
}

// Get godoc
// @Summary      Get a batch
// @Description  Batch with its derived ingredient list and brew log.
// @Tags         batches
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "batch id"
// @Success      200  {object}  dto.BatchResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/batches/{id} [get]
func (h *BatchHandler) Get(c *fiber.Ctx) error {
	resp, err := h.uc.GetBatch(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// Patch godoc
// @Summary      Update batch status or volume
// @Tags         batches
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                 true  "batch id"
// @Param        body  body      dto.PatchBatchRequest  true  "status and/or volume"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/batches/{id} [patch]
func (h *BatchHandler) Patch(c *fiber.Ctx) error {
	var in dto.PatchBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc.SetStatus(c.UserContext(), c.Params("id"), in); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Batch updated successfully"})
}

// Delete godoc
// @Summary      Delete a batch
// @Description  Batches with packaging cannot be deleted.
// @Tags         batches
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "batch id"
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/batches/{id} [delete]
func (h *BatchHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.DeleteBatch(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Batch deleted successfully"})
}

// AddIngredients godoc
// @Summary      Add one ingredient or replace the additional ingredients
// @Description  A single ingredient body debits inventory and returns the batch.
// @Description  A body with "ingredients" replaces the list after a sufficiency check.
// @Tags         batches
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                  true  "batch id"
// @Param        body  body      dto.IngredientsRequest  true  "ingredient or {ingredients: [...]}"
// @Success      200   {object}  dto.BatchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/batches/{id}/ingredients [post]
func (h *BatchHandler) AddIngredients(c *fiber.Ctx) error {
	var in dto.IngredientsRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.IsBulk() {
		resp, err := h.uc.SetIngredients(c.UserContext(), c.Params("id"), in.Ingredients)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(resp)
	}
	resp, err := h.uc.AddIngredient(c.UserContext(), c.Params("id"), in.IngredientRequest)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// PatchIngredients godoc
// @Summary      Replace the additional ingredients (tombstones allowed)
// @Tags         batches
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                  true  "batch id"
// @Param        body  body      dto.IngredientsRequest  true  "{ingredients: [...]}"
// @Success      200   {object}  dto.IngredientsResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/batches/{id}/ingredients [patch]
func (h *BatchHandler) PatchIngredients(c *fiber.Ctx) error {
	var in dto.IngredientsRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if !in.IsBulk() {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:  "VALIDATION",
			Error: `expected {"ingredients": [...]}; use DELETE to clear`,
		})
	}
	resp, err := h.uc.PatchIngredients(c.UserContext(), c.Params("id"), in.Ingredients)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// ClearIngredients godoc
// @Summary      Clear the additional ingredients
// @Tags         batches
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "batch id"
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/batches/{id}/ingredients [delete]
func (h *BatchHandler) ClearIngredients(c *fiber.Ctx) error {
	if err := h.uc.ClearIngredients(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Ingredients cleared successfully"})
}

// AdvanceStage godoc
// @Summary      Move the batch to a later stage
// @Description  Brewing, Fermentation and Filtering/Carbonating require equipment of the batch site.
// @Tags         batches
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                true  "batch id"
// @Param        body  body      dto.EquipmentRequest  true  "stage and equipment"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/batches/{id}/equipment [post]
func (h *BatchHandler) AdvanceStage(c *fiber.Ctx) error {
	var in dto.EquipmentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc.AdvanceStage(c.UserContext(), c.Params("id"), in); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Stage updated successfully"})
}

// SetEquipment godoc
// @Summary      Change the batch equipment without changing its stage
// @Tags         batches
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                true  "batch id"
// @Param        body  body      dto.EquipmentRequest  true  "equipmentId"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/batches/{id}/equipment [patch]
func (h *BatchHandler) SetEquipment(c *fiber.Ctx) error {
	var in dto.EquipmentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc.SetEquipment(c.UserContext(), c.Params("id"), in.EquipmentID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Equipment updated successfully"})
}

// AdjustVolume godoc
// @Summary      Set the batch volume
// @Description  A decrease is recorded as a loss against the batch.
// @Tags         batches
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                   true  "batch id"
// @Param        body  body      dto.AdjustVolumeRequest  true  "volume and reason"
// @Success      200   {object}  dto.VolumeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/batches/{id}/adjust-volume [post]
func (h *BatchHandler) AdjustVolume(c *fiber.Ctx) error {
	var in dto.AdjustVolumeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	vol, err := h.uc.AdjustVolume(c.UserContext(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.VolumeResponse{Message: "Batch volume adjusted successfully", NewVolume: vol})
}
