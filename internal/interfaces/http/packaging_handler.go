package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/brewery-api/internal/application/dto"
	"github.com/jhoicas/brewery-api/internal/application/packaging"
)

// PackagingHandler serves /api/batches/:id/package.
type PackagingHandler struct {
	uc *packaging.UseCase
}

// NewPackagingHandler builds the handler.
func NewPackagingHandler(uc *packaging.UseCase) *PackagingHandler {
	return &PackagingHandler{uc: uc}
}

// List godoc
// @Summary      List the packaging runs of a batch
// @Tags         packaging
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "batch id"
// @Success      200  {array}   dto.PackagingResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/batches/{id}/package [get]
func (h *PackagingHandler) List(c *fiber.Ctx) error {
	runs, err := h.uc.ListPackaging(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.PackagingResponse, 0, len(runs))
	for _, p := range runs {
		out = append(out, toPackagingResponse(p))
	}
	return c.JSON(out)
}

// Package godoc
// @Summary      Package part of a batch
// @Description  Returns either the packaged result or, when the batch is short and
// @Description  allowVolumeIncrease is false, a volumeAdjustment prompt. Both are HTTP 200.
// @Tags         packaging
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string              true  "batch id"
// @Param        body  body      dto.PackageRequest  true  "package type, quantity, location, keg codes"
// @Success      200   {object}  dto.PackageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/batches/{id}/package [post]
func (h *PackagingHandler) Package(c *fiber.Ctx) error {
	var in dto.PackageRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.Package(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// Update godoc
// @Summary      Change the quantity of a packaging run
// @Tags         packaging
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id         path      string                      true  "batch id"
// @Param        packageId  path      string                      true  "packaging id"
// @Param        body       body      dto.UpdatePackagingRequest  true  "quantity"
// @Success      200        {object}  dto.BatchVolumeResponse
// @Failure      400        {object}  dto.ErrorResponse
// @Failure      404        {object}  dto.ErrorResponse
// @Router       /api/batches/{id}/package/{packageId} [patch]
func (h *PackagingHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdatePackagingRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	vol, err := h.uc.UpdatePackaging(c.UserContext(), c.Params("id"), c.Params("packageId"), in.Quantity)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.BatchVolumeResponse{Message: "Packaging updated successfully", NewBatchVolume: vol})
}

// Delete godoc
// @Summary      Delete a packaging run
// @Description  Restores the batch volume and removes the finished goods.
// @Tags         packaging
// @Security     Bearer
// @Produce      json
// @Param        id         path      string  true  "batch id"
// @Param        packageId  path      string  true  "packaging id"
// @Success      200        {object}  dto.BatchVolumeResponse
// @Failure      400        {object}  dto.ErrorResponse
// @Failure      404        {object}  dto.ErrorResponse
// @Router       /api/batches/{id}/package/{packageId} [delete]
func (h *PackagingHandler) Delete(c *fiber.Ctx) error {
	vol, err := h.uc.DeletePackaging(c.UserContext(), c.Params("id"), c.Params("packageId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.BatchVolumeResponse{Message: "Packaging deleted successfully", NewBatchVolume: vol})
}
