package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/brewery-api/internal/application/dto"
	"github.com/jhoicas/brewery-api/internal/application/keg"
)

// KegHandler serves /api/kegs.
type KegHandler struct {
	uc *keg.UseCase
}

// NewKegHandler builds the handler.
func NewKegHandler(uc *keg.UseCase) *KegHandler {
	return &KegHandler{uc: uc}
}

// Register godoc
// @Summary      Register a keg
// @Tags         kegs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.RegisterKegRequest  true  "keg"
// @Success      201   {object}  dto.KegResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/kegs [post]
func (h *KegHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterKegRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	k, err := h.uc.Register(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toKegResponse(k))
}

// Get godoc
// @Summary      Get a keg
// @Tags         kegs
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "keg code"
// @Success      200  {object}  dto.KegResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/kegs/{id} [get]
func (h *KegHandler) Get(c *fiber.Ctx) error {
	k, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toKegResponse(k))
}

// Update godoc
// @Summary      Update a keg
// @Description  Administrative update of status, location, customer or product.
// @Tags         kegs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                true  "keg code"
// @Param        body  body      dto.UpdateKegRequest  true  "fields to change"
// @Success      200   {object}  dto.KegResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/kegs/{id} [patch]
func (h *KegHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateKegRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	k, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toKegResponse(k))
}

// Transactions godoc
// @Summary      Keg history
// @Tags         kegs
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "keg code"
// @Success      200  {array}   dto.KegTransactionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/kegs/{id}/transactions [get]
func (h *KegHandler) Transactions(c *fiber.Ctx) error {
	txs, err := h.uc.Transactions(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.KegTransactionResponse, 0, len(txs))
	for _, t := range txs {
		out = append(out, toKegTransactionResponse(t))
	}
	return c.JSON(out)
}
