package http

import (
	"bytes"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/brewery-api/internal/application/dto"
	"github.com/jhoicas/brewery-api/internal/application/inventory"
)

// InventoryHandler serves the inventory ledger endpoints.
type InventoryHandler struct {
	uc *inventory.LedgerUseCase
}

// NewInventoryHandler builds the handler.
func NewInventoryHandler(uc *inventory.LedgerUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// Receive godoc
// @Summary      Receive inventory
// @Description  Accepts one item or an array. All items are validated first and stored
// @Description  in one transaction; rows with the same key are merged.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      []dto.ReceiveItemRequest  true  "item or items"
// @Success      201   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/receive [post]
func (h *InventoryHandler) Receive(c *fiber.Ctx) error {
	body := bytes.TrimSpace(c.Body())
	decode := c.App().Config().JSONDecoder

	var items []dto.ReceiveItemRequest
	if bytes.HasPrefix(body, []byte("[")) {
		if err := decode(body, &items); err != nil {
			return badBody(c)
		}
	} else {
		var one dto.ReceiveItemRequest
		if err := decode(body, &one); err != nil {
			return badBody(c)
		}
		items = append(items, one)
	}
	if err := h.uc.Receive(c.UserContext(), GetUserID(c), items); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MessageResponse{Message: "Inventory received successfully"})
}

// RecordLoss godoc
// @Summary      Record an inventory loss
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.RecordLossRequest  true  "loss"
// @Success      201   {object}  dto.InventoryLossResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/loss [post]
func (h *InventoryHandler) RecordLoss(c *fiber.Ctx) error {
	var in dto.RecordLossRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	loss, err := h.uc.RecordLoss(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toLossResponse(loss))
}

// List godoc
// @Summary      List inventory rows of an identifier
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        identifier  path      string  true  "inventory identifier"
// @Success      200         {array}   dto.InventoryItemResponse
// @Router       /api/inventory/{identifier} [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	rows, err := h.uc.List(c.UserContext(), identifierParam(c))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.InventoryItemResponse, 0, len(rows))
	for _, it := range rows {
		out = append(out, toInventoryResponse(it))
	}
	return c.JSON(out)
}

// Losses godoc
// @Summary      List the loss audit of an identifier
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        identifier  path      string  true  "inventory identifier or batch id"
// @Success      200         {array}   dto.InventoryLossResponse
// @Router       /api/inventory/{identifier}/losses [get]
func (h *InventoryHandler) Losses(c *fiber.Ctx) error {
	losses, err := h.uc.Losses(c.UserContext(), identifierParam(c))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.InventoryLossResponse, 0, len(losses))
	for _, l := range losses {
		out = append(out, toLossResponse(l))
	}
	return c.JSON(out)
}

// identifierParam decodes the identifier path segment. Finished goods names
// contain spaces and slashes ("Pale Ale 1/2 Keg"), so clients escape them.
func identifierParam(c *fiber.Ctx) string {
	raw := c.Params("identifier")
	if s, err := url.PathUnescape(raw); err == nil {
		return s
	}
	return raw
}
