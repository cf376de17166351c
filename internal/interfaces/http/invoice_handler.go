package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/brewery-api/internal/application/billing"
	"github.com/jhoicas/brewery-api/internal/application/dto"
)

// InvoiceHandler serves /api/invoices.
type InvoiceHandler struct {
	uc  *billing.InvoiceUseCase
	pdf *billing.PDFUseCase
}

// NewInvoiceHandler builds the handler. pdf may be nil, which disables the PDF route.
func NewInvoiceHandler(uc *billing.InvoiceUseCase, pdf *billing.PDFUseCase) *InvoiceHandler {
	return &InvoiceHandler{uc: uc, pdf: pdf}
}

// Get godoc
// @Summary      Get an invoice
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "invoice id"
// @Success      200  {object}  dto.InvoiceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id} [get]
func (h *InvoiceHandler) Get(c *fiber.Ctx) error {
	resp, err := h.uc.GetInvoice(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// SaveDraft godoc
// @Summary      Save the items of a draft invoice
// @Description  Replaces the items and recomputes subtotal, keg deposits and total.
// @Tags         invoices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                  true  "invoice id"
// @Param        body  body      dto.SaveInvoiceRequest  true  "items"
// @Success      200   {object}  dto.InvoiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/invoices/{id} [patch]
func (h *InvoiceHandler) SaveDraft(c *fiber.Ctx) error {
	var in dto.SaveInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.SaveDraft(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// Post godoc
// @Summary      Post an invoice
// @Description  Debits finished goods, ships the listed kegs and marks the invoice Posted.
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "invoice id"
// @Success      200  {object}  dto.InvoiceResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/post [post]
func (h *InvoiceHandler) Post(c *fiber.Ctx) error {
	resp, err := h.uc.PostInvoice(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// GetPDF godoc
// @Summary      Download a posted invoice as PDF
// @Tags         invoices
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path      string  true  "invoice id"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/pdf [get]
func (h *InvoiceHandler) GetPDF(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.pdf.DownloadInvoicePDF(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(pdfBytes)
}
