package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/brewery-api/internal/application/batch"
	"github.com/jhoicas/brewery-api/internal/application/billing"
	"github.com/jhoicas/brewery-api/internal/application/inventory"
	"github.com/jhoicas/brewery-api/internal/application/keg"
	"github.com/jhoicas/brewery-api/internal/application/packaging"
)

// RouterDeps are the use cases behind the routes.
type RouterDeps struct {
	Batches    *batch.UseCase
	Packaging  *packaging.UseCase
	Inventory  *inventory.LedgerUseCase
	Kegs       *keg.UseCase
	Invoices   *billing.InvoiceUseCase
	InvoicePDF *billing.PDFUseCase
	JWTSecret  string
	Log        zerolog.Logger
}

// Router registers the API routes. Everything under /api requires a Bearer token.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", RequestLogger(deps.Log), AuthMiddleware(deps.JWTSecret))

	batches := api.Group("/batches")
	batchHandler := NewBatchHandler(deps.Batches)
	batches.Post("/", batchHandler.Create)
	batches.Get("/:id", batchHandler.Get)
	batches.Patch("/:id", batchHandler.Patch)
	batches.Delete("/:id", batchHandler.Delete)
	batches.Post("/:id/ingredients", batchHandler.AddIngredients)
	batches.Patch("/:id/ingredients", batchHandler.PatchIngredients)
	batches.Delete("/:id/ingredients", batchHandler.ClearIngredients)
	batches.Post("/:id/equipment", batchHandler.AdvanceStage)
	batches.Patch("/:id/equipment", batchHandler.SetEquipment)
	batches.Post("/:id/adjust-volume", batchHandler.AdjustVolume)

	packagingHandler := NewPackagingHandler(deps.Packaging)
	batches.Get("/:id/package", packagingHandler.List)
	batches.Post("/:id/package", packagingHandler.Package)
	batches.Patch("/:id/package/:packageId", packagingHandler.Update)
	batches.Delete("/:id/package/:packageId", packagingHandler.Delete)

	inv := api.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.Inventory)
	inv.Post("/receive", inventoryHandler.Receive)
	inv.Post("/loss", inventoryHandler.RecordLoss)
	inv.Get("/:identifier", inventoryHandler.List)
	inv.Get("/:identifier/losses", inventoryHandler.Losses)

	kegs := api.Group("/kegs")
	kegHandler := NewKegHandler(deps.Kegs)
	kegs.Post("/", kegHandler.Register)
	kegs.Get("/:id", kegHandler.Get)
	kegs.Patch("/:id", kegHandler.Update)
	kegs.Get("/:id/transactions", kegHandler.Transactions)

	invoices := api.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.Invoices, deps.InvoicePDF)
	invoices.Get("/:id", invoiceHandler.Get)
	invoices.Patch("/:id", invoiceHandler.SaveDraft)
	invoices.Post("/:id/post", invoiceHandler.Post)
	if deps.InvoicePDF != nil {
		invoices.Get("/:id/pdf", invoiceHandler.GetPDF)
	}
}
