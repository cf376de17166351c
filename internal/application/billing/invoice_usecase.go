package billing

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/brewery-api/internal/application/dto"
	"github.com/jhoicas/brewery-api/internal/application/inventory"
	"github.com/jhoicas/brewery-api/internal/application/keg"
	"github.com/jhoicas/brewery-api/internal/application/ports"
	"github.com/jhoicas/brewery-api/internal/domain"
	"github.com/jhoicas/brewery-api/internal/domain/entity"
	"github.com/jhoicas/brewery-api/internal/domain/packaging"
	"github.com/jhoicas/brewery-api/internal/domain/repository"
)

// InvoiceUseCase edits draft invoices and posts them.
type InvoiceUseCase struct {
	txRunner        ports.TxRunner
	repos           repository.Repos
	kegDepositPrice decimal.Decimal
	log             zerolog.Logger
	now             func() time.Time
}

// NewInvoiceUseCase builds the use case. kegDepositPrice is charged per unit
// of every line that carries a keg deposit.
func NewInvoiceUseCase(txRunner ports.TxRunner, repos repository.Repos, kegDepositPrice decimal.Decimal, log zerolog.Logger) *InvoiceUseCase {
	return &InvoiceUseCase{
		txRunner:        txRunner,
		repos:           repos,
		kegDepositPrice: kegDepositPrice,
		log:             log,
		now:             time.Now,
	}
}

// GetInvoice returns an invoice with its lines.
func (uc *InvoiceUseCase) GetInvoice(ctx context.Context, invoiceID string) (*dto.InvoiceResponse, error) {
	inv, err := uc.repos.Invoices.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.NotFound("Invoice %s not found", invoiceID)
	}
	return toInvoiceResponse(inv), nil
}

// SaveDraft replaces the lines of a draft invoice and recomputes its totals.
func (uc *InvoiceUseCase) SaveDraft(ctx context.Context, invoiceID string, in dto.SaveInvoiceRequest) (*dto.InvoiceResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	items := make([]entity.InvoiceItem, 0, len(in.Items))
	for _, it := range in.Items {
		if it.Quantity.LessThan(decimal.Zero) {
			return nil, domain.Validation("Quantity must be non-negative for %s", it.Identifier)
		}
		if it.Price != nil && it.Price.LessThan(decimal.Zero) {
			return nil, domain.Validation("Price must be non-negative for %s", it.Identifier)
		}
		items = append(items, toInvoiceItem(it))
	}

	var out *dto.InvoiceResponse
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		inv, err := r.Invoices.GetForUpdate(ctx, invoiceID)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.NotFound("Invoice %s not found", invoiceID)
		}
		if inv.Status != entity.InvoiceStatusDraft {
			return domain.Conflict("Cannot modify invoice %s: it is %s", invoiceID, inv.Status)
		}
		if err := r.Invoices.ReplaceItems(ctx, invoiceID, items); err != nil {
			return err
		}
		inv.Items = items
		uc.applyTotals(inv)
		if err := r.Invoices.Update(ctx, inv); err != nil {
			return err
		}
		out = toInvoiceResponse(inv)
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("invoice_id", invoiceID).Int("items", len(items)).Msg("invoice draft saved")
	return out, nil
}

// PostInvoice validates every line up front, then debits finished goods,
// ships the listed kegs to the customer and marks the invoice Posted, all in
// one transaction.
func (uc *InvoiceUseCase) PostInvoice(ctx context.Context, invoiceID string) (*dto.InvoiceResponse, error) {
	var out *dto.InvoiceResponse
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		inv, err := r.Invoices.GetForUpdate(ctx, invoiceID)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.NotFound("Invoice %s not found", invoiceID)
		}
		if inv.Status != entity.InvoiceStatusDraft {
			return domain.Conflict("Invoice %s is already %s", invoiceID, inv.Status)
		}
		if len(inv.Items) == 0 {
			return domain.Validation("Invoice %s has no items", invoiceID)
		}
		if err := checkPostable(inv.Items); err != nil {
			return err
		}
		customer, err := r.Customers.GetByID(ctx, inv.CustomerID)
		if err != nil {
			return err
		}
		if customer == nil {
			return domain.NotFound("Customer %s not found", inv.CustomerID)
		}

		now := uc.now()
		for _, it := range inv.Items {
			if it.IsKegDepositItem {
				continue
			}
			if err := inventory.DebitAny(ctx, r.Inventory, it.Identifier, inv.SiteID, it.Quantity); err != nil {
				return err
			}
			for _, code := range it.KegCodes {
				if err := keg.Ship(ctx, r.Kegs, code, keg.ShipInput{
					InvoiceID:    invoiceID,
					CustomerID:   customer.ID,
					CustomerName: customer.Name,
					Date:         now,
				}); err != nil {
					return err
				}
			}
		}

		uc.applyTotals(inv)
		inv.Status = entity.InvoiceStatusPosted
		inv.PostedDate = &now
		if err := r.Invoices.Update(ctx, inv); err != nil {
			return err
		}
		out = toInvoiceResponse(inv)
		return nil
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("invoice_id", invoiceID).Msg("invoice posting rejected")
		return nil, err
	}
	uc.log.Info().Str("invoice_id", invoiceID).Str("total", out.Total.String()).Msg("invoice posted")
	return out, nil
}

// checkPostable rejects the whole posting before anything is written.
func checkPostable(items []entity.InvoiceItem) error {
	for _, it := range items {
		if it.IsKegDepositItem {
			continue
		}
		if it.Price == nil || it.Price.LessThan(decimal.Zero) {
			return domain.Validation("Item %s does not have a valid price", it.Identifier)
		}
		if !it.Quantity.GreaterThan(decimal.Zero) {
			return domain.Validation("Item %s must have a quantity greater than 0", it.Identifier)
		}
		if it.HasKegDeposit && !decimal.NewFromInt(int64(len(it.KegCodes))).Equal(it.Quantity) {
			return domain.Validation("Item %s requires exactly %s keg codes, got %d",
				it.Identifier, it.Quantity.String(), len(it.KegCodes))
		}
		if len(it.KegCodes) > 0 && !it.HasKegDeposit {
			return domain.Validation("Item %s lists keg codes but carries no keg deposit", it.Identifier)
		}
		for _, code := range it.KegCodes {
			if !packaging.ValidKegCode(code) {
				return domain.Validation("Invalid keg code %s on item %s", code, it.Identifier)
			}
		}
	}
	return nil
}

// applyTotals recomputes subtotal, deposit total and total. Keg deposit item
// lines are settled through the deposit total and do not add to the subtotal.
func (uc *InvoiceUseCase) applyTotals(inv *entity.Invoice) {
	subtotal := decimal.Zero
	deposits := decimal.Zero
	for _, it := range inv.Items {
		if it.IsKegDepositItem {
			continue
		}
		if it.Price != nil {
			subtotal = subtotal.Add(it.Price.Mul(it.Quantity))
		}
		if it.HasKegDeposit {
			deposits = deposits.Add(it.Quantity.Mul(uc.kegDepositPrice))
		}
	}
	inv.Subtotal = subtotal
	inv.KegDepositTotal = deposits
	inv.Total = subtotal.Add(deposits)
}

func toInvoiceItem(it dto.InvoiceItemRequest) entity.InvoiceItem {
	return entity.InvoiceItem{
		Identifier:       it.Identifier,
		Description:      it.Description,
		Quantity:         it.Quantity,
		Unit:             it.Unit,
		Price:            it.Price,
		HasKegDeposit:    it.HasKegDeposit,
		IsKegDepositItem: it.IsKegDepositItem,
		KegCodes:         it.KegCodes,
	}
}

func toInvoiceResponse(inv *entity.Invoice) *dto.InvoiceResponse {
	items := make([]dto.InvoiceItemRequest, 0, len(inv.Items))
	for _, it := range inv.Items {
		items = append(items, dto.InvoiceItemRequest{
			Identifier:       it.Identifier,
			Description:      it.Description,
			Quantity:         it.Quantity,
			Unit:             it.Unit,
			Price:            it.Price,
			HasKegDeposit:    it.HasKegDeposit,
			IsKegDepositItem: it.IsKegDepositItem,
			KegCodes:         it.KegCodes,
		})
	}
	return &dto.InvoiceResponse{
		InvoiceID:       inv.ID,
		CustomerID:      inv.CustomerID,
		SiteID:          inv.SiteID,
		Status:          inv.Status,
		Subtotal:        inv.Subtotal,
		KegDepositTotal: inv.KegDepositTotal,
		Total:           inv.Total,
		PostedDate:      inv.PostedDate,
		Items:           items,
	}
}
