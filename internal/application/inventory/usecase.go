package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/brewery-api/internal/application/dto"
	"github.com/jhoicas/brewery-api/internal/application/ports"
	"github.com/jhoicas/brewery-api/internal/domain"
	"github.com/jhoicas/brewery-api/internal/domain/entity"
	domaininv "github.com/jhoicas/brewery-api/internal/domain/inventory"
	"github.com/jhoicas/brewery-api/internal/domain/repository"
)

var (
	maxProof      = decimal.NewFromInt(200)
	spiritAccount = map[string]bool{
		entity.AccountStorage:    true,
		entity.AccountProcessing: true,
		entity.AccountProduction: true,
	}
)

// LedgerUseCase receives stock and records losses. Every call is one transaction.
type LedgerUseCase struct {
	txRunner ports.TxRunner
	repos    repository.Repos
	log      zerolog.Logger
	now      func() time.Time
}

// NewLedgerUseCase builds the use case. repos is bound to the pool and used for reads.
func NewLedgerUseCase(txRunner ports.TxRunner, repos repository.Repos, log zerolog.Logger) *LedgerUseCase {
	return &LedgerUseCase{txRunner: txRunner, repos: repos, log: log, now: time.Now}
}

type receipt struct {
	in   dto.ReceiveItemRequest
	date time.Time
}

// Receive validates every record and then applies all of them in a single
// transaction. The first failure (validation or persistence) rejects the whole call.
func (uc *LedgerUseCase) Receive(ctx context.Context, userID string, items []dto.ReceiveItemRequest) error {
	if len(items) == 0 {
		return domain.Validation("No inventory items provided")
	}
	receipts := make([]receipt, 0, len(items))
	for _, in := range items {
		date, err := uc.validateReceipt(ctx, in)
		if err != nil {
			return err
		}
		receipts = append(receipts, receipt{in: in, date: date})
	}

	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		for _, rc := range receipts {
			if err := uc.applyReceipt(ctx, r.Inventory, rc); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		uc.log.Warn().Err(err).Int("records", len(items)).Msg("inventory receive rejected")
		return err
	}
	uc.log.Info().Int("records", len(items)).Str("user_id", userID).Msg("inventory received")
	return nil
}

func (uc *LedgerUseCase) validateReceipt(ctx context.Context, in dto.ReceiveItemRequest) (time.Time, error) {
	if err := dto.Validate(in); err != nil {
		return time.Time{}, err
	}
	switch in.Type {
	case entity.InventoryTypeSpirits:
		if !spiritAccount[in.Account] {
			return time.Time{}, domain.Validation("Spirits require account Storage, Processing or Production")
		}
		if in.Proof == nil {
			return time.Time{}, domain.Validation("Spirits require proof")
		}
	case entity.InventoryTypeOther:
		if in.Description == "" {
			return time.Time{}, domain.Validation("Description is required for type Other")
		}
	}
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return time.Time{}, domain.Validation("Quantity must be greater than 0 for %s", in.Identifier)
	}
	if in.Proof != nil && (in.Proof.LessThan(decimal.Zero) || in.Proof.GreaterThan(maxProof)) {
		return time.Time{}, domain.Validation("Proof must be between 0 and 200 for %s", in.Identifier)
	}
	if in.Cost != nil && in.Cost.LessThan(decimal.Zero) {
		return time.Time{}, domain.Validation("Cost must be non-negative for %s", in.Identifier)
	}
	date, err := dto.ParseDate(in.ReceivedDate)
	if err != nil {
		return time.Time{}, domain.Validation("Invalid receivedDate for %s", in.Identifier)
	}
	loc, err := uc.repos.Sites.GetLocation(ctx, in.LocationID)
	if err != nil {
		return time.Time{}, err
	}
	if loc == nil || loc.SiteID != in.SiteID {
		return time.Time{}, domain.Validation("Location %s does not belong to site %s", in.LocationID, in.SiteID)
	}
	return date, nil
}

func (uc *LedgerUseCase) applyReceipt(ctx context.Context, inv repository.InventoryRepository, rc receipt) error {
	in := rc.in
	cost := decimal.Zero
	if in.Cost != nil {
		cost = *in.Cost
	}
	qty := *in.Quantity
	account := in.Account
	rows, err := inv.Find(ctx, repository.InventoryFilter{
		Identifier: in.Identifier,
		Type:       in.Type,
		Account:    &account,
		SiteID:     in.SiteID,
		LocationID: in.LocationID,
		ForUpdate:  true,
	})
	if err != nil {
		return err
	}
	now := uc.now()

	if len(rows) > 0 {
		row := rows[0]
		row.Cost = domaininv.CostCalculator(row.Quantity, row.TotalCost, qty, cost)
		row.TotalCost = row.TotalCost.Add(qty.Mul(cost))
		row.Quantity = row.Quantity.Add(qty)
		if in.Proof != nil {
			row.Proof = in.Proof
		}
		row.ProofGallons = domaininv.ProofGallons(row.Quantity, row.Unit, row.Proof)
		if in.Price != nil {
			row.Price = *in.Price
		}
		row.UpdatedAt = now
		return inv.Update(ctx, row)
	}

	price := decimal.Zero
	if in.Price != nil {
		price = *in.Price
	}
	return inv.Create(ctx, &entity.InventoryItem{
		ID:               uuid.New().String(),
		Identifier:       in.Identifier,
		ItemName:         in.Item,
		Description:      in.Description,
		Type:             in.Type,
		Account:          in.Account,
		SiteID:           in.SiteID,
		LocationID:       in.LocationID,
		Quantity:         qty,
		Unit:             in.Unit,
		Proof:            in.Proof,
		ProofGallons:     domaininv.ProofGallons(qty, in.Unit, in.Proof),
		Cost:             cost,
		TotalCost:        qty.Mul(cost),
		Price:            price,
		Status:           in.Status,
		PONumber:         in.PONumber,
		LotNumber:        in.LotNumber,
		Source:           in.Source,
		ReceivedDate:     rc.date,
		IsKegDepositItem: in.IsKegDepositItem,
		UpdatedAt:        now,
	})
}

// RecordLoss writes off quantity of an inventory item and appends the audit row.
// It is deliberately not idempotent: every call decrements again.
func (uc *LedgerUseCase) RecordLoss(ctx context.Context, userID string, in dto.RecordLossRequest) (*entity.InventoryLoss, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if !in.QuantityLost.GreaterThan(decimal.Zero) {
		return nil, domain.Validation("Quantity lost must be greater than 0")
	}
	date := uc.now()
	if in.Date != "" {
		d, err := dto.ParseDate(in.Date)
		if err != nil {
			return nil, domain.Validation("Invalid date")
		}
		date = d
	}
	qty := *in.QuantityLost

	loss := &entity.InventoryLoss{
		ID:           uuid.New().String(),
		Identifier:   in.Identifier,
		QuantityLost: qty,
		Reason:       in.Reason,
		Date:         date,
		SiteID:       in.SiteID,
		LocationID:   in.LocationID,
		UserID:       userID,
	}
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		rows, err := r.Inventory.Find(ctx, repository.InventoryFilter{
			Identifier: in.Identifier,
			SiteID:     in.SiteID,
			LocationID: in.LocationID,
			ForUpdate:  true,
		})
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			return domain.NotFound("Inventory item %s not found", in.Identifier)
		}
		current := decimal.Zero
		for _, row := range rows {
			current = current.Add(row.Quantity)
		}
		if qty.GreaterThan(current) {
			return domain.Insufficient("Quantity lost (%s) exceeds available quantity (%s) for %s",
				qty.String(), current.String(), in.Identifier)
		}
		if err := drain(ctx, r.Inventory, in.Identifier, rows, qty); err != nil {
			return err
		}
		return r.Inventory.CreateLoss(ctx, loss)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("identifier", in.Identifier).
		Str("quantity_lost", qty.String()).
		Str("user_id", userID).
		Msg("inventory loss recorded")
	return loss, nil
}

// List returns every inventory row of identifier.
func (uc *LedgerUseCase) List(ctx context.Context, identifier string) ([]*entity.InventoryItem, error) {
	return uc.repos.Inventory.Find(ctx, repository.InventoryFilter{Identifier: identifier})
}

// Losses returns the loss audit trail of identifier (inventory item or batch id).
func (uc *LedgerUseCase) Losses(ctx context.Context, identifier string) ([]*entity.InventoryLoss, error) {
	return uc.repos.Inventory.ListLosses(ctx, identifier)
}
