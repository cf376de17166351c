package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/brewery-api/internal/domain"
	"github.com/jhoicas/brewery-api/internal/domain/entity"
	domaininv "github.com/jhoicas/brewery-api/internal/domain/inventory"
	"github.com/jhoicas/brewery-api/internal/domain/repository"
)

// The helpers in this file run inside the caller's transaction: they receive
// the repository bound to it and never commit on their own.

// Availability locks the Stored rows of identifier at siteID whose unit
// matches unit after normalization, and returns their total quantity.
func Availability(ctx context.Context, inv repository.InventoryRepository, identifier, siteID, unit string) (decimal.Decimal, []*entity.InventoryItem, error) {
	rows, err := inv.Find(ctx, repository.InventoryFilter{
		Identifier: identifier,
		SiteID:     siteID,
		Status:     entity.InventoryStatusStored,
		ForUpdate:  true,
	})
	if err != nil {
		return decimal.Zero, nil, err
	}
	total := decimal.Zero
	matching := make([]*entity.InventoryItem, 0, len(rows))
	for _, row := range rows {
		if !domaininv.SameUnit(row.Unit, unit) {
			continue
		}
		total = total.Add(row.Quantity)
		matching = append(matching, row)
	}
	return total, matching, nil
}

// ShortfallError formats the insufficient inventory message shared by batch
// creation and ingredient additions.
func ShortfallError(item string, available, needed decimal.Decimal, unit string) error {
	u := domaininv.NormalizeUnit(unit)
	return domain.Insufficient("Insufficient inventory for %s: %s%s available, %s%s needed",
		item, available.String(), u, needed.String(), u)
}

// Debit removes needed (in unit) of identifier from the Stored rows at siteID,
// oldest rows first. Every row is decremented with a conditional update, so a
// concurrent writer can never drive a row below zero.
func Debit(ctx context.Context, inv repository.InventoryRepository, identifier, siteID string, needed decimal.Decimal, unit string) error {
	available, rows, err := Availability(ctx, inv, identifier, siteID, unit)
	if err != nil {
		return err
	}
	if available.LessThan(needed) {
		return ShortfallError(identifier, available, needed, unit)
	}
	return drain(ctx, inv, identifier, rows, needed)
}

// DebitAny removes qty of identifier from every status and unit at siteID
// (all sites when siteID is empty). Used for finished goods on invoices.
func DebitAny(ctx context.Context, inv repository.InventoryRepository, identifier, siteID string, qty decimal.Decimal) error {
	rows, err := inv.Find(ctx, repository.InventoryFilter{Identifier: identifier, SiteID: siteID, ForUpdate: true})
	if err != nil {
		return err
	}
	available := decimal.Zero
	for _, row := range rows {
		available = available.Add(row.Quantity)
	}
	if available.LessThan(qty) {
		return domain.Insufficient("Insufficient inventory for %s: %s available, %s requested",
			identifier, available.String(), qty.String())
	}
	return drain(ctx, inv, identifier, rows, qty)
}

func drain(ctx context.Context, inv repository.InventoryRepository, identifier string, rows []*entity.InventoryItem, qty decimal.Decimal) error {
	remaining := qty
	for _, row := range rows {
		if !remaining.GreaterThan(decimal.Zero) {
			break
		}
		take := decimal.Min(row.Quantity, remaining)
		if !take.GreaterThan(decimal.Zero) {
			continue
		}
		ok, err := inv.Decrement(ctx, row.ID, take)
		if err != nil {
			return err
		}
		if !ok {
			return domain.Insufficient("Insufficient inventory for %s: stock changed during the operation", identifier)
		}
		remaining = remaining.Sub(take)
	}
	if remaining.GreaterThan(decimal.Zero) {
		return domain.Insufficient("Insufficient inventory for %s: %s still needed", identifier, remaining.String())
	}
	return nil
}

// CreditInput describes finished goods entering inventory.
type CreditInput struct {
	Identifier       string
	Type             string
	Account          string
	SiteID           string
	LocationID       string
	Quantity         decimal.Decimal
	Unit             string
	Price            decimal.Decimal
	IsKegDepositItem bool
	Date             time.Time
}

// Credit adds quantity to the row matching identifier+type+account+site+location,
// overwriting its price and deposit flag, or inserts a new Stored row.
func Credit(ctx context.Context, inv repository.InventoryRepository, in CreditInput) (*entity.InventoryItem, error) {
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
		return nil, err
	}
	if len(rows) > 0 {
		row := rows[0]
		row.Quantity = row.Quantity.Add(in.Quantity)
		row.Price = in.Price
		row.IsKegDepositItem = in.IsKegDepositItem
		row.UpdatedAt = in.Date
		if err := inv.Update(ctx, row); err != nil {
			return nil, err
		}
		return row, nil
	}
	unit := in.Unit
	if unit == "" {
		unit = "Units"
	}
	row := &entity.InventoryItem{
		ID:               uuid.New().String(),
		Identifier:       in.Identifier,
		ItemName:         in.Identifier,
		Type:             in.Type,
		Account:          in.Account,
		SiteID:           in.SiteID,
		LocationID:       in.LocationID,
		Quantity:         in.Quantity,
		Unit:             unit,
		Price:            in.Price,
		Status:           entity.InventoryStatusStored,
		ReceivedDate:     in.Date,
		IsKegDepositItem: in.IsKegDepositItem,
		UpdatedAt:        in.Date,
	}
	if err := inv.Create(ctx, row); err != nil {
		return nil, err
	}
	return row, nil
}

// Adjust changes the finished goods row at (identifier, site, location) by delta
// units. A negative delta that would leave the row below zero is rejected; a row
// drained to exactly zero is deleted when deleteAtZero is set.
func Adjust(ctx context.Context, inv repository.InventoryRepository, identifier, siteID, locationID string, delta decimal.Decimal, deleteAtZero bool) error {
	rows, err := inv.Find(ctx, repository.InventoryFilter{
		Identifier: identifier,
		Type:       entity.InventoryTypeFinishedGoods,
		SiteID:     siteID,
		LocationID: locationID,
		ForUpdate:  true,
	})
	if err != nil {
		return err
	}
	current := decimal.Zero
	var row *entity.InventoryItem
	if len(rows) > 0 {
		row = rows[0]
		current = row.Quantity
	}
	next := current.Add(delta)
	if next.LessThan(decimal.Zero) {
		return domain.Insufficient("Insufficient inventory for %s: %s available, cannot remove %s",
			identifier, current.String(), delta.Neg().String())
	}
	if row == nil {
		if delta.IsZero() {
			return nil
		}
		return domain.NotFound("Inventory for %s not found", identifier)
	}
	if next.IsZero() && deleteAtZero {
		return inv.Delete(ctx, row.ID)
	}
	if delta.LessThan(decimal.Zero) {
		ok, err := inv.Decrement(ctx, row.ID, delta.Neg())
		if err != nil {
			return err
		}
		if !ok {
			return domain.Insufficient("Insufficient inventory for %s: stock changed during the operation", identifier)
		}
		return nil
	}
	row.Quantity = next
	return inv.Update(ctx, row)
}
