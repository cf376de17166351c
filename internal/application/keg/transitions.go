package keg

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/brewery-api/internal/domain"
	"github.com/jhoicas/brewery-api/internal/domain/entity"
	"github.com/jhoicas/brewery-api/internal/domain/repository"
)

// Transitions below run inside the caller's transaction. Each successful one
// appends exactly one KegTransaction; a rejected one appends nothing.

// FillInput binds a keg to the product and batch it is filled with.
type FillInput struct {
	ProductID     string
	BatchID       string
	LocationID    string
	PackagingType string
	Date          time.Time
}

// Fill moves an Empty keg to Filled and clears any customer.
func Fill(ctx context.Context, kegs repository.KegRepository, code string, in FillInput) error {
	k, err := lock(ctx, kegs, code)
	if err != nil {
		return err
	}
	if k.Status != entity.KegStatusEmpty {
		return domain.Conflict("Keg %s is not empty (status: %s)", code, k.Status)
	}
	date := in.Date
	k.Status = entity.KegStatusFilled
	k.ProductID = in.ProductID
	k.LocationID = in.LocationID
	k.CustomerID = ""
	k.PackagingType = in.PackagingType
	k.LastScanned = &date
	if err := kegs.Update(ctx, k); err != nil {
		return err
	}
	return kegs.AppendTransaction(ctx, &entity.KegTransaction{
		ID:        uuid.New().String(),
		KegCode:   code,
		Action:    entity.KegActionFilled,
		ProductID: in.ProductID,
		BatchID:   in.BatchID,
		Date:      date,
		Location:  in.LocationID,
	})
}

// ShipInput hands a filled keg over to a customer on an invoice.
type ShipInput struct {
	InvoiceID    string
	CustomerID   string
	CustomerName string
	Date         time.Time
}

// Ship keeps the keg Filled but moves it to the customer, clearing its location.
func Ship(ctx context.Context, kegs repository.KegRepository, code string, in ShipInput) error {
	k, err := lock(ctx, kegs, code)
	if err != nil {
		return err
	}
	if k.Status != entity.KegStatusFilled {
		return domain.Conflict("Keg %s is not filled (status: %s)", code, k.Status)
	}
	if k.CustomerID != "" {
		return domain.Conflict("Keg %s is already held by customer %s", code, k.CustomerID)
	}
	date := in.Date
	k.CustomerID = in.CustomerID
	k.LocationID = ""
	k.LastScanned = &date
	if err := kegs.Update(ctx, k); err != nil {
		return err
	}
	where := in.CustomerName
	if where == "" {
		where = in.CustomerID
	}
	return kegs.AppendTransaction(ctx, &entity.KegTransaction{
		ID:        uuid.New().String(),
		KegCode:   code,
		Action:    entity.KegActionShipped,
		ProductID: k.ProductID,
		InvoiceID: in.InvoiceID,
		Date:      date,
		Location:  where,
	})
}

// Empty returns a keg filled by batchID to Empty when it is still in house.
// Kegs already at a customer or in any other state are left alone; the
// result reports whether the keg changed.
func Empty(ctx context.Context, kegs repository.KegRepository, code, batchID string, date time.Time) (bool, error) {
	k, err := lock(ctx, kegs, code)
	if err != nil {
		return false, err
	}
	if k.Status != entity.KegStatusFilled || k.CustomerID != "" {
		return false, nil
	}
	productID := k.ProductID
	k.Status = entity.KegStatusEmpty
	k.ProductID = ""
	k.LastScanned = &date
	if err := kegs.Update(ctx, k); err != nil {
		return false, err
	}
	return true, kegs.AppendTransaction(ctx, &entity.KegTransaction{
		ID:        uuid.New().String(),
		KegCode:   code,
		Action:    entity.KegActionEmptied,
		ProductID: productID,
		BatchID:   batchID,
		Date:      date,
		Location:  k.LocationID,
	})
}

func lock(ctx context.Context, kegs repository.KegRepository, code string) (*entity.Keg, error) {
	k, err := kegs.GetForUpdate(ctx, code)
	if err != nil {
		return nil, err
	}
	if k == nil {
		return nil, domain.NotFound("Keg %s not found", code)
	}
	return k, nil
}
