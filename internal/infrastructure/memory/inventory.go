package memory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/brewery-api/internal/domain"
	"github.com/jhoicas/brewery-api/internal/domain/entity"
	"github.com/jhoicas/brewery-api/internal/domain/repository"
)

var _ repository.InventoryRepository = (*inventoryRepo)(nil)

type inventoryRepo struct {
	st func() *state
}

func (r *inventoryRepo) Find(_ context.Context, f repository.InventoryFilter) ([]*entity.InventoryItem, error) {
	var out []*entity.InventoryItem
	for _, it := range r.st().inventory {
		if !matches(it, f) {
			continue
		}
		c := cloneInventory(it)
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].ReceivedDate.Equal(out[j].ReceivedDate) {
			return out[i].ReceivedDate.Before(out[j].ReceivedDate)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func matches(it entity.InventoryItem, f repository.InventoryFilter) bool {
	switch {
	case it.Identifier != f.Identifier:
		return false
	case f.Type != "" && it.Type != f.Type:
		return false
	case f.Account != nil && it.Account != *f.Account:
		return false
	case f.SiteID != "" && it.SiteID != f.SiteID:
		return false
	case f.LocationID != "" && it.LocationID != f.LocationID:
		return false
	case f.Status != "" && it.Status != f.Status:
		return false
	}
	return true
}

func (r *inventoryRepo) Create(_ context.Context, it *entity.InventoryItem) error {
	st := r.st()
	for _, ex := range st.inventory {
		if ex.Identifier == it.Identifier && ex.Type == it.Type && ex.Account == it.Account &&
			ex.SiteID == it.SiteID && ex.LocationID == it.LocationID {
			return domain.Duplicate("Inventory record %s already exists at %s/%s", it.Identifier, it.SiteID, it.LocationID)
		}
	}
	st.inventory[it.ID] = cloneInventory(*it)
	return nil
}

func (r *inventoryRepo) Update(_ context.Context, it *entity.InventoryItem) error {
	st := r.st()
	if _, ok := st.inventory[it.ID]; !ok {
		return domain.NotFound("Inventory record %s not found", it.ID)
	}
	st.inventory[it.ID] = cloneInventory(*it)
	return nil
}

// Decrement mirrors the conditional update of the SQL adapter.
func (r *inventoryRepo) Decrement(_ context.Context, id string, qty decimal.Decimal) (bool, error) {
	st := r.st()
	it, ok := st.inventory[id]
	if !ok || it.Quantity.LessThan(qty) {
		return false, nil
	}
	remaining := it.Quantity.Sub(qty)
	it.TotalCost = decimal.Max(it.TotalCost.Sub(it.Cost.Mul(qty)), decimal.Zero)
	if it.ProofGallons != nil && !it.Quantity.IsZero() {
		pg := it.ProofGallons.Mul(remaining).Div(it.Quantity)
		it.ProofGallons = &pg
	}
	it.Quantity = remaining
	st.inventory[id] = cloneInventory(it)
	return true, nil
}

func (r *inventoryRepo) Delete(_ context.Context, id string) error {
	delete(r.st().inventory, id)
	return nil
}

func (r *inventoryRepo) CreateLoss(_ context.Context, l *entity.InventoryLoss) error {
	st := r.st()
	st.losses = append(st.losses, *l)
	return nil
}

func (r *inventoryRepo) ListLosses(_ context.Context, identifier string) ([]*entity.InventoryLoss, error) {
	var out []*entity.InventoryLoss
	for _, l := range r.st().losses {
		if l.Identifier == identifier {
			c := l
			out = append(out, &c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}
