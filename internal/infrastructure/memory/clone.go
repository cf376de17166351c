package memory

import (
	"time"

	"github.com/jhoicas/brewery-api/internal/domain/entity"
)

// Entities leave and enter the maps as deep copies so callers never alias
// committed state.

func cloneInventory(it entity.InventoryItem) entity.InventoryItem {
	it.Proof = cloneDecimal(it.Proof)
	it.ProofGallons = cloneDecimal(it.ProofGallons)
	return it
}

func cloneBatch(b entity.Batch) entity.Batch {
	b.Volume = cloneDecimal(b.Volume)
	if b.AdditionalIngredients != nil {
		ings := make([]entity.BatchIngredient, len(b.AdditionalIngredients))
		for i, ing := range b.AdditionalIngredients {
			ing.Quantity = cloneDecimal(ing.Quantity)
			ing.Proof = cloneDecimal(ing.Proof)
			ing.ProofGallons = cloneDecimal(ing.ProofGallons)
			ings[i] = ing
		}
		b.AdditionalIngredients = ings
	}
	return b
}

func clonePackaging(p entity.BatchPackaging) entity.BatchPackaging {
	p.KegCodes = append([]string(nil), p.KegCodes...)
	return p
}

func cloneRecipe(r entity.Recipe) entity.Recipe {
	r.Ingredients = append([]entity.RecipeIngredient(nil), r.Ingredients...)
	return r
}

func cloneKeg(k entity.Keg) entity.Keg {
	k.LastScanned = cloneTime(k.LastScanned)
	return k
}

func cloneInvoice(inv entity.Invoice) entity.Invoice {
	inv.PostedDate = cloneTime(inv.PostedDate)
	inv.Items = cloneInvoiceItems(inv.Items)
	return inv
}

func cloneInvoiceItems(items []entity.InvoiceItem) []entity.InvoiceItem {
	if items == nil {
		return nil
	}
	out := make([]entity.InvoiceItem, len(items))
	for i, it := range items {
		it.Price = cloneDecimal(it.Price)
		it.KegCodes = append([]string(nil), it.KegCodes...)
		out[i] = it
	}
	return out
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
