package memory

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/brewery-api/internal/domain/entity"
)

// Seed writes rows the ports cannot create (catalog, opening stock, draft
// invoices). It commits immediately.
func (s *Store) Seed(fn func(sd *Seeder)) {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	work := s.committed().clone()
	fn(&Seeder{st: work})

	s.stateMu.Lock()
	s.state = work
	s.stateMu.Unlock()
}

// Seeder writes into the state of a Seed call.
type Seeder struct {
	st *state
}

func (sd *Seeder) Item(it entity.Item)               { sd.st.items[it.Name] = it }
func (sd *Seeder) Product(p entity.Product)          { sd.st.products[p.ID] = p }
func (sd *Seeder) Location(l entity.Location)        { sd.st.locations[l.ID] = l }
func (sd *Seeder) Equipment(e entity.Equipment)      { sd.st.equipment[e.ID] = e }
func (sd *Seeder) Customer(c entity.Customer)        { sd.st.customers[c.ID] = c }
func (sd *Seeder) Recipe(r entity.Recipe)            { sd.st.recipes[r.ID] = cloneRecipe(r) }
func (sd *Seeder) Keg(k entity.Keg)                  { sd.st.kegs[k.Code] = cloneKeg(k) }
func (sd *Seeder) Invoice(inv entity.Invoice)        { sd.st.invoices[inv.ID] = cloneInvoice(inv) }
func (sd *Seeder) Inventory(it entity.InventoryItem) { sd.st.inventory[it.ID] = cloneInventory(it) }

func (sd *Seeder) PackageType(pt entity.ProductPackageType) {
	sd.st.packageTypes[packageTypeKey(pt.ProductID, pt.PackageType)] = pt
}

// SeedDemo loads a small brewery: one site, a Pale Ale recipe with stock for
// a few batches, kegs, a customer and a draft invoice.
func SeedDemo(s *Store, now time.Time) {
	dec := decimal.RequireFromString
	s.Seed(func(sd *Seeder) {
		sd.Location(entity.Location{ID: "LOC-COLD", SiteID: "SITE-1", Name: "Cold Room"})
		sd.Location(entity.Location{ID: "LOC-DRY", SiteID: "SITE-1", Name: "Dry Storage"})
		sd.Equipment(entity.Equipment{ID: "FV-1", SiteID: "SITE-1", Name: "Fermenter 1"})
		sd.Equipment(entity.Equipment{ID: "BT-1", SiteID: "SITE-1", Name: "Brite Tank 1"})
		sd.Customer(entity.Customer{ID: "CUST-1", Name: "Corner Tap House"})

		sd.Product(entity.Product{ID: "PALE-ALE", Name: "Pale Ale"})
		for _, pt := range []entity.ProductPackageType{
			{ProductID: "PALE-ALE", PackageType: "12oz Can", Price: dec("1.50")},
			{ProductID: "PALE-ALE", PackageType: "1/2 Keg", Price: dec("150.00")},
			{ProductID: "PALE-ALE", PackageType: "1/6 Keg", Price: dec("65.00")},
		} {
			sd.PackageType(pt)
			sd.Item(entity.Item{Name: "Pale Ale " + pt.PackageType, Type: entity.InventoryTypeFinishedGoods, Enabled: true})
		}

		sd.Recipe(entity.Recipe{
			ID: "PALE-ALE-STD", Name: "Pale Ale", ProductID: "PALE-ALE", Quantity: dec("5"), Unit: "barrels",
			Ingredients: []entity.RecipeIngredient{
				{ItemName: "Pale Malt", Quantity: dec("50"), Unit: "lbs"},
				{ItemName: "Cascade Hops", Quantity: dec("2"), Unit: "lbs"},
				{ItemName: "US-05 Yeast", Quantity: dec("1"), Unit: "pkg"},
			},
		})

		opening := []struct {
			name, unit, qty, cost, loc string
		}{
			{"Pale Malt", "lbs", "500", "0.80", "LOC-DRY"},
			{"Cascade Hops", "lbs", "20", "12.00", "LOC-COLD"},
			{"US-05 Yeast", "pkg", "10", "4.50", "LOC-COLD"},
		}
		for i, o := range opening {
			sd.Item(entity.Item{Name: o.name, Type: "Ingredient", Enabled: true})
			qty, cost := dec(o.qty), dec(o.cost)
			sd.Inventory(entity.InventoryItem{
				ID:           "SEED-" + o.name,
				Identifier:   o.name,
				ItemName:     o.name,
				Type:         "Ingredient",
				SiteID:       "SITE-1",
				LocationID:   o.loc,
				Quantity:     qty,
				Unit:         o.unit,
				Cost:         cost,
				TotalCost:    qty.Mul(cost),
				Status:       entity.InventoryStatusStored,
				ReceivedDate: now.Add(time.Duration(i) * time.Second),
				UpdatedAt:    now,
			})
		}

		for _, code := range []string{"K-0001", "K-0002", "K-0003", "K-0004"} {
			sd.Keg(entity.Keg{Code: code, Status: entity.KegStatusEmpty, PackagingType: "1/2 Keg"})
		}

		price := dec("150.00")
		sd.Invoice(entity.Invoice{
			ID:          "INV-1001",
			CustomerID:  "CUST-1",
			SiteID:      "SITE-1",
			Status:      entity.InvoiceStatusDraft,
			CreatedDate: now,
			Items: []entity.InvoiceItem{
				{Identifier: "Pale Ale 1/2 Keg", Description: "Pale Ale 1/2 Keg", Quantity: dec("2"), Unit: "Units", Price: &price, HasKegDeposit: true},
			},
		})
	})
}
