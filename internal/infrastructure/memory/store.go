// Package memory is a transactional in-memory adapter for every repository
// port. Each transaction works on a copy of the state which replaces the
// committed state only when the callback succeeds.
package memory

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/brewery-api/internal/application/ports"
	"github.com/jhoicas/brewery-api/internal/domain/entity"
	"github.com/jhoicas/brewery-api/internal/domain/repository"
)

var _ ports.TxRunner = (*Store)(nil)

type state struct {
	inventory    map[string]entity.InventoryItem
	losses       []entity.InventoryLoss
	items        map[string]entity.Item
	products     map[string]entity.Product
	packageTypes map[string]entity.ProductPackageType // productID + "|" + package type
	recipes      map[string]entity.Recipe
	locations    map[string]entity.Location
	equipment    map[string]entity.Equipment
	customers    map[string]entity.Customer
	batches      map[string]entity.Batch
	batchLog     []entity.BatchLogEntry
	packaging    map[string]entity.BatchPackaging
	kegs         map[string]entity.Keg
	kegLog       []entity.KegTransaction
	invoices     map[string]entity.Invoice
}

func newState() *state {
	return &state{
		inventory:    map[string]entity.InventoryItem{},
		items:        map[string]entity.Item{},
		products:     map[string]entity.Product{},
		packageTypes: map[string]entity.ProductPackageType{},
		recipes:      map[string]entity.Recipe{},
		locations:    map[string]entity.Location{},
		equipment:    map[string]entity.Equipment{},
		customers:    map[string]entity.Customer{},
		batches:      map[string]entity.Batch{},
		packaging:    map[string]entity.BatchPackaging{},
		kegs:         map[string]entity.Keg{},
		invoices:     map[string]entity.Invoice{},
	}
}

// clone copies every table. Entities are cloned on the way in and out of
// the maps, so a shallow copy of each map is enough here.
func (s *state) clone() *state {
	return &state{
		inventory:    copyMap(s.inventory),
		losses:       append([]entity.InventoryLoss(nil), s.losses...),
		items:        copyMap(s.items),
		products:     copyMap(s.products),
		packageTypes: copyMap(s.packageTypes),
		recipes:      copyMap(s.recipes),
		locations:    copyMap(s.locations),
		equipment:    copyMap(s.equipment),
		customers:    copyMap(s.customers),
		batches:      copyMap(s.batches),
		batchLog:     append([]entity.BatchLogEntry(nil), s.batchLog...),
		packaging:    copyMap(s.packaging),
		kegs:         copyMap(s.kegs),
		kegLog:       append([]entity.KegTransaction(nil), s.kegLog...),
		invoices:     copyMap(s.invoices),
	}
}

func copyMap[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Store holds the committed state. Transactions are serialized; reads
// outside a transaction see the last committed state.
type Store struct {
	txMu    sync.Mutex
	stateMu sync.RWMutex
	state   *state
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{state: newState()}
}

func (s *Store) committed() *state {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.state
}

// Run calls fn with repositories bound to a private copy of the state and
// commits the copy when fn returns nil.
func (s *Store) Run(ctx context.Context, fn func(repos repository.Repos) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	work := s.committed().clone()
	if err := fn(reposFor(func() *state { return work })); err != nil {
		return err
	}

	s.stateMu.Lock()
	s.state = work
	s.stateMu.Unlock()
	return nil
}

// Repos returns repositories reading the committed state. Writes must go
// through Run.
func (s *Store) Repos() repository.Repos {
	return reposFor(s.committed)
}

func reposFor(get func() *state) repository.Repos {
	return repository.Repos{
		Inventory: &inventoryRepo{st: get},
		Items:     &itemRepo{st: get},
		Products:  &productRepo{st: get},
		Recipes:   &recipeRepo{st: get},
		Sites:     &siteRepo{st: get},
		Customers: &customerRepo{st: get},
		Batches:   &batchRepo{st: get},
		Packaging: &packagingRepo{st: get},
		Kegs:      &kegRepo{st: get},
		Invoices:  &invoiceRepo{st: get},
	}
}

func cloneDecimal(d *decimal.Decimal) *decimal.Decimal {
	if d == nil {
		return nil
	}
	v := *d
	return &v
}
