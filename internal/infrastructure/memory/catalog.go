package memory

import (
	"context"

	"github.com/jhoicas/brewery-api/internal/domain/entity"
	"github.com/jhoicas/brewery-api/internal/domain/repository"
)

// Catalog tables are read-only through the ports; see Seed for writes.

var (
	_ repository.ItemRepository     = (*itemRepo)(nil)
	_ repository.ProductRepository  = (*productRepo)(nil)
	_ repository.RecipeRepository   = (*recipeRepo)(nil)
	_ repository.SiteRepository     = (*siteRepo)(nil)
	_ repository.CustomerRepository = (*customerRepo)(nil)
)

type itemRepo struct{ st func() *state }

func (r *itemRepo) GetByName(_ context.Context, name string) (*entity.Item, error) {
	it, ok := r.st().items[name]
	if !ok {
		return nil, nil
	}
	return &it, nil
}

type productRepo struct{ st func() *state }

func (r *productRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := r.st().products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *productRepo) GetPackageType(_ context.Context, productID, packageType string) (*entity.ProductPackageType, error) {
	pt, ok := r.st().packageTypes[packageTypeKey(productID, packageType)]
	if !ok {
		return nil, nil
	}
	return &pt, nil
}

func packageTypeKey(productID, packageType string) string {
	return productID + "|" + packageType
}

type recipeRepo struct{ st func() *state }

func (r *recipeRepo) GetByID(_ context.Context, id string) (*entity.Recipe, error) {
	rec, ok := r.st().recipes[id]
	if !ok {
		return nil, nil
	}
	c := cloneRecipe(rec)
	return &c, nil
}

type siteRepo struct{ st func() *state }

func (r *siteRepo) GetLocation(_ context.Context, id string) (*entity.Location, error) {
	l, ok := r.st().locations[id]
	if !ok {
		return nil, nil
	}
	return &l, nil
}

func (r *siteRepo) GetEquipment(_ context.Context, id string) (*entity.Equipment, error) {
	e, ok := r.st().equipment[id]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

type customerRepo struct{ st func() *state }

func (r *customerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	c, ok := r.st().customers[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}
