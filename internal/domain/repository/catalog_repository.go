package repository

import (
	"context"

	"github.com/jhoicas/brewery-api/internal/domain/entity"
)

// Catalog lookups return (nil, nil) when the row does not exist.

// ItemRepository reads the material catalog.
type ItemRepository interface {
	GetByName(ctx context.Context, name string) (*entity.Item, error)
}

// ProductRepository reads products and their package-type prices.
type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetPackageType(ctx context.Context, productID, packageType string) (*entity.ProductPackageType, error)
}

// RecipeRepository reads recipes together with their ordered ingredients.
type RecipeRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Recipe, error)
}

// SiteRepository reads locations and equipment of the production sites.
type SiteRepository interface {
	GetLocation(ctx context.Context, id string) (*entity.Location, error)
	GetEquipment(ctx context.Context, id string) (*entity.Equipment, error)
}

// CustomerRepository reads customers.
type CustomerRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
}
