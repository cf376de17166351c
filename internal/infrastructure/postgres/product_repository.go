package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/brewery-api/internal/domain/entity"
	"github.com/jhoicas/brewery-api/internal/domain/repository"
)

var (
	_ repository.ProductRepository = (*ProductRepo)(nil)
	_ repository.ItemRepository    = (*ItemRepo)(nil)
)

// ProductRepo reads products and their package-type prices (pool or tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository builds the adapter. Pass a pool or a tx.
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// GetByID returns the product or (nil, nil).
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	var p entity.Product
	err := r.q.QueryRow(ctx, `SELECT product_id, name FROM products WHERE product_id = $1`, id).Scan(&p.ID, &p.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// GetPackageType returns the catalog price of a product in packageType or (nil, nil).
func (r *ProductRepo) GetPackageType(ctx context.Context, productID, packageType string) (*entity.ProductPackageType, error) {
	query := `
		SELECT product_id, package_type, price, is_keg_deposit_item
		FROM product_package_types WHERE product_id = $1 AND package_type = $2`
	var p entity.ProductPackageType
	err := r.q.QueryRow(ctx, query, productID, packageType).Scan(&p.ProductID, &p.PackageType, &p.Price, &p.IsKegDepositItem)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product package type: %w", err)
	}
	return &p, nil
}

// ItemRepo reads the material catalog (pool or tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository builds the adapter. Pass a pool or a tx.
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// GetByName returns the catalog item or (nil, nil).
func (r *ItemRepo) GetByName(ctx context.Context, name string) (*entity.Item, error) {
	var it entity.Item
	err := r.q.QueryRow(ctx, `SELECT name, type, enabled FROM items WHERE name = $1`, name).Scan(&it.Name, &it.Type, &it.Enabled)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return &it, nil
}
