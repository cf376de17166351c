package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/brewery-api/internal/domain"
	"github.com/jhoicas/brewery-api/internal/domain/entity"
	"github.com/jhoicas/brewery-api/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo implements InventoryRepository on PostgreSQL (pool or tx).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository builds the adapter. Pass a pool or a tx.
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

const inventoryColumns = `id, identifier, item_name, description, type, account, site_id, location_id,
	quantity, unit, proof, proof_gallons, cost, total_cost, price, status, po_number, lot_number,
	source, received_date, is_keg_deposit_item, updated_at`

func scanInventory(row pgx.Row) (*entity.InventoryItem, error) {
	var it entity.InventoryItem
	err := row.Scan(
		&it.ID, &it.Identifier, &it.ItemName, &it.Description, &it.Type, &it.Account, &it.SiteID, &it.LocationID,
		&it.Quantity, &it.Unit, &it.Proof, &it.ProofGallons, &it.Cost, &it.TotalCost, &it.Price, &it.Status,
		&it.PONumber, &it.LotNumber, &it.Source, &it.ReceivedDate, &it.IsKegDepositItem, &it.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// Find returns matching rows oldest first. With ForUpdate the rows stay locked
// until the transaction ends.
func (r *InventoryRepo) Find(ctx context.Context, f repository.InventoryFilter) ([]*entity.InventoryItem, error) {
	conds := []string{"identifier = $1"}
	args := []any{f.Identifier}
	add := func(col string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if f.Type != "" {
		add("type", f.Type)
	}
	if f.Account != nil {
		add("account", *f.Account)
	}
	if f.SiteID != "" {
		add("site_id", f.SiteID)
	}
	if f.LocationID != "" {
		add("location_id", f.LocationID)
	}
	if f.Status != "" {
		add("status", f.Status)
	}
	query := `SELECT ` + inventoryColumns + ` FROM inventory WHERE ` + strings.Join(conds, " AND ") +
		` ORDER BY received_date, id` + forUpdate(f.ForUpdate)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("find inventory: %w", err)
	}
	defer rows.Close()

	var out []*entity.InventoryItem
	for rows.Next() {
		it, err := scanInventory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory: %w", err)
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

// Create inserts a row. A clash on the unique key returns domain.ErrDuplicate.
func (r *InventoryRepo) Create(ctx context.Context, it *entity.InventoryItem) error {
	query := `INSERT INTO inventory (` + inventoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)`
	_, err := r.q.Exec(ctx, query,
		it.ID, it.Identifier, it.ItemName, it.Description, it.Type, it.Account, it.SiteID, it.LocationID,
		it.Quantity, it.Unit, it.Proof, it.ProofGallons, it.Cost, it.TotalCost, it.Price, it.Status,
		it.PONumber, it.LotNumber, it.Source, it.ReceivedDate, it.IsKegDepositItem, it.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Duplicate("Inventory record %s already exists at %s/%s", it.Identifier, it.SiteID, it.LocationID)
		}
		return fmt.Errorf("insert inventory: %w", err)
	}
	return nil
}

// Update writes the mutable columns of a row.
func (r *InventoryRepo) Update(ctx context.Context, it *entity.InventoryItem) error {
	query := `
		UPDATE inventory
		SET quantity            = $2,
		    proof               = $3,
		    proof_gallons       = $4,
		    cost                = $5,
		    total_cost          = $6,
		    price               = $7,
		    status              = $8,
		    is_keg_deposit_item = $9,
		    updated_at          = $10
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		it.ID, it.Quantity, it.Proof, it.ProofGallons, it.Cost, it.TotalCost, it.Price, it.Status,
		it.IsKegDepositItem, it.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update inventory: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("Inventory record %s not found", it.ID)
	}
	return nil
}

// Decrement subtracts qty only while the row still holds at least qty. The
// affected row count tells whether it happened.
func (r *InventoryRepo) Decrement(ctx context.Context, id string, qty decimal.Decimal) (bool, error) {
	query := `
		UPDATE inventory
		SET quantity      = quantity - $2,
		    total_cost    = GREATEST(total_cost - cost * $2, 0),
		    proof_gallons = CASE WHEN proof_gallons IS NULL OR quantity = 0 THEN proof_gallons
		                         ELSE proof_gallons * (quantity - $2) / quantity END,
		    updated_at    = now()
		WHERE id = $1 AND quantity >= $2`
	tag, err := r.q.Exec(ctx, query, id, qty)
	if err != nil {
		return false, fmt.Errorf("decrement inventory: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// Delete removes a row.
func (r *InventoryRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM inventory WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete inventory: %w", err)
	}
	return nil
}

// CreateLoss appends a loss audit row.
func (r *InventoryRepo) CreateLoss(ctx context.Context, l *entity.InventoryLoss) error {
	query := `
		INSERT INTO inventory_losses (id, identifier, quantity_lost, reason, date, site_id, location_id, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query, l.ID, l.Identifier, l.QuantityLost, l.Reason, l.Date, l.SiteID, l.LocationID, l.UserID)
	if err != nil {
		return fmt.Errorf("insert inventory loss: %w", err)
	}
	return nil
}

// ListLosses returns the loss rows of identifier, oldest first.
func (r *InventoryRepo) ListLosses(ctx context.Context, identifier string) ([]*entity.InventoryLoss, error) {
	query := `
		SELECT id, identifier, quantity_lost, reason, date, site_id, location_id, user_id
		FROM inventory_losses WHERE identifier = $1 ORDER BY date, id`
	rows, err := r.q.Query(ctx, query, identifier)
	if err != nil {
		return nil, fmt.Errorf("list inventory losses: %w", err)
	}
	defer rows.Close()

	var out []*entity.InventoryLoss
	for rows.Next() {
		var l entity.InventoryLoss
		if err := rows.Scan(&l.ID, &l.Identifier, &l.QuantityLost, &l.Reason, &l.Date, &l.SiteID, &l.LocationID, &l.UserID); err != nil {
			return nil, fmt.Errorf("scan inventory loss: %w", err)
		}
		out = append(out, &l)
	}
	return out, rows.Err()
}
