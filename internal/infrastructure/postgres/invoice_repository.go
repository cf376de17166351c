package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/brewery-api/internal/domain"
	"github.com/jhoicas/brewery-api/internal/domain/entity"
	"github.com/jhoicas/brewery-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo persists invoices and their lines (pool or tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository builds the adapter. Pass a pool or a tx.
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate loads the invoice and locks its header row.
func (r *InvoiceRepo) GetForUpdate(ctx context.Context, id string) (*entity.Invoice, error) {
	return r.get(ctx, id, true)
}

func (r *InvoiceRepo) get(ctx context.Context, id string, lock bool) (*entity.Invoice, error) {
	query := `
		SELECT invoice_id, customer_id, site_id, status, subtotal, keg_deposit_total, total, created_date, posted_date
		FROM invoices WHERE invoice_id = $1` + forUpdate(lock)
	var inv entity.Invoice
	err := r.q.QueryRow(ctx, query, id).Scan(
		&inv.ID, &inv.CustomerID, &inv.SiteID, &inv.Status, &inv.Subtotal, &inv.KegDepositTotal, &inv.Total,
		&inv.CreatedDate, &inv.PostedDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}

	rows, err := r.q.Query(ctx, `
		SELECT identifier, description, quantity, unit, price, has_keg_deposit, is_keg_deposit_item
		FROM invoice_items WHERE invoice_id = $1 ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("list invoice items: %w", err)
	}
	for rows.Next() {
		var it entity.InvoiceItem
		if err := rows.Scan(&it.Identifier, &it.Description, &it.Quantity, &it.Unit, &it.Price, &it.HasKegDeposit, &it.IsKegDepositItem); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan invoice item: %w", err)
		}
		inv.Items = append(inv.Items, it)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	codeRows, err := r.q.Query(ctx, `
		SELECT item_position, keg_code FROM invoice_item_keg_codes
		WHERE invoice_id = $1 ORDER BY item_position, position`, id)
	if err != nil {
		return nil, fmt.Errorf("list invoice keg codes: %w", err)
	}
	defer codeRows.Close()
	for codeRows.Next() {
		var pos int
		var code string
		if err := codeRows.Scan(&pos, &code); err != nil {
			return nil, fmt.Errorf("scan invoice keg code: %w", err)
		}
		if pos >= 0 && pos < len(inv.Items) {
			inv.Items[pos].KegCodes = append(inv.Items[pos].KegCodes, code)
		}
	}
	if err := codeRows.Err(); err != nil {
		return nil, err
	}
	return &inv, nil
}

// Update writes the header: status, totals and posted date.
func (r *InvoiceRepo) Update(ctx context.Context, inv *entity.Invoice) error {
	query := `
		UPDATE invoices
		SET status            = $2,
		    subtotal          = $3,
		    keg_deposit_total = $4,
		    total             = $5,
		    posted_date       = $6
		WHERE invoice_id = $1`
	tag, err := r.q.Exec(ctx, query, inv.ID, inv.Status, inv.Subtotal, inv.KegDepositTotal, inv.Total, inv.PostedDate)
	if err != nil {
		return fmt.Errorf("update invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("Invoice %s not found", inv.ID)
	}
	return nil
}

// ReplaceItems rewrites the ordered lines and their keg codes.
func (r *InvoiceRepo) ReplaceItems(ctx context.Context, invoiceID string, items []entity.InvoiceItem) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM invoice_items WHERE invoice_id = $1`, invoiceID); err != nil {
		return fmt.Errorf("clear invoice items: %w", err)
	}
	for i, it := range items {
		if _, err := r.q.Exec(ctx, `
			INSERT INTO invoice_items (invoice_id, position, identifier, description, quantity, unit, price, has_keg_deposit, is_keg_deposit_item)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			invoiceID, i, it.Identifier, it.Description, it.Quantity, it.Unit, it.Price, it.HasKegDeposit, it.IsKegDepositItem,
		); err != nil {
			return fmt.Errorf("insert invoice item: %w", err)
		}
		for j, code := range it.KegCodes {
			if _, err := r.q.Exec(ctx, `
				INSERT INTO invoice_item_keg_codes (invoice_id, item_position, position, keg_code)
				VALUES ($1, $2, $3, $4)`, invoiceID, i, j, code,
			); err != nil {
				return fmt.Errorf("insert invoice keg code: %w", err)
			}
		}
	}
	return nil
}
