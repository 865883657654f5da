package invoice

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists invoices in PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const invoiceColumns = `id, invoice_no, invoice_type, status, invoice_date, company_id, partner_id, price, tax, total, deleted`

func scanInvoice(row pgx.Row) (Invoice, error) {
	var inv Invoice
	err := row.Scan(&inv.ID, &inv.No, &inv.Type, &inv.Status, &inv.Date, &inv.CompanyID,
		&inv.PartnerID, &inv.Price, &inv.Tax, &inv.Total, &inv.Deleted)
	if errors.Is(err, pgx.ErrNoRows) {
		return Invoice{}, ErrInvoiceNotFound
	}
	return inv, err
}

func (r *Repository) GetInvoice(ctx context.Context, id int64) (Invoice, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id=$1 AND deleted=FALSE`, id)
	return scanInvoice(row)
}

func (r *Repository) ListByCompany(ctx context.Context, companyID int64, invoiceType Type) ([]Invoice, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+invoiceColumns+`
FROM invoices WHERE company_id=$1 AND invoice_type=$2 AND deleted=FALSE
ORDER BY invoice_date DESC, id DESC`, companyID, string(invoiceType))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	invoices := []Invoice{}
	for rows.Next() {
		var inv Invoice
		if err := rows.Scan(&inv.ID, &inv.No, &inv.Type, &inv.Status, &inv.Date, &inv.CompanyID,
			&inv.PartnerID, &inv.Price, &inv.Tax, &inv.Total, &inv.Deleted); err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}

func (r *Repository) GetLines(ctx context.Context, invoiceID int64) ([]Line, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, invoice_id, product_id, quantity, price, tax_rate, total
FROM invoice_products WHERE invoice_id=$1 ORDER BY id`, invoiceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	lines := []Line{}
	for rows.Next() {
		var line Line
		if err := rows.Scan(&line.ID, &line.InvoiceID, &line.ProductID, &line.Quantity,
			&line.Price, &line.TaxRate, &line.Total); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

// InsertInvoice stores the invoice header and its lines in one transaction.
func (r *Repository) InsertInvoice(ctx context.Context, inv Invoice, lines []Line) (int64, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	var id int64
	err = tx.QueryRow(ctx, `INSERT INTO invoices (invoice_no, invoice_type, status, invoice_date, company_id, partner_id, price, tax, total, deleted)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,FALSE) RETURNING id`,
		inv.No, string(inv.Type), string(inv.Status), inv.Date, inv.CompanyID, inv.PartnerID,
		inv.Price, inv.Tax, inv.Total).Scan(&id)
	if err != nil {
		return 0, err
	}
	for _, line := range lines {
		if _, err := tx.Exec(ctx, `INSERT INTO invoice_products (invoice_id, product_id, quantity, price, tax_rate, total, profit_loss)
VALUES ($1,$2,$3,$4,$5,$6,0)`,
			id, line.ProductID, line.Quantity, line.Price, line.TaxRate, line.Total); err != nil {
			return 0, err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *Repository) MarkApproved(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `UPDATE invoices SET status='APPROVED' WHERE id=$1 AND deleted=FALSE`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrInvoiceNotFound
	}
	return nil
}

// SetSalesLineProfit fills profit_loss on each sales line: line total minus
// quantity times the product's average approved purchase cost.
func (r *Repository) SetSalesLineProfit(ctx context.Context, invoiceID int64) error {
	_, err := r.pool.Exec(ctx, `UPDATE invoice_products ip
SET profit_loss = ip.total - ip.quantity * COALESCE((
	SELECT SUM(pp.total) / NULLIF(SUM(pp.quantity), 0)
	FROM invoice_products pp
	JOIN invoices pi ON pi.id = pp.invoice_id
	WHERE pp.product_id = ip.product_id
	  AND pi.invoice_type = 'PURCHASE'
	  AND pi.status = 'APPROVED'
	  AND pi.deleted = FALSE), 0)
WHERE ip.invoice_id = $1`, invoiceID)
	return err
}

func (r *Repository) SoftDelete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `UPDATE invoices SET deleted=TRUE WHERE id=$1 AND deleted=FALSE`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrInvoiceNotFound
	}
	return nil
}
