package reporting

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/ledgerkeep/ledgerkeep/internal/invoice"
	"github.com/ledgerkeep/ledgerkeep/internal/platform/db"
)

// Repository answers ledger queries against PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

type txQueries struct {
	tx pgx.Tx
}

// WithSnapshot runs the callback inside one repeatable-read transaction so
// every month bucket of an aggregation sees the same committed state.
func (r *Repository) WithSnapshot(ctx context.Context, fn func(context.Context, LedgerQueries) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &txQueries{tx: tx})
	})
}

func (q *txQueries) ProfitLossForMonth(ctx context.Context, companyID int64, year int, month time.Month, invoiceType invoice.Type) (decimal.Decimal, error) {
	var amount decimal.Decimal
	err := q.tx.QueryRow(ctx, `SELECT COALESCE(SUM(ip.profit_loss), 0)
FROM invoice_products ip
JOIN invoices i ON i.id = ip.invoice_id
WHERE i.company_id = $1
  AND i.invoice_type = $2
  AND i.status = 'APPROVED'
  AND i.deleted = FALSE
  AND EXTRACT(YEAR FROM i.invoice_date) = $3
  AND EXTRACT(MONTH FROM i.invoice_date) = $4`,
		companyID, string(invoiceType), year, int(month)).Scan(&amount)
	return amount, err
}

func (q *txQueries) ProductProfitLoss(ctx context.Context, productID, companyID int64) (decimal.Decimal, error) {
	var amount decimal.Decimal
	err := q.tx.QueryRow(ctx, `SELECT COALESCE(SUM(ip.profit_loss), 0)
FROM invoice_products ip
JOIN invoices i ON i.id = ip.invoice_id
WHERE ip.product_id = $1
  AND i.company_id = $2
  AND i.invoice_type = 'SALES'
  AND i.status = 'APPROVED'
  AND i.deleted = FALSE`,
		productID, companyID).Scan(&amount)
	return amount, err
}
