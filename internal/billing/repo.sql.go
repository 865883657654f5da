package billing

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists payments in PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) Insert(ctx context.Context, p Payment) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `INSERT INTO payments (company_id, year, month, amount, paid, payment_date)
VALUES ($1,$2,$3,$4,$5,$6) RETURNING id`,
		p.CompanyID, p.Year, int(p.Month), p.Amount, p.Paid, p.PaymentDate).Scan(&id)
	return id, err
}

func (r *Repository) ListByCompanyYear(ctx context.Context, companyID int64, year int) ([]Payment, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, company_id, year, month, amount, paid, payment_date
FROM payments WHERE company_id=$1 AND year=$2 ORDER BY month`, companyID, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	payments := []Payment{}
	for rows.Next() {
		var p Payment
		var month int
		if err := rows.Scan(&p.ID, &p.CompanyID, &p.Year, &month, &p.Amount, &p.Paid, &p.PaymentDate); err != nil {
			return nil, err
		}
		p.Month = time.Month(month)
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

func (r *Repository) GetByID(ctx context.Context, id int64) (Payment, error) {
	var p Payment
	var month int
	err := r.pool.QueryRow(ctx, `SELECT id, company_id, year, month, amount, paid, payment_date
FROM payments WHERE id=$1`, id).
		Scan(&p.ID, &p.CompanyID, &p.Year, &month, &p.Amount, &p.Paid, &p.PaymentDate)
	if errors.Is(err, pgx.ErrNoRows) {
		return Payment{}, ErrPaymentNotFound
	}
	p.Month = time.Month(month)
	return p, err
}

func (r *Repository) MarkPaid(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `UPDATE payments SET paid=TRUE WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrPaymentNotFound
	}
	return nil
}
