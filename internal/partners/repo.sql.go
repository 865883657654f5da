package partners

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists clients and vendors in PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) GetByID(ctx context.Context, id int64) (Partner, error) {
	var p Partner
	err := r.pool.QueryRow(ctx, `SELECT id, name, partner_type, company_id, deleted
FROM client_vendors WHERE id=$1 AND deleted=FALSE`, id).
		Scan(&p.ID, &p.Name, &p.Type, &p.CompanyID, &p.Deleted)
	if errors.Is(err, pgx.ErrNoRows) {
		return Partner{}, ErrPartnerNotFound
	}
	return p, err
}

func (r *Repository) ListByCompany(ctx context.Context, companyID int64) ([]Partner, error) {
	return r.query(ctx, `SELECT id, name, partner_type, company_id, deleted
FROM client_vendors WHERE company_id=$1 AND deleted=FALSE ORDER BY name`, companyID)
}

func (r *Repository) ListByType(ctx context.Context, companyID int64, partnerType PartnerType) ([]Partner, error) {
	return r.query(ctx, `SELECT id, name, partner_type, company_id, deleted
FROM client_vendors WHERE company_id=$1 AND partner_type=$2 AND deleted=FALSE ORDER BY name`,
		companyID, string(partnerType))
}

func (r *Repository) ExistsByName(ctx context.Context, companyID int64, name string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (
SELECT 1 FROM client_vendors WHERE company_id=$1 AND name=$2 AND deleted=FALSE)`, companyID, name).Scan(&exists)
	return exists, err
}

func (r *Repository) Insert(ctx context.Context, p Partner) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `INSERT INTO client_vendors (name, partner_type, company_id, deleted)
VALUES ($1,$2,$3,FALSE) RETURNING id`, p.Name, string(p.Type), p.CompanyID).Scan(&id)
	return id, err
}

func (r *Repository) query(ctx context.Context, sql string, args ...any) ([]Partner, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Partner{}
	for rows.Next() {
		var p Partner
		if err := rows.Scan(&p.ID, &p.Name, &p.Type, &p.CompanyID, &p.Deleted); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
