package company

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository reads companies from PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// List returns all companies ordered by id.
func (r *Repository) List(ctx context.Context) ([]Company, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, title, registered_at FROM companies ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	companies := []Company{}
	for rows.Next() {
		var c Company
		if err := rows.Scan(&c.ID, &c.Title, &c.RegisteredAt); err != nil {
			return nil, err
		}
		companies = append(companies, c)
	}
	return companies, rows.Err()
}

// GetByID returns one company, including its registration timestamp.
func (r *Repository) GetByID(ctx context.Context, id int64) (Company, error) {
	var c Company
	err := r.pool.QueryRow(ctx, `SELECT id, title, registered_at FROM companies WHERE id=$1`, id).
		Scan(&c.ID, &c.Title, &c.RegisteredAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Company{}, ErrCompanyNotFound
	}
	return c, err
}
