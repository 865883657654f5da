package catalog

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists catalog data in PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

type txRepository struct {
	tx pgx.Tx
}

const productColumns = `p.id, p.name, p.unit, p.category_id, p.quantity_in_stock, p.low_limit_alert, p.deleted`

// WithTx executes the callback inside a transaction. Stock mutations use it
// so the read-modify-write on quantity_in_stock is row-locked.
func (r *Repository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	if r == nil {
		return errors.New("catalog repository not initialised")
	}
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	wrapper := &txRepository{tx: tx}
	if err := fn(ctx, wrapper); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}

func scanProduct(row pgx.Row) (Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.Name, &p.Unit, &p.CategoryID, &p.QuantityInStock, &p.LowLimitAlert, &p.Deleted)
	if errors.Is(err, pgx.ErrNoRows) {
		return Product{}, ErrProductNotFound
	}
	return p, err
}

func (r *Repository) GetProduct(ctx context.Context, id int64) (Product, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+productColumns+` FROM products p WHERE p.id=$1 AND p.deleted=FALSE`, id)
	return scanProduct(row)
}

func (r *Repository) queryProducts(ctx context.Context, query string, args ...any) ([]Product, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	products := []Product{}
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Unit, &p.CategoryID, &p.QuantityInStock, &p.LowLimitAlert, &p.Deleted); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *Repository) ListByCompany(ctx context.Context, companyID int64) ([]Product, error) {
	return r.queryProducts(ctx, `SELECT `+productColumns+`
FROM products p JOIN categories c ON c.id = p.category_id
WHERE c.company_id=$1 AND p.deleted=FALSE
ORDER BY p.id`, companyID)
}

func (r *Repository) ListByCategory(ctx context.Context, categoryID int64) ([]Product, error) {
	return r.queryProducts(ctx, `SELECT `+productColumns+`
FROM products p
WHERE p.category_id=$1 AND p.deleted=FALSE
ORDER BY p.id`, categoryID)
}

func (r *Repository) ListInStock(ctx context.Context, companyID int64) ([]Product, error) {
	return r.queryProducts(ctx, `SELECT `+productColumns+`
FROM products p JOIN categories c ON c.id = p.category_id
WHERE c.company_id=$1 AND p.deleted=FALSE AND p.quantity_in_stock > 0
ORDER BY p.id`, companyID)
}

func (r *Repository) ExistsByNameCategoryCompany(ctx context.Context, name string, categoryID, companyID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (
SELECT 1 FROM products p JOIN categories c ON c.id = p.category_id
WHERE p.name=$1 AND p.category_id=$2 AND c.company_id=$3 AND p.deleted=FALSE)`,
		name, categoryID, companyID).Scan(&exists)
	return exists, err
}

func (r *Repository) InsertProduct(ctx context.Context, p Product) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `INSERT INTO products (name, unit, category_id, quantity_in_stock, low_limit_alert, deleted)
VALUES ($1,$2,$3,$4,$5,FALSE) RETURNING id`,
		p.Name, string(p.Unit), p.CategoryID, p.QuantityInStock, p.LowLimitAlert).Scan(&id)
	return id, err
}

func (r *Repository) UpdateProduct(ctx context.Context, p Product) error {
	tag, err := r.pool.Exec(ctx, `UPDATE products
SET name=$2, unit=$3, category_id=$4, quantity_in_stock=$5, low_limit_alert=$6
WHERE id=$1 AND deleted=FALSE`,
		p.ID, p.Name, string(p.Unit), p.CategoryID, p.QuantityInStock, p.LowLimitAlert)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *Repository) SoftDeleteProduct(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `UPDATE products SET deleted=TRUE WHERE id=$1 AND deleted=FALSE`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *Repository) HasInvoiceLines(ctx context.Context, productID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM invoice_products WHERE product_id=$1)`, productID).Scan(&exists)
	return exists, err
}

func (r *Repository) LineProducts(ctx context.Context, invoiceID int64) ([]LineProduct, error) {
	rows, err := r.pool.Query(ctx, `SELECT p.id, p.name, p.quantity_in_stock, p.low_limit_alert
FROM invoice_products ip JOIN products p ON p.id = ip.product_id
WHERE ip.invoice_id=$1
ORDER BY ip.id`, invoiceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	lines := []LineProduct{}
	for rows.Next() {
		var line LineProduct
		if err := rows.Scan(&line.ProductID, &line.Name, &line.QuantityInStock, &line.LowLimitAlert); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

func (r *Repository) GetCategory(ctx context.Context, id int64) (Category, error) {
	var c Category
	err := r.pool.QueryRow(ctx, `SELECT id, description, company_id FROM categories WHERE id=$1`, id).
		Scan(&c.ID, &c.Description, &c.CompanyID)
	if errors.Is(err, pgx.ErrNoRows) {
		return Category{}, ErrCategoryNotFound
	}
	return c, err
}

func (r *Repository) ListCategories(ctx context.Context, companyID int64) ([]CategoryView, error) {
	rows, err := r.pool.Query(ctx, `SELECT c.id, c.description, c.company_id,
COUNT(p.id) FILTER (WHERE p.deleted=FALSE)
FROM categories c LEFT JOIN products p ON p.category_id = c.id
WHERE c.company_id=$1
GROUP BY c.id
ORDER BY c.description`, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	categories := []CategoryView{}
	for rows.Next() {
		var cv CategoryView
		if err := rows.Scan(&cv.ID, &cv.Description, &cv.CompanyID, &cv.ProductCount); err != nil {
			return nil, err
		}
		categories = append(categories, cv)
	}
	return categories, rows.Err()
}

func (r *txRepository) GetProductForUpdate(ctx context.Context, id int64) (Product, error) {
	row := r.tx.QueryRow(ctx, `SELECT `+productColumns+` FROM products p WHERE p.id=$1 AND p.deleted=FALSE FOR UPDATE`, id)
	return scanProduct(row)
}

func (r *txRepository) SetQuantity(ctx context.Context, id int64, quantity int) error {
	_, err := r.tx.Exec(ctx, `UPDATE products SET quantity_in_stock=$2 WHERE id=$1`, id, quantity)
	return err
}
