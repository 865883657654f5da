package catalog

import "context"

// LineProduct is the product view of one invoice line, as needed by the
// low-limit alert check.
type LineProduct struct {
	ProductID       int64
	Name            string
	QuantityInStock int
	LowLimitAlert   int
}

// RepositoryPort abstracts repository usage for the service. All product
// reads exclude soft-deleted rows; that filter lives in the query layer, not
// in callers.
type RepositoryPort interface {
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error

	GetProduct(ctx context.Context, id int64) (Product, error)
	ListByCompany(ctx context.Context, companyID int64) ([]Product, error)
	ListByCategory(ctx context.Context, categoryID int64) ([]Product, error)
	ListInStock(ctx context.Context, companyID int64) ([]Product, error)
	ExistsByNameCategoryCompany(ctx context.Context, name string, categoryID, companyID int64) (bool, error)
	InsertProduct(ctx context.Context, p Product) (int64, error)
	UpdateProduct(ctx context.Context, p Product) error
	SoftDeleteProduct(ctx context.Context, id int64) error
	HasInvoiceLines(ctx context.Context, productID int64) (bool, error)
	LineProducts(ctx context.Context, invoiceID int64) ([]LineProduct, error)

	GetCategory(ctx context.Context, id int64) (Category, error)
	ListCategories(ctx context.Context, companyID int64) ([]CategoryView, error)
}

// TxRepository exposes the row-locked operations used by stock mutations.
type TxRepository interface {
	GetProductForUpdate(ctx context.Context, id int64) (Product, error)
	SetQuantity(ctx context.Context, id int64, quantity int) error
}
