package invoice

import "context"

// RepositoryPort abstracts repository usage for the service. Reads exclude
// soft-deleted invoices; the query layer owns that filter.
type RepositoryPort interface {
	GetInvoice(ctx context.Context, id int64) (Invoice, error)
	ListByCompany(ctx context.Context, companyID int64, invoiceType Type) ([]Invoice, error)
	GetLines(ctx context.Context, invoiceID int64) ([]Line, error)
	InsertInvoice(ctx context.Context, inv Invoice, lines []Line) (int64, error)
	MarkApproved(ctx context.Context, id int64) error
	SetSalesLineProfit(ctx context.Context, invoiceID int64) error
	SoftDelete(ctx context.Context, id int64) error
}

// StockLedger is the slice of the catalog the approval flow drives.
type StockLedger interface {
	IncreaseStock(ctx context.Context, productID int64, quantity int) (int, error)
	DecreaseStock(ctx context.Context, productID int64, quantity int) (int, error)
	CheckLowLimitAlert(ctx context.Context, invoiceID int64) error
}
