// Package invoice manages purchase and sales invoices. Approval is the
// only mutation that touches product stock.
package invoice

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerkeep/ledgerkeep/internal/shared"
)

// Type enumerates invoice directions.
type Type string

const (
	TypePurchase Type = "PURCHASE"
	TypeSales    Type = "SALES"
)

// Status enumerates the invoice lifecycle.
type Status string

const (
	StatusDraft    Status = "DRAFT"
	StatusApproved Status = "APPROVED"
)

// Invoice is a purchase or sales document owned by one company.
type Invoice struct {
	ID        int64
	No        string
	Type      Type
	Status    Status
	Date      time.Time
	CompanyID int64
	PartnerID int64
	Price     decimal.Decimal
	Tax       decimal.Decimal
	Total     decimal.Decimal
	Deleted   bool
}

// Line is one product row of an invoice, priced at the moment of
// purchase/sale.
type Line struct {
	ID        int64
	InvoiceID int64
	ProductID int64
	Quantity  int
	Price     decimal.Decimal
	TaxRate   int
	Total     decimal.Decimal
}

// LineTotal computes quantity times unit price.
func (l Line) LineTotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// TaxAmount computes the tax portion of the line total.
func (l Line) TaxAmount() decimal.Decimal {
	return l.LineTotal().Mul(decimal.NewFromInt(int64(l.TaxRate))).Div(decimal.NewFromInt(100))
}

var (
	// ErrInvoiceNotFound indicates the referenced invoice does not exist.
	ErrInvoiceNotFound = fmt.Errorf("%w: invoice", shared.ErrNotFound)
	// ErrAlreadyApproved indicates an approval attempt on a non-draft invoice.
	ErrAlreadyApproved = fmt.Errorf("%w: invoice already approved", shared.ErrConflict)
	// ErrNoLines indicates an approval attempt on an invoice with no lines.
	ErrNoLines = fmt.Errorf("%w: invoice has no lines", shared.ErrInvalid)
)
