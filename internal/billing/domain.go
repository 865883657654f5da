// Package billing manages monthly subscription payments per tenant.
package billing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerkeep/ledgerkeep/internal/shared"
)

// Payment is one month's subscription charge for one company. Records are
// generated in bulk once per year and later marked paid.
type Payment struct {
	ID          int64
	CompanyID   int64
	Year        int
	Month       time.Month
	Amount      decimal.Decimal
	Paid        bool
	PaymentDate time.Time
}

// ErrPaymentNotFound indicates the referenced payment does not exist.
var ErrPaymentNotFound = fmt.Errorf("%w: payment", shared.ErrNotFound)
