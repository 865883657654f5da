// Package catalog manages products and categories, including the stock
// ledger that invoice approval drives.
package catalog

import (
	"fmt"
	"strings"

	"github.com/ledgerkeep/ledgerkeep/internal/shared"
)

// ProductUnit enumerates supported units of measure.
type ProductUnit string

const (
	UnitPcs    ProductUnit = "PCS"
	UnitKg     ProductUnit = "KG"
	UnitLbs    ProductUnit = "LBS"
	UnitGallon ProductUnit = "GALLON"
	UnitMeter  ProductUnit = "METER"
	UnitFeet   ProductUnit = "FEET"
)

// Product is a catalog entry owned by one company through its category.
type Product struct {
	ID              int64
	Name            string
	Unit            ProductUnit
	CategoryID      int64
	QuantityInStock int
	LowLimitAlert   int
	Deleted         bool
}

// Category groups products and carries the owning company.
type Category struct {
	ID          int64
	Description string
	CompanyID   int64
}

// CategoryView is a category joined with its product count, for listings.
type CategoryView struct {
	Category
	ProductCount int
}

var (
	// ErrProductNotFound indicates the referenced product does not exist.
	ErrProductNotFound = fmt.Errorf("%w: product", shared.ErrNotFound)
	// ErrCategoryNotFound indicates the referenced category does not exist.
	ErrCategoryNotFound = fmt.Errorf("%w: category", shared.ErrNotFound)
	// ErrInvalidQuantity indicates a stock mutation that would go negative.
	ErrInvalidQuantity = fmt.Errorf("%w: quantity cannot be negative", shared.ErrInvalid)
	// ErrProductInUse indicates a delete attempt on a product that still has
	// stock or appears on an invoice line.
	ErrProductInUse = fmt.Errorf("%w: product has stock or invoice lines", shared.ErrConflict)
)

// LowStockError is the advisory raised after a stock mutation leaves one or
// more products below their reorder threshold. It is a notification, not a
// rollback signal.
type LowStockError struct {
	Products []string
}

func (e *LowStockError) Error() string {
	return fmt.Sprintf("stock of %s decreased below low limit", strings.Join(e.Products, ", "))
}
