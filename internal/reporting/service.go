// Package reporting computes month-bucketed profit/loss reports and the
// helpers that prepare them for display.
package reporting

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerkeep/ledgerkeep/internal/catalog"
	"github.com/ledgerkeep/ledgerkeep/internal/company"
	"github.com/ledgerkeep/ledgerkeep/internal/invoice"
)

// Entry is one row of a profit/loss report.
type Entry struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

// LedgerQueries is the invoice-line query surface the aggregator
// orchestrates. The profit/loss formula itself lives in the query layer.
type LedgerQueries interface {
	ProfitLossForMonth(ctx context.Context, companyID int64, year int, month time.Month, invoiceType invoice.Type) (decimal.Decimal, error)
	ProductProfitLoss(ctx context.Context, productID, companyID int64) (decimal.Decimal, error)
}

// LedgerReader runs ledger queries inside one consistent read snapshot, so
// a multi-bucket aggregation never mixes data from different commits.
type LedgerReader interface {
	WithSnapshot(ctx context.Context, fn func(context.Context, LedgerQueries) error) error
}

// CompanyDirectory resolves companies and their registration timestamps.
type CompanyDirectory interface {
	GetByID(ctx context.Context, id int64) (company.Company, error)
}

// ProductLister lists a company's active products in catalog order.
type ProductLister interface {
	ListProducts(ctx context.Context, companyID int64) ([]catalog.Product, error)
}

// Service is the profit/loss aggregator.
type Service struct {
	ledger    LedgerReader
	companies CompanyDirectory
	products  ProductLister
	cache     *Cache
	now       func() time.Time
}

// NewService builds Service. cache may be nil; the clock is injectable for
// tests.
func NewService(ledger LedgerReader, companies CompanyDirectory, products ProductLister, cache *Cache, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{ledger: ledger, companies: companies, products: products, cache: cache, now: now}
}

// MonthlyProfitLossSinceSignup returns the company's signed profit/loss per
// calendar month from signup through today, most recent month first.
func (s *Service) MonthlyProfitLossSinceSignup(ctx context.Context, companyID int64) ([]Entry, error) {
	c, err := s.companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	keys := MonthKeysSinceSignup(c.RegisteredAt, s.now())
	cacheKey := fmt.Sprintf("report:pl:monthly:%d", companyID)
	return s.cachedBuckets(ctx, cacheKey, companyID, keys)
}

// MonthlyProfitLossForYear restricts the monthly report to one calendar
// year, bounded by signup below and today above.
func (s *Service) MonthlyProfitLossForYear(ctx context.Context, companyID int64, year int) ([]Entry, error) {
	c, err := s.companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	keys := MonthKeysForYear(c.RegisteredAt, year, s.now())
	cacheKey := fmt.Sprintf("report:pl:year:%d:%d", companyID, year)
	return s.cachedBuckets(ctx, cacheKey, companyID, keys)
}

func (s *Service) cachedBuckets(ctx context.Context, cacheKey string, companyID int64, keys []time.Time) ([]Entry, error) {
	var entries []Entry
	load := func(ctx context.Context) (any, error) {
		loaded, err := s.bucketEntries(ctx, companyID, keys)
		if err != nil {
			return nil, err
		}
		return loaded, nil
	}
	if err := s.cache.FetchJSON(ctx, cacheKey, &entries, load); err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *Service) bucketEntries(ctx context.Context, companyID int64, keys []time.Time) ([]Entry, error) {
	entries := []Entry{}
	err := s.ledger.WithSnapshot(ctx, func(ctx context.Context, q LedgerQueries) error {
		for _, key := range keys {
			amount, err := q.ProfitLossForMonth(ctx, companyID, key.Year(), key.Month(), invoice.TypeSales)
			if err != nil {
				return err
			}
			entries = append(entries, Entry{Label: BucketLabel(key), Amount: amount})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// ProductProfitLossBreakdown returns lifetime profit/loss per active
// product, in catalog iteration order.
func (s *Service) ProductProfitLossBreakdown(ctx context.Context, companyID int64) ([]Entry, error) {
	products, err := s.products.ListProducts(ctx, companyID)
	if err != nil {
		return nil, err
	}
	var entries []Entry
	cacheKey := fmt.Sprintf("report:pl:products:%d", companyID)
	load := func(ctx context.Context) (any, error) {
		loaded := []Entry{}
		err := s.ledger.WithSnapshot(ctx, func(ctx context.Context, q LedgerQueries) error {
			for _, product := range products {
				amount, err := q.ProductProfitLoss(ctx, product.ID, companyID)
				if err != nil {
					return err
				}
				loaded = append(loaded, Entry{Label: product.Name, Amount: amount})
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		return loaded, nil
	}
	if err := s.cache.FetchJSON(ctx, cacheKey, &entries, load); err != nil {
		return nil, err
	}
	return entries, nil
}

// ReportYears returns the selectable report years for the company, signup
// year through the current year.
func (s *Service) ReportYears(ctx context.Context, companyID int64) ([]string, error) {
	c, err := s.companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return YearOptions(c.RegisteredAt.Year(), s.now().Year()), nil
}
