package reporting

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/ledgerkeep/ledgerkeep/internal/catalog"
	"github.com/ledgerkeep/ledgerkeep/internal/company"
	"github.com/ledgerkeep/ledgerkeep/internal/invoice"
)

type fakeLedger struct {
	byMonth   map[string]decimal.Decimal // "2023-6"
	byProduct map[int64]decimal.Decimal
	snapshots int
}

func (l *fakeLedger) WithSnapshot(ctx context.Context, fn func(context.Context, LedgerQueries) error) error {
	l.snapshots++
	return fn(ctx, l)
}

func (l *fakeLedger) ProfitLossForMonth(ctx context.Context, companyID int64, year int, month time.Month, invoiceType invoice.Type) (decimal.Decimal, error) {
	if amount, ok := l.byMonth[fmt.Sprintf("%d-%d", year, int(month))]; ok {
		return amount, nil
	}
	return decimal.Zero, nil
}

func (l *fakeLedger) ProductProfitLoss(ctx context.Context, productID, companyID int64) (decimal.Decimal, error) {
	return l.byProduct[productID], nil
}

type fakeDirectory struct {
	company company.Company
}

func (d *fakeDirectory) GetByID(ctx context.Context, id int64) (company.Company, error) {
	if id != d.company.ID {
		return company.Company{}, company.ErrCompanyNotFound
	}
	return d.company, nil
}

type fakeCatalog struct {
	products []catalog.Product
}

func (c *fakeCatalog) ListProducts(ctx context.Context, companyID int64) ([]catalog.Product, error) {
	return c.products, nil
}

func reportNow() time.Time {
	return time.Date(2023, time.June, 20, 10, 0, 0, 0, time.UTC)
}

func newReportService(ledger *fakeLedger, registered time.Time) *Service {
	dir := &fakeDirectory{company: company.Company{ID: 1, Title: "Acme", RegisteredAt: registered}}
	cat := &fakeCatalog{products: []catalog.Product{
		{ID: 10, Name: "Widget"},
		{ID: 11, Name: "Gadget"},
	}}
	return NewService(ledger, dir, cat, nil, reportNow)
}

func TestMonthlyProfitLossSinceSignup(t *testing.T) {
	ledger := &fakeLedger{byMonth: map[string]decimal.Decimal{
		"2023-6": decimal.NewFromInt(300),
		"2023-5": decimal.NewFromInt(-40),
		"2023-4": decimal.NewFromInt(125),
	}}
	svc := newReportService(ledger, time.Date(2023, time.March, 15, 9, 30, 0, 0, time.UTC))

	entries, err := svc.MonthlyProfitLossSinceSignup(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, entries, 4)
	require.Equal(t, "2023 JUNE", entries[0].Label)
	require.Equal(t, "2023 MAY", entries[1].Label)
	require.Equal(t, "2023 APRIL", entries[2].Label)
	require.Equal(t, "2023 MARCH", entries[3].Label)
	require.True(t, entries[0].Amount.Equal(decimal.NewFromInt(300)))
	require.True(t, entries[1].Amount.Equal(decimal.NewFromInt(-40)))
	require.True(t, entries[3].Amount.IsZero())

	// All buckets of one report share one snapshot.
	require.Equal(t, 1, ledger.snapshots)
}

func TestMonthlyProfitLossForYear(t *testing.T) {
	ledger := &fakeLedger{byMonth: map[string]decimal.Decimal{
		"2022-12": decimal.NewFromInt(75),
	}}
	svc := newReportService(ledger, time.Date(2022, time.March, 5, 0, 0, 0, 0, time.UTC))

	entries, err := svc.MonthlyProfitLossForYear(context.Background(), 1, 2022)
	require.NoError(t, err)
	require.Len(t, entries, 11)
	require.Equal(t, "2022 DECEMBER", entries[0].Label)
	require.True(t, entries[0].Amount.Equal(decimal.NewFromInt(75)))
	require.Equal(t, "2022 FEBRUARY", entries[len(entries)-1].Label)
}

func TestMonthlyProfitLossUnknownCompany(t *testing.T) {
	svc := newReportService(&fakeLedger{}, reportNow())
	_, err := svc.MonthlyProfitLossSinceSignup(context.Background(), 99)
	require.ErrorIs(t, err, company.ErrCompanyNotFound)
}

func TestProductProfitLossBreakdownKeepsCatalogOrder(t *testing.T) {
	ledger := &fakeLedger{byProduct: map[int64]decimal.Decimal{
		10: decimal.NewFromInt(500),
		11: decimal.NewFromInt(-25),
	}}
	svc := newReportService(ledger, reportNow())

	entries, err := svc.ProductProfitLossBreakdown(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "Widget", entries[0].Label)
	require.Equal(t, "Gadget", entries[1].Label)
	require.True(t, entries[1].Amount.Equal(decimal.NewFromInt(-25)))
}

func TestReportYears(t *testing.T) {
	svc := newReportService(&fakeLedger{}, time.Date(2021, time.November, 2, 0, 0, 0, 0, time.UTC))
	years, err := svc.ReportYears(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, []string{"2021", "2022", "2023"}, years)
}
