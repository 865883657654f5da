package billing

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/ledgerkeep/ledgerkeep/internal/company"
)

type memoryRepo struct {
	payments []Payment
	nextID   int64
}

func (r *memoryRepo) Insert(ctx context.Context, p Payment) (int64, error) {
	r.nextID++
	p.ID = r.nextID
	r.payments = append(r.payments, p)
	return p.ID, nil
}

func (r *memoryRepo) ListByCompanyYear(ctx context.Context, companyID int64, year int) ([]Payment, error) {
	out := []Payment{}
	for _, p := range r.payments {
		if p.CompanyID == companyID && p.Year == year {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memoryRepo) GetByID(ctx context.Context, id int64) (Payment, error) {
	for _, p := range r.payments {
		if p.ID == id {
			return p, nil
		}
	}
	return Payment{}, ErrPaymentNotFound
}

func (r *memoryRepo) MarkPaid(ctx context.Context, id int64) error {
	for i, p := range r.payments {
		if p.ID == id {
			r.payments[i].Paid = true
			return nil
		}
	}
	return ErrPaymentNotFound
}

type staticDirectory struct {
	companies []company.Company
}

func (d *staticDirectory) List(ctx context.Context) ([]company.Company, error) {
	return d.companies, nil
}

func fee() decimal.Decimal { return decimal.NewFromInt(250) }

func TestGenerateMonthlyPaymentsSkipsPlatformOwner(t *testing.T) {
	repo := &memoryRepo{}
	dir := &staticDirectory{companies: []company.Company{
		{ID: 1, Title: "CYDEO"},
		{ID: 2, Title: "Bluehorn Trading"},
	}}
	now := func() time.Time { return time.Date(2023, time.June, 15, 0, 0, 0, 0, time.UTC) }
	svc := NewService(dir, repo, "CYDEO", fee(), now)

	created, err := svc.GenerateMonthlyPayments(context.Background())
	require.NoError(t, err)
	require.Equal(t, 12, created)
	require.Len(t, repo.payments, 12)
	for _, p := range repo.payments {
		require.Equal(t, int64(2), p.CompanyID)
		require.Equal(t, 2023, p.Year)
		require.False(t, p.Paid)
		require.True(t, p.Amount.Equal(fee()))
	}
}

func TestGenerateMonthlyPaymentsOnePerMonth(t *testing.T) {
	repo := &memoryRepo{}
	dir := &staticDirectory{companies: []company.Company{{ID: 5, Title: "Acme"}}}
	now := func() time.Time { return time.Date(2023, time.June, 15, 0, 0, 0, 0, time.UTC) }
	svc := NewService(dir, repo, "CYDEO", fee(), now)

	_, err := svc.GenerateMonthlyPayments(context.Background())
	require.NoError(t, err)

	seen := map[time.Month]bool{}
	for _, p := range repo.payments {
		require.False(t, seen[p.Month], "duplicate month %s", p.Month)
		seen[p.Month] = true
		// Day-of-month preserved from "today".
		require.Equal(t, 15, p.PaymentDate.Day())
		require.Equal(t, p.Month, p.PaymentDate.Month())
	}
	require.Len(t, seen, 12)
}

func TestGenerateMonthlyPaymentsClampsDayOfMonth(t *testing.T) {
	repo := &memoryRepo{}
	dir := &staticDirectory{companies: []company.Company{{ID: 5, Title: "Acme"}}}
	now := func() time.Time { return time.Date(2023, time.January, 31, 0, 0, 0, 0, time.UTC) }
	svc := NewService(dir, repo, "CYDEO", fee(), now)

	_, err := svc.GenerateMonthlyPayments(context.Background())
	require.NoError(t, err)

	byMonth := map[time.Month]Payment{}
	for _, p := range repo.payments {
		byMonth[p.Month] = p
	}
	require.Equal(t, 28, byMonth[time.February].PaymentDate.Day())
	require.Equal(t, 30, byMonth[time.April].PaymentDate.Day())
	require.Equal(t, 31, byMonth[time.March].PaymentDate.Day())
}

func TestMarkPaid(t *testing.T) {
	repo := &memoryRepo{}
	dir := &staticDirectory{companies: []company.Company{{ID: 5, Title: "Acme"}}}
	now := func() time.Time { return time.Date(2023, time.June, 15, 0, 0, 0, 0, time.UTC) }
	svc := NewService(dir, repo, "CYDEO", fee(), now)
	ctx := context.Background()

	_, err := svc.GenerateMonthlyPayments(ctx)
	require.NoError(t, err)

	paid, err := svc.MarkPaid(ctx, repo.payments[0].ID)
	require.NoError(t, err)
	require.True(t, paid.Paid)

	_, err = svc.MarkPaid(ctx, 999)
	require.ErrorIs(t, err, ErrPaymentNotFound)
}
