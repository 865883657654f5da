package billing

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerkeep/ledgerkeep/internal/company"
)

// CompanyDirectory lists the tenants to bill.
type CompanyDirectory interface {
	List(ctx context.Context) ([]company.Company, error)
}

// RepositoryPort abstracts payment persistence.
type RepositoryPort interface {
	Insert(ctx context.Context, p Payment) (int64, error)
	ListByCompanyYear(ctx context.Context, companyID int64, year int) ([]Payment, error)
	GetByID(ctx context.Context, id int64) (Payment, error)
	MarkPaid(ctx context.Context, id int64) error
}

// Service generates and tracks subscription payments.
type Service struct {
	companies  CompanyDirectory
	repo       RepositoryPort
	ownerTitle string
	fee        decimal.Decimal
	now        func() time.Time
}

// NewService builds Service. ownerTitle names the platform-owner company
// that is never billed; the clock is injectable for tests.
func NewService(companies CompanyDirectory, repo RepositoryPort, ownerTitle string, fee decimal.Decimal, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{companies: companies, repo: repo, ownerTitle: ownerTitle, fee: fee, now: now}
}

// GenerateMonthlyPayments creates one unpaid payment per calendar month of
// the current year for every company except the platform owner. The method
// is deliberately not idempotent; the scheduler guarantees at-most-once-
// per-year invocation.
func (s *Service) GenerateMonthlyPayments(ctx context.Context) (int, error) {
	companies, err := s.companies.List(ctx)
	if err != nil {
		return 0, err
	}

	today := s.now()
	year := today.Year()
	created := 0
	for _, c := range companies {
		if c.Title == s.ownerTitle {
			continue
		}
		for month := time.January; month <= time.December; month++ {
			payment := Payment{
				CompanyID:   c.ID,
				Year:        year,
				Month:       month,
				Amount:      s.fee,
				Paid:        false,
				PaymentDate: withMonth(today, month),
			}
			if _, err := s.repo.Insert(ctx, payment); err != nil {
				return created, err
			}
			created++
		}
	}
	return created, nil
}

// ListPayments returns the company's payments for one year.
func (s *Service) ListPayments(ctx context.Context, companyID int64, year int) ([]Payment, error) {
	if year == 0 {
		year = s.now().Year()
	}
	return s.repo.ListByCompanyYear(ctx, companyID, year)
}

// MarkPaid flags one payment as settled.
func (s *Service) MarkPaid(ctx context.Context, id int64) (Payment, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return Payment{}, err
	}
	if err := s.repo.MarkPaid(ctx, id); err != nil {
		return Payment{}, err
	}
	return s.repo.GetByID(ctx, id)
}

// withMonth replaces the month of a date, clamping the day to the last
// valid day of the target month (Jan 31 -> Feb 28).
func withMonth(t time.Time, month time.Month) time.Time {
	day := t.Day()
	if last := lastDayOfMonth(t.Year(), month); day > last {
		day = last
	}
	return time.Date(t.Year(), month, day, 0, 0, 0, 0, t.Location())
}

func lastDayOfMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
