package invoice

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineInput carries one product row for invoice creation.
type LineInput struct {
	ProductID int64
	Quantity  int
	Price     decimal.Decimal
	TaxRate   int
}

// CreateInput carries the fields needed to open a draft invoice.
type CreateInput struct {
	Type      Type
	PartnerID int64
	Lines     []LineInput
}

// Service coordinates invoice operations.
type Service struct {
	repo  RepositoryPort
	stock StockLedger
	now   func() time.Time
}

// NewService builds Service. The clock is injectable for tests.
func NewService(repo RepositoryPort, stock StockLedger, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{repo: repo, stock: stock, now: now}
}

// FindByID returns one invoice.
func (s *Service) FindByID(ctx context.Context, id int64) (Invoice, error) {
	return s.repo.GetInvoice(ctx, id)
}

// List returns the company's invoices of the given type.
func (s *Service) List(ctx context.Context, companyID int64, invoiceType Type) ([]Invoice, error) {
	return s.repo.ListByCompany(ctx, companyID, invoiceType)
}

// Lines returns the product rows of one invoice.
func (s *Service) Lines(ctx context.Context, invoiceID int64) ([]Line, error) {
	if _, err := s.repo.GetInvoice(ctx, invoiceID); err != nil {
		return nil, err
	}
	return s.repo.GetLines(ctx, invoiceID)
}

// Create opens a draft invoice with a generated invoice number and totals
// aggregated from its lines.
func (s *Service) Create(ctx context.Context, companyID int64, input CreateInput) (Invoice, error) {
	if len(input.Lines) == 0 {
		return Invoice{}, ErrNoLines
	}
	lines := make([]Line, 0, len(input.Lines))
	price := decimal.Zero
	tax := decimal.Zero
	for _, in := range input.Lines {
		line := Line{
			ProductID: in.ProductID,
			Quantity:  in.Quantity,
			Price:     in.Price,
			TaxRate:   in.TaxRate,
		}
		line.Total = line.LineTotal()
		price = price.Add(line.Total)
		tax = tax.Add(line.TaxAmount())
		lines = append(lines, line)
	}
	inv := Invoice{
		No:        newInvoiceNo(input.Type),
		Type:      input.Type,
		Status:    StatusDraft,
		Date:      s.now(),
		CompanyID: companyID,
		PartnerID: input.PartnerID,
		Price:     price,
		Tax:       tax,
		Total:     price.Add(tax),
	}
	id, err := s.repo.InsertInvoice(ctx, inv, lines)
	if err != nil {
		return Invoice{}, err
	}
	inv.ID = id
	return inv, nil
}

// Approve moves a draft invoice to APPROVED and applies its lines to the
// stock ledger: sales decrease stock, purchases increase it. After a sales
// approval the low-limit check runs; its *catalog.LowStockError return is
// advisory and reported alongside the already-committed approval.
func (s *Service) Approve(ctx context.Context, invoiceID int64) (Invoice, error) {
	inv, err := s.repo.GetInvoice(ctx, invoiceID)
	if err != nil {
		return Invoice{}, err
	}
	if inv.Status != StatusDraft {
		return Invoice{}, ErrAlreadyApproved
	}
	lines, err := s.repo.GetLines(ctx, invoiceID)
	if err != nil {
		return Invoice{}, err
	}
	if len(lines) == 0 {
		return Invoice{}, ErrNoLines
	}

	for _, line := range lines {
		switch inv.Type {
		case TypeSales:
			_, err = s.stock.DecreaseStock(ctx, line.ProductID, line.Quantity)
		case TypePurchase:
			_, err = s.stock.IncreaseStock(ctx, line.ProductID, line.Quantity)
		}
		if err != nil {
			return Invoice{}, err
		}
	}

	if inv.Type == TypeSales {
		if err := s.repo.SetSalesLineProfit(ctx, invoiceID); err != nil {
			return Invoice{}, err
		}
	}
	if err := s.repo.MarkApproved(ctx, invoiceID); err != nil {
		return Invoice{}, err
	}
	inv.Status = StatusApproved

	if inv.Type == TypeSales {
		if err := s.stock.CheckLowLimitAlert(ctx, invoiceID); err != nil {
			return inv, err
		}
	}
	return inv, nil
}

// Delete soft-deletes a draft invoice.
func (s *Service) Delete(ctx context.Context, id int64) error {
	inv, err := s.repo.GetInvoice(ctx, id)
	if err != nil {
		return err
	}
	if inv.Status != StatusDraft {
		return ErrAlreadyApproved
	}
	return s.repo.SoftDelete(ctx, id)
}

func newInvoiceNo(invoiceType Type) string {
	prefix := "P-INV"
	if invoiceType == TypeSales {
		prefix = "S-INV"
	}
	short := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("%s-%s", prefix, short)
}
