package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ledgerkeep/ledgerkeep/internal/shared"
)

// ProductInput carries the mutable fields of a product for create/update.
type ProductInput struct {
	ID            int64
	Name          string
	Unit          ProductUnit
	CategoryID    int64
	LowLimitAlert int
}

// Service coordinates catalog operations and the stock ledger.
type Service struct {
	repo RepositoryPort
}

// NewService builds Service.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// FindByID returns one product.
func (s *Service) FindByID(ctx context.Context, id int64) (Product, error) {
	return s.repo.GetProduct(ctx, id)
}

// ListProducts returns every active product of the company.
func (s *Service) ListProducts(ctx context.Context, companyID int64) ([]Product, error) {
	return s.repo.ListByCompany(ctx, companyID)
}

// ListByCategory returns the active products of one category.
func (s *Service) ListByCategory(ctx context.Context, categoryID int64) ([]Product, error) {
	if _, err := s.repo.GetCategory(ctx, categoryID); err != nil {
		return nil, err
	}
	return s.repo.ListByCategory(ctx, categoryID)
}

// ListInStock returns the company's products with quantity above zero, for
// invoice line pickers.
func (s *Service) ListInStock(ctx context.Context, companyID int64) ([]Product, error) {
	return s.repo.ListInStock(ctx, companyID)
}

// ListCategories returns the company's categories with product counts.
func (s *Service) ListCategories(ctx context.Context, companyID int64) ([]CategoryView, error) {
	return s.repo.ListCategories(ctx, companyID)
}

// ValidateUniqueNameOnCreate reports a "name" field error when an active
// product with the same name already exists under the category and company.
func (s *Service) ValidateUniqueNameOnCreate(ctx context.Context, name string, categoryID, companyID int64) (shared.FieldErrors, error) {
	var fieldErrs shared.FieldErrors
	if categoryID == 0 {
		return fieldErrs, nil
	}
	exists, err := s.repo.ExistsByNameCategoryCompany(ctx, name, categoryID, companyID)
	if err != nil {
		return nil, err
	}
	if exists {
		fieldErrs.Add("name", fmt.Sprintf("Product name %q is already in use for this company.", name))
	}
	return fieldErrs, nil
}

// ValidateUniqueNameOnUpdate runs the uniqueness check only when the name or
// the category description actually changed, so a no-op save does not
// collide with the product's own row.
func (s *Service) ValidateUniqueNameOnUpdate(ctx context.Context, updated ProductInput, companyID int64) (shared.FieldErrors, error) {
	var fieldErrs shared.FieldErrors
	old, err := s.repo.GetProduct(ctx, updated.ID)
	if err != nil {
		return nil, err
	}
	if updated.CategoryID == 0 {
		return fieldErrs, nil
	}
	oldCategory, err := s.repo.GetCategory(ctx, old.CategoryID)
	if err != nil {
		return nil, err
	}
	newCategory, err := s.repo.GetCategory(ctx, updated.CategoryID)
	if err != nil {
		return nil, err
	}
	if newCategory.Description == oldCategory.Description && updated.Name == old.Name {
		return fieldErrs, nil
	}
	exists, err := s.repo.ExistsByNameCategoryCompany(ctx, updated.Name, updated.CategoryID, companyID)
	if err != nil {
		return nil, err
	}
	if exists {
		fieldErrs.Add("name", fmt.Sprintf("Product name %q is already in use for this company.", updated.Name))
	}
	return fieldErrs, nil
}

// Create validates and stores a new product with zero stock.
func (s *Service) Create(ctx context.Context, input ProductInput, companyID int64) (Product, shared.FieldErrors, error) {
	if strings.TrimSpace(input.Name) == "" {
		var fieldErrs shared.FieldErrors
		fieldErrs.Add("name", "Product name is a required field.")
		return Product{}, fieldErrs, nil
	}
	category, err := s.repo.GetCategory(ctx, input.CategoryID)
	if err != nil {
		return Product{}, nil, err
	}
	if category.CompanyID != companyID {
		return Product{}, nil, ErrCategoryNotFound
	}
	fieldErrs, err := s.ValidateUniqueNameOnCreate(ctx, input.Name, input.CategoryID, companyID)
	if err != nil {
		return Product{}, nil, err
	}
	if fieldErrs.HasErrors() {
		return Product{}, fieldErrs, nil
	}
	product := Product{
		Name:          input.Name,
		Unit:          input.Unit,
		CategoryID:    input.CategoryID,
		LowLimitAlert: input.LowLimitAlert,
	}
	id, err := s.repo.InsertProduct(ctx, product)
	if err != nil {
		return Product{}, nil, err
	}
	product.ID = id
	return product, nil, nil
}

// Update validates and stores product changes. The stock quantity is always
// preserved from the stored row; only the ledger mutates it.
func (s *Service) Update(ctx context.Context, input ProductInput, companyID int64) (Product, shared.FieldErrors, error) {
	old, err := s.repo.GetProduct(ctx, input.ID)
	if err != nil {
		return Product{}, nil, err
	}
	fieldErrs, err := s.ValidateUniqueNameOnUpdate(ctx, input, companyID)
	if err != nil {
		return Product{}, nil, err
	}
	if fieldErrs.HasErrors() {
		return Product{}, fieldErrs, nil
	}
	product := Product{
		ID:              input.ID,
		Name:            input.Name,
		Unit:            input.Unit,
		CategoryID:      input.CategoryID,
		QuantityInStock: old.QuantityInStock,
		LowLimitAlert:   input.LowLimitAlert,
	}
	if err := s.repo.UpdateProduct(ctx, product); err != nil {
		return Product{}, nil, err
	}
	return product, nil, nil
}

// Delete soft-deletes a product. Allowed only when the product holds no
// stock and appears on no invoice line.
func (s *Service) Delete(ctx context.Context, id int64) error {
	product, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		return err
	}
	if product.QuantityInStock != 0 {
		return ErrProductInUse
	}
	hasLines, err := s.repo.HasInvoiceLines(ctx, id)
	if err != nil {
		return err
	}
	if hasLines {
		return ErrProductInUse
	}
	return s.repo.SoftDeleteProduct(ctx, id)
}

// DecreaseStock atomically removes quantity from a product's stock and
// returns the new level. Stock never goes negative; a failing decrease
// leaves it unchanged.
func (s *Service) DecreaseStock(ctx context.Context, productID int64, quantity int) (int, error) {
	if quantity < 0 {
		return 0, ErrInvalidQuantity
	}
	var level int
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		product, err := tx.GetProductForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		next := product.QuantityInStock - quantity
		if next < 0 {
			return ErrInvalidQuantity
		}
		if err := tx.SetQuantity(ctx, productID, next); err != nil {
			return err
		}
		level = next
		return nil
	})
	return level, err
}

// IncreaseStock atomically adds quantity to a product's stock and returns
// the new level. There is no upper bound.
func (s *Service) IncreaseStock(ctx context.Context, productID int64, quantity int) (int, error) {
	if quantity < 0 {
		return 0, ErrInvalidQuantity
	}
	var level int
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		product, err := tx.GetProductForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		next := product.QuantityInStock + quantity
		if err := tx.SetQuantity(ctx, productID, next); err != nil {
			return err
		}
		level = next
		return nil
	})
	return level, err
}

// CheckLowLimitAlert inspects every line of the invoice and reports the
// products whose stock fell below their reorder threshold. The returned
// *LowStockError is advisory; the stock mutation that triggered the check
// has already been committed.
func (s *Service) CheckLowLimitAlert(ctx context.Context, invoiceID int64) error {
	lines, err := s.repo.LineProducts(ctx, invoiceID)
	if err != nil {
		return err
	}
	var below []string
	for _, line := range lines {
		if line.QuantityInStock < line.LowLimitAlert {
			below = append(below, line.Name)
		}
	}
	if len(below) > 0 {
		return &LowStockError{Products: below}
	}
	return nil
}

// IsLowStock reports whether err is the advisory low-stock alert.
func IsLowStock(err error) bool {
	var lowStock *LowStockError
	return errors.As(err, &lowStock)
}
