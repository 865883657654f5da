package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type memoryRepo struct {
	products   map[int64]Product
	categories map[int64]Category
	lines      map[int64][]LineProduct // by invoice id
	hasLines   map[int64]bool          // by product id
	nextID     int64
}

type memoryTx struct {
	repo *memoryRepo
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		products:   map[int64]Product{},
		categories: map[int64]Category{},
		lines:      map[int64][]LineProduct{},
		hasLines:   map[int64]bool{},
	}
}

func (r *memoryRepo) addProduct(p Product) Product {
	if p.ID == 0 {
		r.nextID++
		p.ID = r.nextID
	}
	r.products[p.ID] = p
	return p
}

func (r *memoryRepo) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	return fn(ctx, &memoryTx{repo: r})
}

func (r *memoryRepo) GetProduct(ctx context.Context, id int64) (Product, error) {
	p, ok := r.products[id]
	if !ok || p.Deleted {
		return Product{}, ErrProductNotFound
	}
	return p, nil
}

func (r *memoryRepo) ListByCompany(ctx context.Context, companyID int64) ([]Product, error) {
	out := []Product{}
	for id := int64(1); id <= r.nextID; id++ {
		p, ok := r.products[id]
		if !ok || p.Deleted {
			continue
		}
		if cat, ok := r.categories[p.CategoryID]; ok && cat.CompanyID == companyID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memoryRepo) ListByCategory(ctx context.Context, categoryID int64) ([]Product, error) {
	out := []Product{}
	for id := int64(1); id <= r.nextID; id++ {
		if p, ok := r.products[id]; ok && !p.Deleted && p.CategoryID == categoryID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memoryRepo) ListInStock(ctx context.Context, companyID int64) ([]Product, error) {
	products, _ := r.ListByCompany(ctx, companyID)
	out := []Product{}
	for _, p := range products {
		if p.QuantityInStock > 0 {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memoryRepo) ExistsByNameCategoryCompany(ctx context.Context, name string, categoryID, companyID int64) (bool, error) {
	cat, ok := r.categories[categoryID]
	if !ok || cat.CompanyID != companyID {
		return false, nil
	}
	for _, p := range r.products {
		if !p.Deleted && p.Name == name && p.CategoryID == categoryID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryRepo) InsertProduct(ctx context.Context, p Product) (int64, error) {
	return r.addProduct(p).ID, nil
}

func (r *memoryRepo) UpdateProduct(ctx context.Context, p Product) error {
	if _, ok := r.products[p.ID]; !ok {
		return ErrProductNotFound
	}
	r.products[p.ID] = p
	return nil
}

func (r *memoryRepo) SoftDeleteProduct(ctx context.Context, id int64) error {
	p, ok := r.products[id]
	if !ok {
		return ErrProductNotFound
	}
	p.Deleted = true
	r.products[id] = p
	return nil
}

func (r *memoryRepo) HasInvoiceLines(ctx context.Context, productID int64) (bool, error) {
	return r.hasLines[productID], nil
}

func (r *memoryRepo) LineProducts(ctx context.Context, invoiceID int64) ([]LineProduct, error) {
	return r.lines[invoiceID], nil
}

func (r *memoryRepo) GetCategory(ctx context.Context, id int64) (Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return Category{}, ErrCategoryNotFound
	}
	return c, nil
}

func (r *memoryRepo) ListCategories(ctx context.Context, companyID int64) ([]CategoryView, error) {
	out := []CategoryView{}
	for _, c := range r.categories {
		if c.CompanyID == companyID {
			out = append(out, CategoryView{Category: c})
		}
	}
	return out, nil
}

func (tx *memoryTx) GetProductForUpdate(ctx context.Context, id int64) (Product, error) {
	return tx.repo.GetProduct(ctx, id)
}

func (tx *memoryTx) SetQuantity(ctx context.Context, id int64, quantity int) error {
	p, ok := tx.repo.products[id]
	if !ok {
		return ErrProductNotFound
	}
	p.QuantityInStock = quantity
	tx.repo.products[id] = p
	return nil
}

func seedCatalog(repo *memoryRepo) {
	repo.categories[4] = Category{ID: 4, Description: "Hardware", CompanyID: 1}
	repo.categories[5] = Category{ID: 5, Description: "Paint", CompanyID: 1}
}

func TestDecreaseStock(t *testing.T) {
	repo := newMemoryRepo()
	seedCatalog(repo)
	widget := repo.addProduct(Product{Name: "Widget", CategoryID: 4, QuantityInStock: 10, LowLimitAlert: 2})
	svc := NewService(repo)
	ctx := context.Background()

	level, err := svc.DecreaseStock(ctx, widget.ID, 4)
	require.NoError(t, err)
	require.Equal(t, 6, level)

	level, err = svc.DecreaseStock(ctx, widget.ID, 6)
	require.NoError(t, err)
	require.Equal(t, 0, level)
}

func TestDecreaseStockNeverGoesNegative(t *testing.T) {
	repo := newMemoryRepo()
	seedCatalog(repo)
	widget := repo.addProduct(Product{Name: "Widget", CategoryID: 4, QuantityInStock: 5})
	svc := NewService(repo)
	ctx := context.Background()

	_, err := svc.DecreaseStock(ctx, widget.ID, 6)
	require.ErrorIs(t, err, ErrInvalidQuantity)

	stored, err := svc.FindByID(ctx, widget.ID)
	require.NoError(t, err)
	require.Equal(t, 5, stored.QuantityInStock)
}

func TestDecreaseStockUnknownProduct(t *testing.T) {
	svc := NewService(newMemoryRepo())
	_, err := svc.DecreaseStock(context.Background(), 99, 1)
	require.ErrorIs(t, err, ErrProductNotFound)
}

func TestIncreaseThenDecreaseRoundTrip(t *testing.T) {
	repo := newMemoryRepo()
	seedCatalog(repo)
	widget := repo.addProduct(Product{Name: "Widget", CategoryID: 4, QuantityInStock: 7})
	svc := NewService(repo)
	ctx := context.Background()

	level, err := svc.IncreaseStock(ctx, widget.ID, 13)
	require.NoError(t, err)
	require.Equal(t, 20, level)

	level, err = svc.DecreaseStock(ctx, widget.ID, 13)
	require.NoError(t, err)
	require.Equal(t, 7, level)
}

func TestIncreaseStockUnknownProduct(t *testing.T) {
	svc := NewService(newMemoryRepo())
	_, err := svc.IncreaseStock(context.Background(), 42, 1)
	require.ErrorIs(t, err, ErrProductNotFound)
}

func TestCheckLowLimitAlert(t *testing.T) {
	repo := newMemoryRepo()
	repo.lines[7] = []LineProduct{
		{ProductID: 1, Name: "Widget", QuantityInStock: 1, LowLimitAlert: 5},
		{ProductID: 2, Name: "Gadget", QuantityInStock: 10, LowLimitAlert: 5},
		{ProductID: 3, Name: "Sprocket", QuantityInStock: 0, LowLimitAlert: 3},
	}
	svc := NewService(repo)

	err := svc.CheckLowLimitAlert(context.Background(), 7)
	require.Error(t, err)
	require.True(t, IsLowStock(err))

	var lowStock *LowStockError
	require.ErrorAs(t, err, &lowStock)
	require.Equal(t, []string{"Widget", "Sprocket"}, lowStock.Products)
	require.Equal(t, "stock of Widget, Sprocket decreased below low limit", err.Error())
}

func TestCheckLowLimitAlertAtThresholdIsQuiet(t *testing.T) {
	repo := newMemoryRepo()
	repo.lines[7] = []LineProduct{
		{ProductID: 1, Name: "Widget", QuantityInStock: 5, LowLimitAlert: 5},
	}
	svc := NewService(repo)
	require.NoError(t, svc.CheckLowLimitAlert(context.Background(), 7))
}

func TestDeleteRequiresZeroStockAndNoInvoices(t *testing.T) {
	repo := newMemoryRepo()
	seedCatalog(repo)
	stocked := repo.addProduct(Product{Name: "Stocked", CategoryID: 4, QuantityInStock: 3})
	invoiced := repo.addProduct(Product{Name: "Invoiced", CategoryID: 4})
	clean := repo.addProduct(Product{Name: "Clean", CategoryID: 4})
	repo.hasLines[invoiced.ID] = true
	svc := NewService(repo)
	ctx := context.Background()

	require.ErrorIs(t, svc.Delete(ctx, stocked.ID), ErrProductInUse)
	require.ErrorIs(t, svc.Delete(ctx, invoiced.ID), ErrProductInUse)

	require.NoError(t, svc.Delete(ctx, clean.ID))
	_, err := svc.FindByID(ctx, clean.ID)
	require.ErrorIs(t, err, ErrProductNotFound)
}

func TestUpdatePreservesStockQuantity(t *testing.T) {
	repo := newMemoryRepo()
	seedCatalog(repo)
	widget := repo.addProduct(Product{Name: "Widget", Unit: UnitPcs, CategoryID: 4, QuantityInStock: 42, LowLimitAlert: 5})
	svc := NewService(repo)

	updated, fieldErrs, err := svc.Update(context.Background(), ProductInput{
		ID: widget.ID, Name: "Widget XL", Unit: UnitPcs, CategoryID: 4, LowLimitAlert: 8,
	}, 1)
	require.NoError(t, err)
	require.False(t, fieldErrs.HasErrors())
	require.Equal(t, "Widget XL", updated.Name)
	require.Equal(t, 42, updated.QuantityInStock)
}

func TestCreateRejectsForeignCategory(t *testing.T) {
	repo := newMemoryRepo()
	seedCatalog(repo)
	repo.categories[9] = Category{ID: 9, Description: "Other", CompanyID: 2}
	svc := NewService(repo)

	_, _, err := svc.Create(context.Background(), ProductInput{Name: "Widget", Unit: UnitPcs, CategoryID: 9}, 1)
	require.True(t, errors.Is(err, ErrCategoryNotFound))
}
