package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateUniqueNameOnCreate(t *testing.T) {
	repo := newMemoryRepo()
	seedCatalog(repo)
	repo.addProduct(Product{Name: "Widget", CategoryID: 4})
	svc := NewService(repo)
	ctx := context.Background()

	fieldErrs, err := svc.ValidateUniqueNameOnCreate(ctx, "Widget", 4, 1)
	require.NoError(t, err)
	require.Len(t, fieldErrs, 1)
	require.Equal(t, "name", fieldErrs[0].Field)

	fieldErrs, err = svc.ValidateUniqueNameOnCreate(ctx, "Gadget", 4, 1)
	require.NoError(t, err)
	require.False(t, fieldErrs.HasErrors())

	// Same name under a different category passes.
	fieldErrs, err = svc.ValidateUniqueNameOnCreate(ctx, "Widget", 5, 1)
	require.NoError(t, err)
	require.False(t, fieldErrs.HasErrors())
}

func TestValidateUniqueNameOnUpdateSkipsUnchangedRecord(t *testing.T) {
	repo := newMemoryRepo()
	seedCatalog(repo)
	widget := repo.addProduct(Product{Name: "Widget", CategoryID: 4})
	svc := NewService(repo)

	// A no-op save must not collide with the product's own row.
	fieldErrs, err := svc.ValidateUniqueNameOnUpdate(context.Background(), ProductInput{
		ID: widget.ID, Name: "Widget", CategoryID: 4,
	}, 1)
	require.NoError(t, err)
	require.False(t, fieldErrs.HasErrors())
}

func TestValidateUniqueNameOnUpdateDetectsCollision(t *testing.T) {
	repo := newMemoryRepo()
	seedCatalog(repo)
	repo.addProduct(Product{Name: "Widget", CategoryID: 4})
	gadget := repo.addProduct(Product{Name: "Gadget", CategoryID: 4})
	svc := NewService(repo)

	fieldErrs, err := svc.ValidateUniqueNameOnUpdate(context.Background(), ProductInput{
		ID: gadget.ID, Name: "Widget", CategoryID: 4,
	}, 1)
	require.NoError(t, err)
	require.Len(t, fieldErrs, 1)
	require.Equal(t, "name", fieldErrs[0].Field)
}

func TestValidateUniqueNameOnUpdateChecksOnCategoryChange(t *testing.T) {
	repo := newMemoryRepo()
	seedCatalog(repo)
	repo.addProduct(Product{Name: "Widget", CategoryID: 5})
	widget := repo.addProduct(Product{Name: "Widget", CategoryID: 4})
	svc := NewService(repo)

	// Moving into a category that already holds the name collides.
	fieldErrs, err := svc.ValidateUniqueNameOnUpdate(context.Background(), ProductInput{
		ID: widget.ID, Name: "Widget", CategoryID: 5,
	}, 1)
	require.NoError(t, err)
	require.Len(t, fieldErrs, 1)
}

func TestValidateUniqueNameOnUpdateMissingProduct(t *testing.T) {
	repo := newMemoryRepo()
	seedCatalog(repo)
	svc := NewService(repo)

	_, err := svc.ValidateUniqueNameOnUpdate(context.Background(), ProductInput{ID: 77, Name: "Widget", CategoryID: 4}, 1)
	require.ErrorIs(t, err, ErrProductNotFound)
}
