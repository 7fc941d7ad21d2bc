package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anshmittal0811/Royal-Commerce/internal/catalog/domain"
	db "github.com/anshmittal0811/Royal-Commerce/internal/catalog/repository"
)

func setupTestDB(t *testing.T) *db.Repository {
	// Use in-memory database for tests
	repo, err := db.NewRepository(":memory:")
	if err != nil {
		t.Fatalf("Failed to create test repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	if err := repo.RunMigrations("./migrations"); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	return repo
}

func TestGetAllProducts_ReturnsSeededProducts(t *testing.T) {
	repo := setupTestDB(t)

	products, err := repo.GetAllProducts(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 5)
}

func TestGetProduct_NotFound(t *testing.T) {
	repo := setupTestDB(t)

	_, err := repo.GetProduct(context.Background(), 9999)
	assert.ErrorIs(t, err, db.ErrProductNotFound)
}

func TestDecrementStock_ReducesStock(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	before, err := repo.GetProduct(ctx, 1)
	require.NoError(t, err)

	after, err := repo.DecrementStock(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, before.Stock-10, after.Stock)
}

func TestDecrementStock_InsufficientStock(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	before, err := repo.GetProduct(ctx, 1)
	require.NoError(t, err)

	_, err = repo.DecrementStock(ctx, 1, before.Stock+1)
	assert.ErrorIs(t, err, db.ErrInsufficientStock)

	// Stock unchanged on rejection.
	after, err := repo.GetProduct(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, before.Stock, after.Stock)
}

func TestDecrementStock_ProductNotFound(t *testing.T) {
	repo := setupTestDB(t)

	_, err := repo.DecrementStock(context.Background(), 9999, 1)
	assert.ErrorIs(t, err, db.ErrProductNotFound)
}

func TestRestoreStock_MatchesDecrement(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	before, err := repo.GetProduct(ctx, 2)
	require.NoError(t, err)

	_, err = repo.DecrementStock(ctx, 2, 7)
	require.NoError(t, err)

	after, err := repo.RestoreStock(ctx, 2, 7)
	require.NoError(t, err)
	assert.Equal(t, before.Stock, after.Stock)
}

func TestDecrementStock_NeverGoesNegative(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	p, err := repo.CreateProduct(ctx, &domain.Product{Name: "Limited Run", Price: 5.0, Stock: 10})
	require.NoError(t, err)
	require.Equal(t, 10, p.Stock)

	// 20 attempts against 10 units: exactly 10 must lose to the guard.
	failures := 0
	for i := 0; i < 20; i++ {
		if _, err := repo.DecrementStock(ctx, p.ID, 1); err != nil {
			assert.ErrorIs(t, err, db.ErrInsufficientStock)
			failures++
		}
	}
	assert.Equal(t, 10, failures)

	after, err := repo.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, after.Stock)
}

func TestCreateAndUpdateProduct(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	created, err := repo.CreateProduct(ctx, &domain.Product{
		Name:        "Gel Pen",
		Description: "0.5mm black gel pen",
		Price:       2.20,
		Category:    "stationery",
		Stock:       500,
	})
	require.NoError(t, err)
	assert.Equal(t, "Gel Pen", created.Name)

	created.Price = 12.50
	updated, err := repo.UpdateProduct(ctx, created)
	require.NoError(t, err)
	assert.Equal(t, 12.50, updated.Price)
}
