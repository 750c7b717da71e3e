package service

import (
	"context"
	"testing"

	"product-catalog/internal/apperror"
	"product-catalog/internal/domain"
	"product-catalog/internal/repository"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededService(t *testing.T, products []domain.Product) ProductService {
	t.Helper()
	repo := repository.NewMemoryRepository()
	ctx := context.Background()
	for i := range products {
		require.NoError(t, repo.Insert(ctx, &products[i]))
	}
	return NewProductService(repo)
}

func TestProperty_PaginationSizeLaw(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("page size follows min(L, total-(P-1)*L) clamped at 0", prop.ForAll(
		func(total, page, limit int) bool {
			repo := repository.NewMemoryRepository()
			ctx := context.Background()
			for i := 0; i < total; i++ {
				if err := repo.Insert(ctx, &domain.Product{Name: "p", Category: "c"}); err != nil {
					return false
				}
			}
			svc := NewProductService(repo)

			result, err := svc.ListProducts(ctx, "", page, limit)
			if err != nil {
				return false
			}
			if result.Total != total {
				return false
			}

			want := total - (page-1)*limit
			if want > limit {
				want = limit
			}
			if want < 0 {
				want = 0
			}
			return len(result.Items) == want
		},
		gen.IntRange(0, 50),
		gen.IntRange(1, 10),
		gen.IntRange(1, 20),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestListProducts_CategoryFilterIsCaseInsensitive(t *testing.T) {
	svc := seededService(t, []domain.Product{
		{Name: "Laptop", Category: "Electronics", InStock: true},
		{Name: "Phone", Category: "electronics", InStock: true},
		{Name: "Mug", Category: "Kitchen", InStock: false},
	})

	result, err := svc.ListProducts(context.Background(), "ELECTRONICS", 1, 10)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Total)
	assert.Len(t, result.Items, 2)
	assert.Equal(t, "Laptop", result.Items[0].Name)
	assert.Equal(t, "Phone", result.Items[1].Name)
}

func TestListProducts_PageBeyondRangeIsEmptyWithCorrectTotal(t *testing.T) {
	svc := seededService(t, []domain.Product{
		{Name: "A", Category: "Electronics"},
		{Name: "B", Category: "Electronics"},
	})

	result, err := svc.ListProducts(context.Background(), "Electronics", 5, 10)
	require.NoError(t, err)

	assert.Empty(t, result.Items)
	assert.Equal(t, 2, result.Total)
	assert.Equal(t, 5, result.Page)
	assert.Equal(t, 10, result.Limit)
}

func TestSearchProducts_CaseInsensitiveSubstring(t *testing.T) {
	svc := seededService(t, []domain.Product{
		{Name: "Laptop", Category: "Electronics"},
		{Name: "Desk Lamp", Category: "Furniture"},
		{Name: "Phone", Category: "Electronics"},
	})

	matches, err := svc.SearchProducts(context.Background(), "lap")
	require.NoError(t, err)

	// "lap" matches both "Laptop" and "Desk Lamp", in store order
	require.Len(t, matches, 2)
	assert.Equal(t, "Laptop", matches[0].Name)
	assert.Equal(t, "Desk Lamp", matches[1].Name)

	matches, err = svc.SearchProducts(context.Background(), "LAPTOP")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "Laptop", matches[0].Name)
}

func TestSearchProducts_EmptyQueryIsValidationError(t *testing.T) {
	svc := seededService(t, nil)

	for _, q := range []string{"", "   "} {
		_, err := svc.SearchProducts(context.Background(), q)
		require.Error(t, err)
		assert.Equal(t, 400, apperror.Status(err))
	}
}

func TestGetStats_EmptyStore(t *testing.T) {
	svc := seededService(t, nil)

	stats, err := svc.GetStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, stats.Total)
	assert.Equal(t, 0, stats.InStock)
	assert.Equal(t, 0, stats.OutOfStock)
	assert.NotNil(t, stats.ByCategory)
	assert.Empty(t, stats.ByCategory)
}

func TestGetStats_CountsByCategoryAndStock(t *testing.T) {
	svc := seededService(t, []domain.Product{
		{Name: "Laptop", Category: "Electronics", InStock: true},
		{Name: "Phone", Category: "Electronics", InStock: false},
		{Name: "Mug", Category: "Kitchen", InStock: true},
	})

	stats, err := svc.GetStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.InStock)
	assert.Equal(t, 1, stats.OutOfStock)
	assert.Equal(t, map[string]int{"Electronics": 2, "Kitchen": 1}, stats.ByCategory)
}

func TestGetProduct_UnknownIDIsNotFound(t *testing.T) {
	svc := seededService(t, nil)

	for _, id := range []string{"nonexistent-id", "2b8e7f3a-0000-0000-0000-000000000000"} {
		_, err := svc.GetProduct(context.Background(), id)
		require.Error(t, err)
		assert.Equal(t, 404, apperror.Status(err))
	}
}

func TestCreateUpdateDeleteFlow(t *testing.T) {
	svc := seededService(t, nil)
	ctx := context.Background()

	desc := "Mechanical keyboard"
	price := 120.0
	inStock := true
	created, err := svc.CreateProduct(ctx, &domain.ProductPayload{
		Name:        "Keyboard",
		Description: &desc,
		Price:       &price,
		Category:    "Electronics",
		InStock:     &inStock,
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	newDesc := "Wireless keyboard"
	newPrice := 150.0
	outOfStock := false
	updated, err := svc.UpdateProduct(ctx, created.ID.String(), &domain.ProductPayload{
		Name:        "Keyboard v2",
		Description: &newDesc,
		Price:       &newPrice,
		Category:    "Electronics",
		InStock:     &outOfStock,
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Keyboard v2", updated.Name)
	assert.Equal(t, 150.0, updated.Price)
	assert.False(t, updated.InStock)

	fetched, err := svc.GetProduct(ctx, created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "Keyboard v2", fetched.Name)

	removed, err := svc.DeleteProduct(ctx, created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, created.ID, removed.ID)

	_, err = svc.GetProduct(ctx, created.ID.String())
	require.Error(t, err)
	assert.Equal(t, 404, apperror.Status(err))
}
