package repository

import (
	"context"
	"errors"
	"sync"

	"product-catalog/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	List(ctx context.Context) ([]domain.Product, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	Insert(ctx context.Context, product *domain.Product) error
	Replace(ctx context.Context, id uuid.UUID, product *domain.Product) (*domain.Product, error)
	Remove(ctx context.Context, id uuid.UUID) (*domain.Product, error)
}

// memoryRepository keeps products in an ordered slice. Insertion order is
// preserved and defines the default listing order. The mutex covers the
// multi-goroutine net/http host; there is no cross-request coordination
// beyond it.
type memoryRepository struct {
	mu       sync.RWMutex
	products []domain.Product
}

// NewMemoryRepository creates an empty in-memory ProductRepository
func NewMemoryRepository() ProductRepository {
	return &memoryRepository{}
}

// List returns a copy of the full sequence in insertion order
func (r *memoryRepository) List(ctx context.Context) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Product, len(r.products))
	copy(out, r.products)
	return out, nil
}

// FindByID retrieves a product by ID with a linear scan
func (r *memoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.products {
		if r.products[i].ID == id {
			p := r.products[i]
			return &p, nil
		}
	}
	return nil, ErrProductNotFound
}

// Insert assigns a fresh unique ID and appends the product to the end of
// the sequence
func (r *memoryRepository) Insert(ctx context.Context, product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	product.ID = uuid.New()
	r.products = append(r.products, *product)
	return nil
}

// Replace locates a product by ID and overwrites all mutable fields in
// place. The ID and position in the sequence are preserved.
func (r *memoryRepository) Replace(ctx context.Context, id uuid.UUID, product *domain.Product) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.products {
		if r.products[i].ID == id {
			r.products[i].Name = product.Name
			r.products[i].Description = product.Description
			r.products[i].Price = product.Price
			r.products[i].Category = product.Category
			r.products[i].InStock = product.InStock
			p := r.products[i]
			return &p, nil
		}
	}
	return nil, ErrProductNotFound
}

// Remove deletes a product by ID and returns the removed record
func (r *memoryRepository) Remove(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.products {
		if r.products[i].ID == id {
			p := r.products[i]
			r.products = append(r.products[:i], r.products[i+1:]...)
			return &p, nil
		}
	}
	return nil, ErrProductNotFound
}
