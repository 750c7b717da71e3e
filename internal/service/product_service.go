package service

import (
	"context"
	"fmt"
	"strings"

	"product-catalog/internal/apperror"
	"product-catalog/internal/domain"
	"product-catalog/internal/repository"

	"github.com/google/uuid"
)

// ListResult carries one page of products together with the size of the
// filtered sequence before slicing.
type ListResult struct {
	Items []domain.Product
	Total int
	Page  int
	Limit int
}

// ProductService defines the interface for product business logic
type ProductService interface {
	ListProducts(ctx context.Context, category string, page, limit int) (*ListResult, error)
	SearchProducts(ctx context.Context, query string) ([]domain.Product, error)
	GetStats(ctx context.Context) (*domain.Stats, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	CreateProduct(ctx context.Context, payload *domain.ProductPayload) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id string, payload *domain.ProductPayload) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id string) (*domain.Product, error)
}

type productService struct {
	repo repository.ProductRepository
}

// NewProductService creates a new instance of ProductService
func NewProductService(repo repository.ProductRepository) ProductService {
	return &productService{repo: repo}
}

// ListProducts returns one page of the catalog, optionally filtered by
// category (case-insensitive exact match). Pagination is computed as
// skip = (page-1)*limit over the filtered sequence; page and limit are
// deliberately not clamped, so an out-of-range page yields empty items
// with the correct total.
func (s *productService) ListProducts(ctx context.Context, category string, page, limit int) (*ListResult, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	filtered := products
	if category != "" {
		filtered = make([]domain.Product, 0, len(products))
		for _, p := range products {
			if strings.EqualFold(p.Category, category) {
				filtered = append(filtered, p)
			}
		}
	}

	total := len(filtered)
	skip := (page - 1) * limit

	var items []domain.Product
	if skip >= 0 && skip < total {
		end := skip + limit
		if end > total || end < skip {
			end = total
		}
		items = filtered[skip:end]
	} else {
		items = []domain.Product{}
	}

	return &ListResult{Items: items, Total: total, Page: page, Limit: limit}, nil
}

// SearchProducts returns all products whose name contains the query,
// case-insensitive, in store order. An empty query is a validation error.
func (s *productService) SearchProducts(ctx context.Context, query string) ([]domain.Product, error) {
	if strings.TrimSpace(query) == "" {
		return nil, apperror.Validation("query parameter 'q' is required")
	}

	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}

	q := strings.ToLower(query)
	matches := []domain.Product{}
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), q) {
			matches = append(matches, p)
		}
	}
	return matches, nil
}

// GetStats aggregates catalog counts in a single pass. ByCategory is
// keyed by the stored category literal and is never nil.
func (s *productService) GetStats(ctx context.Context) (*domain.Stats, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute stats: %w", err)
	}

	stats := &domain.Stats{ByCategory: map[string]int{}}
	for _, p := range products {
		stats.Total++
		if p.InStock {
			stats.InStock++
		} else {
			stats.OutOfStock++
		}
		stats.ByCategory[p.Category]++
	}
	return stats, nil
}

// GetProduct retrieves a single product by its ID string
func (s *productService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	pid, err := s.parseID(id)
	if err != nil {
		return nil, err
	}

	p, err := s.repo.FindByID(ctx, pid)
	if err != nil {
		return nil, s.translate(err, id)
	}
	return p, nil
}

// CreateProduct inserts a new product built from the validated payload.
// The ID is assigned by the store.
func (s *productService) CreateProduct(ctx context.Context, payload *domain.ProductPayload) (*domain.Product, error) {
	p := payloadToProduct(payload)
	if err := s.repo.Insert(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return p, nil
}

// UpdateProduct fully replaces the mutable fields of an existing product
func (s *productService) UpdateProduct(ctx context.Context, id string, payload *domain.ProductPayload) (*domain.Product, error) {
	pid, err := s.parseID(id)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.Replace(ctx, pid, payloadToProduct(payload))
	if err != nil {
		return nil, s.translate(err, id)
	}
	return updated, nil
}

// DeleteProduct removes a product permanently and returns the removed record
func (s *productService) DeleteProduct(ctx context.Context, id string) (*domain.Product, error) {
	pid, err := s.parseID(id)
	if err != nil {
		return nil, err
	}

	removed, err := s.repo.Remove(ctx, pid)
	if err != nil {
		return nil, s.translate(err, id)
	}
	return removed, nil
}

// parseID maps a malformed ID to the same not-found outcome as an unknown
// one, since no product can have it.
func (s *productService) parseID(id string) (uuid.UUID, error) {
	pid, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, apperror.NotFound(fmt.Sprintf("product with id %s not found", id))
	}
	return pid, nil
}

func (s *productService) translate(err error, id string) error {
	if err == repository.ErrProductNotFound {
		return apperror.NotFound(fmt.Sprintf("product with id %s not found", id))
	}
	return err
}

func payloadToProduct(payload *domain.ProductPayload) *domain.Product {
	return &domain.Product{
		Name:        payload.Name,
		Description: *payload.Description,
		Price:       *payload.Price,
		Category:    payload.Category,
		InStock:     *payload.InStock,
	}
}
