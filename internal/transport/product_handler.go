package transport

import (
	"net/http"
	"strconv"

	"product-catalog/internal/domain"
	"product-catalog/internal/middleware"
	"product-catalog/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

// ListResponse is the paginated listing envelope
type ListResponse struct {
	Success bool             `json:"success"`
	Count   int              `json:"count"`
	Total   int              `json:"total"`
	Page    int              `json:"page"`
	Limit   int              `json:"limit"`
	Data    []domain.Product `json:"data"`
}

// SearchResponse is the search result envelope
type SearchResponse struct {
	Success bool             `json:"success"`
	Count   int              `json:"count"`
	Data    []domain.Product `json:"data"`
}

// DataResponse wraps a single entity or aggregate
type DataResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

// MessageResponse wraps a mutation result with a confirmation message
type MessageResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// ProductHandler handles HTTP requests for product operations
type ProductHandler struct {
	service service.ProductService
	logger  *zap.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(service service.ProductService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers all product routes. Mutating verbs are wrapped
// in the API key gate; read-only verbs bypass it. The literal /search and
// /stats routes are registered ahead of the parametric /{id} route.
func (h *ProductHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/products", func(r chi.Router) {
		// Public routes
		r.Get("/search", h.Search)
		r.Get("/stats", h.Stats)
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Post("/", h.Create)
			r.Put("/{id}", h.Update)
			r.Delete("/{id}", h.Delete)
		})
	})
}

// List handles GET /api/products with optional category filter and pagination
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	page := queryInt(r, "page", defaultPage)
	limit := queryInt(r, "limit", defaultLimit)

	result, err := h.service.ListProducts(r.Context(), category, page, limit)
	if err != nil {
		h.logger.Error("List products failed", zap.Error(err))
		middleware.RespondWithAppError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, ListResponse{
		Success: true,
		Count:   len(result.Items),
		Total:   result.Total,
		Page:    result.Page,
		Limit:   result.Limit,
		Data:    result.Items,
	})
}

// Search handles GET /api/products/search?q=
func (h *ProductHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	matches, err := h.service.SearchProducts(r.Context(), query)
	if err != nil {
		middleware.RespondWithAppError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, SearchResponse{
		Success: true,
		Count:   len(matches),
		Data:    matches,
	})
}

// Stats handles GET /api/products/stats
func (h *ProductHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.GetStats(r.Context())
	if err != nil {
		h.logger.Error("Stats aggregation failed", zap.Error(err))
		middleware.RespondWithAppError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, DataResponse{Success: true, Data: stats})
}

// Get handles GET /api/products/{id}
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, err := h.service.GetProduct(r.Context(), id)
	if err != nil {
		middleware.RespondWithAppError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, DataResponse{Success: true, Data: p})
}

// Create handles POST /api/products
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload domain.ProductPayload
	if err := middleware.DecodeAndValidate(r, &payload); err != nil {
		h.logger.Debug("Create product validation failed", zap.Error(err))
		middleware.RespondWithAppError(w, err)
		return
	}

	p, err := h.service.CreateProduct(r.Context(), &payload)
	if err != nil {
		h.logger.Error("Create product failed", zap.Error(err))
		middleware.RespondWithAppError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, MessageResponse{
		Success: true,
		Message: "Product created successfully",
		Data:    p,
	})
}

// Update handles PUT /api/products/{id}
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var payload domain.ProductPayload
	if err := middleware.DecodeAndValidate(r, &payload); err != nil {
		h.logger.Debug("Update product validation failed", zap.Error(err))
		middleware.RespondWithAppError(w, err)
		return
	}

	p, err := h.service.UpdateProduct(r.Context(), id, &payload)
	if err != nil {
		middleware.RespondWithAppError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, MessageResponse{
		Success: true,
		Message: "Product updated successfully",
		Data:    p,
	})
}

// Delete handles DELETE /api/products/{id}
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, err := h.service.DeleteProduct(r.Context(), id)
	if err != nil {
		middleware.RespondWithAppError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, MessageResponse{
		Success: true,
		Message: "Product deleted successfully",
		Data:    p,
	})
}

// queryInt reads an integer query parameter, falling back to def when the
// parameter is absent or unparsable. Values are not clamped; out-of-range
// pages yield empty data with a correct total.
func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
