package domain

import (
	"github.com/google/uuid"
)

// Product represents a product in the catalog
type Product struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	InStock     bool      `json:"inStock"`
}

// ProductPayload is the request body for create and update operations.
// Price, Description and InStock are pointers so a missing field is
// distinguishable from a zero value.
type ProductPayload struct {
	Name        string   `json:"name" validate:"required"`
	Description *string  `json:"description" validate:"required"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
	Category    string   `json:"category" validate:"required"`
	InStock     *bool    `json:"inStock" validate:"required"`
}

// Stats holds aggregate counts over the catalog.
type Stats struct {
	Total      int            `json:"total"`
	InStock    int            `json:"inStock"`
	OutOfStock int            `json:"outOfStock"`
	ByCategory map[string]int `json:"byCategory"`
}
