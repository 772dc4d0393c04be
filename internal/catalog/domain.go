package catalog

import (
	"errors"
	"time"
)

// Product is a catalog entry. Stock only changes through admin updates and
// committed sales.
type Product struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Price     float64   `json:"price"`
	Cost      float64   `json:"cost"`
	Stock     int       `json:"stock"`
	ImageURL  string    `json:"imageUrl"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// ProductInput carries the fields of a product before an id is assigned.
type ProductInput struct {
	Name     string  `json:"name" validate:"required"`
	Category string  `json:"category" validate:"required"`
	Price    float64 `json:"price" validate:"gte=0"`
	Cost     float64 `json:"cost" validate:"gte=0"`
	Stock    int     `json:"stock" validate:"gte=0"`
	ImageURL string  `json:"imageUrl"`
}

// LowStockThreshold marks products that need attention on the dashboard.
const LowStockThreshold = 10

// ErrNotFound indicates the product id does not exist.
var ErrNotFound = errors.New("catalog: product not found")

// ErrInsufficientStock triggered when a decrement would drive stock negative.
var ErrInsufficientStock = errors.New("catalog: insufficient stock")

// ErrInvalidQuantity indicates a non-positive decrement quantity.
var ErrInvalidQuantity = errors.New("catalog: quantity must be positive")
