package ports

import (
	"context"
	"errors"

	"github.com/feriahub/marketplace-api/internal/domains/orders/domain"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// Product is the catalog's view of a sellable item.
type Product struct {
	ID         string
	Name       string
	SellerID   string
	Stock      int
	PriceCents int64
}

// Catalog is the external product catalog collaborator. DecrementStock is a
// conditional, atomic "decrement if enough stock" operation; its
// ErrInsufficientStock result is the authoritative stock-insufficiency signal,
// superseding any advisory pre-check.
type Catalog interface {
	domain.ProductStock

	FindByID(ctx context.Context, productID string) (*Product, error)
	DecrementStock(ctx context.Context, productID string, quantity int) error
	IncrementStock(ctx context.Context, productID string, quantity int) error
	IncrementSalesCount(ctx context.Context, productID string, quantity int) error
}
