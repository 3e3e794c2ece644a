package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/feriahub/marketplace-api/internal/domains/orders/ports"
)

var _ ports.Catalog = (*Catalog)(nil)

// Catalog is an in-memory product catalog adapter for dev and tests. The
// conditional decrement is atomic under the mutex, matching the contract the
// real catalog service provides.
type Catalog struct {
	mu       sync.RWMutex
	products map[string]*ports.Product
	sales    map[string]int
}

func NewCatalog() *Catalog {
	return &Catalog{
		products: map[string]*ports.Product{},
		sales:    map[string]int{},
	}
}

// Seed loads products, replacing any existing entry with the same id.
func (c *Catalog) Seed(products ...ports.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, product := range products {
		clone := product
		c.products[product.ID] = &clone
	}
}

func (c *Catalog) FindByID(_ context.Context, productID string) (*ports.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	product, ok := c.products[productID]
	if !ok {
		return nil, ports.ErrProductNotFound
	}
	clone := *product
	return &clone, nil
}

func (c *Catalog) AvailableStock(_ context.Context, productID string) (int, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	product, ok := c.products[productID]
	if !ok {
		return 0, ports.ErrProductNotFound
	}
	return product.Stock, nil
}

func (c *Catalog) DecrementStock(_ context.Context, productID string, quantity int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	product, ok := c.products[productID]
	if !ok {
		return ports.ErrProductNotFound
	}
	if product.Stock < quantity {
		return fmt.Errorf("%w: product %s has %d, requested %d",
			ports.ErrInsufficientStock, productID, product.Stock, quantity)
	}
	product.Stock -= quantity
	return nil
}

func (c *Catalog) IncrementStock(_ context.Context, productID string, quantity int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	product, ok := c.products[productID]
	if !ok {
		return ports.ErrProductNotFound
	}
	product.Stock += quantity
	return nil
}

func (c *Catalog) IncrementSalesCount(_ context.Context, productID string, quantity int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.products[productID]; !ok {
		return ports.ErrProductNotFound
	}
	c.sales[productID] += quantity
	return nil
}

// SalesCount reports the recorded sales for a product, used in tests.
func (c *Catalog) SalesCount(productID string) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sales[productID]
}
