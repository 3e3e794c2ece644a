// Package catalog adapts the catalog service client to the orders context.
package catalog

import (
	"context"
	"errors"
	"fmt"

	catalogclient "github.com/feriahub/marketplace-api/internal/clients/http/catalog"
	"github.com/feriahub/marketplace-api/internal/domains/orders/ports"
)

var _ ports.Catalog = (*Adapter)(nil)

// Adapter implements the orders catalog port on top of the catalog service
// HTTP client, translating transport errors into the port's sentinels.
type Adapter struct {
	client *catalogclient.Client
}

func NewAdapter(client *catalogclient.Client) *Adapter {
	return &Adapter{client: client}
}

func (a *Adapter) FindByID(ctx context.Context, productID string) (*ports.Product, error) {
	product, err := a.client.GetProduct(ctx, productID)
	if err != nil {
		return nil, translate(err, productID)
	}
	return &ports.Product{
		ID:         product.ID,
		Name:       product.Nombre,
		SellerID:   product.VendedorID,
		Stock:      product.Stock,
		PriceCents: product.Precio,
	}, nil
}

func (a *Adapter) AvailableStock(ctx context.Context, productID string) (int, error) {
	product, err := a.client.GetProduct(ctx, productID)
	if err != nil {
		return 0, translate(err, productID)
	}
	return product.Stock, nil
}

func (a *Adapter) DecrementStock(ctx context.Context, productID string, quantity int) error {
	if err := a.client.DecrementStock(ctx, productID, quantity); err != nil {
		return translate(err, productID)
	}
	return nil
}

func (a *Adapter) IncrementStock(ctx context.Context, productID string, quantity int) error {
	if err := a.client.IncrementStock(ctx, productID, quantity); err != nil {
		return translate(err, productID)
	}
	return nil
}

func (a *Adapter) IncrementSalesCount(ctx context.Context, productID string, quantity int) error {
	if err := a.client.IncrementSalesCount(ctx, productID, quantity); err != nil {
		return translate(err, productID)
	}
	return nil
}

func translate(err error, productID string) error {
	switch {
	case errors.Is(err, catalogclient.ErrNotFound):
		return fmt.Errorf("%w: %s", ports.ErrProductNotFound, productID)
	case errors.Is(err, catalogclient.ErrInsufficientStock):
		return fmt.Errorf("%w: product %s", ports.ErrInsufficientStock, productID)
	default:
		return err
	}
}
