package domain

import (
	"errors"
	"strings"
)

var (
	ErrMissingProductID = errors.New("line item product id is required")
	ErrMissingSellerID  = errors.New("line item seller id is required")
	ErrInvalidQuantity  = errors.New("line item quantity must be greater than zero")
	ErrInvalidUnitPrice = errors.New("line item unit price must not be negative")
)

// LineItem is one product line within an order. It always carries a resolved
// product snapshot (seller and unit price fixed at order-creation time); a bare
// product id never survives past the creation boundary.
type LineItem struct {
	productID      string
	sellerID       string
	productName    string
	quantity       int
	unitPriceCents int64
}

// NewLineItem validates and builds an immutable line item.
func NewLineItem(productID, sellerID, productName string, quantity int, unitPriceCents int64) (LineItem, error) {
	if strings.TrimSpace(productID) == "" {
		return LineItem{}, ErrMissingProductID
	}
	if strings.TrimSpace(sellerID) == "" {
		return LineItem{}, ErrMissingSellerID
	}
	if quantity <= 0 {
		return LineItem{}, ErrInvalidQuantity
	}
	if unitPriceCents < 0 {
		return LineItem{}, ErrInvalidUnitPrice
	}
	return LineItem{
		productID:      productID,
		sellerID:       sellerID,
		productName:    productName,
		quantity:       quantity,
		unitPriceCents: unitPriceCents,
	}, nil
}

func (li LineItem) ProductID() string     { return li.productID }
func (li LineItem) SellerID() string      { return li.sellerID }
func (li LineItem) ProductName() string   { return li.productName }
func (li LineItem) Quantity() int         { return li.quantity }
func (li LineItem) UnitPriceCents() int64 { return li.unitPriceCents }

// Subtotal is quantity times the price-at-purchase, in cents.
func (li LineItem) Subtotal() int64 {
	return int64(li.quantity) * li.unitPriceCents
}
