package application

import (
	"errors"
	"fmt"

	"github.com/feriahub/marketplace-api/internal/domains/orders/domain"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid order input")
	// ErrInvalidOrderID signals a malformed order identifier.
	ErrInvalidOrderID = errors.New("invalid order id")
	// ErrUnauthorized signals the actor may not perform the requested action.
	ErrUnauthorized = errors.New("actor is not allowed to perform this action")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	var fieldErr *domain.FieldError
	if errors.As(err, &fieldErr) ||
		errors.Is(err, domain.ErrMissingBuyer) ||
		errors.Is(err, domain.ErrMissingCurrency) ||
		errors.Is(err, domain.ErrNoItems) ||
		errors.Is(err, domain.ErrMissingProductID) ||
		errors.Is(err, domain.ErrMissingSellerID) ||
		errors.Is(err, domain.ErrInvalidQuantity) ||
		errors.Is(err, domain.ErrInvalidUnitPrice) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
