package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

var (
	// ErrNotFound is returned when the catalog has no product for the id.
	ErrNotFound = errors.New("catalog: product not found")
	// ErrInsufficientStock is returned when a conditional decrement is refused.
	ErrInsufficientStock = errors.New("catalog: insufficient stock")
)

// Product is the catalog service's wire representation of a sellable item.
type Product struct {
	ID         string `json:"id"`
	Nombre     string `json:"nombre"`
	VendedorID string `json:"vendedorId"`
	Stock      int    `json:"stock"`
	Precio     int64  `json:"precio"`
	Ventas     int    `json:"ventas"`
}

// Client talks to the product catalog service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient instantiates the catalog client with sane defaults.
func NewClient(baseURL string, httpClient *http.Client) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("catalog base URL is required")
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	return &Client{baseURL: baseURL, httpClient: httpClient}, nil
}

// GetProduct fetches one product by id.
func (c *Client) GetProduct(ctx context.Context, productID string) (*Product, error) {
	if err := c.ensureConfigured(); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/productos/%s", c.baseURL, productID), nil)
	if err != nil {
		return nil, err
	}
	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call catalog API: %w", err)
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode == http.StatusOK:
		var product Product
		if err := json.NewDecoder(res.Body).Decode(&product); err != nil {
			return nil, fmt.Errorf("decode catalog product: %w", err)
		}
		return &product, nil
	case res.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, productID)
	default:
		return nil, fmt.Errorf("catalog API error: %s", errorMessage(res))
	}
}

// DecrementStock performs the conditional "decrement if enough stock"
// operation. A 409 from the catalog is the authoritative insufficiency signal.
func (c *Client) DecrementStock(ctx context.Context, productID string, quantity int) error {
	return c.postQuantity(ctx, productID, "stock/descontar", quantity, true)
}

// IncrementStock returns quantity units to the product's stock.
func (c *Client) IncrementStock(ctx context.Context, productID string, quantity int) error {
	return c.postQuantity(ctx, productID, "stock/reponer", quantity, false)
}

// IncrementSalesCount records quantity sold units on the product.
func (c *Client) IncrementSalesCount(ctx context.Context, productID string, quantity int) error {
	return c.postQuantity(ctx, productID, "ventas", quantity, false)
}

func (c *Client) postQuantity(ctx context.Context, productID, action string, quantity int, conflictIsStock bool) error {
	if err := c.ensureConfigured(); err != nil {
		return err
	}
	body, err := json.Marshal(map[string]int{"cantidad": quantity})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("%s/productos/%s/%s", c.baseURL, productID, action), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call catalog API: %w", err)
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode == http.StatusOK, res.StatusCode == http.StatusNoContent:
		return nil
	case res.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, productID)
	case res.StatusCode == http.StatusConflict && conflictIsStock:
		return fmt.Errorf("%w: product %s", ErrInsufficientStock, productID)
	default:
		return fmt.Errorf("catalog API error: %s", errorMessage(res))
	}
}

func (c *Client) ensureConfigured() error {
	if c == nil || c.httpClient == nil {
		return errors.New("catalog client not configured")
	}
	return nil
}

func errorMessage(res *http.Response) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(res.Body).Decode(&payload); err == nil {
		if msg := strings.TrimSpace(payload.Error); msg != "" {
			return msg
		}
		if msg := strings.TrimSpace(payload.Message); msg != "" {
			return msg
		}
	}
	return res.Status
}
