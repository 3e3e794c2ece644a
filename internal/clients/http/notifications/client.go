package notifications

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

// CreateRequest is the payload accepted by the notification service.
type CreateRequest struct {
	DestinatarioID string `json:"destinatarioId"`
	Titulo         string `json:"titulo"`
	Mensaje        string `json:"mensaje"`
	Tipo           string `json:"tipo"`
}

// Client talks to the notification service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient instantiates the notifications client with sane defaults.
func NewClient(baseURL string, httpClient *http.Client) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("notifications base URL is required")
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	return &Client{baseURL: baseURL, httpClient: httpClient}, nil
}

// Create stores one notification.
func (c *Client) Create(ctx context.Context, notification CreateRequest) error {
	if c == nil || c.httpClient == nil {
		return errors.New("notifications client not configured")
	}
	if strings.TrimSpace(notification.DestinatarioID) == "" {
		return errors.New("notification recipient is required")
	}
	body, err := json.Marshal(notification)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/notificaciones", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call notifications API: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("notifications API error: %s", res.Status)
	}
	return nil
}
