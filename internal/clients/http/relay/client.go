package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client posts notification batches to a configured webhook endpoint.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient instantiates the relay client with sane defaults.
func NewClient(endpoint string, httpClient *http.Client) (*Client, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return nil, errors.New("relay webhook URL is required")
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	return &Client{endpoint: endpoint, httpClient: httpClient}, nil
}

// Notification is the webhook payload describing one decided request.
type Notification struct {
	RequestID   int64     `json:"requestId"`
	PetID       int64     `json:"petId"`
	RequesterID int64     `json:"requesterId"`
	Status      string    `json:"status"`
	DecidedAt   time.Time `json:"decidedAt"`
}

// Batch wraps the notifications delivered in one webhook call.
type Batch struct {
	Notifications []Notification `json:"notifications"`
}

// Post delivers a batch to the webhook. Any non-2xx response is an error.
func (c *Client) Post(ctx context.Context, batch Batch) error {
	if c == nil || c.httpClient == nil {
		return errors.New("relay client not configured")
	}
	if len(batch.Notifications) == 0 {
		return nil
	}
	body, err := json.Marshal(batch)
	if err != nil {
		return fmt.Errorf("encode relay batch: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build relay request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call relay webhook: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("relay webhook returned %s", resp.Status)
	}
	return nil
}
