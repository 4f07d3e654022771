// Package sink delivers conversation log records to an external collector.
// Delivery is fire-and-forget from the caller's point of view: the retrier
// absorbs transient failures and the rest of the service never blocks on
// logging.
package sink

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bytedance/sonic"

	"github.com/bbqjunction/tabletalk/summary"
)

// Sink accepts one log record for delivery.
type Sink interface {
	Submit(ctx context.Context, rec summary.LogRecord) error
}

// Webhook posts records as JSON to a configured endpoint.
type Webhook struct {
	url    string
	client *http.Client
}

// NewWebhook creates a webhook sink. A nil client gets a 10 second default.
func NewWebhook(url string, client *http.Client) *Webhook {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Webhook{url: url, client: client}
}

// Submit posts the record. Any non-2xx response is an error so the retrier
// can try again.
func (w *Webhook) Submit(ctx context.Context, rec summary.LogRecord) error {
	payload, err := sonic.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode log record: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build sink request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("sink request failed: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("sink returned status %d", resp.StatusCode)
	}
	return nil
}

// Discard swallows every record. Used when no sink URL is configured.
type Discard struct{}

func (Discard) Submit(context.Context, summary.LogRecord) error { return nil }
