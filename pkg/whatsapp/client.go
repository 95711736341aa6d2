// Package whatsapp talks to an Evolution API style gateway that relays
// plain text messages to WhatsApp numbers.
package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/impulso-stone/mentores-api/pkg/httpclient"
	"github.com/impulso-stone/mentores-api/pkg/logger"
	"github.com/impulso-stone/mentores-api/pkg/metrics"
	"github.com/impulso-stone/mentores-api/pkg/phone"
	"go.uber.org/zap"
)

// ErrNotConfigured is returned when no gateway URL or key is set
var ErrNotConfigured = errors.New("whatsapp gateway not configured")

// maxErrorBody caps how much of a failed response body ends up in the error
const maxErrorBody = 512

// Sender sends a text message to a phone number
type Sender interface {
	SendText(ctx context.Context, number, text string) error
}

type sendTextRequest struct {
	Number string `json:"number"`
	Text   string `json:"text"`
}

// Client posts messages to the gateway's sendText endpoint
type Client struct {
	apiURL     string
	apiKey     string
	httpClient httpclient.Client
}

var _ Sender = (*Client)(nil)

// NewClient creates a gateway client. apiURL is the full sendText URL.
func NewClient(apiURL, apiKey string, httpClient httpclient.Client) *Client {
	if httpClient == nil {
		httpClient = httpclient.NewStandardClient()
	}
	return &Client{
		apiURL:     apiURL,
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

// SendText normalizes number to the Brazilian international format and sends text to it.
func (c *Client) SendText(ctx context.Context, number, text string) error {
	if c.apiURL == "" || c.apiKey == "" {
		return ErrNotConfigured
	}

	formatted, err := phone.NormalizeBR(number)
	if err != nil {
		return fmt.Errorf("invalid recipient: %w", err)
	}

	body, err := json.Marshal(sendTextRequest{Number: formatted, Text: text})
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := metrics.MeasureDuration(start)
	if err != nil {
		metrics.WebhookRequestDuration.WithLabelValues("error").Observe(duration)
		logger.LogAPICall(ctx, "whatsapp", "sendText", "error", duration, zap.Error(err))
		return fmt.Errorf("failed to send message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody)) //nolint:errcheck // best effort error detail
		metrics.WebhookRequestDuration.WithLabelValues("error").Observe(duration)
		logger.LogAPICall(ctx, "whatsapp", "sendText", "error", duration,
			zap.Int("status_code", resp.StatusCode))
		return fmt.Errorf("gateway returned status %d: %s", resp.StatusCode, string(respBody))
	}

	metrics.WebhookRequestDuration.WithLabelValues("success").Observe(duration)
	logger.LogAPICall(ctx, "whatsapp", "sendText", "success", duration)
	return nil
}
