// Package sheets implements the webhook-relay persistence backend: contacts
// are forwarded to a Google Apps Script web app that appends them to a
// spreadsheet.
package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	pausa "github.com/projetopausa/Site-Pausa-V1"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// DefaultTimeout bounds the single delivery attempt. Apps Script cold
// starts are slow, so this is generous.
const DefaultTimeout = 30 * time.Second

// Config is the required properties to reach the web app.
type Config struct {
	WebhookURL string
	Timeout    time.Duration
}

// Client forwards contacts to the web app. There is no retry: a transient
// failure declines the submission and the caller is expected to resubmit.
// The embedded http.Client follows the 302 redirect Apps Script answers
// with before producing the real response body.
type Client struct {
	url  string
	http *http.Client
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		url: cfg.WebhookURL,
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

type webhookPayload struct {
	ID                  string `json:"id"`
	Name                string `json:"name"`
	Whatsapp            string `json:"whatsapp"`
	PhoneDigits         string `json:"phone_digits"`
	AcceptCommunication bool   `json:"acceptCommunication"`
	Timestamp           string `json:"timestamp"`
	Source              string `json:"source"`
}

type webhookResult struct {
	Result string `json:"result"`
}

// SaveContact posts the contact as JSON. Success requires HTTP 200 and a
// body carrying the script's explicit success marker; anything else maps to
// the store error taxonomy and the attempt is not repeated.
func (c *Client) SaveContact(ctx context.Context, contact pausa.Contact) error {
	payload := webhookPayload{
		ID:                  contact.ID,
		Name:                contact.Name,
		Whatsapp:            contact.Whatsapp,
		PhoneDigits:         contact.PhoneDigits,
		AcceptCommunication: contact.AcceptCommunication,
		Timestamp:           contact.Timestamp.Format(time.RFC3339),
		Source:              contact.Source,
	}

	rawJson, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding contact: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(rawJson))
	if err != nil {
		return fmt.Errorf("building webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("posting contact: %v: %w", err, pausa.ErrStoreUnavailable)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading webhook response: %v: %w", err, pausa.ErrStoreUnavailable)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("webhook answered %d: %w", resp.StatusCode, pausa.ErrUpstreamProtocol)
	}

	var result webhookResult
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("webhook answered non-JSON body: %w", pausa.ErrUpstreamProtocol)
	}
	if result.Result != "success" {
		return fmt.Errorf("webhook answered result %q: %w", result.Result, pausa.ErrUpstreamProtocol)
	}

	return nil
}

// Ping reports liveness for the health endpoint. The web app exposes no
// probe of its own, so the relay is considered reachable; delivery problems
// surface per submission.
func (c *Client) Ping(ctx context.Context) error {
	return nil
}
