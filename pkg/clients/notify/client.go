// Package notify pushes schedule events to an operator-configured webhook
// (staff chat integrations, mostly).
package notify

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/partyops/jumpkitchen/internal/config"
)

// Event is the JSON payload posted to the webhook.
type Event struct {
	Venue        string    `json:"venue"`
	Kind         string    `json:"kind"`
	Reservations int       `json:"reservations"`
	At           time.Time `json:"at"`
}

// Event kinds emitted by the service layer.
const (
	KindIngested = "schedule_ingested"
	KindArchived = "schedule_archived"
)

// Notifier exposes the notification operation used by the application.
type Notifier interface {
	Notify(ctx context.Context, event Event) error
}

// Client is a resty-backed Notifier.
type Client struct {
	httpClient *resty.Client
}

// NewClient builds a webhook client from configuration.
func NewClient(cfg config.NotifyConfig) *Client {
	restyClient := resty.New()
	restyClient.
		SetBaseURL(cfg.WebhookURL).
		SetHeader("Content-Type", "application/json").
		SetTimeout(cfg.Timeout)

	return &Client{httpClient: restyClient}
}

// Notify posts the event to the webhook URL.
func (c *Client) Notify(ctx context.Context, event Event) error {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(event).
		Post("")
	if err != nil {
		return fmt.Errorf("post webhook event: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		return fmt.Errorf("webhook rejected event: status=%d body=%s", resp.StatusCode(), resp.String())
	}
	return nil
}

// Nop is the Notifier used when no webhook is configured.
type Nop struct{}

// Notify discards the event.
func (Nop) Notify(context.Context, Event) error { return nil }
