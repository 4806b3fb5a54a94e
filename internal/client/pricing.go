// Package client holds the HTTP clients for the remote collaborator
// services the loan workflow depends on. Endpoints come from
// configuration; responses are decoded into typed structs.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"toolrent-backend/internal/domain"
	"toolrent-backend/internal/logger"
)

// envelope mirrors the JSON wrapper the collaborator services respond
// with. Only the fields the clients consume are declared.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

type feeQuotePayload struct {
	Days           int32 `json:"days"`
	DailyRateCents int64 `json:"daily_rate_cents"`
	TotalCents     int64 `json:"total_cents"`
}

// PricingClient calls the remote fee calculator over HTTP. Both
// operations are pure reads, safe to retry or repeat.
type PricingClient struct {
	baseURL string
	http    *http.Client
}

func NewPricingClient(baseURL string, timeout time.Duration) *PricingClient {
	return &PricingClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *PricingClient) CalculateLoanFee(ctx context.Context, days int32) (*domain.FeeQuote, error) {
	return c.fetchQuote(ctx, "loan-fee", days)
}

func (c *PricingClient) CalculateLateFee(ctx context.Context, lateDays int32) (*domain.FeeQuote, error) {
	return c.fetchQuote(ctx, "late-fee", lateDays)
}

func (c *PricingClient) fetchQuote(ctx context.Context, op string, days int32) (*domain.FeeQuote, error) {
	url := fmt.Sprintf("%s/api/v1/pricing/%s?days=%d", c.baseURL, op, days)
	logger.ExternalServiceCall("pricing", op, "days", days)

	var payload feeQuotePayload
	err := c.getJSON(ctx, url, &payload)
	logger.ExternalServiceResult("pricing", op, err)
	if err != nil {
		return nil, &domain.CollaboratorError{Service: "pricing", Op: op, Err: err}
	}
	return &domain.FeeQuote{
		Days:           payload.Days,
		DailyRateCents: payload.DailyRateCents,
		TotalCents:     payload.TotalCents,
	}, nil
}

func (c *PricingClient) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("malformed response: %w", err)
	}
	if resp.StatusCode != http.StatusOK || !env.Success {
		return fmt.Errorf("status %d: %s", resp.StatusCode, env.Message)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("malformed response data: %w", err)
	}
	return nil
}
