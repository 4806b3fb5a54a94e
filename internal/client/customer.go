package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"toolrent-backend/internal/domain"
	"toolrent-backend/internal/logger"
)

type customerExistsPayload struct {
	CustomerID string `json:"customer_id"`
	Exists     bool   `json:"exists"`
}

// CustomerDirectoryClient answers customer existence checks against the
// remote customer directory.
type CustomerDirectoryClient struct {
	baseURL string
	http    *http.Client
}

func NewCustomerDirectoryClient(baseURL string, timeout time.Duration) *CustomerDirectoryClient {
	return &CustomerDirectoryClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *CustomerDirectoryClient) Exists(ctx context.Context, customerID string) (bool, error) {
	reqURL := fmt.Sprintf("%s/api/v1/customers/%s/exists", c.baseURL, url.PathEscape(customerID))
	logger.ExternalServiceCall("customer-directory", "exists", "customer_id", customerID)

	exists, err := c.fetchExists(ctx, reqURL)
	logger.ExternalServiceResult("customer-directory", "exists", err)
	if err != nil {
		return false, &domain.CollaboratorError{Service: "customer-directory", Op: "exists", Err: err}
	}
	return exists, nil
}

func (c *CustomerDirectoryClient) fetchExists(ctx context.Context, reqURL string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return false, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	// An unknown customer is a valid answer, not a transport failure.
	if resp.StatusCode == http.StatusNotFound {
		return false, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, err
	}
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return false, fmt.Errorf("malformed response: %w", err)
	}
	if resp.StatusCode != http.StatusOK || !env.Success {
		return false, fmt.Errorf("status %d: %s", resp.StatusCode, env.Message)
	}
	var payload customerExistsPayload
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		return false, fmt.Errorf("malformed response data: %w", err)
	}
	return payload.Exists, nil
}
