// Package erp integrates with the external Odoo ERP. The remote wire format
// is an opaque collaborator: this package only knows how to fetch vehicle
// records, push customer and booking records, and probe the connection.
package erp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Record is an external ERP record in its raw, schemaless form.
type Record map[string]any

// Client is the contract consumed by the sync service.
type Client interface {
	// FetchVehicles retrieves all vehicle records from the ERP fleet.
	FetchVehicles(ctx context.Context) ([]Record, error)

	// CreateCustomer submits a customer record and returns its external ID.
	CreateCustomer(ctx context.Context, record Record) (int64, error)

	// CreateBooking submits a booking record and returns its external ID.
	CreateBooking(ctx context.Context, record Record) (int64, error)

	// TestConnection reports whether the ERP is reachable.
	TestConnection(ctx context.Context) bool
}

// HTTPClient talks to the ERP's HTTP endpoint.
type HTTPClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient creates an ERP client for the given base URL and API key.
func NewHTTPClient(baseURL, apiKey string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{baseURL: baseURL, apiKey: apiKey, client: &http.Client{Timeout: timeout}}
}

// FetchVehicles retrieves all vehicle records from the ERP fleet.
func (c *HTTPClient) FetchVehicles(ctx context.Context) ([]Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/fleet/vehicles", nil)
	if err != nil {
		return nil, err
	}
	c.authorize(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("erp fetch vehicles failed: %s", resp.Status)
	}

	var out struct {
		Records []Record `json:"records"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return out.Records, nil
}

// CreateCustomer submits a customer record and returns its external ID.
func (c *HTTPClient) CreateCustomer(ctx context.Context, record Record) (int64, error) {
	return c.create(ctx, "/api/partners", record)
}

// CreateBooking submits a booking record and returns its external ID.
func (c *HTTPClient) CreateBooking(ctx context.Context, record Record) (int64, error) {
	return c.create(ctx, "/api/rentals", record)
}

// TestConnection reports whether the ERP is reachable.
func (c *HTTPClient) TestConnection(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/ping", nil)
	if err != nil {
		return false
	}
	c.authorize(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode < 300
}

func (c *HTTPClient) create(ctx context.Context, path string, record Record) (int64, error) {
	body, err := json.Marshal(record)
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	c.authorize(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return 0, fmt.Errorf("erp create %s failed: %s", path, resp.Status)
	}

	var out struct {
		ID int64 `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, err
	}
	if out.ID == 0 {
		return 0, fmt.Errorf("erp create %s: empty record id", path)
	}
	return out.ID, nil
}

func (c *HTTPClient) authorize(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
}
