// Package client is a typed HTTP client for the patient registry API, for
// dashboards and tooling that consume the service.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

// Patient is the wire representation of a registry record.
type Patient struct {
	ID        string  `json:"id"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
	Name      string  `json:"name"`
	City      string  `json:"city"`
	Age       int     `json:"age"`
	Gender    string  `json:"gender"`
	Height    float64 `json:"height"`
	Weight    float64 `json:"weight"`
	BMI       float64 `json:"bmi"`
	Verdict   string  `json:"verdict"`
}

type CreatePatientRequest struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	City   string  `json:"city"`
	Age    int     `json:"age"`
	Gender string  `json:"gender"`
	Height float64 `json:"height"`
	Weight float64 `json:"weight"`
}

// UpdatePatientRequest carries a partial update; nil fields stay unchanged.
type UpdatePatientRequest struct {
	Name   *string  `json:"name,omitempty"`
	City   *string  `json:"city,omitempty"`
	Age    *int     `json:"age,omitempty"`
	Gender *string  `json:"gender,omitempty"`
	Height *float64 `json:"height,omitempty"`
	Weight *float64 `json:"weight,omitempty"`
}

type Stats struct {
	TotalPatients int            `json:"total_patients"`
	AverageAge    float64        `json:"average_age"`
	AverageBMI    float64        `json:"average_bmi"`
	NormalCount   int            `json:"normal_count"`
	ByGender      map[string]int `json:"by_gender"`
	ByVerdict     map[string]int `json:"by_verdict"`
	ByCity        map[string]int `json:"by_city"`
}

type Client struct {
	httpClient *http.Client
	baseURL    string
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// APIError carries the status and detail message of a non-2xx response.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Detail)
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log.WithFields(log.Fields{
		"method": method,
		"url":    c.baseURL + path,
	}).Debug("calling patient registry")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{StatusCode: resp.StatusCode, Detail: "unknown error"}
		var payload struct {
			Detail string `json:"detail"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Detail != "" {
			apiErr.Detail = payload.Detail
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Ping checks that the API answers on its root endpoint.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/", nil, nil)
}

// ViewPatients returns the whole registry keyed by patient id.
func (c *Client) ViewPatients(ctx context.Context) (map[string]Patient, error) {
	patients := map[string]Patient{}
	if err := c.do(ctx, http.MethodGet, "/view", nil, &patients); err != nil {
		return nil, err
	}
	return patients, nil
}

func (c *Client) GetPatient(ctx context.Context, id string) (*Patient, error) {
	var patient Patient
	if err := c.do(ctx, http.MethodGet, "/patient/"+url.PathEscape(id), nil, &patient); err != nil {
		return nil, err
	}
	return &patient, nil
}

// SortPatients returns all patients ordered by the given field. Order is
// "asc" or "desc"; empty means ascending.
func (c *Client) SortPatients(ctx context.Context, sortBy, order string) ([]Patient, error) {
	query := url.Values{"sort_by": {sortBy}}
	if order != "" {
		query.Set("order", order)
	}

	var patients []Patient
	if err := c.do(ctx, http.MethodGet, "/sort?"+query.Encode(), nil, &patients); err != nil {
		return nil, err
	}
	return patients, nil
}

func (c *Client) CreatePatient(ctx context.Context, req CreatePatientRequest) error {
	return c.do(ctx, http.MethodPost, "/create", req, nil)
}

func (c *Client) UpdatePatient(ctx context.Context, id string, req UpdatePatientRequest) error {
	return c.do(ctx, http.MethodPut, "/edit/"+url.PathEscape(id), req, nil)
}

func (c *Client) DeletePatient(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/delete/"+url.PathEscape(id), nil, nil)
}

func (c *Client) Stats(ctx context.Context) (*Stats, error) {
	var stats Stats
	if err := c.do(ctx, http.MethodGet, "/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
