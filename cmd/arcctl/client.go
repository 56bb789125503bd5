package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/arcdefender/arc-defender/internal/model"
)

// apiClient is a thin JSON client for the Arc Defender API.
type apiClient struct {
	baseURL string
	token   string
	http    *http.Client
}

func newAPIClient(baseURL, token string) *apiClient {
	return &apiClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// apiError is a non-2xx response.
type apiError struct {
	Status  int
	Message string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func (c *apiClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		var e struct {
			Error string `json:"error"`
		}
		json.NewDecoder(resp.Body).Decode(&e)
		if e.Error == "" {
			e.Error = http.StatusText(resp.StatusCode)
		}
		return &apiError{Status: resp.StatusCode, Message: e.Error}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

func (c *apiClient) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *apiClient) Overview(ctx context.Context) (model.SeverityOverview, error) {
	var out model.SeverityOverview
	return out, c.get(ctx, "/api/analytics/overview", &out)
}

func (c *apiClient) Origins(ctx context.Context) ([]model.OriginCount, error) {
	var out []model.OriginCount
	return out, c.get(ctx, "/api/analytics/origins", &out)
}

func (c *apiClient) Trends(ctx context.Context) ([]model.TrendBucket, error) {
	var out []model.TrendBucket
	return out, c.get(ctx, "/api/analytics/trends", &out)
}

func (c *apiClient) Efficiency(ctx context.Context) (model.EfficiencyStats, error) {
	var out model.EfficiencyStats
	return out, c.get(ctx, "/api/analytics/efficiency", &out)
}

func (c *apiClient) Threats(ctx context.Context) ([]model.Threat, error) {
	var out []model.Threat
	return out, c.get(ctx, "/api/threats", &out)
}

func (c *apiClient) Alerts(ctx context.Context) ([]model.Alert, error) {
	var out []model.Alert
	return out, c.get(ctx, "/api/dashboard/alerts", &out)
}

func (c *apiClient) Summary(ctx context.Context) (model.DashboardSummary, error) {
	var out model.DashboardSummary
	return out, c.get(ctx, "/api/dashboard", &out)
}

func (c *apiClient) Me(ctx context.Context) (model.MeResponse, error) {
	var out model.MeResponse
	return out, c.get(ctx, "/api/auth/me", &out)
}

func (c *apiClient) Login(ctx context.Context, email, password string) (model.LoginResponse, error) {
	var out model.LoginResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/login", model.LoginRequest{Email: email, Password: password}, &out)
	return out, err
}
