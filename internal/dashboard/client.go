package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PratikDhanave/enrichment-analytics-service/internal/models"
)

// Client reads the analytics endpoints of a running API.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// APIError is a non-2xx answer from the analytics API.
type APIError struct {
	Path       string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("GET %s: status %d: %s", e.Path, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("GET %s: status %d", e.Path, e.StatusCode)
}

// Jobs fetches the most recent gold rows. limit <= 0 uses the server default.
func (c *Client) Jobs(ctx context.Context, limit int) ([]models.GoldEnrichment, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var out []models.GoldEnrichment
	if err := c.get(ctx, "/analytics/list", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Overview fetches the server-side KPI block.
func (c *Client) Overview(ctx context.Context) (models.Overview, error) {
	var out models.Overview
	err := c.get(ctx, "/analytics/overview", nil, &out)
	return out, err
}

func (c *Client) get(ctx context.Context, path string, q url.Values, dst any) error {
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return fmt.Errorf("GET %s: read body: %w", path, err)
	}
	if resp.StatusCode != http.StatusOK {
		var env struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(body, &env)
		return &APIError{Path: path, StatusCode: resp.StatusCode, Message: env.Error}
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("GET %s: decode: %w", path, err)
	}
	return nil
}
