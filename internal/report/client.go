// Package report renders tabular reports from a running chestboard service.
package report

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/okian/chestboard/internal/domain/model"
	"github.com/okian/chestboard/internal/domain/stats"
)

const defaultRequestTimeout = 15 * time.Second

// Client is a thin HTTP client for the chestboard API.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a client for the service at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: defaultRequestTimeout},
	}
}

// Query carries the optional filter parameters accepted by the list and
// statistics endpoints.
type Query struct {
	Name     string
	Server   string
	Alliance string
	MinScore string
	MaxScore string
}

func (q Query) values() url.Values {
	v := url.Values{}
	if q.Name != "" {
		v.Set("name", q.Name)
	}
	if q.Server != "" {
		v.Set("server", q.Server)
	}
	if q.Alliance != "" {
		v.Set("alliance", q.Alliance)
	}
	if q.MinScore != "" {
		v.Set("min_score", q.MinScore)
	}
	if q.MaxScore != "" {
		v.Set("max_score", q.MaxScore)
	}
	return v
}

// Players fetches the (optionally filtered) player list.
func (c *Client) Players(ctx context.Context, q Query) ([]model.Player, error) {
	var players []model.Player
	if err := c.get(ctx, "/players", q.values(), &players); err != nil {
		return nil, err
	}
	return players, nil
}

// Statistics fetches the (optionally filtered) aggregate summary.
func (c *Client) Statistics(ctx context.Context, q Query) (stats.Summary, error) {
	var s stats.Summary
	if err := c.get(ctx, "/statistics", q.values(), &s); err != nil {
		return stats.Summary{}, err
	}
	return s, nil
}

// ServiceStats fetches the monitoring snapshot from /stats.
func (c *Client) ServiceStats(ctx context.Context) (map[string]interface{}, error) {
	var m map[string]interface{}
	if err := c.get(ctx, "/stats", nil, &m); err != nil {
		return nil, err
	}
	return m, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status %d from %s: %s", resp.StatusCode, path, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}
