// Package client is the dashboard's I/O boundary: it fetches the current
// system snapshot and process list from a sysmon-compatible backend.
//
// Each call issues exactly one request. There is no retry and, unless the
// caller configures one, no timeout; a failed call simply reports an error and
// the caller keeps whatever it rendered last.
package client

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

	"github.com/rileyhilliard/sysmon/internal/errors"
	"github.com/rileyhilliard/sysmon/internal/metrics"
)

const (
	statsPath     = "/stats"
	processesPath = "/processes"
	healthPath    = "/health"
)

// Client talks to the metrics backend over HTTP.
type Client struct {
	base    *url.URL
	http    *http.Client
	limit   int
	timeout time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLimit sends limit=<n> as an advisory hint on process fetches.
// Zero or negative omits the parameter.
func WithLimit(n int) Option {
	return func(c *Client) { c.limit = n }
}

// WithTimeout bounds each request. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// New creates a Client for the backend at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil || u.Scheme == "" || u.Host == "" {
		if err == nil {
			err = fmt.Errorf("missing scheme or host")
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("'%s' isn't a usable backend URL", baseURL),
			"Use something like http://127.0.0.1:8000")
	}

	c := &Client{
		base: u,
		http: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the backend URL the client was created with.
func (c *Client) BaseURL() string {
	return c.base.String()
}

// FetchStats retrieves the current system-wide snapshot.
func (c *Client) FetchStats(ctx context.Context) (metrics.SystemStats, error) {
	var raw struct {
		CPUPercent     *float64 `json:"cpu_percent"`
		MemoryPercent  *float64 `json:"memory_percent"`
		TotalProcesses *int     `json:"total_processes"`
	}
	if err := c.getJSON(ctx, statsPath, nil, &raw); err != nil {
		return metrics.SystemStats{}, err
	}
	if raw.CPUPercent == nil || raw.MemoryPercent == nil || raw.TotalProcesses == nil {
		return metrics.SystemStats{}, errors.New(errors.ErrMalformed,
			"GET /stats response is missing cpu_percent, memory_percent or total_processes", "")
	}
	return metrics.SystemStats{
		CPUPercent:     *raw.CPUPercent,
		MemoryPercent:  *raw.MemoryPercent,
		TotalProcesses: *raw.TotalProcesses,
	}, nil
}

// FetchProcesses retrieves the process list. sortBy is passed to the backend
// as a hint only; callers must not rely on the returned order.
func (c *Client) FetchProcesses(ctx context.Context, sortBy metrics.Column) ([]metrics.ProcessInfo, error) {
	q := url.Values{}
	if sortBy != "" {
		q.Set("sort_by", string(sortBy))
	}
	if c.limit > 0 {
		q.Set("limit", strconv.Itoa(c.limit))
	}

	var procs []metrics.ProcessInfo
	if err := c.getJSON(ctx, processesPath, q, &procs); err != nil {
		return nil, err
	}
	if procs == nil {
		return nil, errors.New(errors.ErrMalformed, "GET /processes returned null instead of a list", "")
	}
	return procs, nil
}

// Health checks that the backend answers GET /health with 2xx.
func (c *Client) Health(ctx context.Context) error {
	return c.getJSON(ctx, healthPath, nil, nil)
}

// getJSON performs one GET and decodes the body into out (if non-nil).
// Transport problems and non-2xx statuses yield ErrTransport; decode problems
// yield ErrMalformed.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out interface{}) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrTransport, "Couldn't build request for "+path, "")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrTransport, "GET "+path+" failed", "Is the backend running? Try 'sysmon serve'.")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		return errors.New(errors.ErrTransport,
			fmt.Sprintf("GET %s returned %d", path, resp.StatusCode), "")
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.WrapWithCode(err, errors.ErrMalformed,
			"Couldn't decode GET "+path+" response", "")
	}
	return nil
}
