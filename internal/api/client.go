// Package api is the HTTP client for the strings database REST API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"stringsdb/internal/domain"
)

// StatusError is returned when the server answers with an unexpected status
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("Unexpected HTTP response code: %d", e.Code)
}

// SearchParams is one page request against GET /strings
type SearchParams struct {
	Filter string
	Sort   string
	Page   int
	Size   int
}

func (p SearchParams) values() url.Values {
	v := url.Values{}
	v.Set("filter", p.Filter)
	if p.Sort != "" {
		v.Set("sort", p.Sort)
	}
	v.Set("page", strconv.Itoa(p.Page))
	if p.Size > 0 {
		v.Set("size", strconv.Itoa(p.Size))
	}
	return v
}

// Client talks to one strings database server
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// NewClient creates a client for the server at baseURL. A zero timeout means
// no timeout.
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger.Named("api"),
	}
}

// BaseURL returns the server address the client was built with
func (c *Client) BaseURL() string { return c.baseURL }

// SaveString stores value and returns the created entry. Only 201 Created
// counts as success.
func (c *Client) SaveString(ctx context.Context, value string) (domain.StringEntry, error) {
	var entry domain.StringEntry

	body, err := json.Marshal(map[string]string{"value": value})
	if err != nil {
		return entry, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/strings", bytes.NewReader(body))
	if err != nil {
		return entry, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	err = c.do(req, http.StatusCreated, &entry)
	return entry, err
}

// SearchStrings fetches one page of entries containing params.Filter
func (c *Client) SearchStrings(ctx context.Context, params SearchParams) (domain.Page, error) {
	var page domain.Page

	reqURL := c.baseURL + "/strings?" + params.values().Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return page, fmt.Errorf("creating request: %w", err)
	}

	err = c.do(req, http.StatusOK, &page)
	return page, err
}

// GetString fetches a single entry by id
func (c *Client) GetString(ctx context.Context, id int64) (domain.StringEntry, error) {
	var entry domain.StringEntry

	reqURL := c.baseURL + "/strings/" + strconv.FormatInt(id, 10)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return entry, fmt.Errorf("creating request: %w", err)
	}

	err = c.do(req, http.StatusOK, &entry)
	return entry, err
}

// do sends req and decodes the body into out when the status is want.
// Transport errors are returned unchanged so callers can show them as is.
func (c *Client) do(req *http.Request, want int, out any) error {
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("request failed",
			zap.String("method", req.Method),
			zap.String("url", req.URL.String()),
			zap.Error(err))
		return err
	}
	defer resp.Body.Close()

	c.logger.Debug("request",
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)))

	if resp.StatusCode != want {
		return &StatusError{Code: resp.StatusCode}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
