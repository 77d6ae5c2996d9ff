package quoteapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dockit/offert/internal/logging"
	"github.com/dockit/offert/internal/quote"
	"github.com/dockit/offert/internal/version"
	"github.com/google/uuid"
)

const (
	// DefaultBaseURL is where the Dockit backend listens in a local setup
	DefaultBaseURL = "http://localhost:8000"

	// DefaultTimeout bounds every request so a hung backend cannot leave an
	// action in flight forever
	DefaultTimeout = 30 * time.Second

	// APIKeyHeader carries the static API key expected by the backend
	APIKeyHeader = "X-DOCKIT-API-KEY"

	// RequestIDHeader carries a per-request id for correlating logs
	RequestIDHeader = "X-Request-ID"

	// DefaultListLimit and MaxListLimit mirror the backend's paging bounds
	DefaultListLimit = 50
	MaxListLimit     = 200
)

// Endpoint paths
const (
	PathHealth = "/health"
	PathDraft  = "/quotes/draft"
	PathQuotes = "/quotes"
)

// Client talks to the Dockit quote API. Requests are never retried.
type Client struct {
	// BaseURL is the API root (e.g., "http://localhost:8000")
	BaseURL string

	// APIKey is sent in the X-DOCKIT-API-KEY header when non-empty
	APIKey string

	// HTTPClient is the underlying HTTP client
	HTTPClient *http.Client
}

// NewClient creates a client for the API at baseURL. An empty baseURL uses
// DefaultBaseURL.
func NewClient(baseURL string) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: DefaultTimeout},
	}
}

// SetTimeout sets the HTTP request timeout. Zero or negative keeps the
// default.
func (c *Client) SetTimeout(timeout time.Duration) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c.HTTPClient.Timeout = timeout
}

// SetAPIKey sets the key sent with every request
func (c *Client) SetAPIKey(key string) {
	c.APIKey = strings.TrimSpace(key)
}

// Health fetches /health and returns the body compacted to one line. The
// status code is not checked: any JSON answer is shown as-is.
func (c *Client) Health(ctx context.Context) (string, error) {
	body, _, err := c.do(ctx, http.MethodGet, PathHealth, nil)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, bytes.TrimSpace(body)); err != nil {
		return "", NewParseError("health response is not JSON", err)
	}
	return buf.String(), nil
}

// Draft asks the backend to price req without persisting it
func (c *Client) Draft(ctx context.Context, req quote.DraftRequest) (*quote.DraftResult, error) {
	body, status, err := c.do(ctx, http.MethodPost, PathDraft, req)
	if err != nil {
		return nil, err
	}
	if err := checkStatus(status, body); err != nil {
		return nil, err
	}

	var result quote.DraftResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, NewParseError("failed to parse draft response", err)
	}
	return &result, nil
}

// Save persists req and returns the stored quote with its identifier
func (c *Client) Save(ctx context.Context, req quote.DraftRequest) (*quote.SavedQuote, error) {
	body, status, err := c.do(ctx, http.MethodPost, PathQuotes, req)
	if err != nil {
		return nil, err
	}
	if err := checkStatus(status, body); err != nil {
		return nil, err
	}

	var saved quote.SavedQuote
	if err := json.Unmarshal(body, &saved); err != nil {
		return nil, NewParseError("failed to parse save response", err)
	}
	return &saved, nil
}

// Fetch loads a saved quote. id is escaped as a single path segment.
func (c *Client) Fetch(ctx context.Context, id string) (*quote.FetchedQuote, error) {
	body, status, err := c.do(ctx, http.MethodGet, PathQuotes+"/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	if err := checkStatus(status, body); err != nil {
		return nil, err
	}

	var fetched quote.FetchedQuote
	if err := json.Unmarshal(body, &fetched); err != nil {
		return nil, NewParseError("failed to parse quote response", err)
	}
	return &fetched, nil
}

// List returns saved quotes, newest first as ordered by the backend. limit
// is clamped to 1..MaxListLimit; zero means DefaultListLimit.
func (c *Client) List(ctx context.Context, skip, limit int) ([]quote.FetchedQuote, error) {
	if skip < 0 {
		skip = 0
	}
	switch {
	case limit == 0:
		limit = DefaultListLimit
	case limit < 1:
		limit = 1
	case limit > MaxListLimit:
		limit = MaxListLimit
	}

	q := url.Values{}
	q.Set("skip", strconv.Itoa(skip))
	q.Set("limit", strconv.Itoa(limit))

	body, status, err := c.do(ctx, http.MethodGet, PathQuotes+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	if err := checkStatus(status, body); err != nil {
		return nil, err
	}

	var quotes []quote.FetchedQuote
	if err := json.Unmarshal(body, &quotes); err != nil {
		return nil, NewParseError("failed to parse quote list", err)
	}
	return quotes, nil
}

// do performs one request and returns the raw body and status
func (c *Client) do(ctx context.Context, method, path string, payload any) ([]byte, int, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	if err != nil {
		return nil, 0, NewNetworkError(fmt.Sprintf("failed to create %s request", method), err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())
	req.Header.Set(RequestIDHeader, requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.APIKey != "" {
		req.Header.Set(APIKeyHeader, c.APIKey)
	}

	logging.LogAPIRequest(method, path, requestID)
	start := time.Now()

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		logging.LogAPIFailure(method, path, requestID, time.Since(start), err)
		return nil, 0, NewNetworkError(fmt.Sprintf("%s %s failed", method, path), err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		logging.LogAPIFailure(method, path, requestID, time.Since(start), err)
		return nil, resp.StatusCode, NewNetworkError("failed to read response body", err)
	}

	logging.LogAPIResponse(method, path, requestID, resp.StatusCode, time.Since(start))
	return body, resp.StatusCode, nil
}

func checkStatus(status int, body []byte) error {
	if status >= 200 && status < 300 {
		return nil
	}
	return NewHTTPError(status, string(body))
}
