package trendapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service is the remote TrendIntel contract consumed by the controllers.
// *Client implements it; tests substitute fakes.
type Service interface {
	FetchStats(ctx context.Context) (*Stats, error)
	FetchTrends(ctx context.Context, query TrendQuery) ([]TrendItem, error)
	FetchReports(ctx context.Context, limit int) ([]TrendItem, error)
	Analyze(ctx context.Context, videoURL string) (*AnalysisResult, error)
	WriteSetting(ctx context.Context, key, value string) error
	RunCycle(ctx context.Context) (*Ack, error)
}

// Ensure Client implements Service at compile time.
var _ Service = (*Client)(nil)

// Client talks to the TrendIntel HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	DefaultAPIURL    = "http://localhost:8000"
	defaultUserAgent = "trendintel/0.1"
	requestTimeout   = 10 * time.Second
	maxErrorBody     = 4096
)

// Option customises a Client.
type Option func(*Client)

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// NewClient builds a Client for the service at apiURL.
func NewClient(apiURL string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(apiURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the normalised service URL.
func (c *Client) BaseURL() string {
	if c == nil || c.baseURL == nil {
		return ""
	}
	return c.baseURL.String()
}

// FetchStats retrieves aggregate counters and the automation flag.
func (c *Client) FetchStats(ctx context.Context) (*Stats, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload Stats
	if err := c.do(ctx, http.MethodGet, &url.URL{Path: "/stats"}, nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// TrendQuery configures /trends requests.
type TrendQuery struct {
	Category string
	Limit    int
}

// FetchTrends retrieves the trend feed ordered by engagement score.
func (c *Client) FetchTrends(ctx context.Context, query TrendQuery) ([]TrendItem, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	values := url.Values{}
	if category := strings.TrimSpace(query.Category); category != "" {
		values.Set("category", category)
	}
	if query.Limit > 0 {
		values.Set("limit", strconv.Itoa(query.Limit))
	}
	rel := &url.URL{Path: "/trends", RawQuery: values.Encode()}
	var payload []TrendItem
	if err := c.do(ctx, http.MethodGet, rel, nil, &payload); err != nil {
		return nil, err
	}
	if payload == nil {
		payload = []TrendItem{}
	}
	return payload, nil
}

// FetchReports retrieves trends that were already sent as email reports.
func (c *Client) FetchReports(ctx context.Context, limit int) ([]TrendItem, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	values := url.Values{}
	if limit > 0 {
		values.Set("limit", strconv.Itoa(limit))
	}
	rel := &url.URL{Path: "/reports", RawQuery: values.Encode()}
	var payload []TrendItem
	if err := c.do(ctx, http.MethodGet, rel, nil, &payload); err != nil {
		return nil, err
	}
	if payload == nil {
		payload = []TrendItem{}
	}
	return payload, nil
}

// Analyze asks the service for an AI assessment of a single video.
func (c *Client) Analyze(ctx context.Context, videoURL string) (*AnalysisResult, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload AnalysisResult
	if err := c.do(ctx, http.MethodPost, &url.URL{Path: "/analyze"}, AnalyzeRequest{URL: videoURL}, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// WriteSetting stores a key/value setting. The response body is ignored.
func (c *Client) WriteSetting(ctx context.Context, key, value string) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("setting key required")
	}
	return c.do(ctx, http.MethodPost, &url.URL{Path: "/settings"}, SettingRequest{Key: key, Value: value}, nil)
}

// RunCycle starts one analysis cycle in the background on the service.
func (c *Client) RunCycle(ctx context.Context) (*Ack, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload Ack
	if err := c.do(ctx, http.MethodPost, &url.URL{Path: "/run-cycle"}, nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *Client) do(ctx context.Context, method string, rel *url.URL, body any, dest any) error {
	reqURL := c.baseURL.ResolveReference(rel)
	op := method + " " + rel.Path

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		slog.Debug("request failed", "op", op, "request_id", requestID, "error", err)
		return &NetworkError{Op: op, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	slog.Debug("request complete",
		"op", op,
		"request_id", requestID,
		"status", resp.StatusCode,
		"elapsed", time.Since(started),
	)

	if resp.StatusCode >= 400 {
		return &RemoteError{Op: rel.String(), StatusCode: resp.StatusCode, Detail: readDetail(resp.Body)}
	}
	if dest == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return &DecodeError{Op: rel.Path, Err: err}
	}
	return nil
}

// readDetail extracts FastAPI's {"detail": "..."} message when present.
func readDetail(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil || len(raw) == 0 {
		return ""
	}
	var payload struct {
		Detail any `json:"detail"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return ""
	}
	if s, ok := payload.Detail.(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

func parseBaseURL(apiURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiURL)
	if trimmed == "" {
		trimmed = DefaultAPIURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api url %q: %w", apiURL, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api url %q: missing host", apiURL)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
