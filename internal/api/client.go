package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/analogio/analog-cli/internal/cache"
	"github.com/analogio/analog-cli/internal/metrics"
	"github.com/analogio/analog-cli/internal/models"
)

const (
	defaultTimeout      = 10 * time.Second
	defaultCacheTTL     = 10 * time.Minute
	defaultRetries      = 2
	defaultRetryBackoff = 250 * time.Millisecond
	defaultUserAgent    = "analog-cli"
)

// Cache interface for caching HTTP responses
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte) error
}

// Client is the API client for the café Analog status service
type Client struct {
	httpClient   *http.Client
	baseURL      string
	timezone     *time.Location
	cache        Cache
	retries      int
	retryBackoff time.Duration
	userAgent    string
	log          *zap.Logger
	metrics      *metrics.Recorder
}

// ClientOption configures the Client
type ClientOption func(*Client)

// WithTimeout sets the HTTP client timeout
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL points the client at another deployment of the service
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithCache enables caching of schedule responses
func WithCache(cache Cache) ClientOption {
	return func(c *Client) {
		c.cache = cache
	}
}

// WithDefaultCache enables caching with the default file cache. A cache
// directory that cannot be created leaves caching disabled.
func WithDefaultCache(ttl time.Duration) ClientOption {
	return func(c *Client) {
		if ttl <= 0 {
			ttl = defaultCacheTTL
		}
		fc, err := cache.NewFileCache(cache.DefaultCacheDir(), ttl)
		if err == nil {
			c.cache = fc
		}
	}
}

// WithRetries sets how many times a transient failure is retried
func WithRetries(n int, initialBackoff time.Duration) ClientOption {
	return func(c *Client) {
		c.retries = max(n, 0)
		if initialBackoff > 0 {
			c.retryBackoff = initialBackoff
		}
	}
}

// WithUserAgent sets the User-Agent header
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithLogger sets the logger used for request diagnostics
func WithLogger(l *zap.Logger) ClientOption {
	return func(c *Client) {
		c.log = l
	}
}

// WithMetrics records request latency in r
func WithMetrics(r *metrics.Recorder) ClientOption {
	return func(c *Client) {
		c.metrics = r
	}
}

// NewClient creates a new API client
func NewClient(opts ...ClientOption) (*Client, error) {
	tz, err := time.LoadLocation(Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone: %w", err)
	}

	c := &Client{
		httpClient:   &http.Client{Timeout: defaultTimeout},
		baseURL:      BaseURL,
		timezone:     tz,
		retries:      defaultRetries,
		retryBackoff: defaultRetryBackoff,
		userAgent:    defaultUserAgent,
		log:          zap.NewNop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Timezone returns the café's timezone
func (c *Client) Timezone() *time.Location {
	return c.timezone
}

// FetchOpenStatus reports whether the café is open right now. Status is
// never served from the cache.
func (c *Client) FetchOpenStatus(ctx context.Context) (bool, error) {
	body, err := c.FetchOpenStatusRaw(ctx)
	if err != nil {
		return false, err
	}

	open := gjson.GetBytes(body, "open")
	if open.Type != gjson.True && open.Type != gjson.False {
		return false, fmt.Errorf("%w: open status missing from %s", ErrInvalidResponse, EndpointOpen)
	}
	return open.Bool(), nil
}

// FetchOpenStatusRaw fetches the open status and returns raw JSON
func (c *Client) FetchOpenStatusRaw(ctx context.Context) (json.RawMessage, error) {
	return c.doRequest(ctx, c.baseURL+EndpointOpen, false)
}

// FetchWeeklySchedule fetches this week's shifts and folds them into days
func (c *Client) FetchWeeklySchedule(ctx context.Context) (models.Schedule, error) {
	body, err := c.FetchWeeklyScheduleRaw(ctx)
	if err != nil {
		return nil, err
	}

	var resp []models.ShiftResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: failed to parse shifts response: %w", ErrInvalidResponse, err)
	}

	shifts := make([]models.Shift, 0, len(resp))
	for i := range resp {
		s, err := resp[i].ToShift(c.timezone)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidResponse, err)
		}
		shifts = append(shifts, s)
	}

	return models.DaysFromShifts(shifts, c.timezone), nil
}

// FetchWeeklyScheduleRaw fetches the shifts and returns raw JSON
func (c *Client) FetchWeeklyScheduleRaw(ctx context.Context) (json.RawMessage, error) {
	return c.doRequest(ctx, c.baseURL+EndpointShifts, true)
}

// doRequest performs an HTTP GET, retrying transient failures. Only
// MaxRetryWait is the longest total time a request can spend sleeping
// between its attempts. A non-positive initialBackoff means the default.
func MaxRetryWait(retries int, initialBackoff time.Duration) time.Duration {
	if initialBackoff <= 0 {
		initialBackoff = defaultRetryBackoff
	}
	var total time.Duration
	interval := float64(initialBackoff)
	for range max(retries, 0) {
		total += time.Duration(interval * (1 + backoff.DefaultRandomizationFactor))
		interval = min(interval*backoff.DefaultMultiplier, float64(backoff.DefaultMaxInterval))
	}
	return total
}

// cacheable requests consult and fill the cache.
func (c *Client) doRequest(ctx context.Context, reqURL string, cacheable bool) ([]byte, error) {
	if cacheable && c.cache != nil {
		if data, ok := c.cache.Get(reqURL); ok {
			c.log.Debug("cache hit", zap.String("url", reqURL))
			return data, nil
		}
	}

	endpoint := extractEndpoint(reqURL)
	start := time.Now()

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.retryBackoff
	body, err := backoff.Retry(ctx, func() ([]byte, error) {
		return c.fetchOnce(ctx, reqURL, endpoint)
	},
		backoff.WithBackOff(b),
		backoff.WithMaxTries(uint(c.retries+1)),
		backoff.WithNotify(func(err error, next time.Duration) {
			c.log.Debug("retrying request",
				zap.String("endpoint", endpoint),
				zap.Duration("backoff", next),
				zap.Error(err),
			)
		}),
	)
	c.metrics.ObserveFetch(endpoint, time.Since(start), err)
	if err != nil {
		if !errors.Is(err, ErrNetworkFailure) {
			err = fmt.Errorf("%w: %w", ErrNetworkFailure, err)
		}
		return nil, err
	}

	if cacheable && c.cache != nil {
		if err := c.cache.Set(reqURL, body); err != nil {
			c.log.Debug("cache write failed", zap.Error(err))
		}
	}

	return body, nil
}

// fetchOnce performs a single attempt. Errors that retrying cannot fix are
// marked permanent.
func (c *Client) fetchOnce(ctx context.Context, reqURL, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Correlation-ID", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, backoff.Permanent(fmt.Errorf("%w: %w", ErrTimeout, ctx.Err()))
		}
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		apiErr := NewAPIError(resp.StatusCode, resp.Status, endpoint)
		if apiErr.Temporary() {
			return nil, apiErr
		}
		return nil, backoff.Permanent(apiErr)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}

// extractEndpoint extracts the endpoint path from a full URL
func extractEndpoint(fullURL string) string {
	u, err := url.Parse(fullURL)
	if err != nil {
		return fullURL
	}
	return u.Path
}
