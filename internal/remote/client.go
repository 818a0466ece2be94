package remote

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

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/five82/mamba/internal/model"
)

// Store defines the remote operations the rest of mamba depends on.
// It is implemented by *Client and can be faked in tests.
type Store interface {
	FetchSnapshot(ctx context.Context) (model.Snapshot, error)
	SendCommand(ctx context.Context, cmd Command) error
}

// Ensure Client implements Store at compile time.
var _ Store = (*Client)(nil)

// Client talks to the spreadsheet-backed HTTP endpoint.
type Client struct {
	endpoint  *url.URL
	http      *http.Client
	limiter   *rate.Limiter
	logger    *log.Logger
	userAgent string
}

const (
	defaultUserAgent      = "mamba/0.1"
	defaultRequestTimeout = 15 * time.Second
	defaultRatePerSecond  = 5
)

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithRateLimit paces outbound requests. A non-positive rate disables pacing.
func WithRateLimit(perSecond float64) Option {
	return func(c *Client) {
		if perSecond <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 0)
			return
		}
		burst := int(perSecond)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// WithLogger routes request logging to logger.
func WithLogger(logger *log.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient builds a Client for the given endpoint URL.
func NewClient(endpoint string, opts ...Option) (*Client, error) {
	u, err := parseEndpoint(endpoint)
	if err != nil {
		return nil, err
	}
	c := &Client{
		endpoint:  u,
		http:      &http.Client{Timeout: defaultRequestTimeout},
		limiter:   rate.NewLimiter(rate.Limit(defaultRatePerSecond), defaultRatePerSecond),
		logger:    log.New(io.Discard),
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Endpoint returns the configured endpoint URL.
func (c *Client) Endpoint() string {
	if c == nil || c.endpoint == nil {
		return ""
	}
	return c.endpoint.String()
}

// FetchSnapshot retrieves every video plus the profile and password tables.
func (c *Client) FetchSnapshot(ctx context.Context) (model.Snapshot, error) {
	if c == nil {
		return model.Snapshot{}, fmt.Errorf("client is nil")
	}
	body, err := c.do(ctx, http.MethodGet, "fetch", nil)
	if err != nil {
		return model.Snapshot{}, err
	}
	snap, err := decodeSnapshot(body)
	if err != nil {
		return model.Snapshot{}, &NetworkError{Op: "fetch", Err: err}
	}
	return snap, nil
}

// SendCommand posts a mutating command. Only the HTTP status is checked.
func (c *Client) SendCommand(ctx context.Context, cmd Command) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if cmd == nil {
		return fmt.Errorf("command is nil")
	}
	payload, err := encodeCommand(cmd)
	if err != nil {
		return err
	}
	_, err = c.do(ctx, http.MethodPost, cmd.Action(), payload)
	return err
}

func (c *Client) do(ctx context.Context, method, op string, payload []byte) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &NetworkError{Op: op, Err: err}
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.endpoint.String(), body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	started := time.Now()
	// Apps Script answers POSTs with a redirect; the default client follows it.
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("request failed", "op", op, "request_id", requestID, "err", err)
		return nil, &NetworkError{Op: op, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	data, readErr := io.ReadAll(resp.Body)
	c.logger.Debug("request done", "op", op, "request_id", requestID,
		"status", resp.StatusCode, "elapsed", time.Since(started))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &NetworkError{Op: op, Status: resp.StatusCode}
	}
	if readErr != nil {
		return nil, &NetworkError{Op: op, Err: fmt.Errorf("read response: %w", readErr)}
	}
	return data, nil
}

func parseEndpoint(endpoint string) (*url.URL, error) {
	trimmed := strings.TrimSpace(endpoint)
	if trimmed == "" {
		return nil, fmt.Errorf("endpoint is empty")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint %q: %w", endpoint, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse endpoint %q: missing host", endpoint)
	}
	u.Fragment = ""
	return u, nil
}

// decodeSnapshot accepts the legacy bare array and the extended object.
// Legacy records outside the three slots are dropped.
func decodeSnapshot(body []byte) (model.Snapshot, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return model.Snapshot{}, fmt.Errorf("decode snapshot: empty body")
	}
	if trimmed[0] == '[' {
		var videos []model.Video
		if err := json.Unmarshal(trimmed, &videos); err != nil {
			return model.Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
		}
		kept := videos[:0]
		for _, v := range videos {
			if v.Profile.Valid() {
				kept = append(kept, v)
			}
		}
		return model.Snapshot{Videos: kept}, nil
	}
	var snap model.Snapshot
	if err := json.Unmarshal(trimmed, &snap); err != nil {
		return model.Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return snap, nil
}
