package client

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

const (
	// DefaultPollInterval matches the cadence the browser front end used.
	DefaultPollInterval = 2 * time.Second

	// DefaultMaxPolls bounds the polling loop. Zero means poll until a
	// terminal status arrives, which was the original behavior.
	DefaultMaxPolls = 900

	// DefaultTimeout is the per-request HTTP timeout.
	DefaultTimeout = 60 * time.Second
)

// Doer is the transport abstraction; *http.Client satisfies it. Tests
// substitute counting transports to assert on call behavior.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the screening backend's job API.
type Client struct {
	baseURL      string
	httpClient   Doer
	logger       zerolog.Logger
	pollInterval time.Duration
	maxPolls     int
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the transport.
func WithHTTPClient(d Doer) Option {
	return func(c *Client) { c.httpClient = d }
}

// WithLogger attaches a structured logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithPollInterval overrides the inter-poll delay.
func WithPollInterval(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.pollInterval = d
		}
	}
}

// WithMaxPolls bounds the polling loop; zero disables the bound.
func WithMaxPolls(n int) Option {
	return func(c *Client) {
		if n >= 0 {
			c.maxPolls = n
		}
	}
}

// New creates a Client for the backend at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:      baseURL,
		httpClient:   &http.Client{Timeout: DefaultTimeout},
		logger:       zerolog.Nop(),
		pollInterval: DefaultPollInterval,
		maxPolls:     DefaultMaxPolls,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
