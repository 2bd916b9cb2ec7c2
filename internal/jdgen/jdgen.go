// Package jdgen is the client for the JD generator service.
package jdgen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultTimeout is the per-request HTTP timeout.
const DefaultTimeout = 120 * time.Second

// FormInput is the role briefing the generator expands into a full job
// description. Field names match the wire contract.
type FormInput struct {
	CompanyName    string `json:"companyName"`
	CompanyType    string `json:"companyType,omitempty"`
	Industry       string `json:"industry,omitempty"`
	Location       string `json:"location,omitempty"`
	RoleTitle      string `json:"roleTitle"`
	Experience     string `json:"experience,omitempty"`
	EmploymentType string `json:"employmentType,omitempty"`
	WorkMode       string `json:"workMode,omitempty"`
}

// Validate checks the two fields the generator cannot work without.
func (f *FormInput) Validate() error {
	if strings.TrimSpace(f.CompanyName) == "" {
		return fmt.Errorf("company name is required")
	}
	if strings.TrimSpace(f.RoleTitle) == "" {
		return fmt.Errorf("role title is required")
	}
	return nil
}

// GenerationError represents a failure reported by the generator service.
type GenerationError struct {
	StatusCode int
	Detail     string
}

func (e *GenerationError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("jd generation failed: %s", e.Detail)
	}
	return fmt.Sprintf("jd generation failed (HTTP %d)", e.StatusCode)
}

// Doer is the transport abstraction; *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the JD generator backend.
type Client struct {
	baseURL    string
	httpClient Doer
	logger     zerolog.Logger
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

// New creates a Client for the generator at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Generate produces a job description for the briefing. The generator
// reports failures inside a 200 body as status != "success"; both paths
// surface as a *GenerationError.
func (c *Client) Generate(ctx context.Context, form FormInput) (string, error) {
	if err := form.Validate(); err != nil {
		return "", err
	}

	body, err := json.Marshal(form)
	if err != nil {
		return "", fmt.Errorf("failed to encode briefing: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/generate-jd", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.Info().Str("company", form.CompanyName).Str("role", form.RoleTitle).Msg("generating job description")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &GenerationError{Detail: err.Error()}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &GenerationError{StatusCode: resp.StatusCode, Detail: "failed to read response body"}
	}

	var result struct {
		Status string `json:"status"`
		JD     string `json:"jd"`
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", &GenerationError{StatusCode: resp.StatusCode, Detail: "response is not valid JSON"}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || result.Status != "success" {
		detail := result.Detail
		if detail == "" {
			detail = "generation failed"
		}
		return "", &GenerationError{StatusCode: resp.StatusCode, Detail: detail}
	}
	if strings.TrimSpace(result.JD) == "" {
		return "", &GenerationError{StatusCode: resp.StatusCode, Detail: "generator returned an empty job description"}
	}

	return result.JD, nil
}
