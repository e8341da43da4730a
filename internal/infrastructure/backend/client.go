package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/libraryhub/portal/internal/core/domain"
	"github.com/libraryhub/portal/internal/core/ports"
)

const (
	defaultTimeout   = 10 * time.Second
	defaultLoginPath = "/login"
	maxBodyBytes     = 4 << 20
)

// Config holds the backend connection settings.
type Config struct {
	BaseURL   string
	LoginPath string
	Timeout   time.Duration
	// Instrument wraps the shared transport, e.g. with request metrics.
	Instrument func(http.RoundTripper) http.RoundTripper
}

// Client talks to the library backend. The zero-credential client returned by
// New sends anonymous requests; WithCredentials binds a browser context.
type Client struct {
	base      *url.URL
	loginPath string
	timeout   time.Duration
	transport http.RoundTripper
	http      *http.Client
	creds     ports.CredentialSource
}

var (
	_ ports.AccountAPI = (*Client)(nil)
	_ ports.LibraryAPI = (*Client)(nil)
)

// New builds a client over one shared connection pool.
func New(cfg Config) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse backend url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("backend url %q must be absolute", cfg.BaseURL)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	loginPath := cfg.LoginPath
	if loginPath == "" {
		loginPath = defaultLoginPath
	}

	var rt http.RoundTripper = http.DefaultTransport.(*http.Transport).Clone()
	if cfg.Instrument != nil {
		rt = cfg.Instrument(rt)
	}

	c := &Client{
		base:      base,
		loginPath: loginPath,
		timeout:   timeout,
		transport: rt,
	}
	c.http = c.httpClient()
	return c, nil
}

// WithCredentials returns a client that attaches the credential held by creds
// to every request. The connection pool is shared with c.
func (c *Client) WithCredentials(creds ports.CredentialSource) *Client {
	bound := *c
	bound.creds = creds
	bound.http = bound.httpClient()
	return &bound
}

// Library adapts WithCredentials to ports.LibraryAPIFactory.
func (c *Client) Library(creds ports.CredentialSource) ports.LibraryAPI {
	return c.WithCredentials(creds)
}

func (c *Client) httpClient() *http.Client {
	return &http.Client{
		Timeout:   c.timeout,
		Transport: &bearerTransport{creds: c.creds, next: c.transport},
	}
}

// do sends one request and decodes a 2xx JSON body into out when out is
// non-nil. Failures are returned as *Error or wrap ErrBackendUnavailable.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	u := *c.base
	u.Path = c.base.Path + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(raw)
	}

	ctx, authenticated := withAuthMarker(ctx)
	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(ctxErr, context.DeadlineExceeded) {
			return ctxErr
		}
		return fmt.Errorf("%s %s: %w: %w", method, path, domain.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("read %s %s: %w: %w", method, path, domain.ErrBackendUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newError(resp.StatusCode, raw, *authenticated)
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s %s: %w: %w", method, path, domain.ErrBackendUnavailable, err)
	}
	return nil
}

// HealthCheck reports whether the backend answers HTTP at all. Any response,
// including an error status, counts as reachable.
type HealthCheck struct {
	client *Client
}

func NewHealthCheck(c *Client) *HealthCheck {
	return &HealthCheck{client: c}
}

func (h *HealthCheck) Name() string { return "backend" }

func (h *HealthCheck) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, h.client.base.String(), nil)
	if err != nil {
		return err
	}
	resp, err := h.client.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrBackendUnavailable, err)
	}
	_ = resp.Body.Close()
	return nil
}
