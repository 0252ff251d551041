// Package api wraps outbound calls to the dashboard REST API. It attaches the
// current session's bearer credential to every request and globally intercepts
// authorization failures: any 401 clears the session and forces navigation
// back to the sign-in entry point before the failure is handed to the caller.
// Resource stores never re-implement this behaviour.
package api

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	errs "github.com/servly/admin-console/internal/errors"
)

// CredentialSource supplies the access token attached to outbound requests.
// An empty token means the request goes out unauthenticated.
type CredentialSource interface {
	AccessToken() string
}

// SessionInvalidator clears the session when the server signals that it is no
// longer valid.
type SessionInvalidator interface {
	Invalidate()
}

// Session is the session store surface the adapter needs.
type Session interface {
	CredentialSource
	SessionInvalidator
}

// Navigator forces the application back to the sign-in entry point. The
// adapter is the only component allowed to navigate as a side effect of a
// network call.
type Navigator interface {
	ForceSignIn()
}

// Client is the shared HTTP adapter. All resource stores issue their calls
// through a single instance.
type Client struct {
	base    *url.URL
	httpc   *http.Client
	session Session
	nav     Navigator
	log     zerolog.Logger
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient swaps the underlying transport (primarily for testing).
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpc = h }
}

// WithLogger sets a structured logger for the client.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithSession attaches the session store whose token is injected into
// requests and which is cleared on a 401.
func WithSession(s Session) Option {
	return func(c *Client) { c.session = s }
}

// WithNavigator sets the navigation sink for forced sign-in redirects.
func WithNavigator(n Navigator) Option {
	return func(c *Client) { c.nav = n }
}

// WithTimeout sets the per-request timeout on the underlying http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpc.Timeout = d }
}

// New creates a Client rooted at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.Wrap(err, "[api.New] invalid base URL")
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, errors.Errorf("[api.New] base URL %q must be absolute", baseURL)
	}

	c := &Client{
		base:  u,
		httpc: &http.Client{Timeout: 30 * time.Second},
		log:   zerolog.Nop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// Do issues a request for path relative to the client's base URL. The
// returned response is nil whenever error is non-nil; a 401 never reaches the
// caller as a response, only as an ErrUnauthorized error.
func (c *Client) Do(ctx context.Context, method, path string, body io.Reader, contentType string) (*http.Response, error) {
	target := c.base.JoinPath(strings.Split(strings.TrimPrefix(path, "/"), "/")...)
	if i := strings.IndexByte(path, '?'); i >= 0 {
		target = c.base.JoinPath(strings.Split(strings.TrimPrefix(path[:i], "/"), "/")...)
		target.RawQuery = path[i+1:]
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return nil, errors.Wrapf(err, "[Client.Do] building %s %s", method, path)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.session != nil {
		if token := c.session.AccessToken(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "[Client.Do] %s %s", method, path)
	}

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("api call")

	if resp.StatusCode == http.StatusUnauthorized {
		io.Copy(io.Discard, resp.Body) //nolint:errcheck
		resp.Body.Close()              //nolint:errcheck
		c.forceSignOut(method, path)
		return nil, errors.Wrapf(errs.ErrUnauthorized, "[Client.Do] %s %s", method, path)
	}

	return resp, nil
}

func (c *Client) forceSignOut(method, path string) {
	c.log.Warn().
		Str("method", method).
		Str("path", path).
		Msg("401 received, clearing session and redirecting to sign-in")
	if c.session != nil {
		c.session.Invalidate()
	}
	if c.nav != nil {
		c.nav.ForceSignIn()
	}
}

// BaseURL returns the API root the client was built with.
func (c *Client) BaseURL() string { return c.base.String() }
