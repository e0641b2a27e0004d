package api

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

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"ustat/internal/domain"
)

const (
	// DefaultTimeout bounds every request attempt.
	DefaultTimeout = 10 * time.Second

	// RequestIDHeader carries a per-attempt correlation id.
	RequestIDHeader = "X-Request-ID"

	maxResponseBody = 8 << 20
)

// Options configures a Client.
type Options struct {
	BaseURL string
	HTTP    *http.Client
	Timeout time.Duration
	Tokens  domain.TokenStore

	// Reauth refreshes the session on 401. Clients for different base URLs
	// share one so that a single refresh serves them all. Nil disables
	// refreshing.
	Reauth *Reauthorizer

	Logger logrus.FieldLogger

	// RateLimit caps outgoing requests per second; 0 means unlimited.
	RateLimit float64

	// RefreshSkew refreshes JWT access tokens this long before they expire;
	// 0 disables proactive refresh.
	RefreshSkew time.Duration

	UserAgent string
}

// Client is an authenticated JSON client for one API base URL.
type Client struct {
	base      string
	http      *http.Client
	timeout   time.Duration
	tokens    domain.TokenStore
	reauth    *Reauthorizer
	log       logrus.FieldLogger
	limiter   *rate.Limiter
	skew      time.Duration
	userAgent string
	now       func() time.Time
}

// New validates opts and returns a Client.
func New(opts Options) (*Client, error) {
	u, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q: scheme must be http or https", opts.BaseURL)
	}
	if opts.Tokens == nil {
		return nil, fmt.Errorf("token store is required")
	}

	c := &Client{
		base:      strings.TrimRight(opts.BaseURL, "/"),
		http:      opts.HTTP,
		timeout:   opts.Timeout,
		tokens:    opts.Tokens,
		reauth:    opts.Reauth,
		log:       opts.Logger,
		skew:      opts.RefreshSkew,
		userAgent: opts.UserAgent,
		now:       time.Now,
	}
	if c.http == nil {
		c.http = http.DefaultClient
	}
	if c.timeout <= 0 {
		c.timeout = DefaultTimeout
	}
	if c.log == nil {
		c.log = logrus.StandardLogger()
	}
	if opts.RateLimit > 0 {
		burst := int(opts.RateLimit)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}
	return c, nil
}

// BaseURL returns the API root this client talks to.
func (c *Client) BaseURL() string { return c.base }

// Do sends one JSON request and decodes a 2xx body into out.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	var body []byte
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = b
	}
	target := c.url(path, query)
	refreshable := c.refreshable(path)

	token := c.accessToken(ctx)
	if refreshable && expiresWithin(token, c.skew, c.now()) {
		// The token is still accepted; a 401 below handles real expiry.
		if fresh, err := c.reauth.Renew(ctx, token); err != nil {
			c.log.WithError(err).WithField("path", path).Warn("early token refresh failed")
		} else {
			token = fresh
		}
	}

	resp, err := c.send(ctx, method, target, body, token, 0)
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusUnauthorized && refreshable {
		rejected := statusError(resp)
		fresh, rerr := c.reauth.Refresh(ctx, token)
		if rerr != nil {
			if ctx.Err() != nil {
				return rerr
			}
			msg := ""
			if ae, ok := rejected.(*domain.AuthError); ok {
				msg = ae.Message
			}
			return &domain.AuthError{Message: msg, Err: rerr}
		}
		// Replayed once; a second 401 is final.
		resp, err = c.send(ctx, method, target, body, fresh, 1)
		if err != nil {
			return err
		}
	}
	return decode(resp, out)
}

// Get issues a GET with optional query parameters.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.Do(ctx, http.MethodGet, path, query, nil, out)
}

// Post issues a POST with a JSON body.
func (c *Client) Post(ctx context.Context, path string, in, out any) error {
	return c.Do(ctx, http.MethodPost, path, nil, in, out)
}

// Put issues a PUT with a JSON body.
func (c *Client) Put(ctx context.Context, path string, in, out any) error {
	return c.Do(ctx, http.MethodPut, path, nil, in, out)
}

// Delete issues a DELETE.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.Do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// accessToken reads the token to attach. A store that cannot be read is
// treated as signed out.
func (c *Client) accessToken(ctx context.Context) string {
	token, ok, err := c.tokens.AccessToken(ctx)
	if err != nil {
		c.log.WithError(err).Warn("token store unreadable, sending unauthenticated")
		return ""
	}
	if !ok {
		return ""
	}
	return token
}

// refreshable reports whether a 401 on path may be recovered. Credential
// endpoints under /auth/ answer 401 for bad credentials, not stale tokens.
func (c *Client) refreshable(path string) bool {
	return c.reauth != nil && !strings.HasPrefix(path, "/auth/")
}

func (c *Client) url(path string, query url.Values) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	u := c.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func (c *Client) send(ctx context.Context, method, target string, body []byte, token string, attempt int) (*http.Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &domain.NetworkError{Method: method, URL: target, Err: err}
		}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, rd)
	if err != nil {
		cancel()
		return nil, err
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	entry := c.log.WithFields(logrus.Fields{
		"method":     method,
		"path":       req.URL.Path,
		"request_id": requestID,
		"attempt":    attempt,
	})
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		cancel()
		entry.WithError(err).Debug("request failed")
		return nil, &domain.NetworkError{Method: method, URL: target, Err: err}
	}
	entry.WithFields(logrus.Fields{
		"status":   resp.StatusCode,
		"duration": time.Since(start).Round(time.Millisecond),
	}).Debug("request done")

	resp.Body = &cancelOnClose{ReadCloser: resp.Body, cancel: cancel}
	return resp, nil
}

func decode(resp *http.Response, out any) error {
	if resp.StatusCode/100 != 2 {
		return statusError(resp)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return &domain.NetworkError{Method: resp.Request.Method, URL: resp.Request.URL.String(), Err: err}
	}
	if out == nil || len(bytes.TrimSpace(b)) == 0 {
		return nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// cancelOnClose releases the per-attempt timeout once the body is consumed.
type cancelOnClose struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (b *cancelOnClose) Close() error {
	err := b.ReadCloser.Close()
	b.cancel()
	return err
}

// Compile-time assertion that Client implements domain.APIClient.
var _ domain.APIClient = (*Client)(nil)
