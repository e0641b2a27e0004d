package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"ustat/internal/crypto"
	"ustat/internal/domain"
)

// State is the Reauthorizer's position in the refresh cycle.
type State int32

const (
	Idle State = iota
	RefreshInFlight
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case RefreshInFlight:
		return "refreshing"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// RefreshPath is the refresh endpoint relative to the API base URL.
const RefreshPath = "/auth/refresh"

// ReauthOptions configures a Reauthorizer.
type ReauthOptions struct {
	URL       string // absolute refresh endpoint
	HTTP      *http.Client
	Timeout   time.Duration
	Tokens    domain.TokenStore
	Logger    logrus.FieldLogger
	OnFailure domain.AuthFailureHook
}

// Reauthorizer exchanges the stored refresh token for a new access token.
// At most one exchange is in flight; concurrent callers wait for it.
type Reauthorizer struct {
	url     string
	http    *http.Client
	timeout time.Duration
	tokens  domain.TokenStore
	log     logrus.FieldLogger
	hook    domain.AuthFailureHook

	group    singleflight.Group
	flights  atomic.Uint64
	failed   atomic.Uint64
	mu       sync.Mutex
	state    State
	attempts atomic.Int64
}

// NewReauthorizer returns an Idle Reauthorizer.
func NewReauthorizer(opts ReauthOptions) *Reauthorizer {
	r := &Reauthorizer{
		url:     opts.URL,
		http:    opts.HTTP,
		timeout: opts.Timeout,
		tokens:  opts.Tokens,
		log:     opts.Logger,
		hook:    opts.OnFailure,
	}
	if r.http == nil {
		r.http = http.DefaultClient
	}
	if r.timeout <= 0 {
		r.timeout = DefaultTimeout
	}
	if r.log == nil {
		r.log = logrus.StandardLogger()
	}
	return r
}

// State returns the current refresh state.
func (r *Reauthorizer) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Attempts counts refresh calls actually sent to the server.
func (r *Reauthorizer) Attempts() int64 { return r.attempts.Load() }

// Refresh returns an access token to replay a request that was rejected
// while carrying stale. If the store already holds a different token, that
// token is returned without contacting the server.
//
// On failure the access and refresh tokens are removed from the store and
// the failure hook runs before Refresh returns. A caller whose ctx ends while
// waiting gets a *domain.NetworkError and leaves the tokens alone.
func (r *Reauthorizer) Refresh(ctx context.Context, stale string) (string, error) {
	token, flight, err := r.await(ctx, stale)
	if err != nil && flight != 0 {
		r.fail(context.WithoutCancel(ctx), flight, err)
	}
	return token, err
}

// Renew refreshes ahead of expiry. Stale was not rejected, so a failed
// exchange leaves the stored tokens and the session untouched.
func (r *Reauthorizer) Renew(ctx context.Context, stale string) (string, error) {
	token, _, err := r.await(ctx, stale)
	return token, err
}

type outcome struct {
	token  string
	flight uint64
}

// await joins the exchange in flight or starts one. flight is zero when ctx
// ended before the exchange did.
func (r *Reauthorizer) await(ctx context.Context, stale string) (string, uint64, error) {
	// The exchange outlives any single waiter.
	detached := context.WithoutCancel(ctx)
	ch := r.group.DoChan("refresh", func() (any, error) {
		id := r.flights.Add(1)
		token, err := r.refresh(detached, stale)
		return outcome{token: token, flight: id}, err
	})
	select {
	case res := <-ch:
		out := res.Val.(outcome)
		return out.token, out.flight, res.Err
	case <-ctx.Done():
		return "", 0, &domain.NetworkError{Method: http.MethodPost, URL: r.url, Err: ctx.Err()}
	}
}

func (r *Reauthorizer) refresh(ctx context.Context, stale string) (string, error) {
	if cur, ok, err := r.tokens.AccessToken(ctx); err == nil && ok && cur != stale {
		return cur, nil
	}

	r.setState(RefreshInFlight)
	r.attempts.Add(1)

	token, err := r.exchange(ctx)
	r.setState(Idle)
	if err != nil {
		r.log.WithError(err).Debug("token exchange failed")
		return "", err
	}
	r.log.WithField("token", crypto.Fingerprint(token)).Info("access token refreshed")
	return token, nil
}

func (r *Reauthorizer) exchange(ctx context.Context) (string, error) {
	refresh, ok, err := r.tokens.RefreshToken(ctx)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrNoRefreshToken
	}

	body, err := json.Marshal(struct {
		RefreshToken string `json:"refreshToken"`
	}{RefreshToken: refresh})
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, uuid.NewString())

	resp, err := r.http.Do(req)
	if err != nil {
		return "", &domain.NetworkError{Method: req.Method, URL: r.url, Err: err}
	}
	if resp.StatusCode/100 != 2 {
		return "", statusError(resp)
	}
	defer resp.Body.Close()

	var out domain.AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", ErrEmptyRefresh
	}
	token := out.Access()
	if token == "" {
		return "", ErrEmptyRefresh
	}
	if err := r.tokens.SetAccessToken(ctx, token); err != nil {
		return "", err
	}
	if out.RefreshToken != "" {
		if err := r.tokens.SetRefreshToken(ctx, out.RefreshToken); err != nil {
			return "", err
		}
	}
	return token, nil
}

// fail signs the session out after flight failed. Waiters of the same flight
// share one sign-out.
func (r *Reauthorizer) fail(ctx context.Context, flight uint64, cause error) {
	if r.failed.Swap(flight) == flight {
		return
	}
	if err := r.tokens.ClearTokens(ctx); err != nil {
		r.log.WithError(err).Warn("could not clear tokens after failed refresh")
	}
	r.setState(Failed)
	r.log.WithError(cause).Warn("session refresh failed, signing out")
	if r.hook != nil {
		r.hook.OnAuthFailure(ctx, cause)
	}
}

func (r *Reauthorizer) setState(s State) {
	r.mu.Lock()
	r.state = s
	r.mu.Unlock()
}
