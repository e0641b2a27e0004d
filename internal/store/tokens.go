package store

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"ustat/internal/domain"
)

// Tokens is the Token Store: typed access to the session keys of a KV.
type Tokens struct {
	kv domain.KV
}

// NewTokens returns a Token Store over kv.
func NewTokens(kv domain.KV) *Tokens { return &Tokens{kv: kv} }

func (t *Tokens) AccessToken(ctx context.Context) (string, bool, error) {
	return t.nonEmpty(ctx, domain.KeyAccessToken)
}

func (t *Tokens) SetAccessToken(ctx context.Context, token string) error {
	return t.kv.Set(ctx, domain.KeyAccessToken, token)
}

func (t *Tokens) RefreshToken(ctx context.Context) (string, bool, error) {
	return t.nonEmpty(ctx, domain.KeyRefreshToken)
}

func (t *Tokens) SetRefreshToken(ctx context.Context, token string) error {
	return t.kv.Set(ctx, domain.KeyRefreshToken, token)
}

// User returns the cached profile. Unreadable JSON counts as absent.
func (t *Tokens) User(ctx context.Context) (domain.User, bool, error) {
	raw, ok, err := t.nonEmpty(ctx, domain.KeyUserData)
	if err != nil || !ok {
		return domain.User{}, false, err
	}
	var u domain.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return domain.User{}, false, nil
	}
	return u, true, nil
}

func (t *Tokens) SetUser(ctx context.Context, u domain.User) error {
	b, err := json.Marshal(u)
	if err != nil {
		return err
	}
	return t.kv.Set(ctx, domain.KeyUserData, string(b))
}

// SaveSession writes every part of s. An empty refresh token leaves the
// stored one in place.
func (t *Tokens) SaveSession(ctx context.Context, s domain.Session) error {
	if err := t.SetAccessToken(ctx, s.AccessToken); err != nil {
		return err
	}
	if s.RefreshToken != "" {
		if err := t.SetRefreshToken(ctx, s.RefreshToken); err != nil {
			return err
		}
	}
	return t.SetUser(ctx, s.User)
}

// LoadSession returns the stored session; ok is false without an access token.
func (t *Tokens) LoadSession(ctx context.Context) (domain.Session, bool, error) {
	access, ok, err := t.AccessToken(ctx)
	if err != nil || !ok {
		return domain.Session{}, false, err
	}
	refresh, _, err := t.RefreshToken(ctx)
	if err != nil {
		return domain.Session{}, false, err
	}
	u, _, err := t.User(ctx)
	if err != nil {
		return domain.Session{}, false, err
	}
	return domain.Session{AccessToken: access, RefreshToken: refresh, User: u}, true, nil
}

func (t *Tokens) ClearTokens(ctx context.Context) error {
	return t.removeAll(ctx, domain.KeyAccessToken, domain.KeyRefreshToken)
}

// Clear removes tokens and user data. Every key is attempted even if an
// earlier removal fails.
func (t *Tokens) Clear(ctx context.Context) error {
	return t.removeAll(ctx, domain.KeyAccessToken, domain.KeyRefreshToken, domain.KeyUserData)
}

func (t *Tokens) OnboardingSeen(ctx context.Context) (bool, error) {
	raw, ok, err := t.kv.Get(ctx, domain.KeyOnboardingSeen)
	if err != nil || !ok {
		return false, err
	}
	seen, err := strconv.ParseBool(raw)
	if err != nil {
		return false, nil
	}
	return seen, nil
}

func (t *Tokens) MarkOnboardingSeen(ctx context.Context) error {
	return t.kv.Set(ctx, domain.KeyOnboardingSeen, "true")
}

func (t *Tokens) nonEmpty(ctx context.Context, key string) (string, bool, error) {
	v, ok, err := t.kv.Get(ctx, key)
	if err != nil {
		return "", false, err
	}
	return v, ok && v != "", nil
}

func (t *Tokens) removeAll(ctx context.Context, keys ...string) error {
	var errs []error
	for _, k := range keys {
		if err := t.kv.Remove(ctx, k); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Compile-time assertion that Tokens implements domain.TokenStore.
var _ domain.TokenStore = (*Tokens)(nil)
