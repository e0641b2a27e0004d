// Package mockapitest starts a mockapi.Server for tests and wires the client
// stack against it.
package mockapitest

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"

	"ustat/internal/api"
	"ustat/internal/domain"
	"ustat/internal/mockapi"
	"ustat/internal/session"
	"ustat/internal/store"
)

// Harness is a running Server plus the client stack wired against it the
// same way the CLI wires it: one token store, one session, one shared
// reauthorizer, and the same client serving both API roots.
type Harness struct {
	Server  *mockapi.Server
	URL     string
	KV      *store.MemoryKV
	Tokens  *store.Tokens
	Session *session.Context
	Reauth  *api.Reauthorizer
	API     *api.Client
}

// NewHarness starts a Server for the duration of the test.
func NewHarness(t testing.TB, opts mockapi.Options) *Harness {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	if opts.Logger == nil {
		opts.Logger = log
	}

	srv := mockapi.New(opts)
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)

	kv := store.NewMemoryKV()
	tokens := store.NewTokens(kv)
	sess := session.New(tokens, log)
	reauth := api.NewReauthorizer(api.ReauthOptions{
		URL:       ts.URL + api.RefreshPath,
		Tokens:    tokens,
		Logger:    log,
		OnFailure: sess,
	})
	client, err := api.New(api.Options{BaseURL: ts.URL, Tokens: tokens, Reauth: reauth, Logger: log})
	if err != nil {
		t.Fatalf("api client: %v", err)
	}
	return &Harness{
		Server:  srv,
		URL:     ts.URL,
		KV:      kv,
		Tokens:  tokens,
		Session: sess,
		Reauth:  reauth,
		API:     client,
	}
}

// SignIn creates an account and logs it in through /auth/login, leaving the
// session authenticated.
func (h *Harness) SignIn(t testing.TB, email, password string) domain.User {
	t.Helper()
	h.Server.AddUser(domain.User{FirstName: "Ayşe", LastName: "Yılmaz", Email: email}, password)

	ctx := context.Background()
	var resp domain.AuthResponse
	if err := h.API.Post(ctx, "/auth/login", domain.Credentials{Email: email, Password: password}, &resp); err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := h.Session.LoginSuccess(ctx, domain.Session{
		AccessToken:  resp.Access(),
		RefreshToken: resp.RefreshToken,
		User:         *resp.User,
	}); err != nil {
		t.Fatalf("login success: %v", err)
	}
	return *resp.User
}
