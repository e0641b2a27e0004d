package app_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ustat/internal/app"
	"ustat/internal/domain"
	"ustat/internal/mockapi"
)

func startBackend(t *testing.T) (*mockapi.Server, string) {
	t.Helper()
	srv := mockapi.New(mockapi.Options{Logger: app.DiscardLogger(), RotateRefresh: true})
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)
	return srv, ts.URL
}

func newApp(t *testing.T, cfg app.Config) (*app.App, *app.Wire) {
	t.Helper()
	require.NoError(t, cfg.Normalize())
	w, err := app.NewWire(context.Background(), cfg, app.DiscardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })
	return app.New(w), w
}

func baseConfig(t *testing.T, url string) app.Config {
	return app.Config{
		Home:    t.TempDir(),
		APIURL:  url,
		CalcURL: url,
		Timeout: 5 * time.Second,
		Store:   app.StoreMemory,
	}
}

func TestApp_StartupLoginAndRefreshAcrossClients(t *testing.T) {
	srv, url := startBackend(t)
	srv.AddUser(domain.User{FirstName: "Ayşe", Email: "ayse@ustat.ai"}, "s3cret")
	a, _ := newApp(t, baseConfig(t, url))
	ctx := context.Background()

	route, err := a.Start(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.RouteOnboarding, route)

	require.NoError(t, a.FinishOnboarding(ctx))
	route, err = a.Start(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.RouteAuth, route)

	_, err = a.Auth.Login(ctx, domain.Credentials{Email: "ayse@ustat.ai", Password: "s3cret"})
	require.NoError(t, err)

	srv.ExpireAccessTokens()
	_, err = a.Calculations.Maas(ctx, domain.MaasRequest{GrossSalary: 30000})
	require.NoError(t, err)
	_, err = a.Users.Profile(ctx)
	require.NoError(t, err)
	_, err = a.Payments.Methods(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, srv.RefreshCalls())

	route, err = a.Start(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.RouteMain, route)

	require.NoError(t, a.Auth.Logout(ctx))
	route, err = a.Start(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.RouteAuth, route)
}

func TestApp_FileStoreSurvivesRestart(t *testing.T) {
	srv, url := startBackend(t)
	srv.AddUser(domain.User{Email: "ayse@ustat.ai"}, "s3cret")
	cfg := baseConfig(t, url)
	cfg.Store = app.StoreFile
	cfg.Passphrase = "correct horse"
	ctx := context.Background()

	first, _ := newApp(t, cfg)
	require.NoError(t, first.FinishOnboarding(ctx))
	_, err := first.Auth.Login(ctx, domain.Credentials{Email: "ayse@ustat.ai", Password: "s3cret"})
	require.NoError(t, err)

	second, _ := newApp(t, cfg)
	route, err := second.Start(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.RouteMain, route)
	assert.Equal(t, "ayse@ustat.ai", second.Session.Snapshot().User.Email)
}

func TestApp_RedisStoreSharesSession(t *testing.T) {
	srv, url := startBackend(t)
	srv.AddUser(domain.User{Email: "ayse@ustat.ai"}, "s3cret")
	mr := miniredis.RunT(t)
	cfg := baseConfig(t, url)
	cfg.Store = app.StoreRedis
	cfg.RedisURL = "redis://" + mr.Addr()
	ctx := context.Background()

	laptop, _ := newApp(t, cfg)
	require.NoError(t, laptop.FinishOnboarding(ctx))
	_, err := laptop.Auth.Login(ctx, domain.Credentials{Email: "ayse@ustat.ai", Password: "s3cret"})
	require.NoError(t, err)

	desktop, _ := newApp(t, cfg)
	route, err := desktop.Start(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.RouteMain, route)
}

func TestNewWire_RedisUnavailableStartsSignedOut(t *testing.T) {
	cfg := baseConfig(t, "http://127.0.0.1:1")
	cfg.Store = app.StoreRedis
	cfg.RedisURL = "redis://127.0.0.1:1"
	cfg.Timeout = 2 * time.Second
	require.NoError(t, cfg.Normalize())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	w, err := app.NewWire(ctx, cfg, nil)
	require.NoError(t, err)
	defer w.Close()

	route, err := app.New(w).Start(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.RouteAuth, route)
	assert.False(t, w.Session.Snapshot().IsAuthenticated)
}

func TestNewWire_BadRedisURL(t *testing.T) {
	cfg := baseConfig(t, "http://127.0.0.1:1")
	cfg.Store = app.StoreRedis
	cfg.RedisURL = "redis://127.0.0.1:1"
	require.NoError(t, cfg.Normalize())
	cfg.RedisURL = "redis://127.0.0.1:1/notadb"

	_, err := app.NewWire(context.Background(), cfg, nil)
	assert.Error(t, err)
}
