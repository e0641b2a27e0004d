package session_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ustat/internal/domain"
	"ustat/internal/session"
	"ustat/internal/store"
)

func TestInitialRoute(t *testing.T) {
	ctx := context.Background()

	t.Run("first launch", func(t *testing.T) {
		c, _ := newContext(t)
		route, err := c.InitialRoute(ctx)
		require.NoError(t, err)
		assert.Equal(t, domain.RouteOnboarding, route)
	})

	t.Run("onboarded, signed out", func(t *testing.T) {
		c, tokens := newContext(t)
		require.NoError(t, tokens.MarkOnboardingSeen(ctx))
		route, err := c.InitialRoute(ctx)
		require.NoError(t, err)
		assert.Equal(t, domain.RouteAuth, route)
	})

	t.Run("onboarded, stored session", func(t *testing.T) {
		tokens := store.NewTokens(store.NewMemoryKV())
		require.NoError(t, tokens.MarkOnboardingSeen(ctx))
		require.NoError(t, tokens.SaveSession(ctx, domain.Session{AccessToken: "A1", User: ayse}))

		c := session.New(tokens, quietLogger())
		route, err := c.InitialRoute(ctx)
		require.NoError(t, err)
		assert.Equal(t, domain.RouteMain, route)
		assert.True(t, c.Snapshot().IsAuthenticated)
	})

	t.Run("unreadable store", func(t *testing.T) {
		c := session.New(store.NewTokens(brokenKV{}), quietLogger())
		route, err := c.InitialRoute(ctx)
		require.NoError(t, err)
		assert.Equal(t, domain.RouteAuth, route)
	})
}
