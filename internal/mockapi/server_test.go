package mockapi_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ustat/internal/domain"
	"ustat/internal/mockapi"
	"ustat/internal/mockapi/mockapitest"
)

func TestServer_LoginAndProfile(t *testing.T) {
	h := mockapitest.NewHarness(t, mockapi.Options{})
	u := h.SignIn(t, "ayse@ustat.ai", "s3cret")
	assert.NotEmpty(t, u.ID)

	var out struct {
		User domain.User `json:"user"`
	}
	require.NoError(t, h.API.Get(context.Background(), "/user/profile", nil, &out))
	assert.Equal(t, "ayse@ustat.ai", out.User.Email)
}

func TestServer_BadCredentials(t *testing.T) {
	h := mockapitest.NewHarness(t, mockapi.Options{})
	h.Server.AddUser(domain.User{Email: "ayse@ustat.ai"}, "s3cret")

	err := h.API.Post(context.Background(), "/auth/login", domain.Credentials{Email: "ayse@ustat.ai", Password: "nope"}, nil)
	var ae *domain.AuthError
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, "invalid e-mail or password", domain.UserMessage(err))
	assert.Zero(t, h.Server.RefreshCalls())
}

func TestServer_ExpiredAccessTokenIsRefreshed(t *testing.T) {
	h := mockapitest.NewHarness(t, mockapi.Options{RotateRefresh: true})
	h.SignIn(t, "ayse@ustat.ai", "s3cret")
	ctx := context.Background()
	oldAccess, _, _ := h.Tokens.AccessToken(ctx)
	oldRefresh, _, _ := h.Tokens.RefreshToken(ctx)

	h.Server.ExpireAccessTokens()
	require.NoError(t, h.API.Get(ctx, "/payment/methods", nil, nil))

	assert.Equal(t, 1, h.Server.RefreshCalls())
	newAccess, _, _ := h.Tokens.AccessToken(ctx)
	newRefresh, _, _ := h.Tokens.RefreshToken(ctx)
	assert.NotEqual(t, oldAccess, newAccess)
	assert.NotEqual(t, oldRefresh, newRefresh)
	assert.True(t, h.Session.Snapshot().IsAuthenticated)
}

func TestServer_FailedRefreshSignsOut(t *testing.T) {
	h := mockapitest.NewHarness(t, mockapi.Options{})
	h.SignIn(t, "ayse@ustat.ai", "s3cret")
	h.Server.ExpireAccessTokens()
	h.Server.FailRefresh(true)

	err := h.API.Get(context.Background(), "/user/profile", nil, nil)
	require.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.False(t, h.Session.Snapshot().IsAuthenticated)

	_, ok, err := h.Tokens.AccessToken(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestServer_UnknownRoute(t *testing.T) {
	h := mockapitest.NewHarness(t, mockapi.Options{})
	err := h.API.Get(context.Background(), "/nope", nil, nil)
	var se *domain.ServerError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 404, se.Status)
	assert.Equal(t, "not found", se.Message)
}
