package user_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ustat/internal/domain"
	"ustat/internal/mockapi"
	"ustat/internal/mockapi/mockapitest"
	"ustat/internal/services/user"
)

func signedIn(t *testing.T) (*user.Service, *mockapitest.Harness) {
	t.Helper()
	h := mockapitest.NewHarness(t, mockapi.Options{})
	h.SignIn(t, "ayse@ustat.ai", "s3cret")
	return user.New(h.API, h.Session), h
}

func TestProfile(t *testing.T) {
	svc, _ := signedIn(t)
	u, err := svc.Profile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ayse@ustat.ai", u.Email)
	assert.Equal(t, "Ayşe", u.FirstName)
}

func TestProfile_RequiresSession(t *testing.T) {
	h := mockapitest.NewHarness(t, mockapi.Options{})
	svc := user.New(h.API, h.Session)
	_, err := svc.Profile(context.Background())
	require.ErrorIs(t, err, domain.ErrNotAuthenticated)
}

func TestUpdateProfile(t *testing.T) {
	svc, h := signedIn(t)
	ctx := context.Background()

	u, err := svc.UpdateProfile(ctx, domain.ProfileUpdate{Phone: "+905551112233"})
	require.NoError(t, err)
	assert.Equal(t, "+905551112233", u.Phone)
	assert.Equal(t, "Ayşe", u.FirstName)

	cached, ok, err := h.Tokens.User(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "+905551112233", cached.Phone)
}

func TestUpdateProfile_Validation(t *testing.T) {
	svc, _ := signedIn(t)
	ctx := context.Background()

	_, err := svc.UpdateProfile(ctx, domain.ProfileUpdate{})
	require.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.UpdateProfile(ctx, domain.ProfileUpdate{Email: "broken"})
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "email", ve.Field)
}

func TestChangePassword(t *testing.T) {
	svc, _ := signedIn(t)
	ctx := context.Background()

	err := svc.ChangePassword(ctx, domain.PasswordChange{Current: "wrong", New: "n3w", Confirm: "n3w"})
	var se *domain.ServerError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "current password is incorrect", domain.UserMessage(err))

	require.NoError(t, svc.ChangePassword(ctx, domain.PasswordChange{Current: "s3cret", New: "n3w", Confirm: "n3w"}))
}

func TestChangePassword_Validation(t *testing.T) {
	svc, _ := signedIn(t)
	ctx := context.Background()

	require.ErrorIs(t, svc.ChangePassword(ctx, domain.PasswordChange{Current: "s3cret", New: "a", Confirm: "b"}), domain.ErrValidation)
	require.ErrorIs(t, svc.ChangePassword(ctx, domain.PasswordChange{Current: "same", New: "same", Confirm: "same"}), domain.ErrValidation)
	require.ErrorIs(t, svc.ChangePassword(ctx, domain.PasswordChange{New: "x", Confirm: "x"}), domain.ErrValidation)
}

func TestProfile_SurvivesExpiredAccessToken(t *testing.T) {
	svc, h := signedIn(t)
	h.Server.ExpireAccessTokens()

	u, err := svc.Profile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ayse@ustat.ai", u.Email)
	assert.Equal(t, 1, h.Server.RefreshCalls())
}
