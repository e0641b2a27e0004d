package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ustat/internal/domain"
	"ustat/internal/mockapi"
	"ustat/internal/mockapi/mockapitest"
	"ustat/internal/services/auth"
)

func newService(t *testing.T) (*auth.Service, *mockapitest.Harness) {
	t.Helper()
	h := mockapitest.NewHarness(t, mockapi.Options{})
	return auth.New(h.API, h.Session, nil), h
}

func TestLogin(t *testing.T) {
	svc, h := newService(t)
	h.Server.AddUser(domain.User{FirstName: "Ayşe", Email: "ayse@ustat.ai"}, "s3cret")
	ctx := context.Background()

	u, err := svc.Login(ctx, domain.Credentials{Email: " ayse@ustat.ai ", Password: "s3cret"})
	require.NoError(t, err)
	assert.Equal(t, "Ayşe", u.FirstName)

	st := h.Session.Snapshot()
	assert.True(t, st.IsAuthenticated)
	assert.False(t, st.Loading)

	sess, ok, err := h.Tokens.LoadSession(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.NotEmpty(t, sess.AccessToken)
	assert.NotEmpty(t, sess.RefreshToken)
	assert.Equal(t, "ayse@ustat.ai", sess.User.Email)
}

func TestLogin_Validation(t *testing.T) {
	svc, h := newService(t)
	_, err := svc.Login(context.Background(), domain.Credentials{Email: "ayse@ustat.ai"})
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "password", ve.Field)
	assert.False(t, h.Session.Snapshot().Loading)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, h := newService(t)
	h.Server.AddUser(domain.User{Email: "ayse@ustat.ai"}, "s3cret")

	_, err := svc.Login(context.Background(), domain.Credentials{Email: "ayse@ustat.ai", Password: "wrong"})
	require.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Equal(t, "invalid e-mail or password", domain.UserMessage(err))

	st := h.Session.Snapshot()
	assert.False(t, st.IsAuthenticated)
	assert.Equal(t, err, st.Error)
	assert.Zero(t, h.Server.RefreshCalls())
}

func TestRegister(t *testing.T) {
	svc, h := newService(t)
	reg := domain.Registration{
		FirstName:   "Ayşe",
		LastName:    "Yılmaz",
		Email:       "ayse@ustat.ai",
		Phone:       "+905551112233",
		Password:    "s3cret",
		Confirm:     "s3cret",
		AcceptTerms: true,
	}
	resp, err := svc.Register(context.Background(), reg)
	require.NoError(t, err)
	require.NotNil(t, resp.User)
	assert.Equal(t, "ayse@ustat.ai", resp.User.Email)
	assert.False(t, h.Session.Snapshot().IsAuthenticated)

	_, err = svc.Register(context.Background(), reg)
	var se *domain.ServerError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 409, se.Status)
}

func TestRegister_Validation(t *testing.T) {
	svc, _ := newService(t)
	base := domain.Registration{
		FirstName: "Ayşe", LastName: "Yılmaz", Email: "ayse@ustat.ai",
		Phone: "+905551112233", Password: "s3cret", Confirm: "s3cret", AcceptTerms: true,
	}
	cases := map[string]struct {
		mutate func(*domain.Registration)
		field  string
	}{
		"missing phone":      {func(r *domain.Registration) { r.Phone = " " }, "phoneNumber"},
		"bad email":          {func(r *domain.Registration) { r.Email = "ayse" }, "email"},
		"mismatch":           {func(r *domain.Registration) { r.Confirm = "other" }, "confirm"},
		"terms not accepted": {func(r *domain.Registration) { r.AcceptTerms = false }, "acceptTerms"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			r := base
			tc.mutate(&r)
			_, err := svc.Register(context.Background(), r)
			var ve *domain.ValidationError
			require.True(t, errors.As(err, &ve), "got %v", err)
			assert.Equal(t, tc.field, ve.Field)
		})
	}
}

func TestForgotAndResetPassword(t *testing.T) {
	svc, h := newService(t)
	h.Server.AddUser(domain.User{Email: "ayse@ustat.ai"}, "old")
	ctx := context.Background()

	require.NoError(t, svc.ForgotPassword(ctx, "ayse@ustat.ai"))
	token, ok := h.Server.ResetToken("ayse@ustat.ai")
	require.True(t, ok)

	err := svc.ResetPassword(ctx, domain.PasswordReset{Token: token, Password: "new", Confirm: "nope"})
	require.ErrorIs(t, err, domain.ErrValidation)

	require.NoError(t, svc.ResetPassword(ctx, domain.PasswordReset{Token: token, Password: "new", Confirm: "new"}))
	_, err = svc.Login(ctx, domain.Credentials{Email: "ayse@ustat.ai", Password: "new"})
	require.NoError(t, err)
}

func TestForgotPassword_InvalidEmail(t *testing.T) {
	svc, _ := newService(t)
	require.ErrorIs(t, svc.ForgotPassword(context.Background(), "not-an-email"), domain.ErrValidation)
}

func TestLogout(t *testing.T) {
	svc, h := newService(t)
	h.SignIn(t, "ayse@ustat.ai", "s3cret")
	ctx := context.Background()

	require.NoError(t, svc.Logout(ctx))
	assert.False(t, h.Session.Snapshot().IsAuthenticated)
	_, ok, err := h.Tokens.AccessToken(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	// Again, with nothing to revoke.
	require.NoError(t, svc.Logout(ctx))
}

func TestLogout_ServerUnreachable(t *testing.T) {
	h := mockapitest.NewHarness(t, mockapi.Options{})
	h.SignIn(t, "ayse@ustat.ai", "s3cret")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	svc := auth.New(h.API, h.Session, nil)
	// The server call fails on the cancelled context; local state is still cleared.
	require.NoError(t, svc.Logout(ctx))
	assert.False(t, h.Session.Snapshot().IsAuthenticated)
}
