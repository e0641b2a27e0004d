package auth

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/sirupsen/logrus"

	"ustat/internal/api"
	"ustat/internal/domain"
	"ustat/internal/services/form"
)

const (
	pathLogin          = "/auth/login"
	pathRegister       = "/auth/register"
	pathForgotPassword = "/auth/forgot-password"
	pathResetPassword  = "/auth/reset-password"
	pathLogout         = "/auth/logout"
	pathProfile        = "/user/profile"
)

// Service implements domain.AuthService.
type Service struct {
	api     domain.APIClient
	session domain.SessionManager
	log     logrus.FieldLogger
}

func New(c domain.APIClient, session domain.SessionManager, log logrus.FieldLogger) *Service {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Service{api: c, session: session, log: log}
}

// Login exchanges credentials for a session. When the server omits the user
// object the profile is fetched once the tokens are stored.
func (s *Service) Login(ctx context.Context, c domain.Credentials) (domain.User, error) {
	c.Email = strings.TrimSpace(c.Email)
	if err := form.Required("email", c.Email, "password", c.Password); err != nil {
		return domain.User{}, err
	}

	s.session.LoginStart()
	var resp domain.AuthResponse
	if err := s.api.Post(ctx, pathLogin, c, &resp); err != nil {
		s.session.LoginFailure(err)
		return domain.User{}, err
	}

	user := domain.User{Email: c.Email}
	if resp.User != nil {
		user = user.Merge(*resp.User)
	}
	sess := domain.Session{AccessToken: resp.Access(), RefreshToken: resp.RefreshToken, User: user}
	if err := s.session.LoginSuccess(ctx, sess); err != nil {
		return domain.User{}, err
	}

	if resp.User == nil {
		profile, err := s.profile(ctx)
		if err != nil {
			s.log.WithError(err).Debug("profile fetch after login failed")
			return user, nil
		}
		if err := s.session.UpdateUser(ctx, profile); err != nil {
			s.log.WithError(err).Warn("could not cache profile")
		}
		user = user.Merge(profile)
	}
	return user, nil
}

// Register creates an account. It does not sign the user in.
func (s *Service) Register(ctx context.Context, r domain.Registration) (domain.AuthResponse, error) {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Email = strings.TrimSpace(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)

	if err := form.Required(
		"firstName", r.FirstName,
		"lastName", r.LastName,
		"email", r.Email,
		"phoneNumber", r.Phone,
		"password", r.Password,
		"confirm", r.Confirm,
	); err != nil {
		return domain.AuthResponse{}, err
	}
	if err := form.Email("email", r.Email); err != nil {
		return domain.AuthResponse{}, err
	}
	if err := form.Match("confirm", r.Password, r.Confirm); err != nil {
		return domain.AuthResponse{}, err
	}
	if !r.AcceptTerms {
		return domain.AuthResponse{}, domain.Invalid("acceptTerms", "you must accept the terms of use")
	}

	var resp domain.AuthResponse
	if err := s.api.Post(ctx, pathRegister, r, &resp); err != nil {
		return domain.AuthResponse{}, err
	}
	return resp, nil
}

// ForgotPassword asks the server to mail a reset link.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if err := form.Email("email", email); err != nil {
		return err
	}
	return s.api.Post(ctx, pathForgotPassword, map[string]string{"email": email}, nil)
}

// ResetPassword completes a forgot-password flow with the mailed token.
func (s *Service) ResetPassword(ctx context.Context, r domain.PasswordReset) error {
	if err := form.Required("token", r.Token, "password", r.Password, "confirm", r.Confirm); err != nil {
		return err
	}
	if err := form.Match("confirm", r.Password, r.Confirm); err != nil {
		return err
	}
	return s.api.Post(ctx, pathResetPassword, r, nil)
}

// Logout tells the server (best effort) and then clears local state. Only
// local failures are returned.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.api.Post(ctx, pathLogout, nil, nil); err != nil {
		s.log.WithError(err).Debug("server logout failed")
	}
	return s.session.Logout(ctx)
}

func (s *Service) profile(ctx context.Context) (domain.User, error) {
	var raw json.RawMessage
	if err := s.api.Get(ctx, pathProfile, nil, &raw); err != nil {
		return domain.User{}, err
	}
	var u domain.User
	if err := api.DecodeObject(raw, &u, "user", "data"); err != nil {
		return domain.User{}, err
	}
	return u, nil
}

// Compile-time assertion that Service implements domain.AuthService.
var _ domain.AuthService = (*Service)(nil)
