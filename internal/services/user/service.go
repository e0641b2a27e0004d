package user

import (
	"context"
	"encoding/json"
	"strings"

	"ustat/internal/api"
	"ustat/internal/domain"
	"ustat/internal/services/form"
)

const (
	pathProfile  = "/user/profile"
	pathPassword = "/user/password"
)

// Service implements domain.UserService.
type Service struct {
	api     domain.APIClient
	session domain.SessionManager
}

func New(c domain.APIClient, session domain.SessionManager) *Service {
	return &Service{api: c, session: session}
}

// Profile fetches the profile and refreshes the cached user.
func (s *Service) Profile(ctx context.Context) (domain.User, error) {
	if err := s.requireSession(); err != nil {
		return domain.User{}, err
	}
	var raw json.RawMessage
	if err := s.api.Get(ctx, pathProfile, nil, &raw); err != nil {
		return domain.User{}, err
	}
	return s.cache(ctx, raw)
}

// UpdateProfile sends the changed fields. The cached user is merged with the
// server's answer, or with the request itself if the server echoes nothing.
func (s *Service) UpdateProfile(ctx context.Context, p domain.ProfileUpdate) (domain.User, error) {
	if err := s.requireSession(); err != nil {
		return domain.User{}, err
	}
	p.FirstName = strings.TrimSpace(p.FirstName)
	p.LastName = strings.TrimSpace(p.LastName)
	p.Email = strings.TrimSpace(p.Email)
	p.Phone = strings.TrimSpace(p.Phone)
	if p == (domain.ProfileUpdate{}) {
		return domain.User{}, domain.Invalid("profile", "nothing to update")
	}
	if p.Email != "" {
		if err := form.Email("email", p.Email); err != nil {
			return domain.User{}, err
		}
	}

	var raw json.RawMessage
	if err := s.api.Put(ctx, pathProfile, p, &raw); err != nil {
		return domain.User{}, err
	}
	echo := domain.User{FirstName: p.FirstName, LastName: p.LastName, Email: p.Email, Phone: p.Phone}
	if len(raw) > 0 {
		var u domain.User
		if err := api.DecodeObject(raw, &u, "user", "data"); err == nil {
			echo = echo.Merge(u)
		}
	}
	if err := s.session.UpdateUser(ctx, echo); err != nil {
		return domain.User{}, err
	}
	return derefUser(s.session.Snapshot().User), nil
}

// ChangePassword checks the form locally and submits it.
func (s *Service) ChangePassword(ctx context.Context, c domain.PasswordChange) error {
	if err := s.requireSession(); err != nil {
		return err
	}
	if err := form.Required("currentPassword", c.Current, "newPassword", c.New, "confirm", c.Confirm); err != nil {
		return err
	}
	if err := form.Match("confirm", c.New, c.Confirm); err != nil {
		return err
	}
	if c.Current == c.New {
		return domain.Invalid("newPassword", "new password must differ from the current one")
	}
	return s.api.Put(ctx, pathPassword, c, nil)
}

func (s *Service) cache(ctx context.Context, raw json.RawMessage) (domain.User, error) {
	var u domain.User
	if err := api.DecodeObject(raw, &u, "user", "data"); err != nil {
		return domain.User{}, err
	}
	if err := s.session.UpdateUser(ctx, u); err != nil {
		return domain.User{}, err
	}
	return derefUser(s.session.Snapshot().User), nil
}

func (s *Service) requireSession() error {
	if !s.session.Snapshot().IsAuthenticated {
		return domain.ErrNotAuthenticated
	}
	return nil
}

func derefUser(u *domain.User) domain.User {
	if u == nil {
		return domain.User{}
	}
	return *u
}

// Compile-time assertion that Service implements domain.UserService.
var _ domain.UserService = (*Service)(nil)
