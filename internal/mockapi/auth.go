package mockapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"ustat/internal/domain"
)

type tokenPair struct {
	Token        string       `json:"token"`
	RefreshToken string       `json:"refreshToken,omitempty"`
	User         *domain.User `json:"user,omitempty"`
}

// issueAccess signs a new access token for email. Callers hold s.mu.
func (s *Server) issueAccess(email string) (string, error) {
	id := uuid.NewString()
	now := s.now()
	claims := jwt.RegisteredClaims{
		ID:        id,
		Subject:   email,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", err
	}
	s.live[id] = email
	return signed, nil
}

// issueRefresh returns a new opaque refresh token for email. Callers hold s.mu.
func (s *Server) issueRefresh(email string) string {
	tok := uuid.NewString()
	s.refresh[tok] = email
	return tok
}

// authenticate checks the bearer token's signature, expiry and revocation.
func (s *Server) authenticate(r *http.Request) (string, bool) {
	raw := bearer(r)
	if raw == "" {
		return "", false
	}
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return "", false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	email, ok := s.live[claims.ID]
	if !ok || s.accounts[email] == nil {
		return "", false
	}
	return email, true
}

func (s *Server) addUserLocked(u domain.User, password string) domain.User {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	s.accounts[u.Email] = &account{user: u, password: password}
	return u
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var in domain.Credentials
	if !readJSON(w, r, &in) {
		return
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))

	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.accounts[email]
	if !ok || acc.password != in.Password {
		fail(w, http.StatusUnauthorized, "invalid e-mail or password")
		return
	}
	access, err := s.issueAccess(email)
	if err != nil {
		fail(w, http.StatusInternalServerError, err.Error())
		return
	}
	u := acc.user
	writeJSON(w, http.StatusOK, tokenPair{Token: access, RefreshToken: s.issueRefresh(email), User: &u})
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var in domain.Registration
	if !readJSON(w, r, &in) {
		return
	}
	if in.Email == "" || in.Password == "" {
		fail(w, http.StatusUnprocessableEntity, "e-mail and password are required")
		return
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[email]; exists {
		fail(w, http.StatusConflict, "an account with this e-mail already exists")
		return
	}
	u := s.addUserLocked(domain.User{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     email,
		Phone:     in.Phone,
	}, in.Password)
	writeJSON(w, http.StatusCreated, envelope{"message": "registration successful", "user": u})
}

func (s *Server) forgotPassword(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email string `json:"email"`
	}
	if !readJSON(w, r, &in) {
		return
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))

	s.mu.Lock()
	if _, ok := s.accounts[email]; ok {
		for tok, e := range s.resets {
			if e == email {
				delete(s.resets, tok)
			}
		}
		s.resets[uuid.NewString()] = email
	}
	s.mu.Unlock()

	// Same answer whether or not the account exists.
	writeJSON(w, http.StatusOK, envelope{"message": "if the address is registered, a reset link has been sent"})
}

func (s *Server) resetPassword(w http.ResponseWriter, r *http.Request) {
	var in domain.PasswordReset
	if !readJSON(w, r, &in) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	email, ok := s.resets[in.Token]
	if !ok || in.Password == "" {
		fail(w, http.StatusBadRequest, "reset link is invalid or has expired")
		return
	}
	delete(s.resets, in.Token)
	s.accounts[email].password = in.Password
	writeJSON(w, http.StatusOK, envelope{"message": "password updated"})
}

func (s *Server) refreshToken(w http.ResponseWriter, r *http.Request) {
	var in struct {
		RefreshToken string `json:"refreshToken"`
	}
	if !readJSON(w, r, &in) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshCalls++
	email, ok := s.refresh[in.RefreshToken]
	if s.failRefresh || !ok {
		fail(w, http.StatusUnauthorized, "refresh token is invalid")
		return
	}
	access, err := s.issueAccess(email)
	if err != nil {
		fail(w, http.StatusInternalServerError, err.Error())
		return
	}
	out := tokenPair{Token: access}
	if s.rotate {
		delete(s.refresh, in.RefreshToken)
		out.RefreshToken = s.issueRefresh(email)
	}
	writeJSON(w, http.StatusOK, out)
}

// logout revokes the caller's tokens when it presents a live one and
// succeeds either way.
func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	if email, ok := s.authenticate(r); ok {
		s.mu.Lock()
		for id, e := range s.live {
			if e == email {
				delete(s.live, id)
			}
		}
		for tok, e := range s.refresh {
			if e == email {
				delete(s.refresh, tok)
			}
		}
		s.mu.Unlock()
	}
	writeJSON(w, http.StatusOK, envelope{"message": "signed out"})
}
