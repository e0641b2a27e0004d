package mockapi

import (
	"net/http"
	"strings"

	"ustat/internal/domain"
)

func (s *Server) profile(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc := s.accounts[emailFrom(r.Context())]
	writeJSON(w, http.StatusOK, envelope{"user": acc.user})
}

func (s *Server) updateProfile(w http.ResponseWriter, r *http.Request) {
	var in domain.ProfileUpdate
	if !readJSON(w, r, &in) {
		return
	}
	email := emailFrom(r.Context())

	s.mu.Lock()
	defer s.mu.Unlock()
	acc := s.accounts[email]
	next := acc.user.Merge(domain.User{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:     in.Phone,
	})
	if next.Email != email {
		if _, taken := s.accounts[next.Email]; taken {
			fail(w, http.StatusConflict, "this e-mail is already in use")
			return
		}
		s.rekeyLocked(email, next.Email)
	}
	acc.user = next
	writeJSON(w, http.StatusOK, envelope{"user": next})
}

func (s *Server) changePassword(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Current string `json:"currentPassword"`
		New     string `json:"newPassword"`
	}
	if !readJSON(w, r, &in) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	acc := s.accounts[emailFrom(r.Context())]
	if acc.password != in.Current {
		fail(w, http.StatusBadRequest, "current password is incorrect")
		return
	}
	if in.New == "" {
		fail(w, http.StatusUnprocessableEntity, "new password is required")
		return
	}
	acc.password = in.New
	writeJSON(w, http.StatusOK, envelope{"message": "password changed"})
}

// rekeyLocked moves everything held under from to to.
func (s *Server) rekeyLocked(from, to string) {
	s.accounts[to] = s.accounts[from]
	delete(s.accounts, from)
	for _, m := range []map[string]string{s.live, s.refresh, s.resets} {
		for k, e := range m {
			if e == from {
				m[k] = to
			}
		}
	}
	if sub, ok := s.subs[from]; ok {
		s.subs[to] = sub
		delete(s.subs, from)
	}
	if ms, ok := s.methods[from]; ok {
		s.methods[to] = ms
		delete(s.methods, from)
	}
	if inv, ok := s.invoices[from]; ok {
		s.invoices[to] = inv
		delete(s.invoices, from)
	}
}
