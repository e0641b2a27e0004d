package mockapi

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"ustat/internal/domain"
)

func (s *Server) currentSubscription(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sub, ok := s.subs[emailFrom(r.Context())]
	if !ok {
		fail(w, http.StatusNotFound, "no active subscription")
		return
	}
	writeJSON(w, http.StatusOK, envelope{"subscription": sub})
}

func (s *Server) subscribe(w http.ResponseWriter, r *http.Request) {
	var in struct {
		PackageID string `json:"packageId"`
		domain.PaymentDetails
	}
	if !readJSON(w, r, &in) {
		return
	}
	email := emailFrom(r.Context())

	s.mu.Lock()
	defer s.mu.Unlock()
	var pkg *domain.Package
	for i := range s.packages {
		if s.packages[i].ID == in.PackageID {
			pkg = &s.packages[i]
		}
	}
	if pkg == nil {
		fail(w, http.StatusNotFound, "package not found")
		return
	}
	if in.PaymentMethodID != "" && !s.hasMethodLocked(email, in.PaymentMethodID) {
		fail(w, http.StatusUnprocessableEntity, "payment method not found")
		return
	}

	now := s.now().UTC()
	end := now.AddDate(0, 1, 0)
	if pkg.Period == "yearly" {
		end = now.AddDate(1, 0, 0)
	}
	sub := &domain.Subscription{
		ID:          uuid.NewString(),
		PackageID:   pkg.ID,
		PackageName: pkg.Name,
		Status:      "active",
		StartDate:   now,
		EndDate:     end,
		AutoRenew:   true,
	}
	s.subs[email] = sub
	s.invoices[email] = append(s.invoices[email], domain.Invoice{
		ID:          uuid.NewString(),
		Amount:      pkg.Price,
		Currency:    pkg.Currency,
		Status:      "paid",
		Description: pkg.Name,
		CreatedAt:   now,
	})
	writeJSON(w, http.StatusCreated, envelope{"subscription": sub})
}

func (s *Server) cancelSubscription(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sub, ok := s.subs[emailFrom(r.Context())]
	if !ok {
		fail(w, http.StatusNotFound, "no active subscription")
		return
	}
	sub.Status = "cancelled"
	sub.AutoRenew = false
	writeJSON(w, http.StatusOK, envelope{"subscription": sub})
}

func (s *Server) listMethods(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ms := s.methods[emailFrom(r.Context())]
	if ms == nil {
		ms = []domain.PaymentMethod{}
	}
	writeJSON(w, http.StatusOK, envelope{"methods": ms})
}

func (s *Server) addMethod(w http.ResponseWriter, r *http.Request) {
	var in domain.PaymentDetails
	if !readJSON(w, r, &in) {
		return
	}
	if len(in.CardNumber) < 4 {
		fail(w, http.StatusUnprocessableEntity, "card number is not valid")
		return
	}
	email := emailFrom(r.Context())

	s.mu.Lock()
	defer s.mu.Unlock()
	m := domain.PaymentMethod{
		ID:          uuid.NewString(),
		Brand:       brand(in.CardNumber),
		Last4:       in.CardNumber[len(in.CardNumber)-4:],
		ExpiryMonth: in.ExpiryMonth,
		ExpiryYear:  in.ExpiryYear,
		CardHolder:  in.CardHolder,
		Default:     len(s.methods[email]) == 0,
	}
	s.methods[email] = append(s.methods[email], m)
	writeJSON(w, http.StatusCreated, envelope{"method": m})
}

func (s *Server) deleteMethod(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	email := emailFrom(r.Context())

	s.mu.Lock()
	defer s.mu.Unlock()
	ms := s.methods[email]
	for i, m := range ms {
		if m.ID == id {
			s.methods[email] = append(ms[:i:i], ms[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	fail(w, http.StatusNotFound, "payment method not found")
}

func (s *Server) history(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	inv := s.invoices[emailFrom(r.Context())]
	if inv == nil {
		inv = []domain.Invoice{}
	}
	writeJSON(w, http.StatusOK, envelope{"history": inv})
}

func (s *Server) hasMethodLocked(email, id string) bool {
	for _, m := range s.methods[email] {
		if m.ID == id {
			return true
		}
	}
	return false
}

func brand(number string) string {
	switch {
	case strings.HasPrefix(number, "4"):
		return "visa"
	case strings.HasPrefix(number, "5"):
		return "mastercard"
	case strings.HasPrefix(number, "9792"):
		return "troy"
	}
	return "card"
}
