package payment

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"
	"time"

	"ustat/internal/api"
	"ustat/internal/domain"
)

const (
	pathMethods = "/payment/methods"
	pathHistory = "/payment/history"
)

// Service implements domain.PaymentService.
type Service struct {
	api domain.APIClient
	now func() time.Time
}

func New(c domain.APIClient) *Service {
	return &Service{api: c, now: time.Now}
}

// Methods lists stored cards.
func (s *Service) Methods(ctx context.Context) ([]domain.PaymentMethod, error) {
	var raw json.RawMessage
	if err := s.api.Get(ctx, pathMethods, nil, &raw); err != nil {
		return nil, err
	}
	return api.DecodeList[domain.PaymentMethod](raw, "methods", "paymentMethods", "data")
}

// AddMethod stores a new card.
func (s *Service) AddMethod(ctx context.Context, p domain.PaymentDetails) (domain.PaymentMethod, error) {
	if p.PaymentMethodID != "" {
		return domain.PaymentMethod{}, domain.Invalid("paymentMethodId", "a stored method cannot be added again")
	}
	p.CardNumber = Digits(p.CardNumber)
	if err := validateCard(p, s.now()); err != nil {
		return domain.PaymentMethod{}, err
	}
	var raw json.RawMessage
	if err := s.api.Post(ctx, pathMethods, p, &raw); err != nil {
		return domain.PaymentMethod{}, err
	}
	m := domain.PaymentMethod{
		Last4:       p.CardNumber[len(p.CardNumber)-4:],
		ExpiryMonth: p.ExpiryMonth,
		ExpiryYear:  p.ExpiryYear,
		CardHolder:  p.CardHolder,
	}
	if len(raw) > 0 {
		if err := api.DecodeObject(raw, &m, "method", "paymentMethod", "data"); err != nil {
			return domain.PaymentMethod{}, err
		}
	}
	return m, nil
}

// DeleteMethod removes a stored card.
func (s *Service) DeleteMethod(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.Invalid("id", "payment method id is required")
	}
	return s.api.Delete(ctx, pathMethods+"/"+url.PathEscape(id))
}

// History lists past invoices.
func (s *Service) History(ctx context.Context) ([]domain.Invoice, error) {
	var raw json.RawMessage
	if err := s.api.Get(ctx, pathHistory, nil, &raw); err != nil {
		return nil, err
	}
	return api.DecodeList[domain.Invoice](raw, "history", "invoices", "data")
}

var _ domain.PaymentService = (*Service)(nil)
