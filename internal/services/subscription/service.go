package subscription

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"

	"ustat/internal/api"
	"ustat/internal/domain"
	"ustat/internal/services/payment"
)

const (
	pathPackages  = "/subscription/packages"
	pathCurrent   = "/subscription/user"
	pathSubscribe = "/subscription/subscribe"
	pathCancel    = "/subscription/cancel"
)

// Service implements domain.SubscriptionService.
type Service struct {
	api domain.APIClient
}

func New(c domain.APIClient) *Service {
	return &Service{api: c}
}

// Packages lists the available plans.
func (s *Service) Packages(ctx context.Context) ([]domain.Package, error) {
	var raw json.RawMessage
	if err := s.api.Get(ctx, pathPackages, nil, &raw); err != nil {
		return nil, err
	}
	return api.DecodeList[domain.Package](raw, "packages", "data")
}

// Current returns the user's active plan, or nil when there is none.
func (s *Service) Current(ctx context.Context) (*domain.Subscription, error) {
	var raw json.RawMessage
	if err := s.api.Get(ctx, pathCurrent, nil, &raw); err != nil {
		var se *domain.ServerError
		if errors.As(err, &se) && se.Status == http.StatusNotFound {
			return nil, nil
		}
		return nil, err
	}
	inner := gjson.ParseBytes(api.Unwrap(raw, "subscription", "data"))
	if !inner.IsObject() || len(inner.Map()) == 0 {
		return nil, nil
	}
	var sub domain.Subscription
	if err := json.Unmarshal([]byte(inner.Raw), &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

// Subscribe buys packageID. The payment details are sent alongside the
// package id in one flat object.
func (s *Service) Subscribe(ctx context.Context, packageID string, p domain.PaymentDetails) (domain.Subscription, error) {
	packageID = strings.TrimSpace(packageID)
	if packageID == "" {
		return domain.Subscription{}, domain.Invalid("packageId", "please choose a package")
	}
	if err := payment.Validate(p); err != nil {
		return domain.Subscription{}, err
	}

	body := struct {
		PackageID string `json:"packageId"`
		domain.PaymentDetails
	}{packageID, p}

	var raw json.RawMessage
	if err := s.api.Post(ctx, pathSubscribe, body, &raw); err != nil {
		return domain.Subscription{}, err
	}
	sub := domain.Subscription{PackageID: packageID}
	if len(raw) > 0 {
		if err := api.DecodeObject(raw, &sub, "subscription", "data"); err != nil {
			return domain.Subscription{}, err
		}
	}
	return sub, nil
}

// Cancel ends the current plan.
func (s *Service) Cancel(ctx context.Context) error {
	return s.api.Post(ctx, pathCancel, nil, nil)
}

var _ domain.SubscriptionService = (*Service)(nil)
