package app

import (
	"context"

	"ustat/internal/domain"
	"ustat/internal/services/auth"
	"ustat/internal/services/blog"
	"ustat/internal/services/calculation"
	"ustat/internal/services/payment"
	"ustat/internal/services/subscription"
	"ustat/internal/services/user"
)

// App is what front ends use: the session plus one service per domain area.
type App struct {
	Session       domain.SessionManager
	Auth          domain.AuthService
	Users         domain.UserService
	Blog          domain.BlogService
	Subscriptions domain.SubscriptionService
	Payments      domain.PaymentService
	Calculations  domain.CalculationService
	Tokens        domain.TokenStore
}

// New builds the services over w. Calculations go to the calculation API;
// everything else to the main API.
func New(w *Wire) *App {
	return &App{
		Session:       w.Session,
		Auth:          auth.New(w.API, w.Session, w.Log.WithField("component", "auth")),
		Users:         user.New(w.API, w.Session),
		Blog:          blog.New(w.API),
		Subscriptions: subscription.New(w.API),
		Payments:      payment.New(w.API),
		Calculations:  calculation.New(w.CalcAPI),
		Tokens:        w.Tokens,
	}
}

// Start restores any stored session and returns the first route to show.
func (a *App) Start(ctx context.Context) (domain.Route, error) {
	return a.Session.InitialRoute(ctx)
}

// FinishOnboarding records that the intro has been shown.
func (a *App) FinishOnboarding(ctx context.Context) error {
	return a.Tokens.MarkOnboardingSeen(ctx)
}
