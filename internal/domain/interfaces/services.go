package interfaces

import (
	"context"

	"ustat/internal/domain/types"
)

// SessionManager owns the in-memory session state and keeps it in sync with
// the TokenStore.
type SessionManager interface {
	Snapshot() types.SessionState
	Rehydrate(ctx context.Context) error
	LoginStart()
	LoginSuccess(ctx context.Context, s types.Session) error
	LoginFailure(err error)
	Logout(ctx context.Context) error
	UpdateUser(ctx context.Context, patch types.User) error
	ClearError()
	InitialRoute(ctx context.Context) (types.Route, error)
}

// AuthService drives login, registration and password recovery.
type AuthService interface {
	Login(ctx context.Context, c types.Credentials) (types.User, error)
	Register(ctx context.Context, r types.Registration) (types.AuthResponse, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, r types.PasswordReset) error
	Logout(ctx context.Context) error
}

// UserService reads and edits the signed-in user's profile.
type UserService interface {
	Profile(ctx context.Context) (types.User, error)
	UpdateProfile(ctx context.Context, p types.ProfileUpdate) (types.User, error)
	ChangePassword(ctx context.Context, c types.PasswordChange) error
}

// BlogService lists and fetches blog posts.
type BlogService interface {
	Posts(ctx context.Context, q types.PostQuery) ([]types.Post, error)
	Post(ctx context.Context, id string) (types.Post, error)
}

// SubscriptionService browses packages and manages the user's plan.
type SubscriptionService interface {
	Packages(ctx context.Context) ([]types.Package, error)
	Current(ctx context.Context) (*types.Subscription, error)
	Subscribe(ctx context.Context, packageID string, p types.PaymentDetails) (types.Subscription, error)
	Cancel(ctx context.Context) error
}

// PaymentService manages stored payment methods and billing history.
type PaymentService interface {
	Methods(ctx context.Context) ([]types.PaymentMethod, error)
	AddMethod(ctx context.Context, p types.PaymentDetails) (types.PaymentMethod, error)
	DeleteMethod(ctx context.Context, id string) error
	History(ctx context.Context) ([]types.Invoice, error)
}

// CalculationService forwards calculator forms to the calculation API.
type CalculationService interface {
	Infaz(ctx context.Context, r types.InfazRequest) (types.CalculationResult, error)
	VekaletUcreti(ctx context.Context, r types.VekaletRequest) (types.CalculationResult, error)
	HarcGider(ctx context.Context, r types.HarcGiderRequest) (types.CalculationResult, error)
	Maas(ctx context.Context, r types.MaasRequest) (types.CalculationResult, error)
	IscilikAlacaklari(ctx context.Context, r types.IscilikRequest) (types.CalculationResult, error)
	TrafikKazasi(ctx context.Context, r types.TrafikRequest) (types.CalculationResult, error)
}
