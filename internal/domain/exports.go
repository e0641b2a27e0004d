package domain

import (
	interfaces "ustat/internal/domain/interfaces"
	types "ustat/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	User              = types.User
	Session           = types.Session
	SessionState      = types.SessionState
	Route             = types.Route
	Date              = types.Date
	Credentials       = types.Credentials
	Registration      = types.Registration
	AuthResponse      = types.AuthResponse
	PasswordReset     = types.PasswordReset
	PasswordChange    = types.PasswordChange
	ProfileUpdate     = types.ProfileUpdate
	Post              = types.Post
	PostQuery         = types.PostQuery
	Package           = types.Package
	Subscription      = types.Subscription
	PaymentDetails    = types.PaymentDetails
	PaymentMethod     = types.PaymentMethod
	Invoice           = types.Invoice
	CalculationResult = types.CalculationResult
	PunishmentType    = types.PunishmentType
	Convict           = types.Convict
	Crime             = types.Crime
	Sentence          = types.Sentence
	Deduction         = types.Deduction
	InfazRequest      = types.InfazRequest
	VekaletRequest    = types.VekaletRequest
	HarcGiderRequest  = types.HarcGiderRequest
	MaasRequest       = types.MaasRequest
	IscilikRequest    = types.IscilikRequest
	TrafikRequest     = types.TrafikRequest

	ValidationError = types.ValidationError
	NetworkError    = types.NetworkError
	AuthError       = types.AuthError
	ServerError     = types.ServerError
	StorageError    = types.StorageError
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	KV                  = interfaces.KV
	TokenStore          = interfaces.TokenStore
	APIClient           = interfaces.APIClient
	AuthFailureHook     = interfaces.AuthFailureHook
	SessionManager      = interfaces.SessionManager
	AuthService         = interfaces.AuthService
	UserService         = interfaces.UserService
	BlogService         = interfaces.BlogService
	SubscriptionService = interfaces.SubscriptionService
	PaymentService      = interfaces.PaymentService
	CalculationService  = interfaces.CalculationService
)

// Re-exported constants and sentinels.
const (
	KeyAccessToken    = types.KeyAccessToken
	KeyRefreshToken   = types.KeyRefreshToken
	KeyUserData       = types.KeyUserData
	KeyOnboardingSeen = types.KeyOnboardingSeen

	RouteSplash     = types.RouteSplash
	RouteOnboarding = types.RouteOnboarding
	RouteAuth       = types.RouteAuth
	RouteMain       = types.RouteMain

	PunishmentFixedTerm  = types.PunishmentFixedTerm
	PunishmentLife       = types.PunishmentLife
	PunishmentAggravated = types.PunishmentAggravated

	FallbackMessage = types.FallbackMessage
)

var (
	ErrValidation       = types.ErrValidation
	ErrNetwork          = types.ErrNetwork
	ErrUnauthorized     = types.ErrUnauthorized
	ErrServer           = types.ErrServer
	ErrStorage          = types.ErrStorage
	ErrNotAuthenticated = types.ErrNotAuthenticated

	Invalid     = types.Invalid
	UserMessage = types.UserMessage
	NewDate     = types.NewDate
	ParseDate   = types.ParseDate
)
