package interfaces

import (
	"context"

	"ustat/internal/domain/types"
)

// KV is durable string key/value storage. Removing an absent key is not an
// error. Backends report failures as *types.StorageError.
type KV interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// TokenStore persists the session and app flags on top of a KV.
type TokenStore interface {
	AccessToken(ctx context.Context) (string, bool, error)
	SetAccessToken(ctx context.Context, token string) error
	RefreshToken(ctx context.Context) (string, bool, error)
	SetRefreshToken(ctx context.Context, token string) error

	User(ctx context.Context) (types.User, bool, error)
	SetUser(ctx context.Context, u types.User) error

	SaveSession(ctx context.Context, s types.Session) error
	LoadSession(ctx context.Context) (types.Session, bool, error)

	// ClearTokens removes the access and refresh tokens only.
	ClearTokens(ctx context.Context) error
	// Clear removes tokens and cached user data.
	Clear(ctx context.Context) error

	OnboardingSeen(ctx context.Context) (bool, error)
	MarkOnboardingSeen(ctx context.Context) error
}
