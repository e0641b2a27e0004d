package interfaces

import (
	"context"
	"net/url"
)

// APIClient performs JSON calls against the remote API. in and out may be
// nil; out is decoded only for 2xx responses.
type APIClient interface {
	Do(ctx context.Context, method, path string, query url.Values, in, out any) error
	Get(ctx context.Context, path string, query url.Values, out any) error
	Post(ctx context.Context, path string, in, out any) error
	Put(ctx context.Context, path string, in, out any) error
	Delete(ctx context.Context, path string) error
}

// AuthFailureHook is notified when the session could not be refreshed and
// the stored tokens were discarded.
type AuthFailureHook interface {
	OnAuthFailure(ctx context.Context, err error)
}
