// Package api is the authenticated JSON-over-HTTP client for the ustat
// backend.
//
// Every request passes through two stages:
//
//   - Request authentication: the current access token is read from the
//     TokenStore and attached as "Authorization: Bearer <token>". A missing
//     token, or a store that cannot be read, sends the request
//     unauthenticated.
//   - Response reauthorization: a 401 on a request that has not been
//     replayed yet triggers one refresh through the shared Reauthorizer.
//     On success the request is replayed exactly once with the new token.
//     On failure the tokens are cleared, the AuthFailureHook is told, and
//     the caller gets a *domain.AuthError.
//
// Concurrent 401s share one refresh call. A request whose token was
// already replaced by another caller's refresh is replayed with the new
// token without refreshing again.
//
// Access tokens that are JWTs are also refreshed ahead of time when their
// exp claim falls inside the configured skew. Opaque tokens are left alone.
//
// Non-2xx responses become *domain.ServerError (or *domain.AuthError for
// 401) carrying the "message" field of the body when there is one.
// Transport failures and timeouts become *domain.NetworkError.
package api
