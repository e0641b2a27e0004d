// Package mockapi is an in-memory stand-in for the ustat backend.
//
// It serves both the main API (auth, user, blog, subscription, payment) and
// the calculation API from one chi router, so a single httptest.Server is
// enough for the whole client. Access tokens are short-lived HS256 JWTs;
// refresh tokens are opaque. Tests steer the server through a few knobs:
// ExpireAccessTokens revokes every issued access token, FailRefresh makes
// /auth/refresh answer 401, and RefreshCalls counts refresh exchanges.
//
// Calculator endpoints return deterministic figures derived from the input.
// They exist to exercise the client and are not legal advice.
package mockapi
