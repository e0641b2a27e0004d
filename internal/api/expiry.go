package api

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var unverified = jwt.NewParser()

// expiresWithin reports whether token is a JWT whose exp claim is less than
// d away. The signature is not checked.
func expiresWithin(token string, d time.Duration, now time.Time) bool {
	if token == "" || d <= 0 {
		return false
	}
	var claims jwt.RegisteredClaims
	if _, _, err := unverified.ParseUnverified(token, &claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return claims.ExpiresAt.Time.Sub(now) < d
}
