package session

import (
	"context"

	"ustat/internal/domain"
)

// InitialRoute picks the first flow after the splash: onboarding until it has
// been seen once, then Main for a restored session and Auth otherwise.
// Storage failures route to Auth.
func (c *Context) InitialRoute(ctx context.Context) (domain.Route, error) {
	seen, err := c.tokens.OnboardingSeen(ctx)
	if err != nil {
		c.log.WithError(err).Warn("could not read onboarding flag")
		return domain.RouteAuth, nil
	}
	if !seen {
		return domain.RouteOnboarding, nil
	}
	if err := c.Rehydrate(ctx); err != nil {
		return domain.RouteAuth, nil
	}
	if c.Snapshot().IsAuthenticated {
		return domain.RouteMain, nil
	}
	return domain.RouteAuth, nil
}
