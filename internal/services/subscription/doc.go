// Package subscription browses the purchasable packages and manages the
// signed-in user's plan.
//
// A user without a plan is not an error: Current returns nil for both an
// empty body and a 404.
package subscription
