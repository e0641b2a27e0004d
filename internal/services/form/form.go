// Package form holds the client-side field checks shared by the services.
// Every failure is a *domain.ValidationError naming the offending field.
package form

import (
	"regexp"
	"strings"

	"ustat/internal/domain"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Required fails if any value is blank. fields and values alternate:
// Required("email", e, "password", p).
func Required(pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) == "" {
			return domain.Invalid(pairs[i], "please fill in all fields")
		}
	}
	return nil
}

// Email checks that v looks like an e-mail address.
func Email(field, v string) error {
	v = strings.TrimSpace(v)
	if v == "" {
		return domain.Invalid(field, "please enter your e-mail address")
	}
	if !emailRe.MatchString(v) {
		return domain.Invalid(field, "please enter a valid e-mail address")
	}
	return nil
}

// Match fails when a password and its confirmation differ.
func Match(field, a, b string) error {
	if a != b {
		return domain.Invalid(field, "passwords do not match")
	}
	return nil
}
