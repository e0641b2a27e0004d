package types

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Well-known Token Store keys. The names match what earlier clients wrote so
// existing stores stay readable.
const (
	KeyAccessToken    = "token"
	KeyRefreshToken   = "refreshToken"
	KeyUserData       = "userData"
	KeyOnboardingSeen = "onboardingSeen"
)

// User is the cached profile of the signed-in user.
type User struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Name      string `json:"name,omitempty"`
	Email     string `json:"email"`
	Phone     string `json:"phoneNumber,omitempty"`
	Avatar    string `json:"avatar,omitempty"`
}

// DisplayName returns the best human-readable name for u.
func (u User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	if full := strings.TrimSpace(u.FirstName + " " + u.LastName); full != "" {
		return full
	}
	return u.Email
}

// Merge overlays the non-empty fields of patch onto u.
func (u User) Merge(patch User) User {
	if patch.ID != "" {
		u.ID = patch.ID
	}
	if patch.FirstName != "" {
		u.FirstName = patch.FirstName
	}
	if patch.LastName != "" {
		u.LastName = patch.LastName
	}
	if patch.Name != "" {
		u.Name = patch.Name
	}
	if patch.Email != "" {
		u.Email = patch.Email
	}
	if patch.Phone != "" {
		u.Phone = patch.Phone
	}
	if patch.Avatar != "" {
		u.Avatar = patch.Avatar
	}
	return u
}

// Session is the authenticated-user context persisted by the Token Store.
type Session struct {
	AccessToken  string `json:"token"`
	RefreshToken string `json:"refreshToken,omitempty"`
	User         User   `json:"user"`
}

// Authenticated reports whether s carries an access token.
func (s Session) Authenticated() bool { return s.AccessToken != "" }

// SessionState is the in-memory view of authentication exposed to front ends.
type SessionState struct {
	IsAuthenticated bool
	User            *User
	Loading         bool
	Error           error
}

// Route names a top-level flow of the application.
type Route string

const (
	RouteSplash     Route = "Splash"
	RouteOnboarding Route = "Onboarding"
	RouteAuth       Route = "Auth"
	RouteMain       Route = "Main"
)

// Date is a calendar day encoded as YYYY-MM-DD on the wire.
type Date struct{ time.Time }

const dateLayout = "2006-01-02"

// NewDate truncates t to its calendar day.
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseDate accepts YYYY-MM-DD or DD.MM.YYYY.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		var err2 error
		if t, err2 = time.Parse("02.01.2006", s); err2 != nil {
			return Date{}, err
		}
	}
	return Date{t}, nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}

// MarshalText implements encoding.TextMarshaler.
func (d Date) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// MarshalJSON overrides the promoted time.Time encoding.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON accepts a date string, "" or null.
func (d *Date) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*d = Date{}
		return nil
	}
	s, err := strconv.Unquote(string(b))
	if err != nil {
		return fmt.Errorf("date: %w", err)
	}
	return d.UnmarshalText([]byte(s))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Date) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
