package api

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"

	"ustat/internal/domain"
)

const maxErrorBody = 64 << 10

var (
	// ErrNoRefreshToken is the refresh failure when nothing can be exchanged.
	ErrNoRefreshToken = errors.New("no refresh token stored")

	// ErrEmptyRefresh is the refresh failure when the server answers 2xx
	// without an access token.
	ErrEmptyRefresh = errors.New("refresh response carried no access token")
)

// statusError turns a non-2xx response into a typed error and closes the body.
func statusError(resp *http.Response) error {
	defer resp.Body.Close()
	b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	msg := messageFrom(b)
	if resp.StatusCode == http.StatusUnauthorized {
		return &domain.AuthError{Message: msg}
	}
	return &domain.ServerError{Status: resp.StatusCode, Message: msg}
}

// messageFrom extracts a human-readable message from an error body.
func messageFrom(b []byte) string {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return domain.FallbackMessage
	}
	if !gjson.ValidBytes(b) {
		return domain.FallbackMessage
	}
	for _, path := range []string{"message", "error.message", "error", "errors.0.message"} {
		if v := gjson.GetBytes(b, path); v.Type == gjson.String {
			if s := strings.TrimSpace(v.String()); s != "" {
				return s
			}
		}
	}
	return domain.FallbackMessage
}
