// Package user reads and edits the signed-in user's profile and keeps the
// cached copy held by the session in step with the server.
package user
