// Package main runs the in-memory Ustat API used during development. It serves
// the same routes the CLI talks to: authentication with expiring JWT access
// tokens and refresh tokens, profile, blog, subscriptions, payments and the
// calculators.
//
// Behaviour
//
//   - All state is held in memory and lost on process exit.
//   - Responses are JSON. Errors carry a short "message".
//   - Every request is logged with its request id, status and duration.
//   - The default listen address is :8080.
//
// Seed an account with -user and -password, then point the CLI at it:
//
//	mockapi -user ayse@example.com -password secret1
//	ustat --api http://localhost:8080 --calc-api http://localhost:8080 login ayse@example.com
package main
