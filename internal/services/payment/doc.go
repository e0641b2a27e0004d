// Package payment manages stored cards and billing history. Card data is
// checked for shape only; the server does the real validation.
package payment
