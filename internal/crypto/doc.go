// Package crypto exposes the minimal primitives used by ustat.
//
// Contents
//
//   - A passphrase-sealed envelope for data at rest (Seal, Open), using
//     scrypt for key derivation and ChaCha20-Poly1305 for encryption
//   - Best-effort memory wiping for sensitive byte slices (Wipe)
//   - Short fingerprints of secrets for display/logging (Fingerprint)
//
// # Notes
//
// Tokens are bearer credentials. Never log them; log Fingerprint(token)
// instead when a correlation handle is needed.
package crypto
