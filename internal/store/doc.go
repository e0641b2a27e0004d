// Package store provides persistence for the client session.
//
// It contains concrete implementations of the domain.KV interface and the
// TokenStore facade built on top of it. All backends are safe for
// concurrent use.
//
// The package includes:
//   - FileKV: a JSON map on disk, optionally sealed with a passphrase
//   - MemoryKV: an in-process map for tests and throwaway sessions
//   - RedisKV: a namespaced Redis keyspace for shared or headless hosts
//   - Tokens: typed access to the access/refresh tokens, the cached user
//     profile and the onboarding flag
//
// Backend failures are reported as *domain.StorageError. Callers treat them
// as "signed out" rather than aborting.
package store
