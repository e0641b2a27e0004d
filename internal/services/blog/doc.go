// Package blog lists and fetches the legal blog. Listing works without a
// session.
package blog
