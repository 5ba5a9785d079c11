// Package ratelimit provides framework-agnostic, per-endpoint admission
// control backed by pluggable counter stores.
//
// Each counter is a single record keyed by a composite string (caller
// identity or IP, endpoint, optionally a resource) holding a request count
// and an absolute reset instant. Counters reset at the next calendar
// midnight in the caller's timezone. Storage backends must implement the
// Store interface; in-memory and Postgres implementations are provided.
//
// The limiter fails open: a storage outage never blocks a request, it only
// disables enforcement until the store recovers.
package ratelimit
