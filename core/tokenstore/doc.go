// Package tokenstore persists the single bearer token that backs a storefront session.
//
// A Store holds at most one opaque string. Read never fails: a missing value
// and an unreadable backend both read as absent. Write overwrites any prior
// value and Clear is idempotent. No expiry is enforced here; an expired token
// surfaces only as a failed resolution in the session manager.
//
// Implementations:
//
//   - MemoryStore: process-local, for tests and ephemeral clients
//   - FileStore: JSON document on disk under a fixed key, surviving restarts
//   - integration/tokenstore/redis: shared store backed by Redis
package tokenstore
