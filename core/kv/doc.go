// Package kv connects to Redis, the optional key-value backend for snapshots.
//
// Only connection handling lives here; the snapshot semantics (one key per feed
// kind holding the full JSON document) are implemented by core/snapshot.RedisStore.
package kv
