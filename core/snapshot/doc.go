// Package snapshot provides the persistent baselines the reconcile engine
// diffs against: one snapshot per feed kind, replaced atomically on save.
//
// Four backends implement reconcile.Store:
//   - GormStore: one row per kind in a SQL table (sqlite or mysql)
//   - ObjectStore: one JSON document per kind in an S3/MinIO bucket
//   - RedisStore: one key per kind in Redis
//   - MemoryStore: process-local, for tests and dry runs
//
// Open selects a backend from Config and connects the required client.
package snapshot
