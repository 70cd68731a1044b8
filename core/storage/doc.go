// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind a small interface so that the object
// snapshot store (core/snapshot) can keep one JSON document per feed kind in an
// S3-compatible bucket, and so tests can use the testify mock in core/storage/mocks.
//
// # Operations
//
//   - BucketExists / MakeBucket: bucket bootstrap via EnsureBucket.
//   - PutObject: uploads a snapshot document in a single request.
//   - GetObject: retrieves a snapshot document as a stream.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	created, err := storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region)
package storage
