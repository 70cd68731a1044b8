package snapshot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path"

	"untis-notifier/core/reconcile"
	"untis-notifier/core/storage"

	"github.com/minio/minio-go/v7"
)

// ObjectStore keeps each snapshot as a JSON document in a bucket, at <prefix>/<kind>.json.
// A single PutObject replaces records and marker together.
type ObjectStore struct {
	client storage.Client
	bucket string
	prefix string
}

// NewObjectStore creates a store for the given bucket.
func NewObjectStore(client storage.Client, bucket, prefix string) *ObjectStore {
	return &ObjectStore{client: client, bucket: bucket, prefix: prefix}
}

func (s *ObjectStore) objectName(kind reconcile.Kind) string {
	return path.Join(s.prefix, string(kind)+".json")
}

// Load implements reconcile.Store.
func (s *ObjectStore) Load(ctx context.Context, kind reconcile.Kind) (*reconcile.Snapshot, error) {
	name := s.objectName(kind)

	obj, err := s.client.GetObject(ctx, s.bucket, name, minio.GetObjectOptions{})
	if err != nil {
		if storage.IsNotFound(err) {
			return nil, reconcile.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("failed to get object %s: %w", name, err)
	}
	defer obj.Close()

	// MinIO reports a missing key on first read, not on GetObject.
	data, err := io.ReadAll(obj)
	if err != nil {
		if storage.IsNotFound(err) {
			return nil, reconcile.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("failed to read object %s: %w", name, err)
	}

	var snap reconcile.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse object %s: %w", name, err)
	}
	return &snap, nil
}

// Save implements reconcile.Store.
func (s *ObjectStore) Save(ctx context.Context, snap *reconcile.Snapshot) error {
	name := s.objectName(snap.Kind)

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	_, err = s.client.PutObject(ctx, s.bucket, name, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return fmt.Errorf("failed to put object %s: %w", name, err)
	}
	return nil
}
