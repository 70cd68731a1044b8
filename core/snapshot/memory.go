package snapshot

import (
	"context"
	"sync"

	"untis-notifier/core/reconcile"
)

// MemoryStore keeps snapshots in process memory. Contents are lost on exit.
type MemoryStore struct {
	mu    sync.RWMutex
	snaps map[reconcile.Kind]reconcile.Snapshot
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{snaps: make(map[reconcile.Kind]reconcile.Snapshot)}
}

func (s *MemoryStore) Load(ctx context.Context, kind reconcile.Kind) (*reconcile.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap, ok := s.snaps[kind]
	if !ok {
		return nil, reconcile.ErrSnapshotNotFound
	}
	return clone(snap), nil
}

func (s *MemoryStore) Save(ctx context.Context, snap *reconcile.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snaps[snap.Kind] = *clone(*snap)
	return nil
}

func clone(snap reconcile.Snapshot) *reconcile.Snapshot {
	out := snap
	out.Records = append([]byte(nil), snap.Records...)
	if snap.Marker != nil {
		m := *snap.Marker
		out.Marker = &m
	}
	return &out
}
