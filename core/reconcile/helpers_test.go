package reconcile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
)

type testRecord struct {
	ID   string `json:"id"`
	Room string `json:"room"`
	Date int    `json:"date"`
}

func (r testRecord) Key() string { return r.ID }

type testAdapter struct {
	kind    Kind
	policy  Policy
	records []Record
	err     error
	calls   int
	block   chan struct{}
	mu      sync.Mutex
}

func (a *testAdapter) Kind() Kind { return a.kind }
func (a *testAdapter) Policy() Policy { return a.policy }

func (a *testAdapter) CompareFields(old, new Record) []string {
	o, n := old.(testRecord), new.(testRecord)
	if o.Room != n.Room {
		return []string{fmt.Sprintf("Room changed from %s to %s", o.Room, n.Room)}
	}
	return nil
}

func (a *testAdapter) Fetch(ctx context.Context) ([]Record, error) {
	a.mu.Lock()
	a.calls++
	a.mu.Unlock()
	if a.block != nil {
		<-a.block
	}
	return a.records, a.err
}

func (a *testAdapter) Decode(data []byte) ([]Record, error) {
	var raw []testRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	out := make([]Record, len(raw))
	for i, r := range raw {
		out[i] = r
	}
	return out, nil
}

func (a *testAdapter) fetchCalls() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.calls
}

// markerAdapter adds the Last-Cached-Date marker to testAdapter.
type markerAdapter struct {
	*testAdapter
}

func (a markerAdapter) Marker(records []Record) *int {
	if len(records) == 0 {
		return nil
	}
	latest := 0
	for _, r := range records {
		if d := r.(testRecord).Date; d > latest {
			latest = d
		}
	}
	return &latest
}

type memStore struct {
	mu      sync.Mutex
	snaps   map[Kind]*Snapshot
	saves   int
	loadErr error
	saveErr error
}

func newMemStore() *memStore {
	return &memStore{snaps: make(map[Kind]*Snapshot)}
}

func (s *memStore) Load(ctx context.Context, kind Kind) (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	snap, ok := s.snaps[kind]
	if !ok {
		return nil, ErrSnapshotNotFound
	}
	cp := *snap
	return &cp, nil
}

func (s *memStore) Save(ctx context.Context, snap *Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	cp := *snap
	s.snaps[snap.Kind] = &cp
	s.saves++
	return nil
}

func (s *memStore) seed(kind Kind, records []testRecord, marker *int) {
	data, _ := json.Marshal(records)
	s.snaps[kind] = &Snapshot{Kind: kind, Records: data, Marker: marker}
}

func (s *memStore) stored(kind Kind) []testRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []testRecord
	if snap, ok := s.snaps[kind]; ok {
		_ = json.Unmarshal(snap.Records, &out)
	}
	return out
}

type recordingNotifier struct {
	mu      sync.Mutex
	batches [][]Change
	err     error
}

func (n *recordingNotifier) Notify(ctx context.Context, kind Kind, changes []Change) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.batches = append(n.batches, changes)
	return n.err
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.batches)
}

var errBoom = errors.New("boom")

func intPtr(v int) *int { return &v }
