package reconcile

import "context"

// Policy holds the feed-specific reconciliation rules.
type Policy struct {
	// TrackRemovals emits ChangeRemoved for previous records missing from the fetch.
	// Feeds without it are append-only: a record once seen is never reported removed.
	TrackRemovals bool

	// PersistOnNewOnly skips the snapshot write unless at least one ChangeNew was found.
	PersistOnNewOnly bool
}

// Rules is the part of an adapter the Differencer needs.
type Rules interface {
	// Policy returns the feed's reconciliation policy.
	Policy() Policy

	// CompareFields compares the comparable fields of two records with the same
	// identity and returns one detail line per differing field, in a fixed order.
	// Identity-only feeds return nil.
	CompareFields(old, new Record) []string
}

// Adapter defines the interface for feed-specific reconciliation logic.
// Each adapter knows how to fetch and normalize its feed, how to compare its
// records, and how to decode a stored snapshot back into records.
type Adapter interface {
	Rules

	// Kind returns the feed kind handled by this adapter.
	Kind() Kind

	// Fetch retrieves the current records for the feed's query range and
	// returns them normalized. Any failure means "no data this cycle".
	Fetch(ctx context.Context) ([]Record, error)

	// Decode parses a stored JSON record array.
	Decode(data []byte) ([]Record, error)
}

// Marker is implemented by adapters that keep a Last-Cached-Date marker next to
// their snapshot. Marker returns the maximum record date (YYYYMMDD) in records,
// or nil when records is empty. Adapters implementing it get the day-rollover
// fast path.
type Marker interface {
	Marker(records []Record) *int
}

// Store persists one snapshot per feed kind. Save is an atomic full replace of
// records and marker.
type Store interface {
	// Load returns the stored snapshot, or ErrSnapshotNotFound.
	Load(ctx context.Context, kind Kind) (*Snapshot, error)

	// Save replaces the stored snapshot for snap.Kind.
	Save(ctx context.Context, snap *Snapshot) error
}

// Notifier delivers one batched change list per cycle.
type Notifier interface {
	Notify(ctx context.Context, kind Kind, changes []Change) error
}
