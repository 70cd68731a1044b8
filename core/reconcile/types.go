package reconcile

import (
	"encoding/json"
	"time"
)

// Record is one normalized provider record of a single feed kind.
type Record interface {
	// Key returns the identity key used to match records across polls.
	Key() string
}

// ChangeType classifies a Change.
type ChangeType string

const (
	// ChangeNew marks a record whose identity was not in the previous snapshot.
	ChangeNew ChangeType = "new"
	// ChangeModified marks a known record whose comparable fields differ.
	ChangeModified ChangeType = "modified"
	// ChangeRemoved marks a previous record that vanished (removal-tracking feeds only).
	ChangeRemoved ChangeType = "removed"
)

// Change is one classified difference between two snapshots.
// It only lives for the duration of a cycle and is never persisted.
type Change struct {
	// Type is the change classification.
	Type ChangeType `json:"type"`

	// Old is the previous record (Modified, Removed).
	Old Record `json:"old,omitempty"`

	// New is the current record (New, Modified).
	New Record `json:"new,omitempty"`

	// Details holds one human-readable line per differing field (Modified only),
	// e.g. "Room changed from A1 to A2".
	Details []string `json:"details,omitempty"`
}

// Record returns the record the change is about: the new one if present, else the old one.
func (c Change) Record() Record {
	if c.New != nil {
		return c.New
	}
	return c.Old
}

// Snapshot is the stored baseline of one feed kind.
type Snapshot struct {
	// Kind is the feed kind this snapshot belongs to.
	Kind Kind `json:"kind"`

	// Records is the JSON array of normalized records, in provider order.
	Records json.RawMessage `json:"records"`

	// Marker is the Last-Cached-Date (YYYYMMDD) for feeds that keep one.
	Marker *int `json:"marker,omitempty"`

	// UpdatedAt is when the snapshot was written.
	UpdatedAt time.Time `json:"updated_at"`
}

// Outcome describes one reconciliation cycle. Errors are recorded here after
// being logged; they are never returned to the caller.
type Outcome struct {
	Kind       Kind      `json:"kind"`
	CycleID    string    `json:"cycle_id"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	// Fetched is the number of records the provider returned.
	Fetched int `json:"fetched"`

	// Changes is the ordered change list handed to the notifier.
	Changes []Change `json:"changes,omitempty"`

	// FastPath is set when the day-rollover shortcut skipped diffing.
	FastPath bool `json:"fast_path"`

	// Notified is set when the notifier accepted the change list.
	Notified bool `json:"notified"`

	// Persisted is set when the snapshot was written.
	Persisted bool `json:"persisted"`

	// NotifyErr is a notifier failure; it does not fail the cycle.
	NotifyErr error `json:"-"`

	// Err is the failure that abandoned the cycle, if any.
	Err error `json:"-"`
}

// Succeeded reports whether the cycle ran to completion.
func (o *Outcome) Succeeded() bool {
	return o != nil && o.Err == nil
}

// Count returns the number of changes of type t.
func (o *Outcome) Count(t ChangeType) int {
	n := 0
	for _, c := range o.Changes {
		if c.Type == t {
			n++
		}
	}
	return n
}

// Duration returns how long the cycle took.
func (o *Outcome) Duration() time.Duration {
	return o.FinishedAt.Sub(o.StartedAt)
}

// Summary is a flat, serializable view of an Outcome.
type Summary struct {
	Kind       Kind      `json:"kind"`
	CycleID    string    `json:"cycle_id"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Fetched    int       `json:"fetched"`
	New        int       `json:"new"`
	Modified   int       `json:"modified"`
	Removed    int       `json:"removed"`
	FastPath   bool      `json:"fast_path"`
	Notified   bool      `json:"notified"`
	Persisted  bool      `json:"persisted"`
	NotifyErr  string    `json:"notify_error,omitempty"`
	Err        string    `json:"error,omitempty"`
}

// Summary flattens the outcome for status output.
func (o *Outcome) Summary() Summary {
	s := Summary{
		Kind:       o.Kind,
		CycleID:    o.CycleID,
		StartedAt:  o.StartedAt,
		FinishedAt: o.FinishedAt,
		Fetched:    o.Fetched,
		New:        o.Count(ChangeNew),
		Modified:   o.Count(ChangeModified),
		Removed:    o.Count(ChangeRemoved),
		FastPath:   o.FastPath,
		Notified:   o.Notified,
		Persisted:  o.Persisted,
	}
	if o.NotifyErr != nil {
		s.NotifyErr = o.NotifyErr.Error()
	}
	if o.Err != nil {
		s.Err = o.Err.Error()
	}
	return s
}
