package reconcile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"untis-notifier/core/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Reconciler runs reconciliation cycles: fetch, normalize, diff against the
// stored snapshot, notify, persist. It owns the store and notifier handles so
// that no cycle state lives in package globals.
type Reconciler struct {
	store    Store
	notifier Notifier
	logger   *zap.Logger
	metrics  *Metrics
	now      func() time.Time

	// inflight guarantees at most one cycle per kind; later callers join it.
	inflight singleflight.Group

	mu   sync.RWMutex
	last map[Kind]*Outcome
}

// NewReconciler creates a reconciler. metrics may be nil.
func NewReconciler(store Store, notifier Notifier, logger *zap.Logger, metrics *Metrics) *Reconciler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reconciler{
		store:    store,
		notifier: notifier,
		logger:   logger,
		metrics:  metrics,
		now:      time.Now,
		last:     make(map[Kind]*Outcome),
	}
}

// Reconcile runs one cycle for the adapter's kind and returns its outcome.
// Failures are logged and recorded on the outcome; they never propagate.
// If a cycle for the same kind is already running, the caller waits for it
// and receives the same outcome instead of starting another one.
func (r *Reconciler) Reconcile(ctx context.Context, a Adapter) *Outcome {
	v, _, shared := r.inflight.Do(string(a.Kind()), func() (interface{}, error) {
		return r.run(ctx, a), nil
	})

	outcome := v.(*Outcome)
	if shared {
		r.logger.Debug("Joined in-flight reconciliation cycle",
			zap.String("kind", string(a.Kind())),
			zap.String("cycle_id", outcome.CycleID))
	}
	return outcome
}

// LastOutcome returns the most recent outcome for kind, or nil.
func (r *Reconciler) LastOutcome(kind Kind) *Outcome {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.last[kind]
}

// run executes one cycle. A started cycle is not cancelled with ctx; shutdown
// waits for it instead of leaving a half-applied baseline.
func (r *Reconciler) run(ctx context.Context, a Adapter) *Outcome {
	ctx = context.WithoutCancel(ctx)

	outcome := &Outcome{
		Kind:      a.Kind(),
		CycleID:   uuid.NewString(),
		StartedAt: r.now(),
	}
	l := r.logger.With(zap.String("kind", string(a.Kind())), zap.String("cycle_id", outcome.CycleID))

	outcome.Err = r.cycle(ctx, a, outcome, l)
	outcome.FinishedAt = r.now()

	if outcome.Err != nil {
		l.Error("Reconciliation cycle failed", zap.Error(outcome.Err))
	} else {
		l.Info("Reconciliation cycle finished",
			zap.Int("fetched", outcome.Fetched),
			zap.Int("new", outcome.Count(ChangeNew)),
			zap.Int("modified", outcome.Count(ChangeModified)),
			zap.Int("removed", outcome.Count(ChangeRemoved)),
			zap.Bool("fast_path", outcome.FastPath),
			zap.Bool("persisted", outcome.Persisted),
			zap.Duration("duration", outcome.Duration()))
	}

	r.metrics.observe(outcome)

	r.mu.Lock()
	r.last[outcome.Kind] = outcome
	r.mu.Unlock()

	return outcome
}

// cycle executes fetch -> load -> (fast path | diff -> notify) -> persist.
// Nothing is written unless every step before persist succeeded.
func (r *Reconciler) cycle(ctx context.Context, a Adapter, outcome *Outcome, l *zap.Logger) error {
	kind := a.Kind()

	current, err := a.Fetch(ctx)
	if err != nil {
		return &ProviderError{Kind: kind, Op: "fetch", Err: err}
	}
	outcome.Fetched = len(current)
	l.Debug("Fetched current records", zap.Int("count", len(current)))

	previous, stored, err := r.loadPrevious(ctx, a)
	if err != nil {
		return err
	}

	var marker *int
	if m, ok := a.(Marker); ok {
		marker = m.Marker(current)
		if stored != nil && stored.Marker != nil && marker != nil && utils.IsNextDay(*stored.Marker, *marker) {
			l.Info("Provider window advanced by one day, replacing snapshot without notification",
				zap.Int("previous_marker", *stored.Marker),
				zap.Int("marker", *marker))
			outcome.FastPath = true
			return r.persist(ctx, kind, current, marker, outcome)
		}
	}

	outcome.Changes = Diff(a, previous, current)

	if len(outcome.Changes) > 0 {
		l.Debug("Detected changes", zap.Strings("new_keys", NewKeys(outcome.Changes)))
		if err := r.notifier.Notify(ctx, kind, outcome.Changes); err != nil {
			outcome.NotifyErr = &NotifyError{Kind: kind, Changes: len(outcome.Changes), Err: err}
			l.Error("Notification failed, continuing with persistence", zap.Error(outcome.NotifyErr))
		} else {
			outcome.Notified = true
		}
	}

	if a.Policy().PersistOnNewOnly && outcome.Count(ChangeNew) == 0 {
		l.Debug("No new records, snapshot left untouched")
		return nil
	}

	return r.persist(ctx, kind, current, marker, outcome)
}

// loadPrevious loads and decodes the stored snapshot. A missing snapshot is empty.
func (r *Reconciler) loadPrevious(ctx context.Context, a Adapter) ([]Record, *Snapshot, error) {
	stored, err := r.store.Load(ctx, a.Kind())
	if errors.Is(err, ErrSnapshotNotFound) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, &StoreError{Kind: a.Kind(), Op: "load", Err: err}
	}

	if len(stored.Records) == 0 {
		return nil, stored, nil
	}

	previous, err := a.Decode(stored.Records)
	if err != nil {
		return nil, nil, &StoreError{Kind: a.Kind(), Op: "decode", Err: err}
	}
	return previous, stored, nil
}

func (r *Reconciler) persist(ctx context.Context, kind Kind, records []Record, marker *int, outcome *Outcome) error {
	if records == nil {
		records = []Record{}
	}

	data, err := json.Marshal(records)
	if err != nil {
		return &StoreError{Kind: kind, Op: "encode", Err: fmt.Errorf("failed to encode %d records: %w", len(records), err)}
	}

	snap := &Snapshot{
		Kind:      kind,
		Records:   data,
		Marker:    marker,
		UpdatedAt: r.now(),
	}
	if err := r.store.Save(ctx, snap); err != nil {
		return &StoreError{Kind: kind, Op: "save", Err: err}
	}

	outcome.Persisted = true
	return nil
}
