// Package reconcile detects changes between successive polls of a school
// information feed and keeps a per-feed snapshot as the comparison baseline.
//
// # Architecture
//
// The package consists of three parts:
//
// 1. Diff: a pure function matching records by identity key and classifying
// them as new, modified or removed. Field comparison and removal tracking are
// delegated to the feed's Rules.
//
// 2. Adapter: feed-specific logic for fetching and normalizing records,
// comparing fields, and decoding a stored snapshot. Adapters that implement
// Marker also get the day-rollover fast path.
//
// 3. Reconciler: runs one cycle per call (fetch, load, diff, notify, persist),
// with at most one cycle in flight per feed kind. Store and Notifier are
// injected, so the same engine works against SQL, object storage, Redis or
// memory.
//
// # Usage Example
//
//	store := snapshot.NewMemoryStore()
//	r := reconcile.NewReconciler(store, notifier, logger, reconcile.NewMetrics(prometheus.DefaultRegisterer))
//
//	outcome := r.Reconcile(ctx, feeds.NewLessonAdapter(client, window))
//	if !outcome.Succeeded() {
//	    // already logged; the next scheduled cycle retries
//	}
//
// A cycle never partially persists: the snapshot is written only after fetch,
// load and diff succeeded. Notification failures are logged and recorded on
// the Outcome but do not block persistence.
package reconcile
