package snapshot

import (
	"context"
	"testing"

	"untis-notifier/core/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, err := store.Load(ctx, reconcile.KindAbsence)
	assert.ErrorIs(t, err, reconcile.ErrSnapshotNotFound)

	records := []byte(`[{"student":"Jane"}]`)
	require.NoError(t, store.Save(ctx, &reconcile.Snapshot{Kind: reconcile.KindAbsence, Records: records}))

	// Mutating the caller's buffer must not leak into the stored copy.
	records[2] = 'X'

	got, err := store.Load(ctx, reconcile.KindAbsence)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"student":"Jane"}]`, string(got.Records))
}
