package snapshot

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"untis-notifier/core/reconcile"
	"untis-notifier/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestObjectStore_Load(t *testing.T) {
	t.Run("Existing document", func(t *testing.T) {
		client := new(mocks.Client)
		store := NewObjectStore(client, "untis", "snapshots")

		doc := `{"kind":"exam","records":[{"date":20241001}],"marker":null,"updated_at":"2024-09-10T08:00:00Z"}`
		client.On("GetObject", mock.Anything, "untis", "snapshots/exam.json", mock.Anything).
			Return(io.NopCloser(bytes.NewReader([]byte(doc))), nil)

		snap, err := store.Load(context.Background(), reconcile.KindExam)
		require.NoError(t, err)
		assert.Equal(t, reconcile.KindExam, snap.Kind)
		assert.JSONEq(t, `[{"date":20241001}]`, string(snap.Records))
		assert.Nil(t, snap.Marker)
		client.AssertExpectations(t)
	})

	t.Run("Missing document", func(t *testing.T) {
		client := new(mocks.Client)
		store := NewObjectStore(client, "untis", "snapshots")

		client.On("GetObject", mock.Anything, "untis", "snapshots/homework.json", mock.Anything).
			Return(nil, minio.ErrorResponse{Code: "NoSuchKey", StatusCode: 404})

		_, err := store.Load(context.Background(), reconcile.KindHomework)
		assert.ErrorIs(t, err, reconcile.ErrSnapshotNotFound)
	})

	t.Run("Storage failure", func(t *testing.T) {
		client := new(mocks.Client)
		store := NewObjectStore(client, "untis", "snapshots")

		client.On("GetObject", mock.Anything, "untis", "snapshots/homework.json", mock.Anything).
			Return(nil, errors.New("connection refused"))

		_, err := store.Load(context.Background(), reconcile.KindHomework)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, reconcile.ErrSnapshotNotFound)
	})

	t.Run("Corrupt document", func(t *testing.T) {
		client := new(mocks.Client)
		store := NewObjectStore(client, "untis", "snapshots")

		client.On("GetObject", mock.Anything, "untis", "snapshots/absence.json", mock.Anything).
			Return(io.NopCloser(bytes.NewReader([]byte("{"))), nil)

		_, err := store.Load(context.Background(), reconcile.KindAbsence)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse")
	})
}

func TestObjectStore_Save(t *testing.T) {
	client := new(mocks.Client)
	store := NewObjectStore(client, "untis", "snapshots")

	marker := 20240911
	snap := &reconcile.Snapshot{Kind: reconcile.KindTimetable, Records: []byte(`[]`), Marker: &marker}

	client.On("PutObject", mock.Anything, "untis", "snapshots/timetable.json", mock.Anything, mock.AnythingOfType("int64"),
		mock.MatchedBy(func(opts minio.PutObjectOptions) bool { return opts.ContentType == "application/json" })).
		Return(minio.UploadInfo{}, nil)

	require.NoError(t, store.Save(context.Background(), snap))
	client.AssertExpectations(t)

	t.Run("Upload failure", func(t *testing.T) {
		failing := new(mocks.Client)
		failing.On("PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(minio.UploadInfo{}, errors.New("access denied"))

		err := NewObjectStore(failing, "untis", "snapshots").Save(context.Background(), snap)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "snapshots/timetable.json")
	})
}
