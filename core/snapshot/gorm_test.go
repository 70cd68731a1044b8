package snapshot

import (
	"context"
	"errors"
	"testing"
	"time"

	"untis-notifier/core/database"
	"untis-notifier/core/reconcile"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// setupMockDB creates a mock GORM DB for testing.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func setupSQLiteStore(t *testing.T) *GormStore {
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	store := NewGormStore(db)
	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func TestGormStore_RoundTrip(t *testing.T) {
	store := setupSQLiteStore(t)
	ctx := context.Background()

	_, err := store.Load(ctx, reconcile.KindTimetable)
	assert.ErrorIs(t, err, reconcile.ErrSnapshotNotFound)

	marker := 20240910
	first := &reconcile.Snapshot{
		Kind:      reconcile.KindTimetable,
		Records:   []byte(`[{"id":1}]`),
		Marker:    &marker,
		UpdatedAt: time.Date(2024, 9, 10, 8, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.Save(ctx, first))

	got, err := store.Load(ctx, reconcile.KindTimetable)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":1}]`, string(got.Records))
	require.NotNil(t, got.Marker)
	assert.Equal(t, 20240910, *got.Marker)

	t.Run("Save replaces records and marker together", func(t *testing.T) {
		second := &reconcile.Snapshot{
			Kind:      reconcile.KindTimetable,
			Records:   []byte(`[]`),
			UpdatedAt: time.Now(),
		}
		require.NoError(t, store.Save(ctx, second))

		got, err := store.Load(ctx, reconcile.KindTimetable)
		require.NoError(t, err)
		assert.Equal(t, "[]", string(got.Records))
		assert.Nil(t, got.Marker)
	})

	t.Run("Kinds are independent", func(t *testing.T) {
		_, err := store.Load(ctx, reconcile.KindExam)
		assert.ErrorIs(t, err, reconcile.ErrSnapshotNotFound)
	})
}

func TestGormStore_LoadQueryError(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewGormStore(db)

	mock.ExpectQuery("SELECT \\* FROM `snapshots`").WillReturnError(errors.New("connection reset"))

	snap, err := store.Load(context.Background(), reconcile.KindHomework)
	assert.Nil(t, snap)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, reconcile.ErrSnapshotNotFound)
	assert.Contains(t, err.Error(), "failed to query snapshot")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_SaveRollsBackOnError(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewGormStore(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `snapshots`").WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := store.Save(context.Background(), &reconcile.Snapshot{
		Kind:    reconcile.KindHomework,
		Records: []byte(`[]`),
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to upsert snapshot")
	assert.NoError(t, mock.ExpectationsWereMet())
}
