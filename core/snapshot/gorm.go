package snapshot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"untis-notifier/core/reconcile"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// snapshotRow represents the 'snapshots' table. The marker shares the row
// with the records so both are replaced by a single statement.
type snapshotRow struct {
	Kind      string    `gorm:"column:kind;primaryKey;size:32"`
	Records   string    `gorm:"column:records;not null"`
	Marker    *int      `gorm:"column:marker"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

// TableName overrides the table name.
func (snapshotRow) TableName() string {
	return "snapshots"
}

// GormStore keeps snapshots in a SQL table.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a store on top of an open connection.
// Call Migrate once before first use.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Migrate creates or updates the snapshots table.
func (s *GormStore) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&snapshotRow{}); err != nil {
		return fmt.Errorf("failed to migrate snapshots table: %w", err)
	}
	return nil
}

// Load implements reconcile.Store.
func (s *GormStore) Load(ctx context.Context, kind reconcile.Kind) (*reconcile.Snapshot, error) {
	var row snapshotRow
	err := s.db.WithContext(ctx).Where("kind = ?", string(kind)).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, reconcile.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshot: %w", err)
	}

	return &reconcile.Snapshot{
		Kind:      reconcile.Kind(row.Kind),
		Records:   []byte(row.Records),
		Marker:    row.Marker,
		UpdatedAt: row.UpdatedAt,
	}, nil
}

// Save implements reconcile.Store with an upsert inside a transaction.
func (s *GormStore) Save(ctx context.Context, snap *reconcile.Snapshot) error {
	row := snapshotRow{
		Kind:      string(snap.Kind),
		Records:   string(snap.Records),
		Marker:    snap.Marker,
		UpdatedAt: snap.UpdatedAt,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "kind"}},
			DoUpdates: clause.AssignmentColumns([]string{"records", "marker", "updated_at"}),
		}).Create(&row).Error
	})
	if err != nil {
		return fmt.Errorf("failed to upsert snapshot: %w", err)
	}
	return nil
}
