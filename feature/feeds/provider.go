package feeds

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"untis-notifier/core/reconcile"
	"untis-notifier/core/untis"
)

// Provider is the subset of the WebUntis client the adapters fetch through.
type Provider interface {
	Timetable(ctx context.Context, start, end time.Time) ([]untis.Lesson, error)
	Absences(ctx context.Context, start, end time.Time) ([]untis.Absence, error)
	Homework(ctx context.Context, start, end time.Time) (*untis.HomeworkResult, error)
	Exams(ctx context.Context, start, end time.Time) ([]untis.Exam, error)
}

// Window computes the per-feed query ranges relative to today.
type Window struct {
	// RangeStart is the fixed start of the absence, homework and exam ranges.
	RangeStart time.Time
	// Now returns the current time; nil means time.Now.
	Now func() time.Time
}

// Today returns local midnight of the current day.
func (w Window) Today() time.Time {
	now := time.Now()
	if w.Now != nil {
		now = w.Now()
	}
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location())
}

// Days returns today shifted by n days.
func (w Window) Days(n int) time.Time {
	return w.Today().AddDate(0, 0, n)
}

// NewAdapters builds the adapter of every feed kind.
func NewAdapters(p Provider, w Window) map[reconcile.Kind]reconcile.Adapter {
	return map[reconcile.Kind]reconcile.Adapter{
		reconcile.KindTimetable: NewLessonAdapter(p, w),
		reconcile.KindAbsence:   NewAbsenceAdapter(p, w),
		reconcile.KindHomework:  NewHomeworkAdapter(p, w),
		reconcile.KindExam:      NewExamAdapter(p, w),
	}
}

// identityOnly is embedded by the append-only feeds: a record is either known
// or new, and the snapshot is rewritten only when something new arrived.
type identityOnly struct{}

func (identityOnly) Policy() reconcile.Policy {
	return reconcile.Policy{PersistOnNewOnly: true}
}

func (identityOnly) CompareFields(old, new reconcile.Record) []string {
	return nil
}

func toRecords[T reconcile.Record](items []T) []reconcile.Record {
	out := make([]reconcile.Record, len(items))
	for i, item := range items {
		out[i] = item
	}
	return out
}

func decodeRecords[T reconcile.Record](data []byte) ([]reconcile.Record, error) {
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to decode stored records: %w", err)
	}
	return toRecords(items), nil
}
