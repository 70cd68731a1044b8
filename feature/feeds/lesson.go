package feeds

import (
	"context"
	"fmt"
	"strconv"

	"untis-notifier/core/reconcile"
	"untis-notifier/core/untis"
	"untis-notifier/core/utils"
)

const (
	UnknownSubject = "Unknown Subject"
	UnknownRoom    = "Unknown Room"
	UnknownTeacher = "Unknown Teacher"

	// StatusNormal is shown for lessons without a status code.
	StatusNormal = "Normal"
)

// Lesson is a normalized timetable period.
type Lesson struct {
	ID          int    `json:"id"`
	Date        int    `json:"date"`
	StartTime   int    `json:"start_time"`
	EndTime     int    `json:"end_time"`
	Subject     string `json:"subject"`
	Room        string `json:"room"`
	RoomLong    string `json:"room_long"`
	Teacher     string `json:"teacher"`
	TeacherLong string `json:"teacher_long"`
	// Code is the provider status code ("cancelled", "irregular"); empty for a regular lesson.
	Code string `json:"code,omitempty"`
}

// Key implements reconcile.Record.
func (l Lesson) Key() string {
	return strconv.Itoa(l.ID)
}

// Status returns the status code, or StatusNormal.
func (l Lesson) Status() string {
	return utils.OrDefault(l.Code, StatusNormal)
}

func first(elems []untis.Element) untis.Element {
	if len(elems) == 0 {
		return untis.Element{}
	}
	return elems[0]
}

// NormalizeLesson converts a raw lesson, filling absent names with placeholders.
func NormalizeLesson(raw untis.Lesson) Lesson {
	su, ro, te := first(raw.Subjects), first(raw.Rooms), first(raw.Teachers)

	return Lesson{
		ID:          raw.ID,
		Date:        raw.Date,
		StartTime:   raw.StartTime,
		EndTime:     raw.EndTime,
		Subject:     utils.OrDefault(su.LongName, utils.OrDefault(su.Name, UnknownSubject)),
		Room:        utils.OrDefault(ro.Name, UnknownRoom),
		RoomLong:    utils.OrDefault(ro.LongName, UnknownRoom),
		Teacher:     utils.OrDefault(te.Name, UnknownTeacher),
		TeacherLong: utils.OrDefault(te.LongName, UnknownTeacher),
		Code:        raw.Code,
	}
}

// LessonAdapter reconciles the own timetable from two days ago to two weeks ahead.
type LessonAdapter struct {
	provider Provider
	window   Window
}

func NewLessonAdapter(p Provider, w Window) *LessonAdapter {
	return &LessonAdapter{provider: p, window: w}
}

func (a *LessonAdapter) Kind() reconcile.Kind {
	return reconcile.KindTimetable
}

// Policy reports removals; the timetable is a full window, not an append log.
func (a *LessonAdapter) Policy() reconcile.Policy {
	return reconcile.Policy{TrackRemovals: true}
}

// CompareFields compares room, teacher and status, in that order.
func (a *LessonAdapter) CompareFields(old, new reconcile.Record) []string {
	o, n := old.(Lesson), new.(Lesson)

	var details []string
	if o.Room != n.Room {
		details = append(details, fmt.Sprintf("Room changed from %s to %s", o.Room, n.Room))
	}
	if o.Teacher != n.Teacher {
		details = append(details, fmt.Sprintf("Teacher changed from %s to %s", o.Teacher, n.Teacher))
	}
	if o.Code != n.Code {
		details = append(details, fmt.Sprintf("Status changed from %s to %s", o.Status(), n.Status()))
	}
	return details
}

func (a *LessonAdapter) Fetch(ctx context.Context) ([]reconcile.Record, error) {
	raw, err := a.provider.Timetable(ctx, a.window.Days(-2), a.window.Days(14))
	if err != nil {
		return nil, err
	}

	lessons := make([]Lesson, len(raw))
	for i, l := range raw {
		lessons[i] = NormalizeLesson(l)
	}
	return toRecords(lessons), nil
}

func (a *LessonAdapter) Decode(data []byte) ([]reconcile.Record, error) {
	return decodeRecords[Lesson](data)
}

// Marker returns the latest lesson date, the Last-Cached-Date of the snapshot.
func (a *LessonAdapter) Marker(records []reconcile.Record) *int {
	latest := 0
	for _, r := range records {
		if l, ok := r.(Lesson); ok && l.Date > latest {
			latest = l.Date
		}
	}
	if latest == 0 {
		return nil
	}
	return &latest
}
