package discord

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"untis-notifier/core/reconcile"
	"untis-notifier/feature/feeds"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func lesson(id int, room string) feeds.Lesson {
	return feeds.Lesson{
		ID: id, Date: 20240910, StartTime: 800, EndTime: 845,
		Subject: "Math", Room: room, RoomLong: "Room " + room,
		Teacher: "SMI", TeacherLong: "Smith",
	}
}

func TestFormat_Timetable(t *testing.T) {
	changes := []reconcile.Change{
		{Type: reconcile.ChangeNew, New: lesson(1, "A1")},
		{Type: reconcile.ChangeModified, Old: lesson(2, "A1"), New: lesson(2, "A2"), Details: []string{"Room changed from A1 to A2"}},
		{Type: reconcile.ChangeRemoved, Old: lesson(3, "B1")},
	}

	msg := Format(reconcile.KindTimetable, changes, "123")
	lines := strings.Split(msg, "\n")

	assert.Equal(t, "📅 <@123>, your timetable changed:", lines[0])
	assert.Equal(t, "🆕 New lesson (Math) added on 10.09.2024 8:00 - 8:45: Math in room A1 (Room A1) with Smith.", lines[1])
	assert.Contains(t, msg, "🔄 Lesson updated on 10.09.2024 8:00 - 8:45:")
	assert.Contains(t, msg, "**Changes:** Room changed from A1 to A2")
	assert.True(t, strings.HasSuffix(msg, "❌ Lesson (Math) removed on 10.09.2024 8:00 - 8:45: Math in room B1 (Room B1)."))

	assert.Less(t, strings.Index(msg, "🆕"), strings.Index(msg, "🔄"))
	assert.Less(t, strings.Index(msg, "🔄"), strings.Index(msg, "❌"))
}

func TestFormat_Absence(t *testing.T) {
	changes := []reconcile.Change{{Type: reconcile.ChangeNew, New: feeds.Absence{
		StudentName: "Jane", Date: 20240910, StartTime: 800, EndTime: 845,
		Reason: "Sick", CreatedUser: "Office", ExcuseStatus: "No status",
	}}}

	msg := Format(reconcile.KindAbsence, changes, "")
	assert.True(t, strings.HasPrefix(msg, "⚠️ You have new absences:\n"))
	assert.Contains(t, msg, "**Jane** - Sick on 2024-09-10")
	assert.Contains(t, msg, "**Status:** Unexcused (No status)")
	assert.Contains(t, msg, "**Start Time:** 8:00")
}

func TestFormat_HomeworkAndExam(t *testing.T) {
	hw := Format(reconcile.KindHomework, []reconcile.Change{{Type: reconcile.ChangeNew, New: feeds.Homework{
		ID: 1, Subject: "Math", Date: 20240909, DueDate: 20240912, Text: "p. 12",
	}}}, "7")
	assert.Contains(t, hw, "📃 <@7>, you have new **homework** assignments:")
	assert.Contains(t, hw, "**Math** - Due Date: 12.09.2024")
	assert.NotContains(t, hw, "Remark")

	exam := Format(reconcile.KindExam, []reconcile.Change{{Type: reconcile.ChangeNew, New: feeds.Exam{
		Name: "Algebra", Subject: "Math", Date: 20241001, StartTime: 800, EndTime: 930,
		Rooms: []string{"A1", "A2"}, Teachers: []string{"SMI"},
	}}}, "7")
	assert.Contains(t, exam, "**Room(s):** A1, A2")
	assert.Contains(t, exam, "**Time:** 8:00 - 9:30")
}

func TestTruncate(t *testing.T) {
	short := "hello"
	assert.Equal(t, short, Truncate(short, MaxMessageLength))

	long := strings.Repeat("ä", 2500)
	got := Truncate(long, MaxMessageLength)
	assert.Equal(t, MaxMessageLength, utf8.RuneCountInString(got))
	assert.True(t, strings.HasSuffix(got, "**AND MORE**"))

	assert.Equal(t, "**AND MORE**", Truncate(long, 5))
}

func TestFormat_TruncatesLongBatches(t *testing.T) {
	var changes []reconcile.Change
	for i := 0; i < 100; i++ {
		changes = append(changes, reconcile.Change{Type: reconcile.ChangeNew, New: lesson(i, "A1")})
	}

	msg := Format(reconcile.KindTimetable, changes, "1")
	assert.LessOrEqual(t, utf8.RuneCountInString(msg), MaxMessageLength)
	assert.True(t, strings.HasSuffix(msg, "**AND MORE**"))
}

func TestNotifier_Notify(t *testing.T) {
	var received map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	n := NewNotifier(Config{WebhookURL: srv.URL, UserID: "42"}, zap.NewNop())
	err := n.Notify(context.Background(), reconcile.KindTimetable, []reconcile.Change{{Type: reconcile.ChangeNew, New: lesson(1, "A1")}})
	require.NoError(t, err)
	assert.Contains(t, received["content"], "<@42>")
	assert.Contains(t, received["content"], "🆕 New lesson (Math)")
}

func TestNotifier_Failures(t *testing.T) {
	changes := []reconcile.Change{{Type: reconcile.ChangeNew, New: lesson(1, "A1")}}

	t.Run("Non-2xx", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "rate limited", http.StatusTooManyRequests)
		}))
		defer srv.Close()

		err := NewNotifier(Config{WebhookURL: srv.URL}, nil).Notify(context.Background(), reconcile.KindTimetable, changes)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "429")
	})

	t.Run("Unconfigured webhook is a no-op", func(t *testing.T) {
		err := NewNotifier(Config{}, nil).Notify(context.Background(), reconcile.KindTimetable, changes)
		assert.NoError(t, err)
	})

	t.Run("Cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := NewNotifier(Config{WebhookURL: "http://127.0.0.1:1"}, nil).Notify(ctx, reconcile.KindTimetable, changes)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
