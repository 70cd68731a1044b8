package discord

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"untis-notifier/core/reconcile"
	"untis-notifier/core/utils"
	"untis-notifier/feature/feeds"
)

const (
	// MaxMessageLength is Discord's content limit.
	MaxMessageLength = 2000
	truncationSuffix = "\n**AND MORE**"
)

// Format renders the change list of one cycle as a single message.
func Format(kind reconcile.Kind, changes []reconcile.Change, userID string) string {
	var b strings.Builder
	b.WriteString(header(kind, userID))

	sep := "\n\n"
	if kind == reconcile.KindTimetable {
		sep = "\n"
	}
	for i, c := range changes {
		if i > 0 {
			b.WriteString(sep)
		}
		b.WriteString(formatChange(c))
	}

	return Truncate(b.String(), MaxMessageLength)
}

// Truncate cuts s to at most limit characters, marking the cut with "**AND MORE**".
func Truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	keep := limit - utf8.RuneCountInString(truncationSuffix)
	if keep <= 0 {
		return strings.TrimPrefix(truncationSuffix, "\n")
	}
	runes := []rune(s)
	return string(runes[:keep]) + truncationSuffix
}

func header(kind reconcile.Kind, userID string) string {
	var emoji, text string
	switch kind {
	case reconcile.KindTimetable:
		emoji, text = "📅", "your timetable changed:"
	case reconcile.KindAbsence:
		emoji, text = "⚠️", "you have new absences:"
	case reconcile.KindHomework:
		emoji, text = "📃", "you have new **homework** assignments:"
	case reconcile.KindExam:
		emoji, text = "📚", "you have new **exams** coming up:"
	default:
		emoji, text = "🔔", fmt.Sprintf("%s changed:", kind)
	}

	if userID == "" {
		return fmt.Sprintf("%s %s%s\n", emoji, strings.ToUpper(text[:1]), text[1:])
	}
	return fmt.Sprintf("%s <@%s>, %s\n", emoji, userID, text)
}

func formatChange(c reconcile.Change) string {
	switch rec := c.Record().(type) {
	case feeds.Lesson:
		return formatLesson(c)
	case feeds.Absence:
		return formatAbsence(rec)
	case feeds.Homework:
		return formatHomework(rec)
	case feeds.Exam:
		return formatExam(rec)
	default:
		return fmt.Sprintf("%s: %s", c.Type, rec.Key())
	}
}

func lessonSlot(l feeds.Lesson) string {
	return fmt.Sprintf("%s %s - %s", utils.FormatDate(l.Date), utils.FormatTime(l.StartTime), utils.FormatTime(l.EndTime))
}

func lessonLine(l feeds.Lesson) string {
	return fmt.Sprintf("%s in room %s (%s) with %s", l.Subject, l.Room, l.RoomLong, l.TeacherLong)
}

func formatLesson(c reconcile.Change) string {
	switch c.Type {
	case reconcile.ChangeNew:
		l := c.New.(feeds.Lesson)
		return fmt.Sprintf("🆕 New lesson (%s) added on %s: %s.", l.Subject, lessonSlot(l), lessonLine(l))
	case reconcile.ChangeModified:
		o, n := c.Old.(feeds.Lesson), c.New.(feeds.Lesson)
		return fmt.Sprintf("🔄 Lesson updated on %s:\n**Old lesson:** %s.\n**New lesson:** %s.\n**Changes:** %s",
			lessonSlot(n), lessonLine(o), lessonLine(n), strings.Join(c.Details, ", "))
	default:
		l := c.Old.(feeds.Lesson)
		return fmt.Sprintf("❌ Lesson (%s) removed on %s: %s in room %s (%s).", l.Subject, lessonSlot(l), l.Subject, l.Room, l.RoomLong)
	}
}

func formatAbsence(a feeds.Absence) string {
	status := "Unexcused"
	if a.Excused {
		status = "Excused"
	}
	return fmt.Sprintf("**%s** - %s on %s\n**Created by:** %s\n**Status:** %s (%s)\n**Start Time:** %s\n**End Time:** %s",
		a.StudentName, a.Reason, utils.ISODate(a.Date), a.CreatedUser, status, a.ExcuseStatus,
		utils.FormatTime(a.StartTime), utils.FormatTime(a.EndTime))
}

func formatHomework(h feeds.Homework) string {
	s := fmt.Sprintf("**%s** - Due Date: %s\n**Description:** %s", h.Subject, utils.FormatDate(h.DueDate), h.Text)
	if h.Remark != "" {
		s += "\n**Remark:** " + h.Remark
	}
	return s + "\n**Created:** " + utils.FormatDate(h.Date)
}

func formatExam(e feeds.Exam) string {
	return fmt.Sprintf("**Exam:** %s\n**Subject:** %s\n**Date:** %s\n**Time:** %s - %s\n**Room(s):** %s\n**Teachers:** %s",
		e.Name, e.Subject, utils.FormatDate(e.Date), utils.FormatTime(e.StartTime), utils.FormatTime(e.EndTime),
		strings.Join(e.Rooms, ", "), strings.Join(e.Teachers, ", "))
}
