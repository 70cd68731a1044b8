// Package feeds holds the four WebUntis feeds as reconcile adapters and the
// HTTP routes that operate them.
//
// # Records
//
// Each feed normalizes its raw provider payload into one record type:
//
//   - Lesson (timetable): keyed by lesson id, compared on room, teacher and
//     status; removals are reported; keeps the Last-Cached-Date marker.
//   - Absence: keyed by student, date, start and end time.
//   - Homework: keyed by id; the subject is resolved from the lesson table.
//   - Exam: keyed by date, start and end time.
//
// Absence, homework and exam are identity-only and append-only: a known key
// is never reported again, and the snapshot is rewritten only when new
// records arrived. Missing names fall back to "Unknown ..." placeholders.
//
// # Query ranges
//
//   - timetable: today-2d to today+14d
//   - absences: range start to today
//   - homework: range start to today+14d
//   - exams: range start to today+365d
//
// # Routes
//
//   - POST /check/:verb (202, fire-and-forget)
//   - GET /status
//   - GET /snapshots/:kind
package feeds
