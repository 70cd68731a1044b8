// Package untis is a minimal WebUntis client covering the four feeds the
// notifier polls: the own timetable (JSON-RPC getTimetable) and the class
// register absences, homework and exams (JSON REST API).
//
// Each call authenticates, performs its request with the session cookie and
// logs out again. Dates are exchanged as YYYYMMDD integers. The returned
// structs are the raw provider shapes; normalization lives with the feeds.
package untis
