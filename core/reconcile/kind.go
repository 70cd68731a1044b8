package reconcile

import "strings"

// Kind identifies one of the polled feeds. The set is closed.
type Kind string

const (
	KindTimetable Kind = "timetable"
	KindAbsence   Kind = "absence"
	KindHomework  Kind = "homework"
	KindExam      Kind = "exam"
)

// Kinds returns every feed kind in a stable order.
func Kinds() []Kind {
	return []Kind{KindTimetable, KindAbsence, KindHomework, KindExam}
}

// Valid reports whether k is one of the known feed kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindTimetable, KindAbsence, KindHomework, KindExam:
		return true
	default:
		return false
	}
}

// Verb returns the operator command that triggers this feed.
func (k Kind) Verb() string {
	switch k {
	case KindAbsence:
		return "absences"
	case KindExam:
		return "exams"
	default:
		return string(k)
	}
}

// ParseVerb maps an operator command (timetable, absences, homework, exams) to its kind.
func ParseVerb(verb string) (Kind, bool) {
	v := strings.ToLower(strings.TrimSpace(verb))
	for _, k := range Kinds() {
		if k.Verb() == v {
			return k, true
		}
	}
	return "", false
}

// ParseKind accepts either a kind identifier or its verb.
func ParseKind(s string) (Kind, bool) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if k.Valid() {
		return k, true
	}
	return ParseVerb(s)
}
