package feeds

import (
	"context"
	"fmt"

	"untis-notifier/core/reconcile"
	"untis-notifier/core/untis"
	"untis-notifier/core/utils"
)

// Exam is a normalized exam.
type Exam struct {
	ID        int      `json:"id"`
	Name      string   `json:"name"`
	Subject   string   `json:"subject"`
	Date      int      `json:"date"`
	StartTime int      `json:"start_time"`
	EndTime   int      `json:"end_time"`
	Rooms     []string `json:"rooms"`
	Teachers  []string `json:"teachers"`
	Students  []string `json:"students"`
	Text      string   `json:"text,omitempty"`
}

// Key implements reconcile.Record: date, start and end time.
func (e Exam) Key() string {
	return fmt.Sprintf("%d|%d|%d", e.Date, e.StartTime, e.EndTime)
}

// NormalizeExam converts a raw exam. The date may arrive as a number or an
// 8-digit string; both decode to the same YYYYMMDD integer.
func NormalizeExam(raw untis.Exam) Exam {
	students := make([]string, 0, len(raw.AssignedStudents))
	for _, s := range raw.AssignedStudents {
		students = append(students, utils.OrDefault(s.DisplayName, UnknownStudent))
	}

	return Exam{
		ID:        raw.ID,
		Name:      raw.Name,
		Subject:   utils.OrDefault(raw.Subject, UnknownSubject),
		Date:      utils.ToInt(raw.ExamDate),
		StartTime: raw.StartTime,
		EndTime:   raw.EndTime,
		Rooms:     nonNil(raw.Rooms),
		Teachers:  nonNil(raw.Teachers),
		Students:  students,
		Text:      raw.Text,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// ExamAdapter reconciles exams from the range start to a year ahead.
type ExamAdapter struct {
	identityOnly
	provider Provider
	window   Window
}

func NewExamAdapter(p Provider, w Window) *ExamAdapter {
	return &ExamAdapter{provider: p, window: w}
}

func (a *ExamAdapter) Kind() reconcile.Kind {
	return reconcile.KindExam
}

func (a *ExamAdapter) Fetch(ctx context.Context) ([]reconcile.Record, error) {
	raw, err := a.provider.Exams(ctx, a.window.RangeStart, a.window.Days(365))
	if err != nil {
		return nil, err
	}

	exams := make([]Exam, len(raw))
	for i, r := range raw {
		exams[i] = NormalizeExam(r)
	}
	return toRecords(exams), nil
}

func (a *ExamAdapter) Decode(data []byte) ([]reconcile.Record, error) {
	return decodeRecords[Exam](data)
}
