package feeds

import (
	"context"
	"strconv"

	"untis-notifier/core/reconcile"
	"untis-notifier/core/untis"
	"untis-notifier/core/utils"
)

// Homework is a normalized homework assignment.
type Homework struct {
	ID        int    `json:"id"`
	LessonID  int    `json:"lesson_id"`
	Subject   string `json:"subject"`
	Date      int    `json:"date"`
	DueDate   int    `json:"due_date"`
	Text      string `json:"text"`
	Remark    string `json:"remark,omitempty"`
	Completed bool   `json:"completed"`
}

// Key implements reconcile.Record.
func (h Homework) Key() string {
	return strconv.Itoa(h.ID)
}

// NormalizeHomework converts every assignment in result, resolving its subject
// through the lesson table.
func NormalizeHomework(result *untis.HomeworkResult) []Homework {
	if result == nil {
		return nil
	}

	subjects := make(map[int]string, len(result.Lessons))
	for _, l := range result.Lessons {
		subjects[l.ID] = l.Subject
	}

	out := make([]Homework, len(result.Homeworks))
	for i, h := range result.Homeworks {
		out[i] = Homework{
			ID:        h.ID,
			LessonID:  h.LessonID,
			Subject:   utils.OrDefault(subjects[h.LessonID], UnknownSubject),
			Date:      h.Date,
			DueDate:   h.DueDate,
			Text:      h.Text,
			Remark:    h.Remark,
			Completed: h.Completed,
		}
	}
	return out
}

// HomeworkAdapter reconciles homework from the range start to two weeks ahead.
type HomeworkAdapter struct {
	identityOnly
	provider Provider
	window   Window
}

func NewHomeworkAdapter(p Provider, w Window) *HomeworkAdapter {
	return &HomeworkAdapter{provider: p, window: w}
}

func (a *HomeworkAdapter) Kind() reconcile.Kind {
	return reconcile.KindHomework
}

func (a *HomeworkAdapter) Fetch(ctx context.Context) ([]reconcile.Record, error) {
	result, err := a.provider.Homework(ctx, a.window.RangeStart, a.window.Days(14))
	if err != nil {
		return nil, err
	}
	return toRecords(NormalizeHomework(result)), nil
}

func (a *HomeworkAdapter) Decode(data []byte) ([]reconcile.Record, error) {
	return decodeRecords[Homework](data)
}
