package feeds

import (
	"context"
	"fmt"
	"time"

	"untis-notifier/core/reconcile"
	"untis-notifier/core/untis"
	"untis-notifier/core/utils"
)

const (
	UnknownStudent   = "Unknown Student"
	UnknownUser      = "Unknown User"
	NoReasonProvided = "No reason provided"
	NoStatus         = "No status"
)

// Absence is a normalized class register absence.
type Absence struct {
	StudentName  string    `json:"student_name"`
	Date         int       `json:"date"`
	StartTime    int       `json:"start_time"`
	EndTime      int       `json:"end_time"`
	Reason       string    `json:"reason"`
	ExcuseStatus string    `json:"excuse_status"`
	Excused      bool      `json:"excused"`
	CreatedUser  string    `json:"created_user"`
	UpdatedUser  string    `json:"updated_user"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Key implements reconcile.Record: student, date, start and end time.
func (a Absence) Key() string {
	return fmt.Sprintf("%s|%d|%d|%d", a.StudentName, a.Date, a.StartTime, a.EndTime)
}

func fromMillis(ms int64) time.Time {
	if ms <= 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}

// NormalizeAbsence converts a raw absence, filling absent text with placeholders.
func NormalizeAbsence(raw untis.Absence) Absence {
	return Absence{
		StudentName:  utils.OrDefault(raw.StudentName, UnknownStudent),
		Date:         raw.StartDate,
		StartTime:    raw.StartTime,
		EndTime:      raw.EndTime,
		Reason:       utils.OrDefault(raw.Reason, NoReasonProvided),
		ExcuseStatus: utils.OrDefault(utils.ToString(raw.ExcuseStatus), NoStatus),
		Excused:      utils.ToBool(raw.IsExcused),
		CreatedUser:  utils.OrDefault(raw.CreatedUser, UnknownUser),
		UpdatedUser:  utils.OrDefault(raw.UpdatedUser, UnknownUser),
		CreatedAt:    fromMillis(raw.CreateDate),
		UpdatedAt:    fromMillis(raw.LastUpdate),
	}
}

// AbsenceAdapter reconciles absences from the range start up to today.
type AbsenceAdapter struct {
	identityOnly
	provider Provider
	window   Window
}

func NewAbsenceAdapter(p Provider, w Window) *AbsenceAdapter {
	return &AbsenceAdapter{provider: p, window: w}
}

func (a *AbsenceAdapter) Kind() reconcile.Kind {
	return reconcile.KindAbsence
}

func (a *AbsenceAdapter) Fetch(ctx context.Context) ([]reconcile.Record, error) {
	raw, err := a.provider.Absences(ctx, a.window.RangeStart, a.window.Today())
	if err != nil {
		return nil, err
	}

	absences := make([]Absence, len(raw))
	for i, r := range raw {
		absences[i] = NormalizeAbsence(r)
	}
	return toRecords(absences), nil
}

func (a *AbsenceAdapter) Decode(data []byte) ([]reconcile.Record, error) {
	return decodeRecords[Absence](data)
}
