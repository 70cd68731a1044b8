package scheduler

import (
	"time"

	"untis-notifier/core/reconcile"
)

// Config holds the polling configuration.
type Config struct {
	// Interval is the shared period between cycles of every enabled feed.
	Interval time.Duration `mapstructure:"interval" default:"10m"`
	// Timetable enables polling of the timetable feed.
	Timetable bool `mapstructure:"timetable" default:"true"`
	// Absences enables polling of the absence feed.
	Absences bool `mapstructure:"absences" default:"true"`
	// Homework enables polling of the homework feed.
	Homework bool `mapstructure:"homework" default:"true"`
	// Exams enables polling of the exam feed.
	Exams bool `mapstructure:"exams" default:"true"`
	// Console enables the interactive stdin command surface.
	Console bool `mapstructure:"console" default:"true"`
}

// Enabled returns the feed kinds with polling turned on, in stable order.
func (c Config) Enabled() []reconcile.Kind {
	flags := map[reconcile.Kind]bool{
		reconcile.KindTimetable: c.Timetable,
		reconcile.KindAbsence:   c.Absences,
		reconcile.KindHomework:  c.Homework,
		reconcile.KindExam:      c.Exams,
	}

	var kinds []reconcile.Kind
	for _, k := range reconcile.Kinds() {
		if flags[k] {
			kinds = append(kinds, k)
		}
	}
	return kinds
}
