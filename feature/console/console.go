package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"untis-notifier/core/reconcile"
	"untis-notifier/core/scheduler"

	"go.uber.org/zap"
)

const helpText = `Available commands:
  timetable   check the timetable now
  absences    check absences now
  homework    check homework now
  exams       check exams now
  status      show the enabled feeds and their last cycle
  help        show this help
  exit        stop reading commands`

// Scheduler is the part of the poll scheduler the console drives.
type Scheduler interface {
	Trigger(kind reconcile.Kind) error
	Status() []scheduler.FeedStatus
}

// Console dispatches one command per input line.
type Console struct {
	scheduler Scheduler
	logger    *zap.Logger
}

func New(s Scheduler, logger *zap.Logger) *Console {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Console{scheduler: s, logger: logger}
}

// Run reads commands from in until exit, EOF or ctx cancellation. Feed
// commands are fire-and-forget; their outcome only shows up in the logs.
func (c *Console) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	lines := make(chan string)
	scanErr := make(chan error, 1)
	stop := make(chan struct{})
	defer close(stop)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			case <-stop:
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	fmt.Fprintln(out, "Type 'help' for a list of commands.")

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					if err != nil {
						return fmt.Errorf("failed to read commands: %w", err)
					}
				default:
				}
				return nil
			}
			if !c.Execute(line, out) {
				return nil
			}
		}
	}
}

// Execute runs a single command line and reports whether to keep reading.
func (c *Console) Execute(line string, out io.Writer) bool {
	cmd := strings.ToLower(strings.TrimSpace(line))

	switch cmd {
	case "":
		return true
	case "exit", "quit":
		fmt.Fprintln(out, "Bye.")
		return false
	case "help":
		fmt.Fprintln(out, helpText)
		return true
	case "status":
		c.printStatus(out)
		return true
	}

	kind, ok := reconcile.ParseVerb(cmd)
	if !ok {
		fmt.Fprintf(out, "Unknown command %q, type 'help' for a list of commands.\n", cmd)
		return true
	}

	if err := c.scheduler.Trigger(kind); err != nil {
		c.logger.Warn("Console trigger failed", zap.String("kind", string(kind)), zap.Error(err))
		fmt.Fprintf(out, "Cannot check %s: %v\n", kind.Verb(), err)
		return true
	}

	fmt.Fprintf(out, "Checking %s...\n", kind.Verb())
	return true
}

func (c *Console) printStatus(out io.Writer) {
	statuses := c.scheduler.Status()
	if len(statuses) == 0 {
		fmt.Fprintln(out, "No feeds configured.")
		return
	}

	for _, st := range statuses {
		state := "disabled"
		if st.Enabled {
			state = "enabled"
		}

		if st.Last == nil {
			fmt.Fprintf(out, "%-10s %-8s never run\n", st.Kind.Verb(), state)
			continue
		}

		result := "ok"
		switch {
		case st.Last.Err != "":
			result = "failed: " + st.Last.Err
		case st.Last.FastPath:
			result = "fast path"
		}

		fmt.Fprintf(out, "%-10s %-8s last %s (%s) new=%d modified=%d removed=%d\n",
			st.Kind.Verb(), state,
			st.Last.FinishedAt.Local().Format("02.01.2006 15:04:05"),
			result, st.Last.New, st.Last.Modified, st.Last.Removed)
		if st.Last.NotifyErr != "" {
			fmt.Fprintf(out, "%-10s notify failed: %s\n", "", st.Last.NotifyErr)
		}
	}
}
