package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"untis-notifier/core/reconcile"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// checkCmd runs one synchronous reconciliation cycle.
var checkCmd = &cobra.Command{
	Use:       "check <timetable|absences|homework|exams>",
	Short:     "Run one check of a feed and exit",
	Long:      `Fetches one feed, diffs it against the stored snapshot, notifies and persists, then prints the cycle summary.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"timetable", "absences", "homework", "exams"},
	RunE:      runCheck,
}

func init() {
	RootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	kind, ok := reconcile.ParseVerb(args[0])
	if !ok {
		return fmt.Errorf("unknown feed %q", args[0])
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer rt.close()

	if err := rt.wirePolling(); err != nil {
		return err
	}

	outcome, err := rt.scheduler.RunOnce(ctx, kind)
	if err != nil {
		return err
	}

	s := outcome.Summary()
	fmt.Fprintf(cmd.OutOrStdout(), "%s: fetched=%d new=%d modified=%d removed=%d fast_path=%t notified=%t persisted=%t\n",
		kind.Verb(), s.Fetched, s.New, s.Modified, s.Removed, s.FastPath, s.Notified, s.Persisted)

	if outcome.NotifyErr != nil {
		rt.logger.Warn("Notification failed", zap.Error(outcome.NotifyErr))
	}
	return outcome.Err
}
