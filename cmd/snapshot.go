package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"untis-notifier/core/reconcile"

	"github.com/spf13/cobra"
)

// snapshotCmd prints the stored snapshot of a feed.
var snapshotCmd = &cobra.Command{
	Use:   "snapshot <kind>",
	Short: "Print the stored snapshot of a feed as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runSnapshot,
}

func init() {
	RootCmd.AddCommand(snapshotCmd)
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	kind, ok := reconcile.ParseKind(args[0])
	if !ok {
		return fmt.Errorf("unknown feed %q", args[0])
	}

	ctx := context.Background()
	rt, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer rt.close()

	snap, err := rt.store.Load(ctx, kind)
	if errors.Is(err, reconcile.ErrSnapshotNotFound) {
		return fmt.Errorf("no snapshot stored for %s", kind)
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(snap)
}
