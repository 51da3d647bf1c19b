package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/onepack/onepack/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded pipeline runs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := history.DefaultPath()
		if err != nil {
			return fmt.Errorf("locate history db: %w", err)
		}
		store, err := history.Open(path)
		if err != nil {
			return fmt.Errorf("open history db: %w", err)
		}
		defer store.Close()
		if err := store.Migrate(); err != nil {
			return fmt.Errorf("migrate history db: %w", err)
		}

		limit, _ := cmd.Flags().GetInt("limit")
		runs, err := store.ListRuns(limit)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		if len(runs) == 0 {
			fmt.Fprintln(w, "No runs recorded.")
			return nil
		}

		fmt.Fprintf(w, "%-6s %-22s %-9s %-10s %s\n", "ID", "STARTED", "STATUS", "DURATION", "ARTIFACT")
		fmt.Fprintf(w, "%-6s %-22s %-9s %-10s %s\n",
			strings.Repeat("-", 6),
			strings.Repeat("-", 22),
			strings.Repeat("-", 9),
			strings.Repeat("-", 10),
			strings.Repeat("-", 8))
		for _, r := range runs {
			fmt.Fprintf(w, "%-6d %-22s %-9s %-10s %s\n",
				r.ID, r.StartedAt, r.Status, fmt.Sprintf("%dms", r.DurationMs), r.Artifact)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of runs to list")
}
