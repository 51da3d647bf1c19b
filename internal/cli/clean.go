package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/onepack/onepack/internal/clean"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove stale build output directories",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		cleaner := clean.NewCleaner(cfg.Build.BuildDir, cfg.Build.DistDir)
		removed, err := cleaner.Clean(".")
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		if len(removed) == 0 {
			fmt.Fprintln(w, "Nothing to clean.")
			return nil
		}
		for _, d := range removed {
			fmt.Fprintf(w, "Removed %s\n", d)
		}
		return nil
	},
}
