package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/onepack/onepack/internal/run"
	"github.com/onepack/onepack/internal/toolchain"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that the toolchain, installer and packager are invocable",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		probe := toolchain.NewProbe(toolchain.ExecEnvironment{}, &run.ExecRunner{})
		statuses := probe.Inspect(cmd.Context(),
			cfg.Build.Toolchain, cfg.Build.Installer, cfg.Build.Packager)

		w := cmd.OutOrStdout()
		missing := 0
		for _, st := range statuses {
			if st.Available {
				fmt.Fprintf(w, "ok       %-12s %s\n", st.Binary, st.Path)
			} else {
				fmt.Fprintf(w, "missing  %-12s %s\n", st.Binary, st.Detail)
				missing++
			}
		}

		// Only the toolchain is required up front; the installer can
		// fetch the packager during a build.
		if !statuses[0].Available {
			return fmt.Errorf("toolchain %s is not invocable", cfg.Build.Toolchain)
		}
		if missing > 0 {
			fmt.Fprintf(w, "%d tool(s) missing; a build may still succeed if the installer can provide them.\n", missing)
		}
		return nil
	},
}
