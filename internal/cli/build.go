package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/onepack/onepack/internal/clean"
	"github.com/onepack/onepack/internal/history"
	"github.com/onepack/onepack/internal/pack"
	"github.com/onepack/onepack/internal/pipeline"
	"github.com/onepack/onepack/internal/provision"
	"github.com/onepack/onepack/internal/run"
	"github.com/onepack/onepack/internal/toolchain"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Run the full packaging pipeline (same as running onepack with no arguments)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPipeline(cmd)
	},
}

// runPipeline wires the real collaborators together and executes a run.
func runPipeline(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	runner := &run.ExecRunner{}
	probe := toolchain.NewProbe(toolchain.ExecEnvironment{}, runner)
	installer := provision.NewInstaller(runner, cfg.Build.Installer, cfg.Build.MirrorURL)
	cleaner := clean.NewCleaner(cfg.Build.BuildDir, cfg.Build.DistDir)
	packager := pack.NewPackager(runner, cfg.Build.Packager)

	confirm := pipeline.StdinConfirm
	if cfg.Build.Headless {
		confirm = nil
	}
	reporter := pipeline.NewReporter(cmd.OutOrStdout(), confirm)

	engine := pipeline.NewEngine(cfg, probe, installer, cleaner, packager, reporter)

	// History recording is best effort; a broken store never blocks a build.
	if store := openHistory(); store != nil {
		defer store.Close()
		engine.SetRecorder(store)
	}

	_, err = engine.Run(cmd.Context())
	return err
}

func openHistory() *history.Store {
	path, err := history.DefaultPath()
	if err != nil {
		slog.Warn("run history unavailable", "error", err)
		return nil
	}
	store, err := history.Open(path)
	if err != nil {
		slog.Warn("run history unavailable", "error", err)
		return nil
	}
	if err := store.Migrate(); err != nil {
		slog.Warn("run history unavailable", "error", err)
		store.Close()
		return nil
	}
	return store
}
