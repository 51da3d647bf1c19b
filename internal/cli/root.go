package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/onepack/onepack/internal/config"
	"github.com/onepack/onepack/internal/console"
	"github.com/onepack/onepack/internal/logging"
)

var version = "dev"

func SetVersion(v string) {
	version = v
}

var rootCmd = &cobra.Command{
	Use:   "onepack",
	Short: "onepack — package a scripted application into one executable",
	Long: `onepack turns a scripted application's source tree into a single
distributable executable. Run with no arguments it executes the full
pipeline: toolchain probe, dependency install, packager install, output
cleanup, and packaging, reporting the resulting artifact path.

Run history is stored in ~/.onepack/onepack.db.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		console.EnableUTF8()
		if err := includeEnv(); err != nil {
			return err
		}
		format, _ := cmd.Flags().GetString("log-format")
		level, _ := cmd.Flags().GetString("log-level")
		return logging.Initialize(format, level)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPipeline(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./onepack.yaml, ~/.onepack/config.yaml)")
	pf.String("mirror", "", "package source mirror URL (overrides config)")
	pf.Bool("headless", false, "skip the end-of-run acknowledgment pause")
	pf.String("log-format", "tint", "log format: tint, json or text")
	pf.String("log-level", "info", "log level: debug, info, warn, error")

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// includeEnv loads a .env file from the working directory if present.
func includeEnv() error {
	if err := godotenv.Load(); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("load .env: %w", err)
	}
	slog.Debug("using .env file")
	return nil
}

// loadConfig resolves the effective config: file (or defaults), then
// environment, then flags, then validation.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		cfg, err = config.Load(path)
	} else {
		cfg, err = config.LoadDefault()
	}
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("ONEPACK_MIRROR_URL"); v != "" {
		cfg.Build.MirrorURL = v
	}
	if v := os.Getenv("ONEPACK_HEADLESS"); v == "1" || v == "true" {
		cfg.Build.Headless = true
	}
	if mirror, _ := cmd.Flags().GetString("mirror"); mirror != "" {
		cfg.Build.MirrorURL = mirror
	}
	if headless, _ := cmd.Flags().GetBool("headless"); headless {
		cfg.Build.Headless = true
	}

	if errs := config.Validate(cfg); len(errs) > 0 {
		for _, e := range errs {
			slog.Error("invalid config", "field", e.Field, "message", e.Message)
		}
		return nil, fmt.Errorf("config has %d validation error(s)", len(errs))
	}
	return cfg, nil
}
