package cli

import (
	"bytes"
	"strings"
	"testing"
)

func executeCommand(args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	// rootCmd is shared between tests; a prior --help run leaves cobra's
	// help flag set, which would short-circuit subsequent executions.
	if f := rootCmd.Flags().Lookup("help"); f != nil {
		_ = f.Value.Set("false")
		f.Changed = false
	}
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestVersionCommand(t *testing.T) {
	SetVersion("test-version")
	out, err := executeCommand("version")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "test-version") {
		t.Errorf("expected version output to contain 'test-version', got: %s", out)
	}
}

func TestRootHelp(t *testing.T) {
	out, err := executeCommand("--help")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expectedSubcommands := []string{
		"build", "clean", "doctor", "history", "config", "version",
	}
	for _, sub := range expectedSubcommands {
		if !strings.Contains(out, sub) {
			t.Errorf("help output missing subcommand %q", sub)
		}
	}
}

func TestCleanCommand_NothingToClean(t *testing.T) {
	out, err := executeCommand("clean")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "Nothing to clean.") {
		t.Errorf("expected no-op message, got: %s", out)
	}
}

func TestConfigShowCommand(t *testing.T) {
	out, err := executeCommand("config", "show")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"toolchain: python", "manifest: requirements.txt", "dist_dir: dist"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected effective config to contain %q, got: %s", want, out)
		}
	}
}

func TestMirrorFlagValidation(t *testing.T) {
	defer executeCommand("clean", "--mirror", "") // reset persistent flag for other tests

	_, err := executeCommand("clean", "--mirror", "not a url")
	if err == nil {
		t.Error("expected validation error for malformed mirror URL")
	}
}

func TestUnknownCommand(t *testing.T) {
	_, err := executeCommand("nonexistent")
	if err == nil {
		t.Error("expected error for unknown command, got nil")
	}
}
