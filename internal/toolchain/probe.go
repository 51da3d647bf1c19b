package toolchain

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/onepack/onepack/internal/run"
)

// HostEnvironment is the slice of the process environment the probe needs.
// Passing it explicitly keeps PATH lookups injectable in tests.
type HostEnvironment interface {
	LookPath(file string) (string, error)
	Getenv(key string) string
}

// ExecEnvironment implements HostEnvironment against the real process.
type ExecEnvironment struct{}

func (ExecEnvironment) LookPath(file string) (string, error) { return exec.LookPath(file) }
func (ExecEnvironment) Getenv(key string) string             { return os.Getenv(key) }

// Probe checks that required binaries are invocable on the current PATH.
type Probe struct {
	env HostEnvironment
	cmd run.CommandRunner
}

func NewProbe(env HostEnvironment, cmd run.CommandRunner) *Probe {
	return &Probe{env: env, cmd: cmd}
}

// Check verifies that binary is on PATH and answers a version query.
// The subprocess output is discarded; only the exit code is consulted.
func (p *Probe) Check(ctx context.Context, binary string) error {
	if _, err := p.env.LookPath(binary); err != nil {
		return fmt.Errorf("%s not found on PATH: %w", binary, err)
	}
	_, _, code, err := p.cmd.Run(ctx, "", binary, "--version")
	if err != nil {
		return fmt.Errorf("probe %s: %w", binary, err)
	}
	if code != 0 {
		return fmt.Errorf("%s --version exited with code %d", binary, code)
	}
	return nil
}

// BinaryStatus reports one binary's availability for the doctor command.
type BinaryStatus struct {
	Binary    string
	Path      string
	Available bool
	Detail    string
}

// Inspect checks each binary and returns a status per binary. Unlike
// Check it never short-circuits; the doctor command wants the full list.
func (p *Probe) Inspect(ctx context.Context, binaries ...string) []BinaryStatus {
	statuses := make([]BinaryStatus, 0, len(binaries))
	for _, b := range binaries {
		st := BinaryStatus{Binary: b}
		path, err := p.env.LookPath(b)
		if err != nil {
			st.Detail = "not found on PATH"
			statuses = append(statuses, st)
			continue
		}
		st.Path = path
		if err := p.Check(ctx, b); err != nil {
			st.Detail = err.Error()
		} else {
			st.Available = true
		}
		statuses = append(statuses, st)
	}
	return statuses
}
