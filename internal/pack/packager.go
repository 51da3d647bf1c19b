package pack

import (
	"context"
	"fmt"

	"github.com/onepack/onepack/internal/buildspec"
	"github.com/onepack/onepack/internal/run"
)

// Packager invokes the external bundling tool against a build
// specification. The tool's bundling algorithm is opaque; onepack only
// consumes its exit code and the deterministic artifact location.
type Packager struct {
	cmd    run.CommandRunner
	binary string
}

func NewPackager(cmd run.CommandRunner, binary string) *Packager {
	return &Packager{cmd: cmd, binary: binary}
}

// Package runs the packager in dir. Prior cached build state is always
// discarded (--clean) and confirmation prompts suppressed so the run never
// blocks on a tty. Returns the subprocess exit code.
func (p *Packager) Package(ctx context.Context, dir string, spec *buildspec.Spec) (int, error) {
	args := p.buildArgs(spec)
	_, stderr, code, err := p.cmd.Run(ctx, dir, p.binary, args...)
	if err != nil {
		return -1, fmt.Errorf("run packager: %w", err)
	}
	if code != 0 {
		return code, fmt.Errorf("%s exited with code %d: %s", p.binary, code, lastLine(stderr))
	}
	return 0, nil
}

// buildArgs maps the spec onto a packager invocation. A native spec is
// expanded into flags; a packager-format spec file already carries its
// own settings and is passed through as-is.
func (p *Packager) buildArgs(spec *buildspec.Spec) []string {
	args := []string{"--noconfirm", "--clean"}
	if !spec.Native() {
		return append(args, spec.Path())
	}
	if spec.OneFile {
		args = append(args, "--onefile")
	}
	if !spec.Console {
		args = append(args, "--windowed")
	}
	args = append(args, "--name", spec.Name, spec.Entry)
	return args
}

// lastLine returns the final non-empty line of s; packager errors land at
// the end of stderr.
func lastLine(s string) string {
	end := len(s)
	for end > 0 && (s[end-1] == '\n' || s[end-1] == '\r') {
		end--
	}
	start := end
	for start > 0 && s[start-1] != '\n' {
		start--
	}
	return s[start:end]
}
