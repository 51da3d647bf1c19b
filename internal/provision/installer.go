package provision

import (
	"context"
	"fmt"

	"github.com/onepack/onepack/internal/run"
)

// Installer drives the package-installation tool (pip or compatible) for
// both project dependencies and the packager itself. A mirror URL, when
// set, is passed through with -i; validation of the URL and of the
// manifest contents is the installer subprocess's job.
type Installer struct {
	cmd    run.CommandRunner
	binary string
	mirror string
}

func NewInstaller(cmd run.CommandRunner, binary string, mirror string) *Installer {
	return &Installer{cmd: cmd, binary: binary, mirror: mirror}
}

// InstallManifest installs everything listed in the manifest file.
// Single attempt: transient network failures surface to the operator.
func (i *Installer) InstallManifest(ctx context.Context, dir string, manifest string) (int, error) {
	args := []string{"install", "-r", manifest}
	args = i.appendMirror(args)
	_, stderr, code, err := i.cmd.Run(ctx, dir, i.binary, args...)
	if err != nil {
		return -1, fmt.Errorf("install manifest %s: %w", manifest, err)
	}
	if code != 0 {
		return code, fmt.Errorf("%s install -r %s exited with code %d: %s", i.binary, manifest, code, firstLine(stderr))
	}
	return 0, nil
}

// InstallTool installs a single named tool through the same mechanism and
// mirror as InstallManifest.
func (i *Installer) InstallTool(ctx context.Context, dir string, tool string) (int, error) {
	args := []string{"install", tool}
	args = i.appendMirror(args)
	_, stderr, code, err := i.cmd.Run(ctx, dir, i.binary, args...)
	if err != nil {
		return -1, fmt.Errorf("install %s: %w", tool, err)
	}
	if code != 0 {
		return code, fmt.Errorf("%s install %s exited with code %d: %s", i.binary, tool, code, firstLine(stderr))
	}
	return 0, nil
}

func (i *Installer) appendMirror(args []string) []string {
	if i.mirror == "" {
		return args
	}
	return append(args, "-i", i.mirror)
}

// firstLine trims subprocess stderr down to something banner-sized.
func firstLine(s string) string {
	for idx := 0; idx < len(s); idx++ {
		if s[idx] == '\n' {
			return s[:idx]
		}
	}
	return s
}
