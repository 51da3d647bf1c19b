package buildspec

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Spec is the build specification the packager stage references: the
// application entry point, the packaging mode, and the declared output
// name. It is a read-only input loaded once per run. Two on-disk forms are
// accepted: a native YAML document, or a PyInstaller-style .spec file that
// the packager consumes directly (onepack only scans it for the declared
// name so it can resolve the artifact path).
type Spec struct {
	Name    string `yaml:"name"`
	Entry   string `yaml:"entry"`
	OneFile bool   `yaml:"onefile"`
	Console bool   `yaml:"console"`

	path   string
	native bool
}

// Path returns the location the spec was loaded from.
func (s *Spec) Path() string { return s.path }

// Native reports whether the spec was given in onepack's own YAML form.
// Non-native specs are handed to the packager verbatim.
func (s *Spec) Native() bool { return s.native }

// ArtifactName returns the file name the packager will produce.
func (s *Spec) ArtifactName() string {
	return artifactName(s.Name, runtime.GOOS)
}

// ArtifactPath returns the deterministic location of the final artifact
// under the given dist directory.
func (s *Spec) ArtifactPath(distDir string) string {
	return filepath.Join(distDir, s.ArtifactName())
}

func artifactName(name string, goos string) string {
	if goos == "windows" {
		return name + ".exe"
	}
	return name
}

// Load reads the build specification at path. YAML files (.yaml/.yml) are
// parsed as the native form; anything else is treated as a packager spec
// file and scanned for its declared name.
func Load(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read build spec: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return loadNative(path, data)
	default:
		return loadPackagerSpec(path, data), nil
	}
}

func loadNative(path string, data []byte) (*Spec, error) {
	var s Spec
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse build spec %s: %w", path, err)
	}
	if s.Name == "" {
		return nil, fmt.Errorf("build spec %s: name is required", path)
	}
	if s.Entry == "" {
		return nil, fmt.Errorf("build spec %s: entry is required", path)
	}
	s.path = path
	s.native = true
	return &s, nil
}

// namePattern matches the declared output name in a packager spec file,
// e.g. name='report-builder' inside the EXE(...) call.
var namePattern = regexp.MustCompile(`name\s*=\s*['"]([^'"]+)['"]`)

func loadPackagerSpec(path string, data []byte) *Spec {
	s := &Spec{path: path, OneFile: true}
	if m := namePattern.FindSubmatch(data); m != nil {
		s.Name = string(m[1])
	} else {
		// The packager defaults the output name to the spec's base name.
		base := filepath.Base(path)
		s.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	// A COLLECT(...) call means a directory bundle rather than one file.
	if strings.Contains(string(data), "COLLECT(") {
		s.OneFile = false
	}
	return s
}
