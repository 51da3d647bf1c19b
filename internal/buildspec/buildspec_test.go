package buildspec

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func write(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoad_NativeYAML(t *testing.T) {
	dir := t.TempDir()
	path := write(t, dir, "build.yaml", `
name: report-builder
entry: main.py
onefile: true
console: false
`)

	s, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !s.Native() {
		t.Error("expected native spec")
	}
	if s.Name != "report-builder" {
		t.Errorf("expected name report-builder, got %q", s.Name)
	}
	if s.Entry != "main.py" {
		t.Errorf("expected entry main.py, got %q", s.Entry)
	}
	if !s.OneFile {
		t.Error("expected onefile true")
	}
}

func TestLoad_NativeYAMLMissingFields(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"no name", "entry: main.py\n", "name is required"},
		{"no entry", "name: app\n", "entry is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := write(t, dir, strings.ReplaceAll(tt.name, " ", "_")+".yaml", tt.content)
			_, err := Load(path)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLoad_PackagerSpecScansName(t *testing.T) {
	dir := t.TempDir()
	path := write(t, dir, "app.spec", `
a = Analysis(['main.py'], pathex=[])
pyz = PYZ(a.pure)
exe = EXE(pyz, a.scripts, a.binaries, name='report-builder', console=False)
`)

	s, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Native() {
		t.Error("expected non-native spec")
	}
	if s.Name != "report-builder" {
		t.Errorf("expected scanned name report-builder, got %q", s.Name)
	}
	if !s.OneFile {
		t.Error("spec without COLLECT should be one-file")
	}
}

func TestLoad_PackagerSpecNameDefaultsToBaseName(t *testing.T) {
	dir := t.TempDir()
	path := write(t, dir, "myapp.spec", "a = Analysis(['main.py'])\n")

	s, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Name != "myapp" {
		t.Errorf("expected fallback name myapp, got %q", s.Name)
	}
}

func TestLoad_PackagerSpecCollectMeansDirectoryBundle(t *testing.T) {
	dir := t.TempDir()
	path := write(t, dir, "app.spec", `
exe = EXE(pyz, a.scripts, name='app', exclude_binaries=True)
coll = COLLECT(exe, a.binaries, a.datas, name='app')
`)

	s, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.OneFile {
		t.Error("spec with COLLECT should not be one-file")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.spec")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestArtifactName(t *testing.T) {
	tests := []struct {
		goos string
		want string
	}{
		{"linux", "report-builder"},
		{"darwin", "report-builder"},
		{"windows", "report-builder.exe"},
	}
	for _, tt := range tests {
		if got := artifactName("report-builder", tt.goos); got != tt.want {
			t.Errorf("artifactName(%s): expected %q, got %q", tt.goos, tt.want, got)
		}
	}
}

func TestArtifactPath(t *testing.T) {
	s := &Spec{Name: "app"}
	got := s.ArtifactPath("dist")
	if filepath.Dir(got) != "dist" {
		t.Errorf("expected artifact under dist, got %q", got)
	}
	if !strings.HasPrefix(filepath.Base(got), "app") {
		t.Errorf("expected artifact named after spec, got %q", got)
	}
}
