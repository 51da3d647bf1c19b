package provision

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
)

type mockCmd struct {
	calls   []mockCall
	results []mockResult
	callIdx int
}

type mockCall struct {
	Dir  string
	Name string
	Args []string
}

type mockResult struct {
	Stderr   string
	ExitCode int
	Err      error
}

func (m *mockCmd) Run(ctx context.Context, dir string, name string, args ...string) (string, string, int, error) {
	m.calls = append(m.calls, mockCall{Dir: dir, Name: name, Args: args})
	if m.callIdx >= len(m.results) {
		return "", "", 0, nil
	}
	r := m.results[m.callIdx]
	m.callIdx++
	return "", r.Stderr, r.ExitCode, r.Err
}

func TestInstallManifest_WithMirror(t *testing.T) {
	mock := &mockCmd{}
	inst := NewInstaller(mock, "pip", "https://mirror.example.com/simple")

	code, err := inst.InstallManifest(context.Background(), "/work", "requirements.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if code != 0 {
		t.Errorf("expected exit code 0, got %d", code)
	}
	if len(mock.calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(mock.calls))
	}

	call := mock.calls[0]
	if call.Name != "pip" {
		t.Errorf("expected pip, got %q", call.Name)
	}
	if call.Dir != "/work" {
		t.Errorf("expected dir /work, got %q", call.Dir)
	}
	want := []string{"install", "-r", "requirements.txt", "-i", "https://mirror.example.com/simple"}
	if !reflect.DeepEqual(call.Args, want) {
		t.Errorf("expected args %v, got %v", want, call.Args)
	}
}

func TestInstallManifest_WithoutMirror(t *testing.T) {
	mock := &mockCmd{}
	inst := NewInstaller(mock, "pip", "")

	if _, err := inst.InstallManifest(context.Background(), ".", "requirements.txt"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"install", "-r", "requirements.txt"}
	if !reflect.DeepEqual(mock.calls[0].Args, want) {
		t.Errorf("expected args %v, got %v", want, mock.calls[0].Args)
	}
}

func TestInstallManifest_NonzeroExit(t *testing.T) {
	mock := &mockCmd{results: []mockResult{
		{Stderr: "ERROR: Could not open requirements file\nmore detail", ExitCode: 1},
	}}
	inst := NewInstaller(mock, "pip", "")

	code, err := inst.InstallManifest(context.Background(), ".", "requirements.txt")
	if err == nil {
		t.Fatal("expected error for nonzero exit")
	}
	if code != 1 {
		t.Errorf("expected exit code 1, got %d", code)
	}
	// Only the first stderr line belongs in the diagnostic.
	if got := err.Error(); !strings.Contains(got, "Could not open requirements file") || strings.Contains(got, "more detail") {
		t.Errorf("unexpected diagnostic: %q", got)
	}
	// Single attempt, no retry.
	if len(mock.calls) != 1 {
		t.Errorf("expected exactly 1 attempt, got %d", len(mock.calls))
	}
}

func TestInstallTool(t *testing.T) {
	mock := &mockCmd{}
	inst := NewInstaller(mock, "pip", "https://mirror.example.com/simple")

	if _, err := inst.InstallTool(context.Background(), ".", "pyinstaller"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"install", "pyinstaller", "-i", "https://mirror.example.com/simple"}
	if !reflect.DeepEqual(mock.calls[0].Args, want) {
		t.Errorf("expected args %v, got %v", want, mock.calls[0].Args)
	}
}

func TestInstall_ExecError(t *testing.T) {
	mock := &mockCmd{results: []mockResult{
		{ExitCode: -1, Err: errors.New("exec pip: not found")},
	}}
	inst := NewInstaller(mock, "pip", "")

	code, err := inst.InstallManifest(context.Background(), ".", "requirements.txt")
	if err == nil {
		t.Fatal("expected error when the installer cannot start")
	}
	if code != -1 {
		t.Errorf("expected exit code -1, got %d", code)
	}
}
