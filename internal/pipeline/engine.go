package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/onepack/onepack/internal/buildspec"
	"github.com/onepack/onepack/internal/clean"
	"github.com/onepack/onepack/internal/config"
	"github.com/onepack/onepack/internal/pack"
	"github.com/onepack/onepack/internal/provision"
	"github.com/onepack/onepack/internal/toolchain"
)

// numberedStages is how many stages appear in the [k/4] progress report.
// The toolchain probe runs before them and is announced separately.
const numberedStages = 4

// Recorder persists completed runs. Recording is advisory: a recorder
// error is logged and never changes the run's terminal status.
type Recorder interface {
	Record(r *Run) error
}

// Engine executes the packaging pipeline: probe → deps → tool → clean →
// package → report. Stages run strictly in order; a fatal stage failure
// aborts everything after it. The engine assumes at most one run at a
// time on a given working directory — concurrent runs racing on the
// build/dist directories are not supported.
type Engine struct {
	cfg       *config.Config
	probe     *toolchain.Probe
	installer *provision.Installer
	cleaner   *clean.Cleaner
	packager  *pack.Packager
	reporter  *Reporter
	recorder  Recorder
	workdir   string
}

func NewEngine(
	cfg *config.Config,
	probe *toolchain.Probe,
	installer *provision.Installer,
	cleaner *clean.Cleaner,
	packager *pack.Packager,
	reporter *Reporter,
) *Engine {
	return &Engine{
		cfg:       cfg,
		probe:     probe,
		installer: installer,
		cleaner:   cleaner,
		packager:  packager,
		reporter:  reporter,
		workdir:   ".",
	}
}

// SetRecorder attaches a run-history recorder.
func (e *Engine) SetRecorder(rec Recorder) {
	e.recorder = rec
}

// SetWorkdir overrides the working directory (defaults to the current one).
func (e *Engine) SetWorkdir(dir string) {
	e.workdir = dir
}

// Run executes the full pipeline and returns the run record. The returned
// error is non-nil exactly when the run's terminal status is Failure.
func (e *Engine) Run(ctx context.Context) (*Run, error) {
	b := e.cfg.Build
	r := &Run{Status: StatusRunning, StartedAt: time.Now()}
	defer func() {
		r.Duration = time.Since(r.StartedAt)
		e.record(r)
		e.reporter.Pause()
	}()

	// Pre-pipeline probe: no point installing anything without a toolchain.
	e.reporter.Probing(b.Toolchain)
	st := e.runStage(ctx, r, StageProbe, true, func(ctx context.Context) (int, error) {
		if err := e.probe.Check(ctx, b.Toolchain); err != nil {
			return -1, err
		}
		return 0, nil
	})
	if st.Outcome == OutcomeFailed {
		return e.fail(r, st, ErrToolchainMissing)
	}

	e.reporter.StageHeader(1, numberedStages, fmt.Sprintf("Installing project dependencies (%s)", b.Manifest))
	st = e.runStage(ctx, r, StageDeps, true, func(ctx context.Context) (int, error) {
		return e.installer.InstallManifest(ctx, e.workdir, b.Manifest)
	})
	if st.Outcome == OutcomeFailed {
		return e.fail(r, st, ErrDependencyInstall)
	}

	// Non-fatal by design: the packager may already be present from a
	// prior run, so a failed install is advisory only.
	e.reporter.StageHeader(2, numberedStages, fmt.Sprintf("Installing packager (%s)", b.Packager))
	st = e.runStage(ctx, r, StageTool, false, func(ctx context.Context) (int, error) {
		return e.installer.InstallTool(ctx, e.workdir, b.Packager)
	})
	if st.Outcome == OutcomeFailed {
		slog.Warn("packager install failed, continuing", "packager", b.Packager, "detail", st.Detail)
		e.reporter.Advisory(fmt.Sprintf("%s install failed; continuing in case it is already present", b.Packager))
	}

	e.reporter.StageHeader(3, numberedStages, fmt.Sprintf("Removing stale output (%s, %s)", b.BuildDir, b.DistDir))
	st = e.runStage(ctx, r, StageClean, true, func(ctx context.Context) (int, error) {
		removed, err := e.cleaner.Clean(e.workdir)
		if err != nil {
			return -1, err
		}
		slog.Debug("cleaned output directories", "removed", removed)
		return 0, nil
	})
	if st.Outcome == OutcomeFailed {
		return e.fail(r, st, nil)
	}

	e.reporter.StageHeader(4, numberedStages, fmt.Sprintf("Building single-file executable (%s)", b.Spec))
	var artifact string
	st = e.runStage(ctx, r, StagePackage, true, func(ctx context.Context) (int, error) {
		spec, err := buildspec.Load(filepath.Join(e.workdir, b.Spec))
		if err != nil {
			return -1, err
		}
		code, err := e.packager.Package(ctx, e.workdir, spec)
		if err != nil {
			return code, err
		}
		artifact = spec.ArtifactPath(filepath.Join(e.workdir, b.DistDir))
		return 0, nil
	})
	if st.Outcome == OutcomeFailed {
		return e.fail(r, st, ErrPackaging)
	}

	r.Status = StatusSuccess
	r.ArtifactPath = artifact
	e.reporter.Success(artifact)
	return r, nil
}

// runStage executes one stage and records its outcome. Outcomes are set
// exactly once; the pipeline never revisits a stage.
func (e *Engine) runStage(ctx context.Context, r *Run, name string, fatal bool, fn func(context.Context) (int, error)) *StageResult {
	st := &StageResult{
		Name:    name,
		Ordinal: len(r.Stages) + 1,
		Outcome: OutcomeNotRun,
		Fatal:   fatal,
	}
	r.Stages = append(r.Stages, st)

	start := time.Now()
	code, err := fn(ctx)
	st.Duration = time.Since(start)
	st.ExitCode = code
	if err != nil {
		st.Outcome = OutcomeFailed
		st.Detail = err.Error()
	} else {
		st.Outcome = OutcomeSucceeded
	}
	return st
}

// fail marks the run failed, prints the error banner, and returns the
// terminal error. sentinel may be nil for failures outside the taxonomy.
func (e *Engine) fail(r *Run, st *StageResult, sentinel error) (*Run, error) {
	r.Status = StatusFailure
	var err error
	if sentinel != nil {
		err = fmt.Errorf("%w: %s", sentinel, st.Detail)
	} else {
		err = errors.New(st.Detail)
	}
	e.reporter.Failure(st.Name, err)
	return r, err
}

func (e *Engine) record(r *Run) {
	if e.recorder == nil {
		return
	}
	if err := e.recorder.Record(r); err != nil {
		slog.Warn("record run history", "error", err)
	}
}
