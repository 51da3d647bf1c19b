package pipeline

import "time"

// Status is the overall state of a pipeline run.
type Status string

const (
	StatusPending Status = "pending"
	StatusRunning Status = "running"
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
)

// Outcome is the recorded result of a single stage. It is set exactly
// once; execution never revisits a stage.
type Outcome string

const (
	OutcomeNotRun    Outcome = "not_run"
	OutcomeSucceeded Outcome = "succeeded"
	OutcomeFailed    Outcome = "failed"
)

// Stage names, in execution order. The toolchain probe runs before the
// numbered stages and is recorded like any other.
const (
	StageProbe   = "probe"
	StageDeps    = "deps"
	StageTool    = "tool"
	StageClean   = "clean"
	StagePackage = "package"
)

// StageResult records one ordered, fallible unit of pipeline work.
type StageResult struct {
	Name     string        `json:"name"`
	Ordinal  int           `json:"ordinal"`
	Outcome  Outcome       `json:"outcome"`
	ExitCode int           `json:"exit_code"`
	Fatal    bool          `json:"fatal"` // whether a failure here aborts the run
	Detail   string        `json:"detail,omitempty"`
	Duration time.Duration `json:"duration"`
}

// Run is one execution instance of the pipeline. It owns its stage
// results for its duration and is discarded at process exit; status is
// communicated through the exit code, the console report, and the
// optional history store.
type Run struct {
	Status       Status         `json:"status"`
	Stages       []*StageResult `json:"stages"`
	ArtifactPath string         `json:"artifact_path,omitempty"`
	StartedAt    time.Time      `json:"started_at"`
	Duration     time.Duration  `json:"duration"`
}

// FailedStage returns the name of the stage that aborted the run, or ""
// if no fatal failure was recorded.
func (r *Run) FailedStage() string {
	for _, s := range r.Stages {
		if s.Outcome == OutcomeFailed && s.Fatal {
			return s.Name
		}
	}
	return ""
}
