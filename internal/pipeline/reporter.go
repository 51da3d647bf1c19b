package pipeline

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// Reporter writes the operator-facing progress report to out. The pause
// at the end is an injectable capability: interactive runs block until
// the operator acknowledges, headless runs pass nil and never block.
type Reporter struct {
	out     io.Writer
	confirm func()
}

func NewReporter(out io.Writer, confirm func()) *Reporter {
	return &Reporter{out: out, confirm: confirm}
}

// StdinConfirm blocks until the operator presses Enter. Used as the
// confirm capability for interactive runs.
func StdinConfirm() {
	fmt.Print("Press Enter to exit...")
	bufio.NewReader(os.Stdin).ReadString('\n')
}

// Probing announces the pre-pipeline toolchain check.
func (r *Reporter) Probing(binary string) {
	fmt.Fprintf(r.out, "Checking for %s on PATH...\n", binary)
}

// StageHeader announces a numbered stage as it begins.
func (r *Reporter) StageHeader(k, total int, description string) {
	fmt.Fprintf(r.out, "[%d/%d] %s\n", k, total, description)
}

// Advisory emits a non-fatal notice, e.g. a failed tool install that the
// pipeline proceeds past.
func (r *Reporter) Advisory(msg string) {
	fmt.Fprintf(r.out, "  note: %s\n", msg)
}

// Success reports the resolved artifact path and the first-launch note.
func (r *Reporter) Success(artifactPath string) {
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, "Build succeeded.")
	fmt.Fprintf(r.out, "Artifact: %s\n", artifactPath)
	fmt.Fprintln(r.out, "The first launch unpacks the bundle and may take a little longer.")
}

// Failure prints the error banner naming the stage that aborted the run.
func (r *Reporter) Failure(stage string, err error) {
	fmt.Fprintln(r.out)
	fmt.Fprintf(r.out, "ERROR: stage %q failed: %v\n", stage, err)
}

// Pause yields control back to the operator for acknowledgment before the
// process exits. No-op when no confirm capability is set.
func (r *Reporter) Pause() {
	if r.confirm != nil {
		r.confirm()
	}
}
