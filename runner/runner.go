package runner

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os/exec"
	"strings"
)

// Result captures the outcome of a single external command.
// It owns no process state beyond its own invocation.
type Result struct {
	Argv     []string // Command and arguments as invoked
	ExitCode int      // Process exit code (-1 if the process never ran)
	Stdout   string   // Captured standard output, trimmed
	Stderr   string   // Captured standard error, trimmed
}

// Ok reports whether the command exited successfully.
func (r Result) Ok() bool {
	return r.ExitCode == 0
}

// Runner executes a single external command and captures its outcome.
// Implementations never panic and never terminate the caller; a failed
// command is reported through Result.ExitCode and Result.Stderr.
type Runner interface {
	Run(ctx context.Context, dir string, argv ...string) Result
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// NewExecRunner creates a runner backed by os/exec.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run implements Runner. Exactly one process is spawned per call and
// runs to completion before Run returns. No retries at this layer.
func (ExecRunner) Run(ctx context.Context, dir string, argv ...string) Result {
	if len(argv) == 0 {
		return Result{ExitCode: -1, Stderr: "empty command"}
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	if dir != "" {
		cmd.Dir = dir
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	res := Result{
		Argv:   argv,
		Stdout: strings.TrimSpace(stdout.String()),
		Stderr: strings.TrimSpace(stderr.String()),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
		} else {
			// Process never started (command not found, bad dir, ...).
			res.ExitCode = -1
			if res.Stderr == "" {
				res.Stderr = err.Error()
			}
		}
	}

	return res
}

// RunChecked runs the command and, on nonzero exit, logs a diagnostic
// with the captured stderr. The Result is returned to the caller either
// way; retry policy belongs to the caller, not here.
func RunChecked(ctx context.Context, r Runner, dir string, argv ...string) Result {
	res := r.Run(ctx, dir, argv...)
	if !res.Ok() {
		slog.Error("command failed",
			"cmd", strings.Join(argv, " "),
			"exit_code", res.ExitCode,
			"stderr", res.Stderr,
		)
	}
	return res
}
