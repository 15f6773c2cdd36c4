package runner

import (
	"context"
	"sync"
)

// SequentialMockRunner replays scripted results in order and records
// every invocation. It is the test double for anything that drives
// external commands; the recorded calls let tests assert that zero
// commands were issued (dry run, validation failures).
type SequentialMockRunner struct {
	mu      sync.Mutex
	results []Result
	calls   [][]string
}

// NewSequentialMockRunner creates an empty mock runner. A call past the
// end of the script returns a successful empty Result.
func NewSequentialMockRunner() *SequentialMockRunner {
	return &SequentialMockRunner{}
}

// AddResult appends a scripted result.
func (m *SequentialMockRunner) AddResult(res Result) *SequentialMockRunner {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = append(m.results, res)
	return m
}

// AddSuccess appends a successful result with the given stdout.
func (m *SequentialMockRunner) AddSuccess(stdout string) *SequentialMockRunner {
	return m.AddResult(Result{ExitCode: 0, Stdout: stdout})
}

// AddFailure appends a failed result with the given stderr.
func (m *SequentialMockRunner) AddFailure(stderr string) *SequentialMockRunner {
	return m.AddResult(Result{ExitCode: 1, Stderr: stderr})
}

// Run implements Runner.
func (m *SequentialMockRunner) Run(ctx context.Context, dir string, argv ...string) Result {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, argv)

	if len(m.results) == 0 {
		return Result{Argv: argv}
	}

	res := m.results[0]
	m.results = m.results[1:]
	res.Argv = argv
	return res
}

// Calls returns every argv the runner has seen, in order.
func (m *SequentialMockRunner) Calls() [][]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([][]string, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallCount returns the number of commands issued so far.
func (m *SequentialMockRunner) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}
