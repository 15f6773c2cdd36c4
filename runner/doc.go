// Package runner executes external commands and captures their outcomes.
//
// The Runner interface is the seam between prseed and the external
// git/gh binaries: production code uses ExecRunner, tests inject
// SequentialMockRunner to script outcomes and count invocations.
// A Runner never fails the caller; nonzero exits are reported through
// the returned Result.
package runner
