// Package git provides the branch lifecycle operations the
// provisioning pipeline drives: checkout, branch creation and
// deletion, empty seed commits, and pushes with upstream tracking.
//
// Core types:
//   - Context: repository handle; every command goes through an
//     injected runner.Runner so tests can script outcomes
//   - BranchNamer: generates branch names for items without an
//     explicit assignment
//   - Error: wraps a failed git command with its operation and output
package git
