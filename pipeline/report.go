package pipeline

import (
	"github.com/randalmurphal/prseed/plan"
	"github.com/randalmurphal/prseed/pr"
)

// Status is the terminal state of one item's provisioning.
type Status string

// Item states. An item moves Idle → BranchReady → Pushed → one of the
// PR states, or stops at PushFailed. Only terminal states are
// recorded; nothing rolls back a created branch or commit — re-running
// the pipeline is the recovery mechanism.
const (
	StatusPlanned           Status = "planned" // Dry run only
	StatusPushFailed        Status = "push_failed"
	StatusPRCreated         Status = "pr_created"
	StatusPRCreatedNoLabels Status = "pr_created_no_labels"
	StatusPRFailed          Status = "pr_failed"
)

// ItemResult records how one assignment ended.
type ItemResult struct {
	Assignment plan.Assignment
	Status     Status
	PR         *pr.PullRequest // Set for the PR-created statuses
	Err        error           // Set for the failed statuses
}

// Report summarizes a provisioning run.
type Report struct {
	RunID        string
	BaseBranch   string
	Items        []ItemResult
	BaseRestored bool // Whether the final switch back to base succeeded
}

// Count returns how many items ended in the given status.
func (r *Report) Count(s Status) int {
	n := 0
	for _, item := range r.Items {
		if item.Status == s {
			n++
		}
	}
	return n
}

// Failed reports whether any item ended in a failure status.
func (r *Report) Failed() bool {
	return r.Count(StatusPushFailed) > 0 || r.Count(StatusPRFailed) > 0
}
