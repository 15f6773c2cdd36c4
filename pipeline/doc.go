// Package pipeline provisions one branch and draft review request per
// work item, in catalog order, one item at a time.
//
// The per-item sequence is: switch to base, delete any leftover
// branch, create the branch, seed it with an empty commit, push with
// upstream tracking, open a draft request. Base-switch and
// branch-creation failures abort the run; push and request failures
// are absorbed per item so the remaining items still get attempted.
// The working branch is restored to base when the run ends, whatever
// happened in between.
package pipeline
