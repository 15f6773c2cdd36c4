package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/randalmurphal/prseed/git"
	"github.com/randalmurphal/prseed/notify"
	"github.com/randalmurphal/prseed/plan"
	"github.com/randalmurphal/prseed/pr"
)

// Config configures a provisioning run.
type Config struct {
	BaseBranch string        // Branch all new branches start from (default "main")
	Remote     string        // Push remote (default "origin")
	Interval   time.Duration // Pause between items, for external rate limits
	DryRun     bool          // Plan only: no external commands, no side effects
	Out        io.Writer     // Progress report destination (default os.Stdout)
	Notifier   notify.Notifier
}

// Pipeline drives one work item at a time through branch creation,
// push, and draft request creation. It is the only place with
// sequencing logic; the runner and providers stay policy-free.
type Pipeline struct {
	git      *git.Context
	provider pr.Provider
	cfg      Config
	runID    string
}

// New creates a pipeline. In dry-run mode both g and provider may be
// nil; a live run with a nil provider fails with pr.ErrNoProvider
// before any command is issued.
func New(g *git.Context, provider pr.Provider, cfg Config) *Pipeline {
	if cfg.BaseBranch == "" {
		cfg.BaseBranch = "main"
	}
	if cfg.Remote == "" {
		cfg.Remote = "origin"
	}
	if cfg.Out == nil {
		cfg.Out = os.Stdout
	}
	return &Pipeline{
		git:      g,
		provider: provider,
		cfg:      cfg,
		runID:    gonanoid.Must(8),
	}
}

// RunID returns the short identifier attached to this run's log lines
// and notifications.
func (p *Pipeline) RunID() string {
	return p.runID
}

// requestAttempt is one entry in the ordered list of request-creation
// attempts. Later entries are degraded retries for when the full
// request is rejected.
type requestAttempt struct {
	label   string                      // Report label, e.g. "PR (no labels)"
	status  Status                      // Status on success
	applies func(pr.Options) bool       // Skip the attempt when false
	degrade func(pr.Options) pr.Options // Transform applied to the options
}

// requestAttempts is walked in order until one succeeds. New fallback
// strategies are new entries here, not new conditional branches.
var requestAttempts = []requestAttempt{
	{
		label:  "PR",
		status: StatusPRCreated,
	},
	{
		// Labels may not exist in the target system yet; retry the
		// identical request without them.
		label:   "PR (no labels)",
		status:  StatusPRCreatedNoLabels,
		applies: func(o pr.Options) bool { return len(o.Labels) > 0 },
		degrade: pr.Options.WithoutLabels,
	},
}

// Run provisions every assignment in order. Fatal failures (base
// switch, branch creation) stop the run immediately; push and request
// failures are absorbed per item. The working branch is restored to
// base before Run returns, whatever the outcome mix.
func (p *Pipeline) Run(ctx context.Context, assignments []plan.Assignment) (report *Report, err error) {
	report = &Report{RunID: p.runID, BaseBranch: p.cfg.BaseBranch}
	total := len(assignments)

	if p.cfg.DryRun {
		fmt.Fprintf(p.cfg.Out, "[DRY RUN] Creating %d branches + draft PRs...\n\n", total)
		for _, a := range assignments {
			p.printItemHeader(a, total)
			fmt.Fprintln(p.cfg.Out)
			report.Items = append(report.Items, ItemResult{Assignment: a, Status: StatusPlanned})
		}
		return report, nil
	}

	if p.provider == nil {
		return report, pr.ErrNoProvider
	}

	slog.Info("provisioning run starting",
		"run_id", p.runID, "items", total, "base", p.cfg.BaseBranch)
	fmt.Fprintf(p.cfg.Out, "Creating %d branches + draft PRs...\n\n", total)

	// Acquire the working branch: nothing happens off a known base.
	if cerr := p.git.Checkout(ctx, p.cfg.BaseBranch); cerr != nil {
		return report, fmt.Errorf("switch to base branch %q: %w", p.cfg.BaseBranch, cerr)
	}

	// Release it on every exit path, fatal aborts included. The
	// discipline is one branch checked out at a time, returned to
	// base when the run ends.
	defer func() {
		if cerr := p.git.Checkout(context.WithoutCancel(ctx), p.cfg.BaseBranch); cerr != nil {
			slog.Error("failed to restore base branch",
				"run_id", p.runID, "base", p.cfg.BaseBranch, "error", cerr)
		} else {
			report.BaseRestored = true
			fmt.Fprintf(p.cfg.Out, "Done! Returned to %s branch.\n", p.cfg.BaseBranch)
		}
		p.notifyDone(ctx, report, err)
	}()

	for i, a := range assignments {
		if ctx.Err() != nil {
			return report, ctx.Err()
		}

		item, fatal := p.provisionItem(ctx, a, total)
		if fatal != nil {
			return report, fatal
		}
		report.Items = append(report.Items, item)

		if i < total-1 {
			p.pause(ctx)
		}
	}

	return report, nil
}

// provisionItem runs one assignment end to end. A returned error is
// fatal for the whole run; recoverable outcomes land in the
// ItemResult status instead.
func (p *Pipeline) provisionItem(ctx context.Context, a plan.Assignment, total int) (ItemResult, error) {
	p.printItemHeader(a, total)

	// Known base first. Without it the branch would fork from
	// whatever the previous item left checked out.
	if err := p.git.Checkout(ctx, p.cfg.BaseBranch); err != nil {
		return ItemResult{}, fmt.Errorf("switch to base branch %q: %w", p.cfg.BaseBranch, err)
	}

	// Idempotency on re-run: drop any leftover local branch. This is
	// expected to fail harmlessly when the branch does not exist.
	if err := p.git.DeleteBranch(ctx, a.Branch, true); err != nil {
		slog.Debug("branch delete skipped", "run_id", p.runID, "branch", a.Branch)
	}

	// Branch creation failure aborts the whole run, unlike everything
	// after it. Asymmetric on purpose: a branch that cannot even be
	// created points at a broken working copy, not a flaky remote.
	if err := p.git.CheckoutNew(ctx, a.Branch); err != nil {
		return ItemResult{}, fmt.Errorf("create branch %q: %w", a.Branch, err)
	}

	// Empty commit so review tooling sees a distinguishable head.
	msg := git.InitBranchMessage(a.ItemID, a.Item.Title)
	if err := p.git.CommitEmpty(ctx, msg); err != nil {
		slog.Warn("empty commit failed",
			"run_id", p.runID, "branch", a.Branch, "error", err)
	}

	if err := p.git.Push(ctx, p.cfg.Remote, a.Branch, true); err != nil {
		fmt.Fprintf(p.cfg.Out, "  SKIP PR (push failed)\n\n")
		return ItemResult{Assignment: a, Status: StatusPushFailed, Err: err}, nil
	}

	res := p.openRequest(ctx, a)
	fmt.Fprintln(p.cfg.Out)
	return res, nil
}

// openRequest walks the ordered attempt list until one succeeds.
func (p *Pipeline) openRequest(ctx context.Context, a plan.Assignment) ItemResult {
	opts := pr.Options{
		Title:  a.Item.Title,
		Body:   pr.BodyForItem(a.ItemID, a.Item.Body),
		Base:   p.cfg.BaseBranch,
		Head:   a.Branch,
		Labels: a.Item.Labels,
		Draft:  true,
	}

	var lastErr error
	for _, attempt := range requestAttempts {
		if attempt.applies != nil && !attempt.applies(opts) {
			continue
		}

		o := opts
		if attempt.degrade != nil {
			o = attempt.degrade(o)
		}

		pull, err := p.provider.CreatePR(ctx, o)
		if err != nil {
			lastErr = err
			continue
		}

		fmt.Fprintf(p.cfg.Out, "  ✓ %s: %s\n", attempt.label, pull.URL)
		return ItemResult{Assignment: a, Status: attempt.status, PR: pull}
	}

	fmt.Fprintf(p.cfg.Out, "  ✗ PR failed: %v\n", lastErr)
	return ItemResult{Assignment: a, Status: StatusPRFailed, Err: lastErr}
}

func (p *Pipeline) printItemHeader(a plan.Assignment, total int) {
	fmt.Fprintf(p.cfg.Out, "[%d/%d] #%d %s\n", a.Index+1, total, a.ItemID, a.Item.Title)
	fmt.Fprintf(p.cfg.Out, "  Branch: %s\n", a.Branch)
}

// pause waits the configured interval, or until the context ends.
func (p *Pipeline) pause(ctx context.Context) {
	if p.cfg.Interval <= 0 {
		return
	}
	t := time.NewTimer(p.cfg.Interval)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

// notifyDone emits the run summary event.
func (p *Pipeline) notifyDone(ctx context.Context, report *Report, runErr error) {
	if p.cfg.Notifier == nil {
		return
	}

	event := notify.Event{
		Type:      notify.EventRunCompleted,
		RunID:     p.runID,
		Severity:  notify.SeverityInfo,
		Timestamp: time.Now(),
		Message: fmt.Sprintf("provisioned %d of %d items",
			report.Count(StatusPRCreated)+report.Count(StatusPRCreatedNoLabels),
			len(report.Items)),
		Metadata: map[string]any{
			"pr_created":           report.Count(StatusPRCreated),
			"pr_created_no_labels": report.Count(StatusPRCreatedNoLabels),
			"pr_failed":            report.Count(StatusPRFailed),
			"push_failed":          report.Count(StatusPushFailed),
			"base_restored":        report.BaseRestored,
		},
	}

	switch {
	case runErr != nil:
		event.Type = notify.EventRunFailed
		event.Severity = notify.SeverityError
		event.Message = fmt.Sprintf("run aborted: %v", runErr)
	case report.Failed():
		event.Severity = notify.SeverityWarning
	}

	if err := p.cfg.Notifier.Notify(context.WithoutCancel(ctx), event); err != nil {
		slog.Warn("run notification failed", "run_id", p.runID, "error", err)
	}
}
