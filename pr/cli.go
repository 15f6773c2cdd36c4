package pr

import (
	"context"
	"strings"

	"github.com/randalmurphal/prseed/runner"
)

// CLIProvider creates pull requests by invoking the gh binary through
// a runner.Runner. It assumes gh is installed and already
// authenticated; prseed never provisions credentials.
type CLIProvider struct {
	runner runner.Runner
	dir    string // Working directory for gh (the repository path)
	bin    string // gh binary name or path
}

// NewCLIProvider creates a gh-backed provider operating in dir.
func NewCLIProvider(r runner.Runner, dir string) *CLIProvider {
	return &CLIProvider{
		runner: r,
		dir:    dir,
		bin:    "gh",
	}
}

// CreatePR implements Provider. Exactly one gh invocation per call;
// the fallback policy (retry without labels) lives in the pipeline,
// not here.
func (p *CLIProvider) CreatePR(ctx context.Context, opts Options) (*PullRequest, error) {
	base := opts.Base
	if base == "" {
		base = "main"
	}

	argv := []string{
		p.bin, "pr", "create",
		"--base", base,
		"--head", opts.Head,
		"--title", opts.Title,
		"--body", opts.Body,
	}
	if opts.Draft {
		argv = append(argv, "--draft")
	}
	for _, label := range opts.Labels {
		argv = append(argv, "--label", label)
	}

	res := p.runner.Run(ctx, p.dir, argv...)
	if !res.Ok() {
		out := res.Stderr
		if out == "" {
			out = res.Stdout
		}
		if strings.Contains(out, "already exists") {
			return nil, ErrExists
		}
		return nil, &CreateError{Provider: "cli", Output: out}
	}

	// gh prints the new PR URL on stdout.
	return &PullRequest{
		URL:    strings.TrimSpace(res.Stdout),
		Title:  opts.Title,
		Draft:  opts.Draft,
		Head:   opts.Head,
		Base:   base,
		Labels: opts.Labels,
	}, nil
}
