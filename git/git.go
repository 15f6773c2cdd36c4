package git

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/randalmurphal/prseed/runner"
)

// Context manages git operations for a repository. All commands go
// through the injected runner so tests can script outcomes and count
// invocations.
type Context struct {
	repoPath string        // Path to the repository
	runner   runner.Runner // Command runner (defaults to ExecRunner)
}

// Option configures Context.
type Option func(*Context)

// WithRunner sets a custom command runner for git operations.
// This is primarily used for testing to inject mock command execution.
func WithRunner(r runner.Runner) Option {
	return func(g *Context) {
		g.runner = r
	}
}

// NewContext creates a new git context for the repository.
// It validates that the path is a git repository and applies any options.
func NewContext(ctx context.Context, repoPath string, opts ...Option) (*Context, error) {
	absPath, err := filepath.Abs(repoPath)
	if err != nil {
		return nil, fmt.Errorf("resolve path: %w", err)
	}

	g := &Context{
		repoPath: absPath,
		runner:   runner.NewExecRunner(),
	}

	for _, opt := range opts {
		opt(g)
	}

	if res := g.runner.Run(ctx, absPath, "git", "rev-parse", "--git-dir"); !res.Ok() {
		return nil, ErrNotGitRepo
	}

	return g, nil
}

// RepoPath returns the path to the repository.
func (g *Context) RepoPath() string {
	return g.repoPath
}

// CurrentBranch returns the current branch name.
func (g *Context) CurrentBranch(ctx context.Context) (string, error) {
	branch, err := g.runGit(ctx, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", &Error{Op: "get current branch", Err: err}
	}
	return branch, nil
}

// Checkout switches to the specified ref (branch, tag, or commit).
func (g *Context) Checkout(ctx context.Context, ref string) error {
	if _, err := g.runGit(ctx, "checkout", ref); err != nil {
		return &Error{Op: "checkout " + ref, Err: err}
	}
	return nil
}

// CheckoutNew creates a new branch at HEAD and switches to it.
func (g *Context) CheckoutNew(ctx context.Context, name string) error {
	if _, err := g.runGit(ctx, "checkout", "-b", name); err != nil {
		if strings.Contains(err.Error(), "already exists") {
			return ErrBranchExists
		}
		return &Error{Op: "create branch " + name, Err: err}
	}
	return nil
}

// DeleteBranch deletes a branch. If force is true, uses -D instead of -d.
// Deleting a branch that does not exist returns ErrBranchNotFound.
func (g *Context) DeleteBranch(ctx context.Context, name string, force bool) error {
	flag := "-d"
	if force {
		flag = "-D"
	}
	if _, err := g.runGit(ctx, "branch", flag, name); err != nil {
		if strings.Contains(err.Error(), "not found") {
			return ErrBranchNotFound
		}
		return &Error{Op: "delete branch " + name, Err: err}
	}
	return nil
}

// BranchExists checks if a branch exists locally.
func (g *Context) BranchExists(ctx context.Context, name string) bool {
	_, err := g.runGit(ctx, "rev-parse", "--verify", name)
	return err == nil
}

// CommitEmpty creates an empty commit with the given message. It is
// used to give a fresh branch a distinguishable head for review
// tooling.
func (g *Context) CommitEmpty(ctx context.Context, message string) error {
	output, err := g.runGit(ctx, "commit", "--allow-empty", "-m", message)
	if err != nil {
		return &Error{Op: "empty commit", Output: output, Err: err}
	}
	return nil
}

// Push pushes the branch to the remote. If setUpstream is true, uses
// -u to set upstream tracking. Failures match ErrPushFailed under
// errors.Is; the captured output rides along in the wrapped error.
func (g *Context) Push(ctx context.Context, remote, branch string, setUpstream bool) error {
	args := []string{"push"}
	if setUpstream {
		args = append(args, "-u")
	}
	args = append(args, remote, branch)

	if _, err := g.runGit(ctx, args...); err != nil {
		return &Error{Op: "push " + branch, Err: fmt.Errorf("%w: %s", ErrPushFailed, err)}
	}
	return nil
}

// IsBranchPushed checks if the branch exists on the remote.
func (g *Context) IsBranchPushed(ctx context.Context, remote, branch string) bool {
	_, err := g.runGit(ctx, "rev-parse", "--verify", remote+"/"+branch)
	return err == nil
}

// HeadCommit returns the current HEAD commit SHA.
func (g *Context) HeadCommit(ctx context.Context) (string, error) {
	sha, err := g.runGit(ctx, "rev-parse", "HEAD")
	if err != nil {
		return "", &Error{Op: "get HEAD commit", Err: err}
	}
	return sha, nil
}

// GetRemoteURL returns the URL of the specified remote.
func (g *Context) GetRemoteURL(ctx context.Context, remote string) (string, error) {
	url, err := g.runGit(ctx, "remote", "get-url", remote)
	if err != nil {
		return "", &Error{Op: "get remote URL", Err: err}
	}
	return url, nil
}

// runGit executes a git command through the runner and returns stdout.
// A nonzero exit becomes an error carrying the captured stderr.
func (g *Context) runGit(ctx context.Context, args ...string) (string, error) {
	argv := append([]string{"git"}, args...)
	res := g.runner.Run(ctx, g.repoPath, argv...)
	if !res.Ok() {
		msg := res.Stderr
		if msg == "" {
			msg = res.Stdout
		}
		return msg, fmt.Errorf("%s", msg)
	}
	return res.Stdout, nil
}
