// Command prseed creates one branch and draft pull request per work
// item in a catalog file. It reads the catalog, plans branch names,
// then provisions each item in order against the local repository and
// the configured review platform.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/randalmurphal/prseed/catalog"
	"github.com/randalmurphal/prseed/config"
	"github.com/randalmurphal/prseed/git"
	"github.com/randalmurphal/prseed/notify"
	"github.com/randalmurphal/prseed/pipeline"
	"github.com/randalmurphal/prseed/plan"
	"github.com/randalmurphal/prseed/pr"
	"github.com/randalmurphal/prseed/runner"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

// flagToKey maps flag names to their configuration keys. Flags are
// the highest-precedence configuration layer; only flags the user
// actually set are layered in.
var flagToKey = map[string]string{
	"base":              config.KeyBaseBranch,
	"remote":            config.KeyRemote,
	"start-id":          config.KeyStartID,
	"interval":          config.KeyInterval,
	"provider":          config.KeyProvider,
	"github-token":      config.KeyGitHubToken,
	"github-owner":      config.KeyGitHubOwner,
	"github-repo":       config.KeyGitHubRepo,
	"gitlab-token":      config.KeyGitLabToken,
	"gitlab-host":       config.KeyGitLabHost,
	"gitlab-project":    config.KeyGitLabProject,
	"webhook-url":       config.KeyWebhookURL,
	"slack-webhook-url": config.KeySlackWebhookURL,
}

func run(args []string) error {
	fs := flag.NewFlagSet("prseed", flag.ContinueOnError)

	catalogPath := fs.String("catalog", "", "Path to the work item catalog (JSON or YAML, required)")
	branchesPath := fs.String("branches", "", "Optional file of preassigned branch names, one per item")
	configPath := fs.String("config", "", "Config file path (default "+config.DefaultFileName+" if present)")
	repoPath := fs.String("repo", ".", "Path to the git repository to provision")
	initConfig := fs.Bool("init", false, "Write a default config file and exit")
	dryRun := fs.Bool("dry-run", false, "Print the plan without touching the repository")
	verbose := fs.Bool("v", false, "Enable debug logging")

	fs.String("base", "", "Base branch new branches start from")
	fs.String("remote", "", "Push remote")
	fs.String("start-id", "", "Work item ID assigned to the first catalog entry")
	fs.String("interval", "", "Pause between items, e.g. 1s")
	fs.String("provider", "", "Review platform: cli, github, or gitlab")
	fs.String("github-token", "", "GitHub access token")
	fs.String("github-owner", "", "GitHub repository owner")
	fs.String("github-repo", "", "GitHub repository name")
	fs.String("gitlab-token", "", "GitLab access token")
	fs.String("gitlab-host", "", "GitLab instance URL")
	fs.String("gitlab-project", "", "GitLab project (numeric ID or namespace/project)")
	fs.String("webhook-url", "", "Webhook URL for run notifications")
	fs.String("slack-webhook-url", "", "Slack incoming-webhook URL for run notifications")
	if err := fs.Parse(args); err != nil {
		return err
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if *initConfig {
		return config.WriteDefault(*configPath)
	}

	if *catalogPath == "" {
		return fmt.Errorf("-catalog is required")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	fs.Visit(func(f *flag.Flag) {
		if key, ok := flagToKey[f.Name]; ok {
			cfg.SetFlag(key, f.Value.String())
		}
	})

	items, err := catalog.Load(*catalogPath)
	if err != nil {
		return err
	}

	var branches []string
	if *branchesPath != "" {
		branches, err = plan.LoadBranches(*branchesPath)
		if err != nil {
			return err
		}
	}

	startID, err := cfg.Int(config.KeyStartID)
	if err != nil {
		return err
	}
	assignments, err := plan.Build(items, branches, plan.Options{StartID: startID})
	if err != nil {
		return err
	}

	interval, err := cfg.Duration(config.KeyInterval)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// A dry run reads only the catalog and branch list; it neither
	// validates nor touches the repository, so no git context is built.
	var g *git.Context
	var provider pr.Provider
	if !*dryRun {
		g, err = git.NewContext(ctx, *repoPath)
		if err != nil {
			return fmt.Errorf("open repository %s: %w", *repoPath, err)
		}
		provider, err = newProvider(ctx, cfg, g)
		if err != nil {
			return err
		}
	}

	p := pipeline.New(g, provider, pipeline.Config{
		BaseBranch: cfg.Get(config.KeyBaseBranch),
		Remote:     cfg.Get(config.KeyRemote),
		Interval:   interval,
		DryRun:     *dryRun,
		Notifier:   newNotifier(cfg),
	})

	report, err := p.Run(ctx, assignments)
	if err != nil {
		return err
	}
	if report.Failed() {
		failed := report.Count(pipeline.StatusPushFailed) + report.Count(pipeline.StatusPRFailed)
		return fmt.Errorf("%d of %d items failed", failed, len(report.Items))
	}

	return nil
}

// newProvider selects the review platform implementation. The cli
// provider shells out to gh and needs no credentials of its own; the
// API providers authenticate with tokens, resolving the repository
// from the remote URL when it is not configured.
func newProvider(ctx context.Context, cfg *config.Resolved, g *git.Context) (pr.Provider, error) {
	switch name := cfg.Get(config.KeyProvider); name {
	case "cli":
		return pr.NewCLIProvider(runner.NewExecRunner(), g.RepoPath()), nil

	case "github":
		token := cfg.Get(config.KeyGitHubToken)
		owner := cfg.Get(config.KeyGitHubOwner)
		repo := cfg.Get(config.KeyGitHubRepo)
		if owner != "" && repo != "" {
			return pr.NewGitHubProvider(token, owner, repo)
		}
		remoteURL, err := g.GetRemoteURL(ctx, cfg.Get(config.KeyRemote))
		if err != nil {
			return nil, err
		}
		return pr.NewGitHubProviderFromURL(token, remoteURL)

	case "gitlab":
		token := cfg.Get(config.KeyGitLabToken)
		host := cfg.Get(config.KeyGitLabHost)
		if project := cfg.Get(config.KeyGitLabProject); project != "" {
			return pr.NewGitLabProvider(token, host, project)
		}
		remoteURL, err := g.GetRemoteURL(ctx, cfg.Get(config.KeyRemote))
		if err != nil {
			return nil, err
		}
		return pr.NewGitLabProviderFromURL(token, remoteURL)

	default:
		return nil, fmt.Errorf("%w: %q", pr.ErrUnknownProvider, name)
	}
}

// newNotifier builds the run notifier: structured logs always, plus a
// generic webhook and a Slack webhook when they are configured.
func newNotifier(cfg *config.Resolved) notify.Notifier {
	notifiers := []notify.Notifier{notify.NewLogNotifier(slog.Default())}
	if url := cfg.Get(config.KeyWebhookURL); url != "" {
		notifiers = append(notifiers, notify.NewWebhookNotifier(url, nil))
	}
	if url := cfg.Get(config.KeySlackWebhookURL); url != "" {
		notifiers = append(notifiers, notify.NewSlackNotifier(url))
	}
	if len(notifiers) == 1 {
		return notifiers[0]
	}
	return notify.NewMultiNotifier(notifiers...)
}
