// Package pr opens draft review requests for provisioned branches.
//
// Core types:
//   - Provider: interface for creating pull requests
//   - Options: configuration for one request
//   - PullRequest: the created request with URL and number
//
// Implementations:
//   - CLIProvider: drives the gh binary through runner.Runner; this is
//     the default path and needs no tokens beyond gh's own auth
//   - GitHubProvider: GitHub API via go-github
//   - GitLabProvider: GitLab API via go-gitlab
package pr
