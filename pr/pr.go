package pr

import (
	"context"
	"fmt"
	"strings"
)

// Provider opens draft review requests on a hosting platform.
// Implementations exist for the gh CLI, GitHub, and GitLab.
type Provider interface {
	// CreatePR creates a new pull request.
	CreatePR(ctx context.Context, opts Options) (*PullRequest, error)
}

// Options configures pull request creation.
type Options struct {
	Title  string   // PR title (required)
	Body   string   // PR description (markdown)
	Base   string   // Target branch (default: "main")
	Head   string   // Source branch
	Labels []string // Labels to apply
	Draft  bool     // Create as draft
}

// WithoutLabels returns a copy of the options with labels stripped.
// The pipeline uses it as the degraded retry when label attachment is
// what made creation fail.
func (o Options) WithoutLabels() Options {
	o.Labels = nil
	return o
}

// PullRequest represents a created pull request.
type PullRequest struct {
	Number int      // PR number (0 when the backend only reports a URL)
	URL    string   // Web URL
	Title  string   // PR title
	Draft  bool     // Whether it's a draft
	Head   string   // Source branch
	Base   string   // Target branch
	Labels []string // Applied labels
}

// BodyForItem constructs a review-request body linking back to the
// tracker entry. The leading "Closes #<id>" line makes the hosting
// platform close the item when the request merges.
func BodyForItem(itemID int, itemBody string) string {
	return fmt.Sprintf("Closes #%d\n\n---\n\n%s", itemID, itemBody)
}

// DetectProvider attempts to detect the PR provider from a remote URL.
func DetectProvider(remoteURL string) (string, error) {
	remoteURL = strings.ToLower(remoteURL)

	if strings.Contains(remoteURL, "github.com") {
		return "github", nil
	}
	if strings.Contains(remoteURL, "gitlab.com") || strings.Contains(remoteURL, "gitlab") {
		return "gitlab", nil
	}

	return "", ErrUnknownProvider
}

// ParseRepoFromURL extracts owner and repo from a git remote URL.
func ParseRepoFromURL(remoteURL string) (owner, repo string, err error) {
	// Handle SSH URLs: git@github.com:owner/repo.git
	if strings.HasPrefix(remoteURL, "git@") {
		parts := strings.Split(remoteURL, ":")
		if len(parts) != 2 {
			return "", "", fmt.Errorf("invalid SSH URL format")
		}
		path := strings.TrimSuffix(parts[1], ".git")
		pathParts := strings.Split(path, "/")
		if len(pathParts) != 2 {
			return "", "", fmt.Errorf("invalid repository path")
		}
		return pathParts[0], pathParts[1], nil
	}

	// Handle HTTPS URLs: https://github.com/owner/repo.git
	remoteURL = strings.TrimPrefix(remoteURL, "https://")
	remoteURL = strings.TrimPrefix(remoteURL, "http://")
	remoteURL = strings.TrimSuffix(remoteURL, ".git")

	parts := strings.Split(remoteURL, "/")
	if len(parts) < 3 {
		return "", "", fmt.Errorf("invalid URL format")
	}

	// Last two parts are owner/repo
	return parts[len(parts)-2], parts[len(parts)-1], nil
}
