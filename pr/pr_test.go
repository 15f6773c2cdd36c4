package pr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/prseed/pr"
)

func TestDetectProvider(t *testing.T) {
	t.Parallel()

	tests := []struct {
		url  string
		want string
	}{
		{"https://github.com/owner/repo.git", "github"},
		{"git@github.com:owner/repo.git", "github"},
		{"https://gitlab.com/group/project.git", "gitlab"},
		{"https://gitlab.example.com/group/project.git", "gitlab"},
	}

	for _, tt := range tests {
		got, err := pr.DetectProvider(tt.url)
		require.NoError(t, err, tt.url)
		assert.Equal(t, tt.want, got, tt.url)
	}
}

func TestDetectProvider_unknown(t *testing.T) {
	t.Parallel()

	_, err := pr.DetectProvider("https://example.com/owner/repo.git")
	assert.ErrorIs(t, err, pr.ErrUnknownProvider)
}

func TestParseRepoFromURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		url       string
		owner     string
		repo      string
		expectErr bool
	}{
		{"https://github.com/owner/repo.git", "owner", "repo", false},
		{"https://github.com/owner/repo", "owner", "repo", false},
		{"git@github.com:owner/repo.git", "owner", "repo", false},
		{"not-a-url", "", "", true},
	}

	for _, tt := range tests {
		owner, repo, err := pr.ParseRepoFromURL(tt.url)
		if tt.expectErr {
			assert.Error(t, err, tt.url)
			continue
		}
		require.NoError(t, err, tt.url)
		assert.Equal(t, tt.owner, owner)
		assert.Equal(t, tt.repo, repo)
	}
}
