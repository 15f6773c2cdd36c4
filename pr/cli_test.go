package pr_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/prseed/pr"
	"github.com/randalmurphal/prseed/runner"
)

func TestCLIProvider_createsDraftWithLabels(t *testing.T) {
	t.Parallel()

	m := runner.NewSequentialMockRunner()
	m.AddSuccess("https://github.com/o/r/pull/7")

	p := pr.NewCLIProvider(m, "/repo")
	pull, err := p.CreatePR(context.Background(), pr.Options{
		Title:  "Use task store",
		Body:   "Closes #121\n\n---\n\nBody text",
		Base:   "main",
		Head:   "feature/phase0-1-use-task-store",
		Labels: []string{"phase-0", "ui"},
		Draft:  true,
	})
	require.NoError(t, err)

	assert.Equal(t, "https://github.com/o/r/pull/7", pull.URL)
	assert.True(t, pull.Draft)

	require.Equal(t, 1, m.CallCount())
	argv := m.Calls()[0]
	assert.Equal(t, []string{
		"gh", "pr", "create",
		"--base", "main",
		"--head", "feature/phase0-1-use-task-store",
		"--title", "Use task store",
		"--body", "Closes #121\n\n---\n\nBody text",
		"--draft",
		"--label", "phase-0",
		"--label", "ui",
	}, argv)
}

func TestCLIProvider_noLabelsNoLabelFlags(t *testing.T) {
	t.Parallel()

	m := runner.NewSequentialMockRunner()
	m.AddSuccess("https://github.com/o/r/pull/8")

	p := pr.NewCLIProvider(m, "/repo")
	_, err := p.CreatePR(context.Background(), pr.Options{
		Title: "No labels",
		Head:  "feature/x",
		Draft: true,
	})
	require.NoError(t, err)

	for _, arg := range m.Calls()[0] {
		assert.NotEqual(t, "--label", arg)
	}
}

func TestCLIProvider_failureCarriesStderr(t *testing.T) {
	t.Parallel()

	m := runner.NewSequentialMockRunner()
	m.AddFailure("could not add label: 'phase-0' not found")

	p := pr.NewCLIProvider(m, "/repo")
	_, err := p.CreatePR(context.Background(), pr.Options{
		Title:  "Labeled",
		Head:   "feature/x",
		Labels: []string{"phase-0"},
	})

	var createErr *pr.CreateError
	require.ErrorAs(t, err, &createErr)
	assert.Contains(t, createErr.Output, "phase-0")
}

func TestCLIProvider_existingPR(t *testing.T) {
	t.Parallel()

	m := runner.NewSequentialMockRunner()
	m.AddFailure("a pull request for branch \"feature/x\" already exists")

	p := pr.NewCLIProvider(m, "/repo")
	_, err := p.CreatePR(context.Background(), pr.Options{Title: "Dup", Head: "feature/x"})

	assert.True(t, errors.Is(err, pr.ErrExists))
}

func TestOptions_WithoutLabels(t *testing.T) {
	t.Parallel()

	opts := pr.Options{Title: "T", Labels: []string{"a", "b"}}
	stripped := opts.WithoutLabels()

	assert.Empty(t, stripped.Labels)
	assert.Equal(t, "T", stripped.Title)
	// Original is untouched.
	assert.Equal(t, []string{"a", "b"}, opts.Labels)
}

func TestBodyForItem(t *testing.T) {
	t.Parallel()

	body := pr.BodyForItem(121, "Implement the store.")
	assert.Equal(t, "Closes #121\n\n---\n\nImplement the store.", body)
}
