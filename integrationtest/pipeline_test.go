// Package integrationtest runs the provisioning pipeline against real
// git repositories. These tests shell out to git; run with -short to
// skip them.
package integrationtest

import (
	"bytes"
	"context"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/prseed/catalog"
	"github.com/randalmurphal/prseed/git"
	"github.com/randalmurphal/prseed/pipeline"
	"github.com/randalmurphal/prseed/plan"
	"github.com/randalmurphal/prseed/pr"
	"github.com/randalmurphal/prseed/testutil"
)

func requireGit(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
}

func buildAssignments(t *testing.T) []plan.Assignment {
	t.Helper()

	items := []catalog.WorkItem{
		{Title: "Use task store", Body: "Swap the map for the store.", Labels: []string{"backend"}},
		{Title: "Add retry", Body: "Retry transient failures."},
	}
	assignments, err := plan.Build(items, nil, plan.Options{StartID: 121})
	require.NoError(t, err)
	return assignments
}

func TestProvisionEndToEnd(t *testing.T) {
	requireGit(t)

	dir, remote := testutil.SetupRepoWithRemote(t)
	ctx := testutil.TestContext(t)

	g, err := git.NewContext(ctx, dir)
	require.NoError(t, err)

	provider := &pr.MockProvider{}
	out := &bytes.Buffer{}
	p := pipeline.New(g, provider, pipeline.Config{Out: out})

	report, err := p.Run(ctx, buildAssignments(t))
	require.NoError(t, err)

	assert.Equal(t, 2, report.Count(pipeline.StatusPRCreated))
	assert.True(t, report.BaseRestored)
	assert.Equal(t, "main", testutil.GetCurrentBranch(t, dir))

	branches := testutil.RemoteBranches(t, remote)
	assert.Contains(t, branches, "feature/item-121-use-task-store")
	assert.Contains(t, branches, "feature/item-122-add-retry")

	msg := testutil.LastCommitMessage(t, dir, "feature/item-121-use-task-store")
	assert.Equal(t, "chore: init branch for #121 - Use task store", msg)

	require.Len(t, provider.Created, 2)
	assert.True(t, provider.Created[0].Draft)
	assert.Equal(t, "main", provider.Created[0].Base)
	assert.Equal(t, "feature/item-121-use-task-store", provider.Created[0].Head)
}

func TestProvisionDryRunTouchesNothing(t *testing.T) {
	requireGit(t)

	dir, remote := testutil.SetupRepoWithRemote(t)
	ctx := testutil.TestContext(t)

	g, err := git.NewContext(ctx, dir)
	require.NoError(t, err)

	before := testutil.GetHeadSHA(t, dir)
	p := pipeline.New(g, nil, pipeline.Config{DryRun: true, Out: &bytes.Buffer{}})

	report, err := p.Run(ctx, buildAssignments(t))
	require.NoError(t, err)

	assert.Len(t, report.Items, 2)
	assert.Equal(t, before, testutil.GetHeadSHA(t, dir))
	assert.Equal(t, []string{"main"}, testutil.RemoteBranches(t, remote))
}

func TestProvisionPushFailureDoesNotStopRun(t *testing.T) {
	requireGit(t)

	// No remote configured, so every push fails; the run still visits
	// every item and ends back on main.
	dir := testutil.SetupTestRepo(t)
	ctx := context.Background()

	g, err := git.NewContext(ctx, dir)
	require.NoError(t, err)

	provider := &pr.MockProvider{}
	p := pipeline.New(g, provider, pipeline.Config{Out: &bytes.Buffer{}})

	report, err := p.Run(ctx, buildAssignments(t))
	require.NoError(t, err)

	assert.Equal(t, 2, report.Count(pipeline.StatusPushFailed))
	assert.Empty(t, provider.Created)
	assert.True(t, report.BaseRestored)
	assert.Equal(t, "main", testutil.GetCurrentBranch(t, dir))
}
