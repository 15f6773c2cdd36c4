package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func inTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
	return dir
}

func TestLoad_defaults(t *testing.T) {
	inTempDir(t)

	r, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "main", r.Get(KeyBaseBranch))
	assert.Equal(t, "origin", r.Get(KeyRemote))
	assert.Equal(t, "cli", r.Get(KeyProvider))
	assert.Equal(t, SourceDefault, r.Source(KeyBaseBranch))

	interval, err := r.Duration(KeyInterval)
	require.NoError(t, err)
	assert.Equal(t, time.Second, interval)
}

func TestLoad_fileOverridesDefaults(t *testing.T) {
	dir := inTempDir(t)
	path := filepath.Join(dir, "prseed.yaml")
	require.NoError(t, os.WriteFile(path, []byte("base_branch: develop\nstart_id: \"121\"\n"), 0o644))

	r, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "develop", r.Get(KeyBaseBranch))
	assert.Equal(t, SourceFile, r.Source(KeyBaseBranch))

	startID, err := r.Int(KeyStartID)
	require.NoError(t, err)
	assert.Equal(t, 121, startID)
}

func TestLoad_defaultFilePickedUpWhenPresent(t *testing.T) {
	inTempDir(t)
	require.NoError(t, os.WriteFile(DefaultFileName, []byte("remote: upstream\n"), 0o644))

	r, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "upstream", r.Get(KeyRemote))
}

func TestLoad_explicitMissingFileFails(t *testing.T) {
	dir := inTempDir(t)

	_, err := Load(filepath.Join(dir, "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_unknownKeyRejected(t *testing.T) {
	dir := inTempDir(t)
	path := filepath.Join(dir, "prseed.yaml")
	require.NoError(t, os.WriteFile(path, []byte("not_a_key: x\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown key")
}

func TestLoad_envOverridesFile(t *testing.T) {
	dir := inTempDir(t)
	path := filepath.Join(dir, "prseed.yaml")
	require.NoError(t, os.WriteFile(path, []byte("base_branch: develop\n"), 0o644))
	t.Setenv("PRSEED_BASE_BRANCH", "trunk")

	r, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "trunk", r.Get(KeyBaseBranch))
	assert.Equal(t, SourceEnv, r.Source(KeyBaseBranch))
}

func TestSetFlag_highestPrecedence(t *testing.T) {
	inTempDir(t)
	t.Setenv("PRSEED_REMOTE", "upstream")

	r, err := Load("")
	require.NoError(t, err)

	r.SetFlag(KeyRemote, "fork")
	assert.Equal(t, "fork", r.Get(KeyRemote))
	assert.Equal(t, SourceFlag, r.Source(KeyRemote))
}

func TestInt_malformed(t *testing.T) {
	inTempDir(t)
	t.Setenv("PRSEED_START_ID", "not-a-number")

	r, err := Load("")
	require.NoError(t, err)

	_, err = r.Int(KeyStartID)
	assert.Error(t, err)
}
