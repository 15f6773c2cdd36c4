package catalog_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/prseed/catalog"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_json(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "issues.json", `[
		{"title": "Use task store", "body": "Wire the store.", "labels": ["phase-0"]},
		{"title": "Shell view real data", "body": ""}
	]`)

	items, err := catalog.Load(path)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "Use task store", items[0].Title)
	assert.Equal(t, []string{"phase-0"}, items[0].Labels)
	assert.Empty(t, items[1].Labels)
	assert.Empty(t, items[1].Body)
}

func TestLoad_yaml(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "issues.yaml", `
- title: Pressure model
  body: Implement the pressure model.
  labels: [phase-1]
  id: 127
  branch: feature/phase1-4-pressure-model
`)

	items, err := catalog.Load(path)
	require.NoError(t, err)
	require.Len(t, items, 1)

	assert.Equal(t, 127, items[0].ID)
	assert.Equal(t, "feature/phase1-4-pressure-model", items[0].Branch)
}

func TestLoad_missing_file(t *testing.T) {
	t.Parallel()

	_, err := catalog.Load(filepath.Join(t.TempDir(), "nope.json"))

	var loadErr *catalog.LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoad_malformed_json(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "bad.json", `{"title": "not a list"`)

	_, err := catalog.Load(path)

	var loadErr *catalog.LoadError
	require.ErrorAs(t, err, &loadErr)
}

func TestLoad_missing_title(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "issues.json", `[{"body": "no title here"}]`)

	_, err := catalog.Load(path)

	var loadErr *catalog.LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Contains(t, err.Error(), "missing title")
}

func TestLoad_empty_catalog(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "issues.json", `[]`)

	items, err := catalog.Load(path)
	require.NoError(t, err)
	assert.Empty(t, items)
}
