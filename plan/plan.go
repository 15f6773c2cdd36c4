// Package plan pairs work items with target branch names and derived
// tracker ids before the pipeline touches anything external.
package plan

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/randalmurphal/prseed/catalog"
	"github.com/randalmurphal/prseed/git"
)

// ErrMappingMismatch indicates the catalog and the branch-name list
// have different lengths. It is fatal and raised before any external
// mutation.
var ErrMappingMismatch = errors.New("catalog and branch list lengths differ")

// Assignment pairs one work item with its target branch and tracker id.
type Assignment struct {
	Index  int              // Position in the catalog
	Branch string           // Target branch name
	ItemID int              // Tracker id embedded in commits and request bodies
	Item   catalog.WorkItem // The item itself
}

// Options configures assignment building.
type Options struct {
	// StartID is the id assigned to the first item when items carry no
	// explicit id; subsequent items count up from it. This assumes the
	// external tracker assigned ids in catalog order with no gaps —
	// put explicit ids in the catalog when that assumption does not
	// hold.
	StartID int

	// Namer generates branch names for items with neither an explicit
	// branch nor a positional list entry. Defaults to
	// git.DefaultBranchNamer.
	Namer *git.BranchNamer
}

// Build produces one Assignment per catalog item. When a positional
// branch list is supplied its length must equal the catalog length;
// violation returns ErrMappingMismatch before anything external
// happens. Branch resolution order per item: explicit item.Branch,
// positional list entry, generated name.
func Build(items []catalog.WorkItem, branches []string, opts Options) ([]Assignment, error) {
	if len(branches) > 0 && len(branches) != len(items) {
		return nil, fmt.Errorf("%w: %d items vs %d branches",
			ErrMappingMismatch, len(items), len(branches))
	}

	namer := opts.Namer
	if namer == nil {
		namer = git.DefaultBranchNamer()
	}

	assignments := make([]Assignment, 0, len(items))
	for i, item := range items {
		id := opts.StartID + i
		if item.ID != 0 {
			id = item.ID
		}

		branch := item.Branch
		if branch == "" && len(branches) > 0 {
			branch = branches[i]
		}
		if branch == "" {
			branch = namer.ForItem(id, item.Title)
		}

		assignments = append(assignments, Assignment{
			Index:  i,
			Branch: branch,
			ItemID: id,
			Item:   item,
		})
	}

	return assignments, nil
}

// LoadBranches reads an ordered branch-name list from path. A
// .yaml/.yml file is parsed as a YAML list of strings; anything else
// is treated as plain text, one branch per line, with blank lines and
// #-comments skipped.
func LoadBranches(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load branch list %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var branches []string
		if err := yaml.Unmarshal(data, &branches); err != nil {
			return nil, fmt.Errorf("load branch list %s: %w", path, err)
		}
		return branches, nil
	default:
		var branches []string
		for _, line := range strings.Split(string(data), "\n") {
			line = strings.TrimSpace(line)
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			branches = append(branches, line)
		}
		return branches, nil
	}
}
