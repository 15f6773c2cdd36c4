// Package catalog loads the ordered collection of work items that the
// provisioning pipeline operates on.
package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// WorkItem is one tracked unit of work. Title and Body come from the
// catalog file; Labels defaults to empty. ID and Branch are optional:
// an explicit tracker id and an explicit branch name override the
// positional derivation in package plan. Items are immutable once
// loaded.
type WorkItem struct {
	Title  string   `json:"title" yaml:"title"`
	Body   string   `json:"body" yaml:"body"`
	Labels []string `json:"labels,omitempty" yaml:"labels,omitempty"`
	ID     int      `json:"id,omitempty" yaml:"id,omitempty"`
	Branch string   `json:"branch,omitempty" yaml:"branch,omitempty"`
}

// LoadError indicates the catalog file was missing, unreadable, or not
// well-formed. It is always fatal and raised before any external
// mutation.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load catalog %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Load reads an ordered sequence of work items from path. The format is
// selected by extension: .yaml/.yml is parsed as YAML, everything else
// as JSON. Labels may be empty and Body may be empty; a missing Title
// is treated as a malformed catalog.
func Load(path string) ([]WorkItem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	var items []WorkItem
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &items)
	default:
		err = json.Unmarshal(data, &items)
	}
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	for i, item := range items {
		if item.Title == "" {
			return nil, &LoadError{
				Path: path,
				Err:  fmt.Errorf("item %d: missing title", i),
			}
		}
	}

	return items, nil
}
