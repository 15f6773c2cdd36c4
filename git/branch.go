package git

import (
	"fmt"
	"regexp"
	"strings"
)

// BranchNamer generates branch names for work items that carry no
// explicit branch assignment.
type BranchNamer struct {
	TypePrefix   string // Branch type prefix (e.g., "feature", "bugfix")
	IncludeTitle bool   // Whether to include a title slug in the name
	MaxLength    int    // Maximum branch name length
}

// DefaultBranchNamer returns a namer with default settings.
func DefaultBranchNamer() *BranchNamer {
	return &BranchNamer{
		TypePrefix:   "feature",
		IncludeTitle: true,
		MaxLength:    100,
	}
}

// ForItem generates a branch name from a work item id and title.
// Example: 121, "Use Task Store" -> "feature/item-121-use-task-store"
func (n *BranchNamer) ForItem(itemID int, title string) string {
	branch := fmt.Sprintf("%s/item-%d", n.TypePrefix, itemID)

	if n.IncludeTitle && title != "" {
		slug := Slugify(title)
		if len(slug) > 50 {
			slug = strings.TrimRight(slug[:50], "-")
		}
		branch += "-" + slug
	}

	if n.MaxLength > 0 && len(branch) > n.MaxLength {
		branch = branch[:n.MaxLength]
	}

	return CleanBranch(branch)
}

// Slugify converts a string to a URL-safe slug.
func Slugify(s string) string {
	s = strings.ToLower(s)

	// Replace spaces and underscores with hyphens
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "_", "-")

	// Remove non-alphanumeric except hyphens
	s = regexp.MustCompile(`[^a-z0-9-]`).ReplaceAllString(s, "")

	// Remove consecutive hyphens
	s = regexp.MustCompile(`-+`).ReplaceAllString(s, "-")

	// Trim hyphens from ends
	s = strings.Trim(s, "-")

	return s
}

// CleanBranch ensures a branch name is valid.
func CleanBranch(s string) string {
	// Remove consecutive hyphens
	s = regexp.MustCompile(`-+`).ReplaceAllString(s, "-")

	// Remove trailing hyphens (but not before /)
	parts := strings.Split(s, "/")
	for i, part := range parts {
		parts[i] = strings.TrimRight(part, "-")
	}
	s = strings.Join(parts, "/")

	return s
}
