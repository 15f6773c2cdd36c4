package git

import (
	"fmt"
	"strings"
)

// CommitType represents the type of change in a commit.
type CommitType string

const (
	CommitTypeFeat  CommitType = "feat"
	CommitTypeFix   CommitType = "fix"
	CommitTypeChore CommitType = "chore"
)

// CommitMessage is a minimal conventional-commit message.
type CommitMessage struct {
	Type    CommitType // Required: type of change
	Subject string     // Required: short description
}

// String formats the message as "type: subject".
func (c *CommitMessage) String() string {
	return string(c.Type) + ": " + c.Subject
}

// Validate checks if the commit message is valid.
func (c *CommitMessage) Validate() error {
	if c.Type == "" {
		return fmt.Errorf("commit type is required")
	}
	if strings.TrimSpace(c.Subject) == "" {
		return fmt.Errorf("commit subject is required")
	}
	return nil
}

// InitBranchMessage builds the commit message for the empty commit
// that seeds a freshly provisioned branch. The embedded item id links
// the branch head back to its tracker entry.
// Example: 121, "Use task store" -> "chore: init branch for #121 - Use task store"
func InitBranchMessage(itemID int, title string) string {
	msg := &CommitMessage{
		Type:    CommitTypeChore,
		Subject: fmt.Sprintf("init branch for #%d - %s", itemID, title),
	}
	return msg.String()
}
