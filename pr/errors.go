package pr

import "errors"

// PR provider errors
var (
	// ErrNoProvider indicates no PR provider is configured.
	ErrNoProvider = errors.New("no PR provider configured")

	// ErrUnknownProvider indicates the git remote uses an unknown provider.
	ErrUnknownProvider = errors.New("unknown git provider")

	// ErrExists indicates a PR already exists for the branch.
	ErrExists = errors.New("pull request already exists for this branch")

	// ErrNoChanges indicates there are no changes between branches.
	ErrNoChanges = errors.New("no changes between branches")
)

// CreateError carries the captured output of a failed request
// creation so the pipeline can report it per item.
type CreateError struct {
	Provider string // "cli", "github", "gitlab"
	Output   string // Captured error output
	Err      error  // Underlying error, if any
}

func (e *CreateError) Error() string {
	if e.Output != "" {
		return "create pr (" + e.Provider + "): " + e.Output
	}
	return "create pr (" + e.Provider + "): " + e.Err.Error()
}

func (e *CreateError) Unwrap() error {
	return e.Err
}
