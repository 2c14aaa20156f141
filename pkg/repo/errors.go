package repo

import (
	"errors"
	"fmt"
)

var (
	// ErrNotInitialized is returned when no .dit directory is found.
	ErrNotInitialized = errors.New("dit repository is not initialized")

	// ErrAlreadyInitialized is returned by Init on an existing repository
	// unless WithReinit is set.
	ErrAlreadyInitialized = errors.New("dit repository already exists")

	// ErrUnexpected marks a broken repository invariant: a referenced object
	// that is missing, a malformed object or pointer file, an empty branch
	// log where a commit is required.
	ErrUnexpected = errors.New("unexpected repository state")

	ErrNothingStaged    = errors.New("nothing staged")
	ErrNothingCommitted = errors.New("nothing committed")
	ErrUnknownBranch    = errors.New("unknown branch")
	ErrBranchExists     = errors.New("branch already exists")
	ErrUnknownCommit    = errors.New("commit not found on current branch")
)

// unexpectedf wraps ErrUnexpected with context. A %w verb in format keeps
// the cause in the chain too.
func unexpectedf(format string, args ...any) error {
	err := fmt.Errorf(format, args...)
	return fmt.Errorf("%w: %w", ErrUnexpected, err)
}
