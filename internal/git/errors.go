package git

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotRepository indicates the resolved directory has no .git metadata.
	ErrNotRepository = errors.New("not a git repository")

	// ErrAlreadyRepository indicates init was asked to run inside an existing repository.
	ErrAlreadyRepository = errors.New("already a git repository")

	// ErrInvalidBranchName indicates a branch name git would parse as an option.
	ErrInvalidBranchName = errors.New("branch name must not start with '-'")
)

func checkBranchName(name string) error {
	if strings.HasPrefix(name, "-") {
		return fmt.Errorf("%w: %s", ErrInvalidBranchName, name)
	}
	return nil
}

// DirectoryError reports a working directory that failed validation.
// No process is spawned when it is returned.
type DirectoryError struct {
	Op  string // git subcommand that was refused
	Dir string
	Err error
}

func (e *DirectoryError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Dir, e.Err)
}

func (e *DirectoryError) Unwrap() error {
	return e.Err
}
