package git

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/satococoa/envctl/internal/command"
)

// Exit codes git uses for the "nothing to report" outcomes below.
const (
	exitNotFound = 1   // show-ref with no match, config --get with unset key
	exitFatal    = 128 // symbolic-ref on a detached HEAD, @{u} without upstream
)

const dirPermissions = 0o755

// CloneOptions configures Clone.
type CloneOptions struct {
	Dest   string // optional target directory, resolved against the process's directory
	Branch string // optional branch to check out instead of the remote HEAD
}

// CurrentBranch returns the branch HEAD points to. ok is false when HEAD
// is detached.
func (f *Facade) CurrentBranch(ctx context.Context, dir string) (branch string, ok bool, err error) {
	return f.lookup(ctx, command.GitCurrentBranch(), dir, exitFatal)
}

// Init creates a repository in dir, creating dir when it does not exist.
// It refuses to run inside an existing repository.
func (f *Facade) Init(ctx context.Context, dir string) error {
	resolved := f.resolveDir(dir)
	if IsRepository(resolved) {
		return &DirectoryError{Op: "init", Dir: resolved, Err: ErrAlreadyRepository}
	}

	if err := os.MkdirAll(resolved, dirPermissions); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", resolved, err)
	}

	_, err := f.execute(ctx, command.GitInit(), resolved, MustSucceed)
	return err
}

// BranchExists reports whether the local branch name exists.
func (f *Facade) BranchExists(ctx context.Context, dir, name string) (bool, error) {
	_, ok, err := f.lookup(ctx, command.GitShowBranchRef(name), dir, exitNotFound)
	return ok, err
}

// Branch creates name, starting from parent when given, and switches to it.
func (f *Facade) Branch(ctx context.Context, dir, name, parent string) error {
	for _, n := range []string{name, parent} {
		if err := checkBranchName(n); err != nil {
			return err
		}
	}
	_, err := f.execute(ctx, command.GitCheckoutNewBranch(name, parent), dir, MustSucceed)
	return err
}

// CheckOut switches to the existing branch name.
func (f *Facade) CheckOut(ctx context.Context, dir, name string) error {
	if err := checkBranchName(name); err != nil {
		return err
	}
	_, err := f.execute(ctx, command.GitCheckout(name), dir, MustSucceed)
	return err
}

// Upstream returns the remote-tracking branch of the current branch, such
// as "origin/main". ok is false when no upstream is configured.
func (f *Facade) Upstream(ctx context.Context, dir string) (upstream string, ok bool, err error) {
	return f.lookup(ctx, command.GitUpstream(), dir, exitFatal)
}

// Clone clones url. It runs in the process's directory without repository
// validation since the destination need not exist yet.
func (f *Facade) Clone(ctx context.Context, url string, opts CloneOptions) error {
	cmd := command.GitClone(url, command.GitCloneOptions{Dest: opts.Dest, Branch: opts.Branch})
	_, err := f.execute(ctx, cmd, NoDirectory, MustSucceed)
	return err
}

// ConfigGet returns the value of key. ok is false when the key is unset.
func (f *Facade) ConfigGet(ctx context.Context, dir, key string) (value string, ok bool, err error) {
	return f.lookup(ctx, command.GitConfigGet(key), dir, exitNotFound)
}

// LocalBranches lists local branch names.
func (f *Facade) LocalBranches(ctx context.Context, dir string) ([]string, error) {
	res, err := f.execute(ctx, command.GitLocalBranches(), dir, MustSucceed)
	if err != nil {
		return nil, err
	}
	if res.Output.IsEmpty() {
		return []string{}, nil
	}

	var branches []string
	for _, line := range strings.Split(res.Output.Text(), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			branches = append(branches, line)
		}
	}
	return branches, nil
}

// lookup runs a query whose listed exit codes mean "nothing to report".
// Any other failure is returned as an error.
func (f *Facade) lookup(ctx context.Context, cmd command.Command, dir string, absent ...int) (string, bool, error) {
	res, err := f.execute(ctx, cmd, dir, MustSucceed)
	if err != nil {
		if code, ok := command.ExitCode(err); ok && slices.Contains(absent, code) {
			return "", false, nil
		}
		return "", false, err
	}
	return res.Output.Text(), true, nil
}
