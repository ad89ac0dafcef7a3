// Package testutil provides helpers shared across tests.
package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

const (
	// DefaultBranch is the branch fixture repositories start on.
	DefaultBranch = "main"

	filePermissions = 0o600
)

// RequireGit skips the test when no git binary is on PATH.
func RequireGit(t *testing.T) {
	t.Helper()

	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
}

// ConfigureTestRepo applies common git configuration used in tests.
//
// The runner is responsible for executing git commands within the provided
// repository directory and should handle errors appropriately.
func ConfigureTestRepo(t *testing.T, repoDir string, runner func(dir string, args ...string)) {
	t.Helper()

	commands := [][]string{
		{"config", "user.name", "Test User"},
		{"config", "user.email", "test@example.com"},
		{"config", "commit.gpgsign", "false"},
	}

	for _, args := range commands {
		runner(repoDir, args...)
	}
}

// NewRepo creates a repository on branch main with one commit and returns
// its directory. It does not need a git binary.
func NewRepo(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	repo, err := gogit.PlainInitWithOptions(dir, &gogit.PlainInitOptions{
		InitOptions: gogit.InitOptions{
			DefaultBranch: plumbing.NewBranchReferenceName(DefaultBranch),
		},
	})
	if err != nil {
		t.Fatalf("Failed to init repository: %v", err)
	}

	cfg, err := repo.Config()
	if err != nil {
		t.Fatalf("Failed to read repository config: %v", err)
	}
	cfg.User.Name = "Test User"
	cfg.User.Email = "test@example.com"
	cfg.Raw.Section("commit").SetOption("gpgsign", "false")
	if err := repo.SetConfig(cfg); err != nil {
		t.Fatalf("Failed to write repository config: %v", err)
	}

	Commit(t, dir, "README.md", "# Test Repo", "Initial commit")
	return dir
}

// Commit writes content to name inside dir and commits it.
func Commit(t *testing.T, dir, name, content, message string) plumbing.Hash {
	t.Helper()

	repo := open(t, dir)
	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("Failed to open worktree: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), filePermissions); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	if _, err := wt.Add(name); err != nil {
		t.Fatalf("Failed to add %s: %v", name, err)
	}

	hash, err := wt.Commit(message, &gogit.CommitOptions{
		Author: &object.Signature{
			Name:  "Test User",
			Email: "test@example.com",
			When:  time.Now(),
		},
	})
	if err != nil {
		t.Fatalf("Failed to commit: %v", err)
	}
	return hash
}

// CreateBranch creates a local branch pointing at HEAD without switching to it.
func CreateBranch(t *testing.T, dir, name string) {
	t.Helper()

	repo := open(t, dir)
	head, err := repo.Head()
	if err != nil {
		t.Fatalf("Failed to resolve HEAD: %v", err)
	}

	ref := plumbing.NewHashReference(plumbing.NewBranchReferenceName(name), head.Hash())
	if err := repo.Storer.SetReference(ref); err != nil {
		t.Fatalf("Failed to create branch %s: %v", name, err)
	}
}

// HeadBranch returns the branch HEAD points to, or "" when detached.
func HeadBranch(t *testing.T, dir string) string {
	t.Helper()

	ref, err := open(t, dir).Storer.Reference(plumbing.HEAD)
	if err != nil {
		t.Fatalf("Failed to read HEAD: %v", err)
	}
	if ref.Type() != plumbing.SymbolicReference {
		return ""
	}
	return ref.Target().Short()
}

// DetachHead points HEAD directly at the current commit.
func DetachHead(t *testing.T, dir string) {
	t.Helper()

	repo := open(t, dir)
	head, err := repo.Head()
	if err != nil {
		t.Fatalf("Failed to resolve HEAD: %v", err)
	}
	if err := repo.Storer.SetReference(plumbing.NewHashReference(plumbing.HEAD, head.Hash())); err != nil {
		t.Fatalf("Failed to detach HEAD: %v", err)
	}
}

// SetConfig writes section.key = value into the repository config.
func SetConfig(t *testing.T, dir, section, key, value string) {
	t.Helper()

	repo := open(t, dir)
	cfg, err := repo.Config()
	if err != nil {
		t.Fatalf("Failed to read repository config: %v", err)
	}
	cfg.Raw.Section(section).SetOption(key, value)
	if err := repo.SetConfig(cfg); err != nil {
		t.Fatalf("Failed to write repository config: %v", err)
	}
}

// SetUpstream makes origin/<branch> the upstream of the local branch and
// creates the remote-tracking ref at the branch's current commit.
func SetUpstream(t *testing.T, dir, branch string) {
	t.Helper()

	repo := open(t, dir)
	cfg, err := repo.Config()
	if err != nil {
		t.Fatalf("Failed to read repository config: %v", err)
	}

	cfg.Remotes["origin"] = &config.RemoteConfig{
		Name:  "origin",
		URLs:  []string{"https://example.com/project.git"},
		Fetch: []config.RefSpec{"+refs/heads/*:refs/remotes/origin/*"},
	}
	cfg.Branches[branch] = &config.Branch{
		Name:   branch,
		Remote: "origin",
		Merge:  plumbing.NewBranchReferenceName(branch),
	}
	if err := repo.SetConfig(cfg); err != nil {
		t.Fatalf("Failed to write repository config: %v", err)
	}

	local, err := repo.Reference(plumbing.NewBranchReferenceName(branch), true)
	if err != nil {
		t.Fatalf("Failed to resolve branch %s: %v", branch, err)
	}
	remote := plumbing.NewHashReference(plumbing.NewRemoteReferenceName("origin", branch), local.Hash())
	if err := repo.Storer.SetReference(remote); err != nil {
		t.Fatalf("Failed to create remote-tracking ref: %v", err)
	}
}

func open(t *testing.T, dir string) *gogit.Repository {
	t.Helper()

	repo, err := gogit.PlainOpen(dir)
	if err != nil {
		t.Fatalf("Failed to open repository %s: %v", dir, err)
	}
	return repo
}
