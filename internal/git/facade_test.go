package git

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satococoa/envctl/internal/command"
	"github.com/satococoa/envctl/internal/logging"
)

// fakeRunner records invocations and answers from a canned response
type fakeRunner struct {
	calls    []command.Command
	output   string
	exitCode int // non-zero makes Run fail
}

func (f *fakeRunner) Run(_ context.Context, cmd command.Command, observer command.Observer) (*command.Result, error) {
	f.calls = append(f.calls, cmd)
	if observer != nil && f.output != "" {
		observer(command.Stdout, []byte(f.output+"\n"))
	}
	if f.exitCode != 0 {
		return nil, &command.ProcessError{Command: cmd, ExitCode: f.exitCode, Stderr: "fatal: nope"}
	}
	return &command.Result{Command: cmd, Output: f.output}, nil
}

func fakeRepoDir(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, MetadataDir), dirPermissions))
	return dir
}

func TestNew_Defaults(t *testing.T) {
	f := New()

	assert.Equal(t, "git", f.Program())
	assert.Equal(t, "", f.DefaultDir())
	assert.True(t, f.checkDirs)
	assert.NotNil(t, f.runner)
}

func TestNew_Options(t *testing.T) {
	runner := &fakeRunner{}
	f := New(
		WithDefaultDir("/srv/project"),
		WithProgram("/usr/local/bin/git"),
		WithRunner(runner),
		WithoutDirectoryCheck(),
	)

	assert.Equal(t, "/srv/project", f.DefaultDir())
	assert.Equal(t, "/usr/local/bin/git", f.Program())
	assert.False(t, f.checkDirs)
	assert.Same(t, runner, f.runner)

	t.Run("empty program keeps git", func(t *testing.T) {
		assert.Equal(t, "git", New(WithProgram("")).Program())
	})
}

func TestIsRepository(t *testing.T) {
	t.Run("directory with metadata dir", func(t *testing.T) {
		assert.True(t, IsRepository(fakeRepoDir(t)))
	})

	t.Run("plain directory", func(t *testing.T) {
		assert.False(t, IsRepository(t.TempDir()))
	})

	t.Run("metadata file instead of directory", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, MetadataDir), []byte("gitdir: elsewhere"), 0o600))
		assert.False(t, IsRepository(dir))
	})

	t.Run("missing directory", func(t *testing.T) {
		assert.False(t, IsRepository(filepath.Join(t.TempDir(), "absent")))
	})

	t.Run("facade resolves default directory without spawning", func(t *testing.T) {
		runner := &fakeRunner{}
		f := New(WithRunner(runner), WithDefaultDir(fakeRepoDir(t)))

		assert.True(t, f.IsRepository(""))
		assert.False(t, f.IsRepository(t.TempDir()))
		assert.Empty(t, runner.calls)
	})
}

func TestExecute_DirectoryResolution(t *testing.T) {
	t.Run("explicit directory wins over default", func(t *testing.T) {
		runner := &fakeRunner{}
		explicit := fakeRepoDir(t)
		f := New(WithRunner(runner), WithDefaultDir(fakeRepoDir(t)))

		_, err := f.Execute(context.Background(), []string{"status"}, explicit, MustSucceed)

		require.NoError(t, err)
		require.Len(t, runner.calls, 1)
		assert.Equal(t, explicit, runner.calls[0].WorkDir)
		assert.Equal(t, "git", runner.calls[0].Name)
		assert.Equal(t, []string{"status"}, runner.calls[0].Args)
	})

	t.Run("empty directory uses default", func(t *testing.T) {
		runner := &fakeRunner{}
		def := fakeRepoDir(t)
		f := New(WithRunner(runner), WithDefaultDir(def))

		_, err := f.Execute(context.Background(), []string{"status"}, "", MustSucceed)

		require.NoError(t, err)
		assert.Equal(t, def, runner.calls[0].WorkDir)
	})

	t.Run("no directory mode skips validation and cwd change", func(t *testing.T) {
		runner := &fakeRunner{}
		f := New(WithRunner(runner), WithDefaultDir(t.TempDir()))

		_, err := f.Execute(context.Background(), []string{"ls-remote", "https://example/repo.git"}, NoDirectory, MustSucceed)

		require.NoError(t, err)
		require.Len(t, runner.calls, 1)
		assert.Equal(t, "", runner.calls[0].WorkDir)
	})

	t.Run("disabled checks still change directory", func(t *testing.T) {
		runner := &fakeRunner{}
		dir := t.TempDir()
		f := New(WithRunner(runner), WithoutDirectoryCheck())

		_, err := f.Execute(context.Background(), []string{"status"}, dir, MustSucceed)

		require.NoError(t, err)
		assert.Equal(t, dir, runner.calls[0].WorkDir)
	})
}

func TestExecute_NotARepository(t *testing.T) {
	ops := map[string]func(f *Facade, dir string) error{
		"execute": func(f *Facade, dir string) error {
			_, err := f.Execute(context.Background(), []string{"status"}, dir, BestEffort)
			return err
		},
		"current branch": func(f *Facade, dir string) error {
			_, _, err := f.CurrentBranch(context.Background(), dir)
			return err
		},
		"branch exists": func(f *Facade, dir string) error {
			_, err := f.BranchExists(context.Background(), dir, "main")
			return err
		},
		"branch": func(f *Facade, dir string) error {
			return f.Branch(context.Background(), dir, "feature", "develop")
		},
		"checkout": func(f *Facade, dir string) error {
			return f.CheckOut(context.Background(), dir, "main")
		},
		"upstream": func(f *Facade, dir string) error {
			_, _, err := f.Upstream(context.Background(), dir)
			return err
		},
		"config get": func(f *Facade, dir string) error {
			_, _, err := f.ConfigGet(context.Background(), dir, "user.name")
			return err
		},
		"local branches": func(f *Facade, dir string) error {
			_, err := f.LocalBranches(context.Background(), dir)
			return err
		},
	}

	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			runner := &fakeRunner{}
			f := New(WithRunner(runner))
			dir := t.TempDir()

			err := op(f, dir)

			assert.ErrorIs(t, err, ErrNotRepository)
			var dirErr *DirectoryError
			require.ErrorAs(t, err, &dirErr)
			assert.Equal(t, dir, dirErr.Dir)
			assert.Empty(t, runner.calls, "no process may be spawned")
		})
	}
}

func TestExecute_Modes(t *testing.T) {
	t.Run("best effort swallows failure", func(t *testing.T) {
		runner := &fakeRunner{exitCode: 1}
		f := New(WithRunner(runner))

		res, err := f.Execute(context.Background(), []string{"config", "--get", "missing.key"}, fakeRepoDir(t), BestEffort)

		assert.NoError(t, err)
		assert.False(t, res.OK)
		assert.Equal(t, 1, res.ExitCode)
	})

	t.Run("must succeed returns process error", func(t *testing.T) {
		runner := &fakeRunner{exitCode: 1}
		f := New(WithRunner(runner))

		_, err := f.Execute(context.Background(), []string{"config", "--get", "missing.key"}, fakeRepoDir(t), MustSucceed)

		var perr *command.ProcessError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, 1, perr.ExitCode)
		assert.Equal(t, []string{"config", "--get", "missing.key"}, perr.Command.Args)
	})

	t.Run("best effort keeps cancellation", func(t *testing.T) {
		runner := &fakeRunner{exitCode: -1}
		f := New(WithRunner(runner))
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := f.Execute(ctx, []string{"config", "--get", "missing.key"}, fakeRepoDir(t), BestEffort)

		require.Error(t, err)
	})

	t.Run("empty stdout is an empty output", func(t *testing.T) {
		runner := &fakeRunner{}
		f := New(WithRunner(runner))

		res, err := f.Execute(context.Background(), []string{"checkout", "main"}, fakeRepoDir(t), MustSucceed)

		require.NoError(t, err)
		assert.True(t, res.OK)
		assert.True(t, res.Output.IsEmpty())
		assert.Equal(t, "<empty>", res.Output.String())
	})

	t.Run("text stdout is returned", func(t *testing.T) {
		runner := &fakeRunner{output: "main"}
		f := New(WithRunner(runner))

		res, err := f.Execute(context.Background(), []string{"symbolic-ref", "--short", "HEAD"}, fakeRepoDir(t), MustSucceed)

		require.NoError(t, err)
		assert.False(t, res.Output.IsEmpty())
		assert.Equal(t, "main", res.Output.Text())
	})
}

func TestExecute_ObserverAndLogging(t *testing.T) {
	runner := &fakeRunner{output: "hello"}
	var chunks []string
	var logs bytes.Buffer
	f := New(
		WithRunner(runner),
		WithObserver(func(_ command.Stream, chunk []byte) { chunks = append(chunks, string(chunk)) }),
		WithLogger(logging.New(&logs, true)),
	)

	_, err := f.Execute(context.Background(), []string{"status"}, fakeRepoDir(t), MustSucceed)

	require.NoError(t, err)
	assert.Equal(t, []string{"hello\n"}, chunks)
	assert.Contains(t, logs.String(), "running git")
}

func TestInit_Unit(t *testing.T) {
	t.Run("refuses existing repository without spawning", func(t *testing.T) {
		runner := &fakeRunner{}
		f := New(WithRunner(runner))
		dir := fakeRepoDir(t)

		err := f.Init(context.Background(), dir)

		assert.ErrorIs(t, err, ErrAlreadyRepository)
		assert.Empty(t, runner.calls)
	})

	t.Run("runs init in a plain directory", func(t *testing.T) {
		runner := &fakeRunner{}
		f := New(WithRunner(runner))
		dir := t.TempDir()

		err := f.Init(context.Background(), dir)

		require.NoError(t, err)
		require.Len(t, runner.calls, 1)
		assert.Equal(t, []string{"init"}, runner.calls[0].Args)
		assert.Equal(t, dir, runner.calls[0].WorkDir)
	})

	t.Run("creates a missing directory", func(t *testing.T) {
		runner := &fakeRunner{}
		f := New(WithRunner(runner))
		dir := filepath.Join(t.TempDir(), "new", "project")

		require.NoError(t, f.Init(context.Background(), dir))
		assert.DirExists(t, dir)
	})
}

func TestClone_Unit(t *testing.T) {
	runner := &fakeRunner{}
	f := New(WithRunner(runner), WithDefaultDir(t.TempDir()))

	err := f.Clone(context.Background(), "https://example/repo.git", CloneOptions{Dest: "dest", Branch: "main"})

	require.NoError(t, err)
	require.Len(t, runner.calls, 1)
	assert.Equal(t, []string{"clone", "--branch", "main", "--", "https://example/repo.git", "dest"}, runner.calls[0].Args)
	assert.Equal(t, "", runner.calls[0].WorkDir)
}

func TestBranch_Unit(t *testing.T) {
	runner := &fakeRunner{}
	f := New(WithRunner(runner))

	require.NoError(t, f.Branch(context.Background(), fakeRepoDir(t), "feature", "develop"))
	assert.Equal(t, []string{"checkout", "-b", "feature", "develop"}, runner.calls[0].Args)
}

func TestBranchNames_RejectLeadingDash(t *testing.T) {
	tests := []struct {
		name string
		call func(f *Facade, dir string) error
	}{
		{"branch name", func(f *Facade, dir string) error {
			return f.Branch(context.Background(), dir, "--orphan", "")
		}},
		{"branch parent", func(f *Facade, dir string) error {
			return f.Branch(context.Background(), dir, "feature", "-f")
		}},
		{"checkout", func(f *Facade, dir string) error {
			return f.CheckOut(context.Background(), dir, "--detach")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &fakeRunner{}
			f := New(WithRunner(runner))

			err := tt.call(f, fakeRepoDir(t))

			require.ErrorIs(t, err, ErrInvalidBranchName)
			assert.Empty(t, runner.calls, "git must not be spawned")
		})
	}
}

func TestLookup_AbsenceCodes(t *testing.T) {
	tests := []struct {
		name     string
		exitCode int
		call     func(f *Facade, dir string) (bool, error)
		wantErr  bool
	}{
		{
			name:     "config key unset",
			exitCode: 1,
			call: func(f *Facade, dir string) (bool, error) {
				_, ok, err := f.ConfigGet(context.Background(), dir, "missing.key")
				return ok, err
			},
		},
		{
			name:     "config file broken",
			exitCode: 3,
			call: func(f *Facade, dir string) (bool, error) {
				_, ok, err := f.ConfigGet(context.Background(), dir, "missing.key")
				return ok, err
			},
			wantErr: true,
		},
		{
			name:     "branch missing",
			exitCode: 1,
			call: func(f *Facade, dir string) (bool, error) {
				return f.BranchExists(context.Background(), dir, "nope")
			},
		},
		{
			name:     "no upstream",
			exitCode: 128,
			call: func(f *Facade, dir string) (bool, error) {
				_, ok, err := f.Upstream(context.Background(), dir)
				return ok, err
			},
		},
		{
			name:     "detached head",
			exitCode: 128,
			call: func(f *Facade, dir string) (bool, error) {
				_, ok, err := f.CurrentBranch(context.Background(), dir)
				return ok, err
			},
		},
		{
			name:     "git missing",
			exitCode: -1,
			call: func(f *Facade, dir string) (bool, error) {
				return f.BranchExists(context.Background(), dir, "main")
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := New(WithRunner(&fakeRunner{exitCode: tt.exitCode}))

			ok, err := tt.call(f, fakeRepoDir(t))

			assert.False(t, ok)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "must-succeed", MustSucceed.String())
	assert.Equal(t, "best-effort", BestEffort.String())
}

func TestTextOutput(t *testing.T) {
	assert.True(t, TextOutput("").IsEmpty())
	assert.Equal(t, "x", TextOutput("x").Text())
	assert.True(t, EmptyOutput().IsEmpty())
}
