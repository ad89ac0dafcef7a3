package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/satococoa/envctl/internal/command"
	"github.com/satococoa/envctl/internal/config"
	"github.com/satococoa/envctl/internal/errors"
	"github.com/satococoa/envctl/internal/git"
	"github.com/satococoa/envctl/internal/hooks"
	envio "github.com/satococoa/envctl/internal/io"
	"github.com/satococoa/envctl/internal/logging"
)

// Variable to allow mocking in tests
var osGetwd = os.Getwd

// environment is the per-invocation state shared by every command.
type environment struct {
	stdout io.Writer
	stderr io.Writer
	dir    string
	cfg    *config.Config
	logger *slog.Logger
}

func loadEnvironment(cmd *cli.Command) (*environment, error) {
	dir := cmd.String("dir")
	if dir == "" {
		cwd, err := osGetwd()
		if err != nil {
			return nil, errors.DirectoryAccessFailed("access current", ".", err)
		}
		dir = cwd
	}
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, errors.DirectoryAccessFailed("resolve", dir, err)
	}

	cfg, err := config.LoadConfig(dir)
	if err != nil {
		return nil, errors.ConfigLoadFailed(filepath.Join(dir, config.ConfigFileName), err)
	}
	if project := cmd.String("project"); project != "" {
		cfg.Project = project
	}
	if token := cmd.String("token"); token != "" {
		cfg.Token = token
	}

	root := cmd.Root()
	stdout := root.Writer
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := root.ErrWriter
	if stderr == nil {
		stderr = os.Stderr
	}

	return &environment{
		stdout: stdout,
		stderr: stderr,
		dir:    dir,
		cfg:    cfg,
		logger: logging.New(stderr, cmd.Bool("debug") || logging.DebugFromEnv()),
	}, nil
}

// repository returns a facade rooted at the working directory.
// Commands that change the checkout stream git's output to the console.
func (e *environment) repository(stream bool) *git.Facade {
	opts := []git.Option{
		git.WithDefaultDir(e.dir),
		git.WithProgram(e.cfg.Git.Program),
		git.WithLogger(e.logger),
	}
	if !e.cfg.ShouldCheckDirectories() {
		opts = append(opts, git.WithoutDirectoryCheck())
	}
	if stream {
		opts = append(opts, git.WithObserver(e.console()))
	}
	return git.New(opts...)
}

func (e *environment) console() command.Observer {
	return envio.NewConsole(e.stdout, e.stderr).Observer()
}

// runHooks executes the configured post-checkout hooks for branch.
func (e *environment) runHooks(ctx context.Context, branch string) error {
	if !e.cfg.HasHooks() {
		return nil
	}

	fmt.Fprintln(e.stdout, "\nRunning post-checkout hooks...")
	executor := hooks.NewExecutor(e.cfg, e.dir, command.NewExecutor(command.NewRunner()))
	if err := executor.ExecutePostCheckoutHooks(ctx, branch, e.console()); err != nil {
		return err
	}
	fmt.Fprintln(e.stdout, "✓ All hooks executed successfully")
	return nil
}
