package git

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/satococoa/envctl/internal/command"
	"github.com/satococoa/envctl/internal/logging"
)

// MetadataDir is the reserved subdirectory that marks a repository root.
const MetadataDir = ".git"

// NoDirectory selects "no directory" mode: the command runs in the
// process's own directory and no repository validation happens.
// It can never collide with a real path because paths cannot contain NUL.
const NoDirectory = "\x00"

// Facade runs git operations against a repository directory.
// Its configuration is fixed at construction and safe to share.
type Facade struct {
	program    string
	defaultDir string
	checkDirs  bool
	runner     command.Runner
	observer   command.Observer
	logger     *slog.Logger
}

// Option configures a Facade.
type Option func(*Facade)

// WithDefaultDir sets the directory used when a call passes "".
// An empty default means the process's working directory.
func WithDefaultDir(dir string) Option {
	return func(f *Facade) {
		f.defaultDir = dir
	}
}

// WithProgram replaces the git binary name or path.
func WithProgram(program string) Option {
	return func(f *Facade) {
		if program != "" {
			f.program = program
		}
	}
}

// WithRunner sets a custom process runner.
// This is primarily used for testing to inject mock command execution.
func WithRunner(runner command.Runner) Option {
	return func(f *Facade) {
		f.runner = runner
	}
}

// WithObserver streams git output chunks to observer while commands run.
func WithObserver(observer command.Observer) Option {
	return func(f *Facade) {
		f.observer = observer
	}
}

// WithLogger sets the logger used for invocation tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Facade) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithoutDirectoryCheck disables the repository check before each command.
func WithoutDirectoryCheck() Option {
	return func(f *Facade) {
		f.checkDirs = false
	}
}

// New creates a Facade. By default it runs "git" in the process's working
// directory and validates that directory before every command.
func New(opts ...Option) *Facade {
	f := &Facade{
		program:   command.GitProgram,
		checkDirs: true,
		runner:    command.NewRunner(),
		logger:    logging.Discard(),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// DefaultDir returns the directory used when a call passes "".
func (f *Facade) DefaultDir() string {
	return f.defaultDir
}

// Program returns the git binary the facade invokes.
func (f *Facade) Program() string {
	return f.program
}

// IsRepository reports whether dir contains the .git metadata directory.
// It only inspects the filesystem.
func IsRepository(dir string) bool {
	stat, err := os.Stat(filepath.Join(dir, MetadataDir))
	return err == nil && stat.IsDir()
}

// IsRepository reports whether dir, or the default directory when dir is
// "", is a repository.
func (f *Facade) IsRepository(dir string) bool {
	return IsRepository(f.resolveDir(dir))
}

// Execute runs git with args.
//
// dir is resolved as: NoDirectory runs without changing directory or
// validating; "" uses the default directory; anything else is used as is.
// Unless args start with "init", the resolved directory must be a
// repository or a *DirectoryError wrapping ErrNotRepository is returned
// before anything is spawned.
//
// On a non-zero exit MustSucceed returns the *command.ProcessError while
// BestEffort returns a Result with OK false. A success that printed
// nothing yields an empty Output.
func (f *Facade) Execute(ctx context.Context, args []string, dir string, mode Mode) (Result, error) {
	return f.execute(ctx, command.Command{Name: f.program, Args: args}, dir, mode)
}

func (f *Facade) execute(ctx context.Context, cmd command.Command, dir string, mode Mode) (Result, error) {
	cmd.Name = f.program
	cmd.WorkDir = ""

	if dir != NoDirectory {
		resolved := f.resolveDir(dir)
		if f.checkDirs && !isInit(cmd.Args) && !IsRepository(resolved) {
			return Result{}, &DirectoryError{Op: subcommand(cmd.Args), Dir: resolved, Err: ErrNotRepository}
		}
		if resolved != "." {
			cmd.WorkDir = resolved
		}
	}

	f.logger.Debug("running git", "args", cmd.Args, "dir", cmd.WorkDir, "mode", mode.String())

	res, err := f.runner.Run(ctx, cmd, f.observer)
	if err != nil {
		code, _ := command.ExitCode(err)
		f.logger.Debug("git failed", "args", cmd.Args, "exit_code", code, "error", err)
		if mode == BestEffort && ctx.Err() == nil {
			return Result{OK: false, ExitCode: code}, nil
		}
		return Result{}, err
	}

	return Result{Output: TextOutput(res.Output), OK: true}, nil
}

func (f *Facade) resolveDir(dir string) string {
	if dir == "" {
		dir = f.defaultDir
	}
	if dir == "" {
		return "."
	}
	return dir
}

func isInit(args []string) bool {
	return len(args) > 0 && args[0] == "init"
}

func subcommand(args []string) string {
	if len(args) == 0 {
		return "git"
	}
	return args[0]
}
