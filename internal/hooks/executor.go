package hooks

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/satococoa/envctl/internal/command"
	"github.com/satococoa/envctl/internal/config"
	wrapErrors "github.com/satococoa/envctl/internal/errors"
)

// Environment passed to every hook
const (
	EnvBranch   = "ENVCTL_BRANCH"
	EnvRepoRoot = "ENVCTL_REPO_ROOT"
)

// Executor handles hook execution
type Executor struct {
	config   *config.Config
	repoRoot string
	commands command.Executor
}

// NewExecutor creates a new hook executor
func NewExecutor(cfg *config.Config, repoRoot string, commands command.Executor) *Executor {
	return &Executor{
		config:   cfg,
		repoRoot: repoRoot,
		commands: commands,
	}
}

// ExecutePostCheckoutHooks runs every post-checkout hook for branch,
// streaming output to observer. All hooks run; failures are reported together.
func (e *Executor) ExecutePostCheckoutHooks(ctx context.Context, branch string, observer command.Observer) error {
	if !e.config.HasHooks() {
		return nil
	}

	cmds := make([]command.Command, 0, len(e.config.Hooks.PostCheckout))
	for _, hook := range e.config.Hooks.PostCheckout {
		cmds = append(cmds, e.buildCommand(hook, branch))
	}

	result, err := e.commands.Execute(ctx, cmds, observer)
	if err != nil {
		return fmt.Errorf("failed to execute hooks: %w", err)
	}

	var errs []error
	for i, r := range result.Results {
		if r.Error != nil {
			errs = append(errs, wrapErrors.HookExecutionFailed(i, e.config.Hooks.PostCheckout[i].Command, r.Error))
		}
	}
	return errors.Join(errs...)
}

// buildCommand wraps the hook in the platform shell
func (e *Executor) buildCommand(hook config.Hook, branch string) command.Command {
	cmd := command.Command{Name: "sh", Args: []string{"-c", hook.Command}}
	if runtime.GOOS == "windows" {
		cmd = command.Command{Name: "cmd", Args: []string{"/c", hook.Command}}
	}

	workDir := hook.WorkDir
	if workDir == "" {
		workDir = e.repoRoot
	} else if !filepath.IsAbs(workDir) {
		workDir = filepath.Join(e.repoRoot, workDir)
	}
	cmd.WorkDir = workDir

	for key, value := range hook.Env {
		cmd.Env = append(cmd.Env, fmt.Sprintf("%s=%s", key, value))
	}
	cmd.Env = append(cmd.Env,
		fmt.Sprintf("%s=%s", EnvBranch, branch),
		fmt.Sprintf("%s=%s", EnvRepoRoot, e.repoRoot))

	return cmd
}
