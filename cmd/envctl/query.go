package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/satococoa/envctl/internal/errors"
)

// NewCurrentBranchCommand creates the current-branch command definition
func NewCurrentBranchCommand() *cli.Command {
	return &cli.Command{
		Name:   "current-branch",
		Usage:  "Print the checked-out branch",
		Action: currentBranchCommand,
	}
}

func currentBranchCommand(ctx context.Context, cmd *cli.Command) error {
	env, err := loadEnvironment(cmd)
	if err != nil {
		return err
	}

	branch, ok, err := env.repository(false).CurrentBranch(ctx, "")
	if err != nil {
		return errors.FromGit(err)
	}
	if !ok {
		return errors.DetachedHead()
	}

	fmt.Fprintln(env.stdout, branch)
	return nil
}

// NewUpstreamCommand creates the upstream command definition
func NewUpstreamCommand() *cli.Command {
	return &cli.Command{
		Name:   "upstream",
		Usage:  "Print the upstream of the checked-out branch",
		Action: upstreamCommand,
	}
}

func upstreamCommand(ctx context.Context, cmd *cli.Command) error {
	env, err := loadEnvironment(cmd)
	if err != nil {
		return err
	}

	repo := env.repository(false)
	upstream, ok, err := repo.Upstream(ctx, "")
	if err != nil {
		return errors.FromGit(err)
	}
	if !ok {
		branch, _, _ := repo.CurrentBranch(ctx, "")
		return errors.NoUpstream(branch)
	}

	fmt.Fprintln(env.stdout, upstream)
	return nil
}

// NewGitConfigCommand creates the git-config command definition
func NewGitConfigCommand() *cli.Command {
	return &cli.Command{
		Name:      "git-config",
		Usage:     "Print a git configuration value",
		UsageText: "envctl git-config <key>",
		Action:    gitConfigCommand,
	}
}

func gitConfigCommand(ctx context.Context, cmd *cli.Command) error {
	key := cmd.Args().First()
	if key == "" {
		return fmt.Errorf("configuration key is required\n\nUsage: envctl git-config <key>")
	}

	env, err := loadEnvironment(cmd)
	if err != nil {
		return err
	}

	value, ok, err := env.repository(false).ConfigGet(ctx, "", key)
	if err != nil {
		return errors.FromGit(err)
	}
	if !ok {
		return errors.ConfigKeyNotSet(key)
	}

	fmt.Fprintln(env.stdout, value)
	return nil
}
