package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/satococoa/envctl/internal/errors"
)

// Variables to allow mocking in tests
var (
	isInteractive = func() bool { return term.IsTerminal(int(os.Stdin.Fd())) }
	selectBranch  = runBranchPicker
)

func noHooksFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "no-hooks",
		Usage: "Skip post-checkout hooks from .envctl.yml",
	}
}

// NewBranchCommand creates the branch command definition
func NewBranchCommand() *cli.Command {
	return &cli.Command{
		Name:      "branch",
		Usage:     "Create and check out a new environment branch",
		UsageText: "envctl branch <name> [<parent>]",
		Description: "Creates <name> from <parent> (or the current HEAD) and checks it out, " +
			"then runs the post-checkout hooks.\n\n" +
			"Examples:\n" +
			"  envctl branch feature-login        # Branch from HEAD\n" +
			"  envctl branch hotfix main          # Branch from main",
		Flags:  []cli.Flag{noHooksFlag()},
		Action: branchCommand,
	}
}

func branchCommand(ctx context.Context, cmd *cli.Command) error {
	name := cmd.Args().Get(0)
	if name == "" {
		return errors.BranchNameRequired("envctl branch <name> [<parent>]")
	}
	parent := cmd.Args().Get(1)

	env, err := loadEnvironment(cmd)
	if err != nil {
		return err
	}

	exists, err := env.repository(false).BranchExists(ctx, "", name)
	if err != nil {
		return errors.FromGit(err)
	}
	if exists {
		return errors.BranchAlreadyExists(name)
	}

	if err := env.repository(true).Branch(ctx, "", name, parent); err != nil {
		return errors.FromGit(err)
	}
	fmt.Fprintf(env.stdout, "Created branch '%s'\n", name)

	if cmd.Bool("no-hooks") {
		return nil
	}
	return env.runHooks(ctx, name)
}

// NewCheckoutCommand creates the checkout command definition
func NewCheckoutCommand() *cli.Command {
	return &cli.Command{
		Name:      "checkout",
		Usage:     "Switch to an existing environment branch",
		UsageText: "envctl checkout [<name>]",
		Description: "Checks out <name> and runs the post-checkout hooks. " +
			"Without a name, an interactive picker lists local branches.",
		Flags:  []cli.Flag{noHooksFlag()},
		Action: checkoutCommand,
	}
}

func checkoutCommand(ctx context.Context, cmd *cli.Command) error {
	env, err := loadEnvironment(cmd)
	if err != nil {
		return err
	}

	name := cmd.Args().First()
	if name == "" {
		if !isInteractive() {
			return errors.BranchNameRequired("envctl checkout <name>")
		}
		repo := env.repository(false)
		branches, err := repo.LocalBranches(ctx, "")
		if err != nil {
			return errors.FromGit(err)
		}
		current, _, _ := repo.CurrentBranch(ctx, "")
		name, err = selectBranch(branches, current)
		if err != nil {
			return err
		}
	}

	exists, err := env.repository(false).BranchExists(ctx, "", name)
	if err != nil {
		return errors.FromGit(err)
	}
	if !exists {
		return errors.BranchNotFound(name)
	}

	if err := env.repository(true).CheckOut(ctx, "", name); err != nil {
		return errors.FromGit(err)
	}
	fmt.Fprintf(env.stdout, "Switched to '%s'\n", name)

	if cmd.Bool("no-hooks") {
		return nil
	}
	return env.runHooks(ctx, name)
}

func runBranchPicker(branches []string, current string) (string, error) {
	if len(branches) == 0 {
		return "", fmt.Errorf("no local branches to check out")
	}

	options := make([]huh.Option[string], 0, len(branches))
	for _, b := range branches {
		label := b
		if b == current {
			label += " (current)"
		}
		options = append(options, huh.NewOption(label, b))
	}

	selected := current
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Select a branch to check out:").
				Options(options...).
				Value(&selected),
		),
	)
	if err := form.Run(); err != nil {
		return "", err
	}
	return selected, nil
}
