package main

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/satococoa/envctl/internal/errors"
	"github.com/satococoa/envctl/internal/git"
)

// NewCloneCommand creates the clone command definition
func NewCloneCommand() *cli.Command {
	return &cli.Command{
		Name:      "clone",
		Usage:     "Clone a project repository",
		UsageText: "envctl clone [--branch <branch>] <url> [<dest>]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "branch",
				Aliases: []string{"b"},
				Usage:   "Check out `BRANCH` instead of the remote HEAD",
			},
		},
		Action: cloneCommand,
	}
}

func cloneCommand(ctx context.Context, cmd *cli.Command) error {
	url := cmd.Args().Get(0)
	if url == "" {
		return fmt.Errorf("repository URL is required\n\nUsage: envctl clone [--branch <branch>] <url> [<dest>]")
	}

	env, err := loadEnvironment(cmd)
	if err != nil {
		return err
	}

	dest := resolveCloneDest(env.dir, url, cmd.Args().Get(1), cmd.String("dir") != "")
	opts := git.CloneOptions{Dest: dest, Branch: cmd.String("branch")}
	if err := env.repository(true).Clone(ctx, url, opts); err != nil {
		return errors.FromGit(err)
	}

	if dest == "" {
		dest = repoNameFromURL(url)
	}
	fmt.Fprintf(env.stdout, "Cloned %s into %s\n", url, dest)
	return nil
}

// resolveCloneDest anchors relative destinations at the working directory.
// Clone runs without a working directory, so an explicit --dir must be
// folded into the destination.
func resolveCloneDest(dir, url, dest string, dirSet bool) string {
	if dest == "" {
		if !dirSet {
			return ""
		}
		dest = repoNameFromURL(url)
	}
	if filepath.IsAbs(dest) {
		return dest
	}
	return filepath.Join(dir, dest)
}

func repoNameFromURL(url string) string {
	trimmed := strings.TrimRight(url, "/")
	if i := strings.LastIndex(trimmed, ":"); i >= 0 && !strings.Contains(trimmed, "://") {
		trimmed = trimmed[i+1:]
	}
	return strings.TrimSuffix(path.Base(trimmed), ".git")
}
