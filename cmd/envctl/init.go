package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/satococoa/envctl/internal/config"
	"github.com/satococoa/envctl/internal/errors"
)

const configFileMode = 0o600

// NewInitCommand creates the init command definition
func NewInitCommand() *cli.Command {
	return &cli.Command{
		Name:      "init",
		Usage:     "Create a repository and its configuration file",
		UsageText: "envctl init [<dir>]",
		Description: "Runs 'git init' in <dir> (default: the working directory), creating it if needed, " +
			"and writes a .envctl.yml with example hooks.",
		Action: initCommand,
	}
}

func initCommand(ctx context.Context, cmd *cli.Command) error {
	env, err := loadEnvironment(cmd)
	if err != nil {
		return err
	}

	target := env.dir
	if arg := cmd.Args().First(); arg != "" {
		target = arg
		if !filepath.IsAbs(target) {
			target = filepath.Join(env.dir, target)
		}
	}

	if err := env.repository(true).Init(ctx, target); err != nil {
		return errors.FromGit(err)
	}
	fmt.Fprintf(env.stdout, "Initialized git repository in %s\n", target)

	configPath := filepath.Join(target, config.ConfigFileName)
	if config.FileExists(target) {
		fmt.Fprintf(env.stdout, "Keeping existing configuration: %s\n", configPath)
		return nil
	}

	if err := os.WriteFile(configPath, []byte(configTemplate(env.cfg.Project)), configFileMode); err != nil {
		return errors.DirectoryAccessFailed("create configuration file", configPath, err)
	}

	fmt.Fprintf(env.stdout, "Configuration file created: %s\n", configPath)
	fmt.Fprintln(env.stdout, "Edit this file to set your project and hooks.")
	return nil
}

func configTemplate(project string) string {
	projectLine := "# project: your-project-id"
	if project != "" {
		projectLine = fmt.Sprintf("project: %q", project)
	}

	return fmt.Sprintf(`# envctl configuration
version: %q

# Hosted project this repository deploys to
%s

# git:
#   program: git
#   check_directories: true

# Commands that run after 'envctl branch' and 'envctl checkout'
hooks:
  post_checkout:
    - command: git status --short --branch

    # More examples (commented out):
    # - command: npm install
    # - command: make deps
    #   work_dir: backend
    #   env:
    #     GOFLAGS: -mod=mod
`, config.CurrentVersion, projectLine)
}
