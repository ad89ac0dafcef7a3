package main

import "github.com/urfave/cli/v3"

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "envctl",
		Usage: "Manage hosted project environments from a git checkout",
		Description: "envctl lists build and deployment activities of a hosted project and " +
			"drives the git operations an environment workflow needs: branching, " +
			"checking out, cloning and inspecting configuration.",
		Version:               version,
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "dir",
				Aliases: []string{"C"},
				Usage:   "Run as if envctl was started in `DIR`",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Log every git invocation to stderr (or set ENVCTL_DEBUG=1)",
			},
			&cli.StringFlag{
				Name:    "project",
				Aliases: []string{"p"},
				Usage:   "Project `ID` (overrides .envctl.yml and ENVCTL_PROJECT)",
			},
			&cli.StringFlag{
				Name:  "token",
				Usage: "API access `TOKEN` (overrides ENVCTL_TOKEN)",
			},
		},
		Commands: []*cli.Command{
			NewActivitiesCommand(),
			NewBranchCommand(),
			NewCheckoutCommand(),
			NewCloneCommand(),
			NewInitCommand(),
			NewCurrentBranchCommand(),
			NewUpstreamCommand(),
			NewGitConfigCommand(),
		},
	}
}
