package main

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/satococoa/envctl/internal/api"
	"github.com/satococoa/envctl/internal/errors"
	"github.com/satococoa/envctl/internal/output"
)

const defaultActivityLimit = 10

// NewActivitiesCommand creates the activities command definition
func NewActivitiesCommand() *cli.Command {
	return &cli.Command{
		Name:    "activities",
		Aliases: []string{"act"},
		Usage:   "List recent build and deployment activities",
		UsageText: "envctl activities [--environment <env>] [--type <type>...] [--state <state>] " +
			"[--result <result>] [--limit <n>] [--since <duration>] [--format <format>] [--columns <col,...>]",
		Description: "Lists activities for the project, or for one environment, newest first.\n\n" +
			"Examples:\n" +
			"  envctl activities -e main                     # Activities of the main environment\n" +
			"  envctl activities --result failure --limit 5  # Last five failures\n" +
			"  envctl activities --columns id,state,created  # Pick columns\n" +
			"  envctl activities --format csv > runs.csv",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "environment",
				Aliases: []string{"e"},
				Usage:   "Only list activities of `ENV`",
			},
			&cli.StringSliceFlag{
				Name:    "type",
				Aliases: []string{"t"},
				Usage:   "Filter by activity `TYPE` (repeatable)",
			},
			&cli.StringFlag{
				Name:  "state",
				Usage: "Filter by `STATE` (pending, in_progress, complete)",
			},
			&cli.StringFlag{
				Name:  "result",
				Usage: "Filter by `RESULT` (success, failure)",
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of activities, 0 for all",
				Value: defaultActivityLimit,
			},
			&cli.DurationFlag{
				Name:  "since",
				Usage: "Only list activities newer than `DURATION` (e.g. 24h)",
			},
			&cli.StringFlag{
				Name:  "format",
				Usage: "Output `FORMAT`: table, plain, csv or tsv (default: table on a terminal, plain otherwise)",
			},
			&cli.StringSliceFlag{
				Name:  "columns",
				Usage: "Comma-separated `COLUMNS` to show",
			},
		},
		Action: activitiesCommand,
	}
}

func activitiesCommand(ctx context.Context, cmd *cli.Command) error {
	env, err := loadEnvironment(cmd)
	if err != nil {
		return err
	}
	if env.cfg.Project == "" {
		return errors.ProjectRequired()
	}

	format := output.DefaultFormat(env.stdout)
	if name := cmd.String("format"); name != "" {
		if format, err = output.ParseFormat(name); err != nil {
			return err
		}
	}

	filters := api.Filters{
		Types:  cmd.StringSlice("type"),
		State:  cmd.String("state"),
		Result: cmd.String("result"),
		Limit:  int(cmd.Int("limit")),
	}
	if since := cmd.Duration("since"); since > 0 {
		filters.Since = time.Now().Add(-since)
	}
	resource := api.Resource{Project: env.cfg.Project, Environment: cmd.String("environment")}

	env.logger.Debug("loading activities", "project", resource.Project, "environment", resource.Environment, "url", env.cfg.API.URL)
	client := api.NewClient(ctx, api.ClientConfig{BaseURL: env.cfg.API.URL, Token: env.cfg.Token})
	activities, err := client.LoadActivities(ctx, resource, filters)
	if err != nil {
		return errors.APIRequestFailed("load activities", err)
	}

	if len(activities) == 0 && (format == output.FormatTable || format == output.FormatPlain) {
		fmt.Fprintln(env.stdout, "No activities found")
		return nil
	}

	table, err := output.ActivityTable(activities).Select(cmd.StringSlice("columns"))
	if err != nil {
		return err
	}
	return output.Render(env.stdout, table, format)
}
