package command

import (
	"context"
	"errors"
)

// executor implements Executor on top of a Runner
type executor struct {
	runner Runner
}

// NewExecutor creates a new command executor with the given runner
func NewExecutor(runner Runner) Executor {
	return &executor{
		runner: runner,
	}
}

// Execute executes the given commands in sequence and returns the results.
// A failing command is recorded and does not stop the sequence.
func (e *executor) Execute(ctx context.Context, commands []Command, observer Observer) (*ExecutionResult, error) {
	result := &ExecutionResult{
		Results: make([]CommandResult, 0, len(commands)),
	}

	for _, cmd := range commands {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		commandResult := CommandResult{Command: cmd}
		res, err := e.runner.Run(ctx, cmd, observer)
		if err != nil {
			commandResult.Error = err
			var perr *ProcessError
			if errors.As(err, &perr) {
				commandResult.Output = perr.Output
			}
		} else {
			commandResult.Output = res.Output
		}

		result.Results = append(result.Results, commandResult)
	}

	return result, nil
}

