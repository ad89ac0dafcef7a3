package command

import (
	"context"
	"fmt"
	"strings"
)

// Command represents an external command to be executed
type Command struct {
	Name    string   // Command name (e.g., "git")
	Args    []string // Command arguments
	WorkDir string   // Optional working directory, empty means the process's own
	Env     []string // Extra KEY=value pairs appended to the inherited environment
}

// String renders the command line for diagnostics.
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// Stream identifies which output channel a chunk came from.
type Stream int

const (
	Stdout Stream = iota
	Stderr
)

func (s Stream) String() string {
	if s == Stderr {
		return "stderr"
	}
	return "stdout"
}

// Observer receives raw output chunks as the process produces them.
// It is called synchronously and never after Run returns.
type Observer func(stream Stream, chunk []byte)

// Result is the outcome of a command that exited with status zero.
type Result struct {
	Command  Command
	Output   string // stdout with trailing whitespace trimmed
	ExitCode int
}

// ProcessError reports a command that exited non-zero or could not be started.
type ProcessError struct {
	Command  Command
	ExitCode int    // -1 when the process never started or was killed by a signal
	Output   string // captured stdout
	Stderr   string
	Err      error
}

func (e *ProcessError) Error() string {
	detail := strings.TrimSpace(e.Stderr)
	if detail == "" {
		detail = strings.TrimSpace(e.Output)
	}
	msg := fmt.Sprintf("%s: exit status %d", e.Command, e.ExitCode)
	if e.ExitCode < 0 && e.Err != nil {
		msg = fmt.Sprintf("%s: %v", e.Command, e.Err)
	}
	if detail != "" {
		msg += ": " + detail
	}
	return msg
}

func (e *ProcessError) Unwrap() error {
	return e.Err
}

// CommandResult represents the result of a single command in a sequence
type CommandResult struct {
	Command Command
	Output  string
	Error   error
}

// ExecutionResult represents the result of executing multiple commands
type ExecutionResult struct {
	Results []CommandResult
}

// Runner abstracts the actual process execution
type Runner interface {
	Run(ctx context.Context, cmd Command, observer Observer) (*Result, error)
}

// Executor runs a sequence of commands
type Executor interface {
	Execute(ctx context.Context, commands []Command, observer Observer) (*ExecutionResult, error)
}
