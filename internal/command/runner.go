package command

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
)

// execRunner implements Runner using os/exec
type execRunner struct{}

// NewRunner creates a Runner that spawns real processes
func NewRunner() Runner {
	return &execRunner{}
}

// Run spawns the command and blocks until it exits. Output chunks are
// forwarded to observer in arrival order while stdout is also captured.
func (r *execRunner) Run(ctx context.Context, c Command, observer Observer) (*Result, error) {
	// #nosec G204 - arguments are built by this program, not a shell
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	if c.WorkDir != "" {
		cmd.Dir = c.WorkDir
	}
	if len(c.Env) > 0 {
		cmd.Env = append(os.Environ(), c.Env...)
	}

	var stdout, stderr bytes.Buffer
	var mu sync.Mutex
	cmd.Stdout = &observedWriter{buf: &stdout, stream: Stdout, observer: observer, mu: &mu}
	cmd.Stderr = &observedWriter{buf: &stderr, stream: Stderr, observer: observer, mu: &mu}

	err := cmd.Run()
	output := strings.TrimRight(stdout.String(), " \t\r\n")
	if err != nil {
		perr := &ProcessError{
			Command:  c,
			ExitCode: -1,
			Output:   output,
			Stderr:   stderr.String(),
			Err:      err,
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			perr.ExitCode = exitErr.ExitCode()
		}
		return nil, perr
	}

	return &Result{Command: c, Output: output, ExitCode: 0}, nil
}

// observedWriter captures one stream and mirrors each chunk to the observer.
// os/exec copies stdout and stderr on separate goroutines, so the shared
// mutex keeps observer calls serialized.
type observedWriter struct {
	buf      *bytes.Buffer
	stream   Stream
	observer Observer
	mu       *sync.Mutex
}

func (w *observedWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	n, err := w.buf.Write(p)
	if err != nil {
		return n, err
	}
	if w.observer != nil {
		chunk := make([]byte, len(p))
		copy(chunk, p)
		w.observer(w.stream, chunk)
	}
	return n, nil
}

var _ io.Writer = (*observedWriter)(nil)

// ExitCode extracts the exit status carried by a ProcessError.
func ExitCode(err error) (int, bool) {
	var perr *ProcessError
	if errors.As(err, &perr) {
		return perr.ExitCode, true
	}
	return 0, false
}
