// Package io streams external process output to the console as it arrives.
package io

import (
	"bufio"
	"io"
	"sync"

	"github.com/satococoa/envctl/internal/command"
)

type flusher interface{ Flush() error }

// FlushingWriter flushes after every write so that git progress lines
// reach the terminal immediately.
type FlushingWriter struct {
	w       io.Writer
	flusher flusher
}

// NewFlushingWriter wraps w. Writers without a Flush method are buffered
// through bufio and flushed on every write.
func NewFlushingWriter(w io.Writer) *FlushingWriter {
	if f, ok := w.(flusher); ok {
		return &FlushingWriter{w: w, flusher: f}
	}
	bw := bufio.NewWriter(w)
	return &FlushingWriter{w: bw, flusher: bw}
}

func (fw *FlushingWriter) Write(p []byte) (int, error) {
	n, err := fw.w.Write(p)
	if err != nil {
		return n, err
	}
	return n, fw.flusher.Flush()
}

// Flush flushes any buffered data.
func (fw *FlushingWriter) Flush() error {
	return fw.flusher.Flush()
}

// Console routes process output chunks to stdout and stderr writers.
type Console struct {
	mu     sync.Mutex
	stdout *FlushingWriter
	stderr *FlushingWriter
}

// NewConsole creates a Console. A nil stderr sends both streams to stdout.
func NewConsole(stdout, stderr io.Writer) *Console {
	c := &Console{stdout: NewFlushingWriter(stdout)}
	if stderr == nil {
		c.stderr = c.stdout
	} else {
		c.stderr = NewFlushingWriter(stderr)
	}
	return c
}

// Observe implements command.Observer.
func (c *Console) Observe(stream command.Stream, chunk []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if stream == command.Stderr {
		_, _ = c.stderr.Write(chunk)
		return
	}
	_, _ = c.stdout.Write(chunk)
}

// Observer returns Observe as a command.Observer.
func (c *Console) Observer() command.Observer {
	return c.Observe
}
