// Package shell provides an os/exec based runner for the external tools.
package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"sort"
	"strings"
	"sync"

	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/core/ports"
	"go.trai.ch/zerr"
	"mvdan.cc/sh/v3/syntax"
)

var _ ports.Runner = (*Runner)(nil)

// Runner implements ports.Runner using os/exec.
type Runner struct {
	logger ports.Logger
}

// NewRunner creates a new Runner.
func NewRunner(logger ports.Logger) *Runner {
	return &Runner{logger: logger}
}

// Run executes cmd and waits for it to exit. Combined stdout and stderr are captured and copied to
// output, to the vertex carried by ctx, and line by line to the logger when ctx is verbose.
func (r *Runner) Run(ctx context.Context, cmd domain.Command, output io.Writer) error {
	if cmd.Name == "" {
		return nil
	}

	var captured bytes.Buffer
	writers := []io.Writer{&captured}
	if output != nil {
		writers = append(writers, output)
	}
	if v, ok := ports.VertexFromContext(ctx); ok {
		writers = append(writers, v.Stdout())
	}
	var logOut *logWriter
	if ports.VerboseFromContext(ctx) {
		logOut = &logWriter{logger: r.logger}
		writers = append(writers, logOut)
	}
	combined := &syncWriter{w: io.MultiWriter(writers...)}

	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...) //nolint:gosec // tool commands come from workspace settings
	c.Dir = cmd.Dir
	c.Env = resolveEnvironment(os.Environ(), cmd.Env)
	c.Stdout = combined
	c.Stderr = combined

	if r.logger != nil && ports.VerboseFromContext(ctx) {
		r.logger.Info("$ " + Quote(cmd.Argv()))
	}

	err := c.Run()
	if logOut != nil {
		_ = logOut.Close()
	}
	if err == nil {
		return nil
	}

	exitCode := -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		exitCode = exitErr.ExitCode()
	}

	cause := err
	if out := strings.TrimSpace(captured.String()); out != "" {
		cause = zerr.Wrap(err, out)
	}

	failure := zerr.With(zerr.Wrap(cause, domain.ErrCommandFailed.Error()), "command", Quote(cmd.Argv()))
	if cmd.Dir != "" {
		failure = zerr.With(failure, "dir", cmd.Dir)
	}
	return zerr.With(failure, "exit_code", exitCode)
}

// Quote renders argv as a single Bash command line.
func Quote(argv []string) string {
	parts := make([]string, 0, len(argv))
	for _, arg := range argv {
		quoted, err := syntax.Quote(arg, syntax.LangBash)
		if err != nil {
			quoted = arg
		}
		parts = append(parts, quoted)
	}
	return strings.Join(parts, " ")
}

// resolveEnvironment overlays the command environment on the process environment.
func resolveEnvironment(sysEnv []string, cmdEnv map[string]string) []string {
	if len(cmdEnv) == 0 {
		return sysEnv
	}

	envMap := make(map[string]string, len(sysEnv)+len(cmdEnv))
	for _, entry := range sysEnv {
		if k, v, ok := strings.Cut(entry, "="); ok {
			envMap[k] = v
		}
	}
	for k, v := range cmdEnv {
		envMap[k] = v
	}

	result := make([]string, 0, len(envMap))
	for k, v := range envMap {
		result = append(result, k+"="+v)
	}
	sort.Strings(result)
	return result
}

// syncWriter serializes writes from the stdout and stderr copiers.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

type logWriter struct {
	logger ports.Logger
	buf    []byte
}

func (w *logWriter) Write(p []byte) (n int, err error) {
	w.buf = append(w.buf, p...)

	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}

		w.logLine(w.buf[:i])
		w.buf = w.buf[i+1:]
	}

	return len(p), nil
}

func (w *logWriter) Close() error {
	if len(w.buf) > 0 {
		w.logLine(w.buf)
		w.buf = nil
	}
	return nil
}

func (w *logWriter) logLine(line []byte) {
	w.logger.Info(strings.TrimSuffix(string(line), "\r"))
}
