// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tool runs the external programs the conversion pipeline depends
// on (pdflatex, dvisvgm, scour) and classifies their failures into
// NotFoundError and ExecutionError.
package tool

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"strings"

	"github.com/google/shlex"
	"github.com/sirupsen/logrus"
)

// Command describes one invocation of an external tool.
type Command struct {
	// Name is the display name used in errors and logs ("latex", "dvisvgm").
	Name string

	// Args is the argument vector; Args[0] is the executable.
	Args []string

	// Dir is the working directory of the process.
	Dir string

	// Env lists extra KEY=VALUE entries added to the parent environment.
	Env []string
}

// Output holds the captured streams of a finished process.
type Output struct {
	Stdout []byte
	Stderr []byte
}

// Runner runs a command to completion and captures its output.
type Runner interface {
	Run(ctx context.Context, cmd Command) (Output, error)
}

// Split tokenizes a command template using POSIX shell quoting rules.
func Split(template string) ([]string, error) {
	args, err := shlex.Split(template)
	if err != nil {
		return nil, fmt.Errorf("parsing command %q: %w", template, err)
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("parsing command %q: empty command", template)
	}
	return args, nil
}

// executor abstracts process execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	Run(ctx context.Context, path string, args []string, dir string, env []string, stdout, stderr io.Writer) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) Run(ctx context.Context, path string, args []string, dir string, env []string, stdout, stderr io.Writer) error {
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Dir = dir
	if len(env) > 0 {
		cmd.Env = append(os.Environ(), env...)
	}
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}

// ProcessRunner implements Runner with real subprocesses.
type ProcessRunner struct {
	exec executor
	log  *logrus.Logger
}

var defaultExec = &osExecutor{}

// NewProcessRunner returns a Runner that executes commands with os/exec.
func NewProcessRunner(log *logrus.Logger) *ProcessRunner {
	return newProcessRunner(defaultExec, log)
}

func newProcessRunner(e executor, log *logrus.Logger) *ProcessRunner {
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	return &ProcessRunner{exec: e, log: log}
}

// Available reports whether executable can be found on PATH.
func (r *ProcessRunner) Available(executable string) bool {
	_, err := r.exec.LookPath(executable)
	return err == nil
}

// Run executes cmd and waits for it to exit. Captured output is returned
// even on failure. A missing executable yields *NotFoundError and a nonzero
// exit yields *ExecutionError.
func (r *ProcessRunner) Run(ctx context.Context, cmd Command) (Output, error) {
	if len(cmd.Args) == 0 {
		return Output{}, fmt.Errorf("running %s: empty command", cmd.Name)
	}

	path, err := r.exec.LookPath(cmd.Args[0])
	if err != nil {
		return Output{}, &NotFoundError{Tool: cmd.Name, Executable: cmd.Args[0], Err: err}
	}

	r.log.WithFields(logrus.Fields{
		"tool": cmd.Name,
		"dir":  cmd.Dir,
	}).Debugf("running %s", strings.Join(cmd.Args, " "))

	var stdout, stderr bytes.Buffer
	err = r.exec.Run(ctx, path, cmd.Args[1:], cmd.Dir, cmd.Env, &stdout, &stderr)
	out := Output{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}
	if err == nil {
		return out, nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return out, fmt.Errorf("running %s: %w", cmd.Name, ctxErr)
	}

	var exit interface{ ExitCode() int }
	if errors.As(err, &exit) {
		return out, &ExecutionError{
			Tool:     cmd.Name,
			Stdout:   out.Stdout,
			Stderr:   out.Stderr,
			ExitCode: exit.ExitCode(),
		}
	}
	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
		return out, &NotFoundError{Tool: cmd.Name, Executable: cmd.Args[0], Err: err}
	}
	return out, fmt.Errorf("running %s: %w", cmd.Name, err)
}
