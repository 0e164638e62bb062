// Package deno evaluates JavaScript by piping it to a deno executable
// found on the PATH. Unlike the in-process backends there is no script
// wrapper: console.log writes to the child's stdout, which is captured
// wholesale, so multi-line output falls out of the process model.
//
// The child runs with --no-prompt, so scripts that ask for permissions
// fail instead of hanging on an interactive prompt.
package deno

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"sync"

	"github.com/robbyt/go-polyjs/internal/helpers"
)

// findRuntime memoizes the PATH search. A missing binary is permanent
// for the process; installing deno mid-run is not supported.
var findRuntime = sync.OnceValues(func() (string, error) {
	path, err := exec.LookPath("deno")
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrRuntimeNotFound, err)
	}
	return path, nil
})

// Evaluator runs scripts as one-shot deno subprocesses. Each call gets
// its own process, so an Evaluator is safe for concurrent use.
type Evaluator struct {
	logHandler slog.Handler
	logger     *slog.Logger
	execPath   string
}

// New locates the deno binary (searched at most once per process) and
// returns an Evaluator for it. When the binary is missing the error
// wraps ErrRuntimeNotFound.
func New(opts ...FunctionalOption) (*Evaluator, error) {
	e := &Evaluator{}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, fmt.Errorf("error applying evaluator option: %w", err)
		}
	}
	e.setupLogger()

	if e.execPath == "" {
		path, err := findRuntime()
		if err != nil {
			return nil, err
		}
		e.execPath = path
	}
	e.logger.Debug("deno runtime located", "path", e.execPath)
	return e, nil
}

func (e *Evaluator) setupLogger() {
	if e.logger != nil {
		e.logHandler = e.logger.Handler()
		return
	}
	e.logHandler, e.logger = helpers.SetupLogger(e.logHandler, "deno", "Evaluator")
}

func (e *Evaluator) String() string {
	return "deno.Evaluator"
}

// ExecPath reports which binary evaluations run on.
func (e *Evaluator) ExecPath() string {
	return e.execPath
}

// Evaluate pipes script to a fresh deno process and returns its stdout
// with the final newline removed. A non-zero exit is reported as a
// *ScriptError carrying the child's stderr. Canceling ctx kills the
// child.
func (e *Evaluator) Evaluate(ctx context.Context, script string) (string, error) {
	cmd := exec.CommandContext(ctx, e.execPath, "run", "--quiet", "--no-prompt", "-")
	cmd.Stdin = strings.NewReader(script)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	e.logger.Debug("running script", "chars", len(script))
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		serr := newScriptError(strings.TrimSpace(stderr.String()), err)
		e.logger.Warn("script failed", "error", serr)
		return "", serr
	}

	out := strings.TrimSuffix(stdout.String(), "\n")
	out = strings.TrimSuffix(out, "\r")
	return out, nil
}
