// Package goja evaluates JavaScript with the pure-Go goja interpreter.
// It is the always-available fallback backend: no native library and no
// external process, at the cost of a slower engine. Scripts run through
// the same console-capturing wrapper as the native backends so output
// semantics line up across providers.
package goja

import (
	"fmt"
	"log/slog"

	gojaLib "github.com/dop251/goja"

	"github.com/robbyt/go-polyjs/internal/helpers"
	"github.com/robbyt/go-polyjs/internal/jswrap"
)

// Evaluator runs scripts on fresh goja VMs. Each call gets its own VM,
// so an Evaluator is safe for concurrent use.
type Evaluator struct {
	logHandler slog.Handler
	logger     *slog.Logger
}

// New creates a goja evaluator. Unlike the native backends there is
// nothing to discover or load, so construction only fails on an invalid
// option.
func New(opts ...FunctionalOption) (*Evaluator, error) {
	e := &Evaluator{}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, fmt.Errorf("error applying evaluator option: %w", err)
		}
	}
	e.setupLogger()
	return e, nil
}

func (e *Evaluator) setupLogger() {
	if e.logger != nil {
		e.logHandler = e.logger.Handler()
		return
	}
	e.logHandler, e.logger = helpers.SetupLogger(e.logHandler, "goja", "Evaluator")
}

func (e *Evaluator) String() string {
	return "goja.Evaluator"
}

// Evaluate runs script in a fresh VM and returns the newline-joined
// console.log output captured by the wrapper. Any failure inside the
// script, including a syntax error, is reported as a *ScriptError.
func (e *Evaluator) Evaluate(script string) (string, error) {
	vm := gojaLib.New()
	value, err := vm.RunString(jswrap.Script(script))
	if err != nil {
		serr := toScriptError(err)
		e.logger.Warn("script raised an exception", "error", serr)
		return "", serr
	}
	if value == nil {
		return "", nil
	}
	return value.String(), nil
}
