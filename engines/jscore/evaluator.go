// Package jscore evaluates JavaScript by driving a natively-compiled
// JavaScriptCore library through its C API. The library is discovered
// and bound once per process; each Evaluate call then runs in a fresh
// global context, captures console.log output through a script wrapper,
// and releases every native handle before returning.
//
// Nothing here sandboxes the script or bounds its runtime: a script
// that never returns blocks the calling goroutine.
package jscore

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"

	"github.com/robbyt/go-polyjs/internal/helpers"
	"github.com/robbyt/go-polyjs/internal/jswrap"
)

// Evaluator runs scripts against a loaded JavaScriptCore library. It is
// safe for concurrent use: the binding is read-only after construction
// and every call owns its own context.
type Evaluator struct {
	logHandler slog.Handler
	logger     *slog.Logger
	lib        binding
}

// New binds the JavaScriptCore library (searched at most once per
// process) and returns an Evaluator for it. When no candidate library
// loads the error wraps ErrEngineUnavailable; the condition is
// permanent, so callers should not retry.
func New(opts ...FunctionalOption) (*Evaluator, error) {
	e := &Evaluator{}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, fmt.Errorf("error applying evaluator option: %w", err)
		}
	}
	e.setupLogger()

	lib, err := loadLibrary()
	if err != nil {
		return nil, err
	}
	e.lib = lib
	e.logger.Debug("javascriptcore library bound", "path", lib.path())
	return e, nil
}

// setupLogger resolves the handler/logger pair after options have been
// applied.
func (e *Evaluator) setupLogger() {
	if e.logger != nil {
		e.logHandler = e.logger.Handler()
		return
	}
	e.logHandler, e.logger = helpers.SetupLogger(e.logHandler, "jscore", "Evaluator")
}

func (e *Evaluator) String() string {
	return "jscore.Evaluator"
}

// LibraryPath reports which candidate library was loaded.
func (e *Evaluator) LibraryPath() string {
	return e.lib.path()
}

// Evaluate runs script in a fresh global context and returns the
// newline-joined console.log output captured by the wrapper. A script
// that raises fails with a *ScriptError carrying the stringified
// exception. The context is released on every exit path.
func (e *Evaluator) Evaluate(script string) (string, error) {
	wrapped := jswrap.Script(script)

	ctx := e.lib.contextCreate()
	if ctx.isNil() {
		e.logger.Error("context creation failed")
		return "", ErrContextCreateFailed
	}
	defer e.lib.contextRelease(ctx)

	return e.run(ctx, wrapped)
}

// run compiles and executes one wrapped script inside ctx. The source
// string object is released as soon as the evaluate call returns,
// whether or not it raised.
func (e *Evaluator) run(ctx contextRef, script string) (string, error) {
	source := e.lib.stringCreate(script)
	if source.isNil() {
		e.logger.Error("script string allocation failed", "chars", len(script))
		return "", ErrStringAllocFailed
	}

	var exception valueRef
	result := e.lib.evaluateScript(ctx, source, &exception)
	e.lib.stringRelease(source)

	if !exception.isNil() {
		serr := newScriptError(e.stringify(ctx, exception))
		e.logger.Warn("script raised an exception", "error", serr)
		return "", serr
	}
	return e.stringify(ctx, result), nil
}

// stringify converts a native value to host text. A nil value is the
// empty string. A failure in the conversion itself also yields the
// empty string rather than an error, so it can never replace the
// failure already being reported.
func (e *Evaluator) stringify(ctx contextRef, value valueRef) string {
	if value.isNil() {
		return ""
	}

	var exception valueRef
	str := e.lib.valueToStringCopy(ctx, value, &exception)
	if !exception.isNil() || str.isNil() {
		return ""
	}
	defer e.lib.stringRelease(str)

	return e.extract(str)
}

// extract copies the UTF-8 bytes of a native string into host memory.
// The write count includes the terminating NUL, and the library may
// embed NULs for non-string values, so the result is cut at the first
// NUL like a C string. Invalid sequences are replaced, not rejected.
func (e *Evaluator) extract(str stringRef) string {
	size := e.lib.stringMaxUTF8Size(str)
	if size == 0 {
		return ""
	}

	buf := make([]byte, size)
	n := e.lib.stringGetUTF8(str, buf)
	if n == 0 {
		return ""
	}
	buf = buf[:n-1]
	if i := bytes.IndexByte(buf, 0); i >= 0 {
		buf = buf[:i]
	}
	return strings.ToValidUTF8(string(buf), "�")
}
