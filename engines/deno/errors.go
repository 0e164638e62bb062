package deno

import "errors"

var ErrRuntimeNotFound = errors.New("deno runtime not found in PATH")

// ScriptError carries the child process's stderr for one failed
// evaluation.
type ScriptError struct {
	Message string
	Cause   error
}

func newScriptError(stderr string, cause error) *ScriptError {
	if stderr == "" {
		stderr = cause.Error()
	}
	return &ScriptError{Message: stderr, Cause: cause}
}

func (e *ScriptError) Error() string {
	return e.Message
}

func (e *ScriptError) Unwrap() error {
	return e.Cause
}
