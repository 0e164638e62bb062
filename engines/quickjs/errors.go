package quickjs

import "errors"

var (
	ErrWasmNotFound = errors.New("quickjs wasm build not found")
	ErrWasmInvalid  = errors.New("quickjs wasm build is not usable")
	ErrInitFailed   = errors.New("quickjs runtime initialization failed")
)

// ScriptError carries the engine's stderr for one failed evaluation.
type ScriptError struct {
	Message string
	Cause   error
}

func newScriptError(stderr string, cause error) *ScriptError {
	if stderr == "" {
		if cause != nil {
			stderr = cause.Error()
		} else {
			stderr = "quickjs evaluation failed"
		}
	}
	return &ScriptError{Message: stderr, Cause: cause}
}

func (e *ScriptError) Error() string {
	return e.Message
}

func (e *ScriptError) Unwrap() error {
	return e.Cause
}
