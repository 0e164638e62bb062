package jscore

import "errors"

var (
	ErrEngineUnavailable   = errors.New("javascriptcore library is not available")
	ErrContextCreateFailed = errors.New("failed to create javascriptcore context")
	ErrStringAllocFailed   = errors.New("failed to allocate script string")
)

// genericExceptionMessage is reported when the engine raises but the
// exception value itself cannot be stringified.
const genericExceptionMessage = "JavaScriptCore raised an exception"

// ScriptError carries the engine's stringified exception for one failed
// evaluation.
type ScriptError struct {
	Message string
}

func newScriptError(message string) *ScriptError {
	if message == "" {
		message = genericExceptionMessage
	}
	return &ScriptError{Message: message}
}

func (e *ScriptError) Error() string {
	return e.Message
}
