package goja

import (
	"errors"

	gojaLib "github.com/dop251/goja"
)

// ScriptError carries the engine's exception for one failed evaluation.
type ScriptError struct {
	Message string
	Cause   error
}

func (e *ScriptError) Error() string {
	return e.Message
}

func (e *ScriptError) Unwrap() error {
	return e.Cause
}

// toScriptError extracts the thrown value's own string when the error
// is a JavaScript exception, so the message matches what the script
// raised rather than goja's stack-annotated rendering.
func toScriptError(err error) *ScriptError {
	var exc *gojaLib.Exception
	if errors.As(err, &exc) {
		if v := exc.Value(); v != nil {
			return &ScriptError{Message: v.String(), Cause: err}
		}
	}
	return &ScriptError{Message: err.Error(), Cause: err}
}
