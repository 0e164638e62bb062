package jscore

import "sync"

// binding is the typed surface over the native entry points the
// Evaluator needs: context lifecycle, string lifecycle, evaluation, and
// value-to-text extraction. The production implementation drives the
// shared library found by the locator; tests substitute a counting fake
// so handle accounting can be verified without a native engine present.
type binding interface {
	// contextCreate returns a fresh global execution context, or a nil
	// ref when the engine cannot allocate one.
	contextCreate() contextRef
	contextRelease(ctx contextRef)

	// stringCreate copies script into a native string object. A nil ref
	// means the allocation failed.
	stringCreate(script string) stringRef
	stringRelease(str stringRef)

	// evaluateScript compiles and runs a source string in ctx. When the
	// script raises, *exception is set non-nil and the returned value
	// ref is meaningless; callers must branch on the exception first.
	evaluateScript(ctx contextRef, script stringRef, exception *valueRef) valueRef

	// valueToStringCopy converts a value to a new native string. The
	// conversion can itself raise, reported through *exception.
	valueToStringCopy(ctx contextRef, value valueRef, exception *valueRef) stringRef

	// stringMaxUTF8Size returns an upper bound on the UTF-8 encoding of
	// str, including the terminating NUL.
	stringMaxUTF8Size(str stringRef) uint64

	// stringGetUTF8 fills buf with the UTF-8 encoding of str and
	// returns the number of bytes written, including the NUL.
	stringGetUTF8(str stringRef, buf []byte) uint64

	// path identifies which candidate library was loaded.
	path() string
}

// loadLibrary memoizes the library search: the first call walks the
// candidate list and binds the entry points, every later call reuses
// the same binding or the same failure. The engine does not support
// unloading, so a successful load lives for the process and a failed
// one is permanent.
var loadLibrary = sync.OnceValues(openLibrary)
