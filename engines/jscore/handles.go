package jscore

// Native JavaScriptCore handles are opaque pointers owned by the engine.
// Each kind gets its own type so a context can never be passed where a
// string or value belongs, and so ownership rules stay visible at call
// sites: every handle created through the binding is released exactly
// once, before the context that produced it goes away.

// contextRef is a JSGlobalContextRef, one isolated global environment.
type contextRef uintptr

// isNil reports whether the handle is null (creation failed).
func (r contextRef) isNil() bool { return r == 0 }

// stringRef is a JSStringRef, a native UTF-16 string object.
type stringRef uintptr

// isNil reports whether the handle is null (allocation failed).
func (r stringRef) isNil() bool { return r == 0 }

// valueRef is a JSValueRef: an evaluation result or an exception. It is
// only valid while its owning context is still open.
type valueRef uintptr

// isNil reports whether the handle is null.
func (r valueRef) isNil() bool { return r == 0 }
