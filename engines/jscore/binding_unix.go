//go:build darwin || linux

package jscore

import (
	"fmt"

	"github.com/ebitengine/purego"
)

// libraryBinding drives a real JavaScriptCore shared library through
// purego-registered entry points. Registration fixes the argument and
// return types of each C function once, at load time, so every later
// call is an ordinary typed Go call.
type libraryBinding struct {
	libPath string

	jsGlobalContextCreate             func(group uintptr) uintptr
	jsGlobalContextRelease            func(ctx uintptr)
	jsStringCreateWithUTF8CString     func(script string) uintptr
	jsStringRelease                   func(str uintptr)
	jsEvaluateScript                  func(ctx, script, thisObject, sourceURL uintptr, startingLine int32, exception *uintptr) uintptr
	jsValueToStringCopy               func(ctx, value uintptr, exception *uintptr) uintptr
	jsStringGetMaximumUTF8CStringSize func(str uintptr) uint64
	jsStringGetUTF8CString            func(str uintptr, buf []byte, bufSize uint64) uint64
}

// openLibrary tries each discovery candidate in order and binds the
// entry points of the first one that loads. Failures for individual
// candidates are swallowed so older packaging generations still match.
func openLibrary() (binding, error) {
	for _, name := range candidateLibraries() {
		handle, err := purego.Dlopen(name, purego.RTLD_LAZY|purego.RTLD_GLOBAL)
		if err != nil {
			continue
		}
		return bindFunctions(name, handle), nil
	}
	return nil, fmt.Errorf("%w: no candidate library could be loaded", ErrEngineUnavailable)
}

func bindFunctions(path string, handle uintptr) *libraryBinding {
	lib := &libraryBinding{libPath: path}
	purego.RegisterLibFunc(&lib.jsGlobalContextCreate, handle, "JSGlobalContextCreate")
	purego.RegisterLibFunc(&lib.jsGlobalContextRelease, handle, "JSGlobalContextRelease")
	purego.RegisterLibFunc(&lib.jsStringCreateWithUTF8CString, handle, "JSStringCreateWithUTF8CString")
	purego.RegisterLibFunc(&lib.jsStringRelease, handle, "JSStringRelease")
	purego.RegisterLibFunc(&lib.jsEvaluateScript, handle, "JSEvaluateScript")
	purego.RegisterLibFunc(&lib.jsValueToStringCopy, handle, "JSValueToStringCopy")
	purego.RegisterLibFunc(&lib.jsStringGetMaximumUTF8CStringSize, handle, "JSStringGetMaximumUTF8CStringSize")
	purego.RegisterLibFunc(&lib.jsStringGetUTF8CString, handle, "JSStringGetUTF8CString")
	return lib
}

func (l *libraryBinding) contextCreate() contextRef {
	return contextRef(l.jsGlobalContextCreate(0))
}

func (l *libraryBinding) contextRelease(ctx contextRef) {
	l.jsGlobalContextRelease(uintptr(ctx))
}

func (l *libraryBinding) stringCreate(script string) stringRef {
	return stringRef(l.jsStringCreateWithUTF8CString(script))
}

func (l *libraryBinding) stringRelease(str stringRef) {
	l.jsStringRelease(uintptr(str))
}

func (l *libraryBinding) evaluateScript(ctx contextRef, script stringRef, exception *valueRef) valueRef {
	var exc uintptr
	result := l.jsEvaluateScript(uintptr(ctx), uintptr(script), 0, 0, 0, &exc)
	*exception = valueRef(exc)
	return valueRef(result)
}

func (l *libraryBinding) valueToStringCopy(ctx contextRef, value valueRef, exception *valueRef) stringRef {
	var exc uintptr
	str := l.jsValueToStringCopy(uintptr(ctx), uintptr(value), &exc)
	*exception = valueRef(exc)
	return stringRef(str)
}

func (l *libraryBinding) stringMaxUTF8Size(str stringRef) uint64 {
	return l.jsStringGetMaximumUTF8CStringSize(uintptr(str))
}

func (l *libraryBinding) stringGetUTF8(str stringRef, buf []byte) uint64 {
	return l.jsStringGetUTF8CString(uintptr(str), buf, uint64(len(buf)))
}

func (l *libraryBinding) path() string {
	return l.libPath
}
