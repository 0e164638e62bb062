//go:build darwin

package jscore

// candidateLibraries returns the ordered discovery list for macOS: the
// absolute system framework path, then the framework-relative name so
// the dynamic linker's own search paths get a chance.
func candidateLibraries() []string {
	return []string{
		"/System/Library/Frameworks/JavaScriptCore.framework/JavaScriptCore",
		"JavaScriptCore.framework/JavaScriptCore",
	}
}
