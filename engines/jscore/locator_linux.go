//go:build linux

package jscore

// candidateLibraries returns the ordered discovery list for Linux: the
// webkitgtk soname for each of the three packaging generations still
// found in distribution repositories, newest first.
func candidateLibraries() []string {
	return []string{
		"libjavascriptcoregtk-4.1.so.0",
		"libjavascriptcoregtk-4.0.so.18",
		"libjavascriptcoregtk-3.0.so.0",
	}
}
