//go:build !darwin && !linux

package jscore

import "fmt"

// openLibrary reports permanent unavailability on platforms where no
// JavaScriptCore packaging exists to discover.
func openLibrary() (binding, error) {
	return nil, fmt.Errorf("%w: unsupported platform", ErrEngineUnavailable)
}
