package helpers

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// FindWasmFile searches for a WASM engine build in various likely
// locations: the current directory, a local testdata directory, and the
// quickjs engine's testdata seen from the project root or from inside
// the package.
//
// Parameters:
//   - logger: Optional logger for verbose output
//   - filename: the WASM file name to look for (e.g. "qjs-wasi.wasm")
//
// Returns:
//   - Absolute path to the found WASM file
//   - Error if no file is found, listing every path that was checked
func FindWasmFile(logger *slog.Logger, filename string) (string, error) {
	paths := []string{
		filename,
		filepath.Join("testdata", filename),
		filepath.Join("engines", "quickjs", "testdata", filename),
		filepath.Join("..", "..", "engines", "quickjs", "testdata", filename),
	}

	if logger != nil {
		logger.Info("Searching for WASM file in multiple locations", "filename", filename)
	}

	checkedPaths := []string{}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			absPath, err := filepath.Abs(path)
			if err == nil {
				if logger != nil {
					logger.Info("Found WASM file", "path", absPath)
				}
				return absPath, nil
			}
		}
		// Store the absolute path for error reporting
		absPath, err := filepath.Abs(path)
		if err != nil {
			absPath = path
		}
		checkedPaths = append(checkedPaths, absPath)
	}

	errMsg := filename + " not found in any of the expected locations:\n"
	for _, path := range checkedPaths {
		errMsg += "   - " + path + "\n"
	}

	return "", fmt.Errorf("%s", errMsg)
}
