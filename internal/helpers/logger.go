package helpers

import (
	"log/slog"
	"os"
)

// SetupLogger creates a configured logger for a runtime engine implementation.
// If the provided handler is nil, a default text handler is created and
// grouped under the engine name so log lines remain attributable.
//
// Parameters:
//   - handler: the slog.Handler to use, or nil for defaults
//   - engine: the runtime engine name (e.g. "javascriptcore", "goja")
//   - component: optional component group within the engine
//
// Returns the handler (possibly the newly created default) and a logger
// built from it.
func SetupLogger(handler slog.Handler, engine string, component string) (slog.Handler, *slog.Logger) {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, nil).WithGroup(engine)
	}

	if component != "" {
		return handler, slog.New(handler.WithGroup(component))
	}
	return handler, slog.New(handler)
}
