// Package polyjs runs JavaScript snippets on the best execution
// backend available on the host and returns their console output.
//
// Four interchangeable backends are built in, tried in preference
// order: the native JavaScriptCore library driven over its C API, a
// deno runtime found on the PATH, a QuickJS build hosted as a WASI
// module, and the pure-Go goja interpreter as the floor. A backend that
// is not usable on the host is skipped at run time, so evaluation
// degrades instead of failing when nothing native is installed.
package polyjs

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robbyt/go-polyjs/engines/deno"
	"github.com/robbyt/go-polyjs/engines/goja"
	"github.com/robbyt/go-polyjs/engines/jscore"
	"github.com/robbyt/go-polyjs/engines/quickjs"
	"github.com/robbyt/go-polyjs/platform"
)

// DefaultRegistry returns a registry with every built-in backend
// registered. The handler may be nil, in which case each backend logs
// to stderr with its own defaults.
func DefaultRegistry(handler slog.Handler) (*platform.Registry, error) {
	registry := platform.NewRegistry(handler)
	for _, reg := range []platform.Registration{
		jscore.Register(handler),
		deno.Register(handler),
		quickjs.Register(handler),
		goja.Register(handler),
	} {
		if err := registry.Register(reg); err != nil {
			return nil, fmt.Errorf("register %s: %w", reg.Name, err)
		}
	}
	return registry, nil
}

// Evaluate runs one script through a default registry and returns its
// captured console.log output. Callers evaluating repeatedly should
// build a registry once with DefaultRegistry and call Run on it
// instead, so backend discovery is not repeated.
func Evaluate(ctx context.Context, handler slog.Handler, script string) (string, error) {
	registry, err := DefaultRegistry(handler)
	if err != nil {
		return "", err
	}

	results, err := registry.Run(ctx, []platform.Request{{ID: "script", Script: script}})
	if err != nil {
		return "", err
	}
	if len(results) != 1 {
		return "", fmt.Errorf("expected one result, got %d", len(results))
	}
	return results[0].Output, nil
}
