package platform

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/robbyt/go-polyjs/internal/helpers"
)

// Registry holds runtime backends and routes request batches to the highest
// preference backend that is available on this host.
//
// Registration happens during startup; afterwards the registry is read-only
// and safe for concurrent Run calls.
type Registry struct {
	logHandler slog.Handler
	logger     *slog.Logger

	mu      sync.RWMutex
	entries map[string]Registration
}

// NewRegistry creates an empty Registry. A nil handler falls back to the
// default logging configuration.
func NewRegistry(handler slog.Handler) *Registry {
	handler, logger := helpers.SetupLogger(handler, "polyjs", "Registry")

	return &Registry{
		logHandler: handler,
		logger:     logger,
		entries:    make(map[string]Registration),
	}
}

// Register adds a backend. The Registration must carry a name and a run
// function; duplicate names are rejected.
func (r *Registry) Register(reg Registration) error {
	if reg.Name == "" {
		return fmt.Errorf("%w: name is required", ErrRegistrationInvalid)
	}
	if reg.Run == nil {
		return fmt.Errorf("%w: %s has no run function", ErrRegistrationInvalid, reg.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.entries[reg.Name]; exists {
		return fmt.Errorf("%w: %s", ErrProviderExists, reg.Name)
	}
	r.entries[reg.Name] = reg
	return nil
}

// Get retrieves a Registration by name.
func (r *Registry) Get(name string) (Registration, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	reg, ok := r.entries[name]
	return reg, ok
}

// Names returns the registered backend names in selection order: preference
// descending, name ascending on ties.
func (r *Registry) Names() []string {
	ordered := r.byPreference(nil)
	names := make([]string, 0, len(ordered))
	for _, reg := range ordered {
		names = append(names, reg.Name)
	}
	return names
}

// Run evaluates reqs on the best available backend. Backends are tried in
// selection order; one whose error chain matches ErrUnavailable is skipped
// and the next is tried. Any other failure means the script itself failed,
// so it is returned immediately rather than retried on a different backend.
// If every backend is unavailable, ErrNoProvider is returned.
func (r *Registry) Run(ctx context.Context, reqs []Request) ([]Result, error) {
	for _, reg := range r.byPreference(reqs) {
		results, err := reg.Run(ctx, reqs)
		if err == nil {
			r.logger.DebugContext(ctx, "batch complete", "provider", reg.Name, "requests", len(reqs))
			return results, nil
		}
		if errors.Is(err, ErrUnavailable) {
			r.logger.DebugContext(ctx, "provider unavailable, trying next", "provider", reg.Name, "error", err)
			continue
		}
		return nil, err
	}
	return nil, ErrNoProvider
}

// byPreference snapshots the registrations sorted by score for this batch.
func (r *Registry) byPreference(reqs []Request) []Registration {
	r.mu.RLock()
	ordered := make([]Registration, 0, len(r.entries))
	for _, reg := range r.entries {
		ordered = append(ordered, reg)
	}
	r.mu.RUnlock()

	scores := make(map[string]int, len(ordered))
	for _, reg := range ordered {
		scores[reg.Name] = reg.preference(reqs)
	}
	sort.Slice(ordered, func(i, j int) bool {
		si, sj := scores[ordered[i].Name], scores[ordered[j].Name]
		if si != sj {
			return si > sj
		}
		return ordered[i].Name < ordered[j].Name
	})
	return ordered
}
