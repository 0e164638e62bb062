package platform

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable marks a backend that cannot run on this host (missing
	// native library, binary, or module file). The registry skips backends
	// whose error chain matches it and tries the next one.
	ErrUnavailable = errors.New("runtime unavailable")

	// ErrNoProvider is returned by Registry.Run when every registered
	// backend reported unavailability.
	ErrNoProvider = errors.New("no usable runtime provider")

	// ErrProviderExists is returned when registering a duplicate name.
	ErrProviderExists = errors.New("provider already registered")

	// ErrRegistrationInvalid is returned for a Registration missing its
	// name or run function.
	ErrRegistrationInvalid = errors.New("invalid provider registration")
)

// ProviderError wraps a backend failure with the backend's name, so a caller
// choosing among several backends can tell which one failed and whether the
// backend is broken (ErrUnavailable in the chain) or the script itself
// failed (anything else).
type ProviderError struct {
	// Provider is the backend name from its Registration.
	Provider string

	// Err is the underlying failure.
	Err error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s provider: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// NewProviderError wraps err with the backend name. A nil err returns nil.
func NewProviderError(provider string, err error) error {
	if err == nil {
		return nil
	}
	return &ProviderError{Provider: provider, Err: err}
}

// NewUnavailableError wraps cause as a ProviderError whose chain matches
// ErrUnavailable. The cause may be nil when there is nothing more specific
// to report.
func NewUnavailableError(provider string, cause error) error {
	if cause == nil {
		return &ProviderError{Provider: provider, Err: ErrUnavailable}
	}
	return &ProviderError{Provider: provider, Err: fmt.Errorf("%w: %w", ErrUnavailable, cause)}
}
