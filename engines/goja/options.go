package goja

import (
	"fmt"
	"log/slog"
)

// FunctionalOption is a function that configures an Evaluator instance
type FunctionalOption func(*Evaluator) error

// WithLogHandler creates an option to set the log handler for the
// evaluator. This is the preferred option for logging configuration as
// it provides more flexibility through the slog.Handler interface.
func WithLogHandler(handler slog.Handler) FunctionalOption {
	return func(e *Evaluator) error {
		if handler == nil {
			return fmt.Errorf("log handler cannot be nil")
		}
		e.logHandler = handler
		// Clear logger if handler is explicitly set
		e.logger = nil
		return nil
	}
}

// WithLogger creates an option to set a specific logger for the
// evaluator. This is less flexible than WithLogHandler but allows users
// to customize their logging group configuration.
func WithLogger(logger *slog.Logger) FunctionalOption {
	return func(e *Evaluator) error {
		if logger == nil {
			return fmt.Errorf("logger cannot be nil")
		}
		e.logger = logger
		// Clear handler if logger is explicitly set
		e.logHandler = nil
		return nil
	}
}
