package goja

import (
	"context"
	"log/slog"
	"sync"

	"github.com/robbyt/go-polyjs/platform"
)

const (
	// ProviderName identifies this backend to the selection registry.
	ProviderName = "goja"

	// Preference ranks the interpreter below every compiled engine; it
	// exists so evaluation still works when nothing faster is present.
	Preference = 100
)

// Register returns the platform registration for this engine.
func Register(handler slog.Handler) platform.Registration {
	return newRegistration(func() (*Evaluator, error) {
		if handler == nil {
			return New()
		}
		return New(WithLogHandler(handler))
	})
}

func newRegistration(build func() (*Evaluator, error)) platform.Registration {
	var (
		once sync.Once
		eval *Evaluator
		err  error
	)
	buildOnce := func() (*Evaluator, error) {
		once.Do(func() {
			eval, err = build()
		})
		return eval, err
	}

	return platform.Registration{
		Name:       ProviderName,
		Preference: func([]platform.Request) int { return Preference },
		Run: func(ctx context.Context, reqs []platform.Request) ([]platform.Result, error) {
			eval, err := buildOnce()
			if err != nil {
				return nil, platform.NewUnavailableError(ProviderName, err)
			}

			results := make([]platform.Result, 0, len(reqs))
			for _, req := range reqs {
				if err := ctx.Err(); err != nil {
					return nil, err
				}
				output, err := eval.Evaluate(req.Script)
				if err != nil {
					return nil, platform.NewProviderError(ProviderName, err)
				}
				results = append(results, platform.Result{ID: req.ID, Output: output})
			}
			return results, nil
		},
	}
}
