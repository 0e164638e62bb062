package goja

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robbyt/go-polyjs/platform"
)

func TestRegisterMetadata(t *testing.T) {
	t.Parallel()

	reg := Register(nil)
	assert.Equal(t, "goja", reg.Name)
	assert.Equal(t, 100, reg.Preference(nil))
	assert.NotNil(t, reg.Run)
}

func TestRegistrationRun(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("maps each request to a result", func(t *testing.T) {
		reg := Register(nil)

		results, err := reg.Run(ctx, []platform.Request{
			{ID: "one", Script: "console.log('first');"},
			{ID: "two", Script: "console.log('second');"},
		})
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, platform.Result{ID: "one", Output: "first"}, results[0])
		assert.Equal(t, platform.Result{ID: "two", Output: "second"}, results[1])
	})

	t.Run("script failure is a provider error", func(t *testing.T) {
		reg := Register(nil)

		_, err := reg.Run(ctx, []platform.Request{
			{ID: "bad", Script: "throw new Error('boom')"},
		})
		require.Error(t, err)

		var provErr *platform.ProviderError
		require.ErrorAs(t, err, &provErr)
		assert.Equal(t, "goja", provErr.Provider)
		assert.Contains(t, err.Error(), "boom")
		assert.NotErrorIs(t, err, platform.ErrUnavailable)
	})

	t.Run("canceled context stops the batch", func(t *testing.T) {
		reg := Register(nil)

		canceled, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := reg.Run(canceled, []platform.Request{{ID: "a", Script: "console.log(1);"}})
		assert.ErrorIs(t, err, context.Canceled)
	})
}
