package helpers

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLogger(t *testing.T) {
	t.Parallel()

	t.Run("nil handler creates default", func(t *testing.T) {
		handler, logger := SetupLogger(nil, "goja", "")
		require.NotNil(t, handler)
		require.NotNil(t, logger)
	})

	t.Run("provided handler is kept", func(t *testing.T) {
		var buf bytes.Buffer
		in := slog.NewTextHandler(&buf, nil)

		handler, logger := SetupLogger(in, "javascriptcore", "Evaluator")
		require.NotNil(t, logger)
		assert.Equal(t, in, handler)

		// Group names only appear as attribute key prefixes.
		logger.Info("bound", "path", "/lib/jsc")
		assert.Contains(t, buf.String(), "bound")
		assert.Contains(t, buf.String(), "Evaluator.path=/lib/jsc")
	})

	t.Run("empty component skips grouping", func(t *testing.T) {
		var buf bytes.Buffer
		in := slog.NewTextHandler(&buf, nil)

		_, logger := SetupLogger(in, "deno", "")
		logger.Info("ready", "engine", "deno")
		assert.Contains(t, buf.String(), "engine=deno")
	})
}
