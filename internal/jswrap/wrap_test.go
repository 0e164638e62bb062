package jswrap

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScript(t *testing.T) {
	t.Parallel()

	t.Run("embeds source verbatim", func(t *testing.T) {
		src := `console.log('a'); console.log(1, 2);`
		wrapped := Script(src)

		assert.Contains(t, wrapped, src)
		assert.True(t, strings.HasPrefix(wrapped, "(() => {"))
		assert.True(t, strings.HasSuffix(wrapped, "})()"))
	})

	t.Run("declares accumulator before source", func(t *testing.T) {
		wrapped := Script("x = 1;")

		decl := strings.Index(wrapped, "const __console_lines = [];")
		src := strings.Index(wrapped, "x = 1;")
		ret := strings.Index(wrapped, "return __console_lines.join('\\n');")

		require.GreaterOrEqual(t, decl, 0)
		require.Greater(t, src, decl)
		require.Greater(t, ret, src)
	})

	t.Run("preserves existing console members", func(t *testing.T) {
		wrapped := Script("")
		assert.Contains(t, wrapped, "{ ...existingConsole, log: __console_log }")
	})

	t.Run("strict mode", func(t *testing.T) {
		assert.Contains(t, Script(""), "'use strict';")
	})

	t.Run("percent signs survive", func(t *testing.T) {
		// The wrapper is assembled by concatenation, so fmt verbs in the
		// source must come through untouched.
		src := `console.log('100%s done');`
		assert.Contains(t, Script(src), src)
	})
}
