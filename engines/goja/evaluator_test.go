package goja

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate(t *testing.T) {
	t.Parallel()

	eval, err := New()
	require.NoError(t, err)

	t.Run("console output is captured in order", func(t *testing.T) {
		out, err := eval.Evaluate("console.log('a'); console.log(1, 2);")
		require.NoError(t, err)
		assert.Equal(t, "a\n1 2", out)
	})

	t.Run("empty script yields empty output", func(t *testing.T) {
		out, err := eval.Evaluate("")
		require.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("script without console calls yields empty output", func(t *testing.T) {
		out, err := eval.Evaluate("const x = 40 + 2;")
		require.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("strings pass through unquoted", func(t *testing.T) {
		out, err := eval.Evaluate(`console.log('say "hi"');`)
		require.NoError(t, err)
		assert.Equal(t, `say "hi"`, out)
	})

	t.Run("objects serialize structurally", func(t *testing.T) {
		out, err := eval.Evaluate("console.log({a: 1, b: [2, 3]});")
		require.NoError(t, err)
		assert.Equal(t, `{"a":1,"b":[2,3]}`, out)
	})

	t.Run("unserializable values fall back to String", func(t *testing.T) {
		out, err := eval.Evaluate("const o = {}; o.self = o; console.log(o);")
		require.NoError(t, err)
		assert.Equal(t, "[object Object]", out)
	})

	t.Run("percent signs survive", func(t *testing.T) {
		out, err := eval.Evaluate("console.log('100%s');")
		require.NoError(t, err)
		assert.Equal(t, "100%s", out)
	})

	t.Run("thrown errors surface their message", func(t *testing.T) {
		_, err := eval.Evaluate("throw new Error('boom')")
		require.Error(t, err)

		var serr *ScriptError
		require.ErrorAs(t, err, &serr)
		assert.Contains(t, serr.Message, "boom")
	})

	t.Run("syntax errors are reported", func(t *testing.T) {
		_, err := eval.Evaluate("const const = 1;")
		require.Error(t, err)

		var serr *ScriptError
		require.ErrorAs(t, err, &serr)
		assert.NotEmpty(t, serr.Message)
	})

	t.Run("calls are isolated from each other", func(t *testing.T) {
		_, err := eval.Evaluate("globalThis.leak = 'set';")
		require.NoError(t, err)

		out, err := eval.Evaluate("console.log(typeof globalThis.leak);")
		require.NoError(t, err)
		assert.Equal(t, "undefined", out)
	})
}

func TestEvaluatorString(t *testing.T) {
	t.Parallel()

	eval, err := New()
	require.NoError(t, err)
	assert.Equal(t, "goja.Evaluator", eval.String())
}

func TestNewOptionErrors(t *testing.T) {
	t.Parallel()

	t.Run("nil handler rejected", func(t *testing.T) {
		_, err := New(WithLogHandler(nil))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "log handler cannot be nil")
	})

	t.Run("nil logger rejected", func(t *testing.T) {
		_, err := New(WithLogger(nil))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "logger cannot be nil")
	})
}
