package deno

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeFakeRuntime drops an executable shell script that stands in for
// the deno binary, so process handling can be tested without deno
// installed.
func writeFakeRuntime(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake runtime scripts need a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "deno")
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

func TestEvaluate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("captures stdout without the final newline", func(t *testing.T) {
		path := writeFakeRuntime(t, "#!/bin/sh\ncat > /dev/null\nprintf 'a\n1 2\n'\n")
		eval, err := New(WithExecPath(path))
		require.NoError(t, err)

		out, err := eval.Evaluate(ctx, "console.log('a'); console.log(1, 2);")
		require.NoError(t, err)
		assert.Equal(t, "a\n1 2", out)
	})

	t.Run("script arrives on stdin", func(t *testing.T) {
		path := writeFakeRuntime(t, "#!/bin/sh\ncat\n")
		eval, err := New(WithExecPath(path))
		require.NoError(t, err)

		out, err := eval.Evaluate(ctx, "console.log(42);")
		require.NoError(t, err)
		assert.Equal(t, "console.log(42);", out)
	})

	t.Run("runs with the expected flags", func(t *testing.T) {
		path := writeFakeRuntime(t, "#!/bin/sh\ncat > /dev/null\nprintf '%s ' \"$@\"\n")
		eval, err := New(WithExecPath(path))
		require.NoError(t, err)

		out, err := eval.Evaluate(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, "run --quiet --no-prompt -", strings.TrimSpace(out))
	})

	t.Run("non-zero exit surfaces stderr", func(t *testing.T) {
		path := writeFakeRuntime(t, "#!/bin/sh\ncat > /dev/null\necho 'Uncaught Error: boom' >&2\nexit 1\n")
		eval, err := New(WithExecPath(path))
		require.NoError(t, err)

		_, err = eval.Evaluate(ctx, "throw new Error('boom')")
		require.Error(t, err)

		var serr *ScriptError
		require.ErrorAs(t, err, &serr)
		assert.Contains(t, serr.Message, "boom")
	})

	t.Run("canceled context kills the child", func(t *testing.T) {
		path := writeFakeRuntime(t, "#!/bin/sh\nsleep 5\n")
		eval, err := New(WithExecPath(path))
		require.NoError(t, err)

		canceled, cancel := context.WithCancel(context.Background())
		cancel()

		_, err = eval.Evaluate(canceled, "console.log(1);")
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestEvaluatorAccessors(t *testing.T) {
	t.Parallel()

	path := writeFakeRuntime(t, "#!/bin/sh\nexit 0\n")
	eval, err := New(WithExecPath(path))
	require.NoError(t, err)
	assert.Equal(t, path, eval.ExecPath())
	assert.Equal(t, "deno.Evaluator", eval.String())
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

	t.Run("empty exec path rejected", func(t *testing.T) {
		_, err := New(WithExecPath(""))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "exec path cannot be empty")
	})
}

// TestEvaluateLiveRuntime exercises a real deno binary when one is on
// the PATH; otherwise it skips.
func TestEvaluateLiveRuntime(t *testing.T) {
	t.Parallel()

	eval, err := New()
	if err != nil {
		if errors.Is(err, ErrRuntimeNotFound) {
			t.Skip("deno is not installed on this host")
		}
		t.Fatalf("unexpected construction error: %v", err)
	}

	ctx := context.Background()

	t.Run("console output is captured in order", func(t *testing.T) {
		out, err := eval.Evaluate(ctx, "console.log('a'); console.log(1, 2);")
		require.NoError(t, err)
		assert.Equal(t, "a\n1 2", out)
	})

	t.Run("empty script yields empty output", func(t *testing.T) {
		out, err := eval.Evaluate(ctx, "")
		require.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("thrown errors surface their message", func(t *testing.T) {
		_, err := eval.Evaluate(ctx, "throw new Error('boom')")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "boom")
	})
}
