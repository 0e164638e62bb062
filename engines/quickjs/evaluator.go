// Package quickjs evaluates JavaScript on a QuickJS engine compiled to
// a WASI reactor module and hosted in-process by wazero. No native
// library and no external runtime is needed, only the qjs-wasi.wasm
// build, which is compiled once and instantiated fresh for every call.
//
// console.log inside the module writes to WASI stdout, which is
// captured per call, so output semantics match the subprocess backends.
// Queued microtasks are drained after evaluation; timers are not waited
// on.
package quickjs

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"

	"github.com/robbyt/go-polyjs/internal/helpers"
)

const (
	wasmFilename = "qjs-wasi.wasm"
	wasmPathEnv  = "QJS_WASM_PATH"
)

// Reactor exports of the qjs-wasi build.
const (
	exportInit     = "qjs_init"
	exportEval     = "qjs_eval"
	exportLoopOnce = "qjs_loop_once"
	exportDestroy  = "qjs_destroy"
	exportMalloc   = "malloc"
	exportFree     = "free"
)

// qjs_loop_once results: 0 means more microtasks are queued, a positive
// value is the delay until the next timer, and the rest are below.
const (
	loopIdle  = -1
	loopError = -2
)

// maxLoopIterations bounds microtask draining so a pathological script
// cannot spin the host forever.
const maxLoopIterations = 1024

// Evaluator runs scripts on per-call instances of a compiled QuickJS
// WASI module. The compiled module is shared read-only, so an Evaluator
// is safe for concurrent use.
type Evaluator struct {
	logHandler slog.Handler
	logger     *slog.Logger
	wasmPath   string

	wzr      wazero.Runtime
	compiled wazero.CompiledModule
}

// New locates the qjs-wasi.wasm build, compiles it, and returns an
// Evaluator for it. Resolution order: the WithWasmPath option, the
// QJS_WASM_PATH environment variable, then the usual project locations.
// A missing build wraps ErrWasmNotFound; a build that fails to compile
// wraps ErrWasmInvalid.
func New(opts ...FunctionalOption) (*Evaluator, error) {
	e := &Evaluator{}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, fmt.Errorf("error applying evaluator option: %w", err)
		}
	}
	e.setupLogger()

	path, err := e.resolveWasm()
	if err != nil {
		return nil, err
	}
	e.wasmPath = path

	wasmBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWasmNotFound, err)
	}

	ctx := context.Background()
	// CloseOnContextDone lets a canceled Evaluate context abort the
	// in-flight wasm call instead of spinning until it returns.
	cfg := wazero.NewRuntimeConfig().WithCloseOnContextDone(true)
	wzr := wazero.NewRuntimeWithConfig(ctx, cfg)
	if _, err := wasi_snapshot_preview1.Instantiate(ctx, wzr); err != nil {
		_ = wzr.Close(ctx)
		return nil, fmt.Errorf("instantiate WASI: %w", err)
	}

	compiled, err := wzr.CompileModule(ctx, wasmBytes)
	if err != nil {
		_ = wzr.Close(ctx)
		return nil, fmt.Errorf("%w: %w", ErrWasmInvalid, err)
	}

	e.wzr = wzr
	e.compiled = compiled
	e.logger.Debug("quickjs module compiled", "path", path, "bytes", len(wasmBytes))
	return e, nil
}

func (e *Evaluator) setupLogger() {
	if e.logger != nil {
		e.logHandler = e.logger.Handler()
		return
	}
	e.logHandler, e.logger = helpers.SetupLogger(e.logHandler, "quickjs", "Evaluator")
}

func (e *Evaluator) String() string {
	return "quickjs.Evaluator"
}

// WasmPath reports which module build evaluations run on.
func (e *Evaluator) WasmPath() string {
	return e.wasmPath
}

// Close releases the wazero runtime. The Evaluator is unusable
// afterwards.
func (e *Evaluator) Close(ctx context.Context) error {
	return e.wzr.Close(ctx)
}

func (e *Evaluator) resolveWasm() (string, error) {
	if e.wasmPath != "" {
		return e.wasmPath, nil
	}
	if fromEnv := os.Getenv(wasmPathEnv); fromEnv != "" {
		return fromEnv, nil
	}
	path, err := helpers.FindWasmFile(e.logger, wasmFilename)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrWasmNotFound, err)
	}
	return path, nil
}

// Evaluate runs script in a fresh module instance and returns its
// captured stdout with the final newline removed. A script that raises
// is reported as a *ScriptError carrying the engine's stderr.
func (e *Evaluator) Evaluate(ctx context.Context, script string) (string, error) {
	var stdout, stderr bytes.Buffer
	// Reactor builds export _initialize instead of blocking in _start.
	cfg := wazero.NewModuleConfig().
		WithName("").
		WithStdout(&stdout).
		WithStderr(&stderr).
		WithStartFunctions("_initialize")

	mod, err := e.wzr.InstantiateModule(ctx, e.compiled, cfg)
	if err != nil {
		return "", fmt.Errorf("instantiate quickjs module: %w", err)
	}
	defer mod.Close(ctx)

	e.logger.Debug("running script", "chars", len(script))
	return e.runScript(ctx, mod, script, &stdout, &stderr)
}

func (e *Evaluator) runScript(ctx context.Context, mod api.Module, script string, stdout, stderr *bytes.Buffer) (string, error) {
	rc, err := callI32(ctx, mod, exportInit)
	if err != nil {
		return "", err
	}
	if rc != 0 {
		return "", fmt.Errorf("%w: %s returned %d", ErrInitFailed, exportInit, rc)
	}
	defer func() {
		_, _ = callI32(ctx, mod, exportDestroy)
	}()

	codePtr, err := writeScript(ctx, mod, script)
	if err != nil {
		return "", err
	}
	defer func() {
		_, _ = callI32(ctx, mod, exportFree, uint64(codePtr))
	}()

	rc, err = callI32(ctx, mod, exportEval, uint64(codePtr), uint64(len(script)), 0, 0)
	if err != nil {
		return "", err
	}
	if rc != 0 {
		serr := newScriptError(strings.TrimSpace(stderr.String()), nil)
		e.logger.Warn("script raised an exception", "error", serr)
		return "", serr
	}

	if err := drainLoop(ctx, mod); err != nil {
		serr := newScriptError(strings.TrimSpace(stderr.String()), err)
		e.logger.Warn("event loop failed", "error", serr)
		return "", serr
	}

	out := strings.TrimSuffix(stdout.String(), "\n")
	return out, nil
}

// writeScript copies script into module memory, NUL-terminated as
// JS_Eval requires. The caller frees the returned pointer.
func writeScript(ctx context.Context, mod api.Module, script string) (uint32, error) {
	ptr, err := callI32(ctx, mod, exportMalloc, uint64(len(script)+1))
	if err != nil {
		return 0, err
	}
	if ptr == 0 {
		return 0, fmt.Errorf("%s returned null for %d bytes", exportMalloc, len(script)+1)
	}

	buf := make([]byte, 0, len(script)+1)
	buf = append(buf, script...)
	buf = append(buf, 0)
	if !mod.Memory().Write(uint32(ptr), buf) {
		_, _ = callI32(ctx, mod, exportFree, uint64(ptr))
		return 0, fmt.Errorf("script of %d bytes does not fit in module memory", len(script))
	}
	return uint32(ptr), nil
}

// drainLoop runs queued microtasks until the engine reports idle, so
// promise callbacks get to print. Evaluation is synchronous, so a
// pending timer is left unfired rather than slept on.
func drainLoop(ctx context.Context, mod api.Module) error {
	if mod.ExportedFunction(exportLoopOnce) == nil {
		return nil
	}
	for i := 0; i < maxLoopIterations; i++ {
		rc, err := callI32(ctx, mod, exportLoopOnce)
		if err != nil {
			return err
		}
		switch rc {
		case 0:
			// more microtasks queued
		case loopError:
			return fmt.Errorf("event loop reported an error")
		case loopIdle:
			return nil
		default:
			// positive delay until the next timer
			return nil
		}
	}
	return nil
}

// callI32 invokes an exported function and returns its i32 result, or
// zero for void exports.
func callI32(ctx context.Context, mod api.Module, name string, args ...uint64) (int32, error) {
	fn := mod.ExportedFunction(name)
	if fn == nil {
		return 0, fmt.Errorf("%w: missing export %q", ErrWasmInvalid, name)
	}
	res, err := fn.Call(ctx, args...)
	if err != nil {
		return 0, fmt.Errorf("call %s: %w", name, err)
	}
	if len(res) == 0 {
		return 0, nil
	}
	return int32(res[0]), nil
}
