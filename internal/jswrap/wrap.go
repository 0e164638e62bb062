// Package jswrap rewrites a JavaScript snippet so its console output can be
// recovered from an engine that returns exactly one value per evaluation.
//
// The wrapped form is an immediately-invoked function expression that
// replaces console.log with an accumulator and evaluates to the accumulated
// lines joined by newlines. Engines whose evaluate primitive follows the
// "last expression value" convention (JavaScriptCore's C API, goja's
// RunString) run the wrapped script and read the capture from the result.
package jswrap

import "strings"

// prologue declares the line accumulator and installs the replacement
// console.log. Existing members of the console object are preserved; only
// log is swapped. Each call stringifies its arguments (strings pass through,
// everything else is JSON.stringify'd with a String() fallback when
// serialization throws) and joins them with a single space.
const prologue = `(() => {
    'use strict';
    const __console_lines = [];
    const __console_log = (...args) => __console_lines.push(args.map((arg) => {
        if (typeof arg === 'string') {
            return arg;
        }
        try {
            return JSON.stringify(arg);
        } catch (err) {
            return String(arg);
        }
    }).join(' '));
    const existingConsole = globalThis.console || {};
    globalThis.console = { ...existingConsole, log: __console_log };
`

// epilogue yields the accumulated lines as the IIFE's value.
const epilogue = `    return __console_lines.join('\n');
})()`

// Script embeds src verbatim between the capture prologue and epilogue.
// The result is a single expression whose value is the newline-joined
// console.log output produced while src ran, or the empty string when
// nothing was logged.
func Script(src string) string {
	var b strings.Builder
	b.Grow(len(prologue) + len(src) + len(epilogue) + 8)
	b.WriteString(prologue)
	b.WriteString("    ")
	b.WriteString(src)
	b.WriteString("\n")
	b.WriteString(epilogue)
	return b.String()
}
