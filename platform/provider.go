// Package platform defines the contract between JavaScript runtime backends
// and the registry that selects among them.
//
// A backend describes itself with a [Registration]: a short name, a
// preference score, and a batch evaluation function. Engine packages build
// the Registration value; the application's startup sequence hands it to a
// [Registry]. Backends never reach into a registry themselves, which keeps
// registration explicit and testable.
package platform

import "context"

// Request is one script-execution job submitted to a runtime backend.
// Beyond the script body its contents are owned by the caller; backends
// carry the ID through untouched.
type Request struct {
	// ID correlates a Result with its Request. May be empty.
	ID string

	// Script is the JavaScript source to evaluate. Scripts report output
	// through console.log; backends return that output, not the script's
	// completion value.
	Script string
}

// Result is the outcome of one successfully evaluated Request.
type Result struct {
	// ID echoes the Request ID.
	ID string

	// Output is the newline-joined console.log output observed during the
	// evaluation, in call order. Empty when the script logged nothing.
	Output string
}

// PreferenceFunc scores a backend for a batch of requests. Higher scores
// are tried first. Backends typically return a constant.
type PreferenceFunc func(reqs []Request) int

// RunFunc evaluates each request in order, returning one Result per Request.
// It stops at the first failure: either an unavailability error (the backend
// cannot run on this host) or a script failure, both wrapped as a
// *ProviderError.
type RunFunc func(ctx context.Context, reqs []Request) ([]Result, error)

// Registration describes one runtime backend as plain data.
type Registration struct {
	// Name is a short lowercase token identifying the backend,
	// e.g. "javascriptcore".
	Name string

	// Preference scores this backend against competing ones. Nil scores
	// zero for every batch.
	Preference PreferenceFunc

	// Run evaluates a batch of requests. Required.
	Run RunFunc
}

// preference applies the Preference function, defaulting to zero.
func (r Registration) preference(reqs []Request) int {
	if r.Preference == nil {
		return 0
	}
	return r.Preference(reqs)
}
