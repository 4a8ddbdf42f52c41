// Package parse implements a generic backtracking parser-combinator runtime.
//
// A Parser[I, T] is a pure function from an Input to a Result[I, T]: either a
// Success carrying an output value, the remaining input, and a flag noting
// whether any input was consumed, or an Error carrying a position, an
// expectation set, a message, and the same consumed flag.
//
// The consumed flag is what makes choice (Either) predictable: a branch that
// fails without consuming input is a candidate for backtracking to the next
// alternative; a branch that fails after consuming input commits to that
// failure unless wrapped in Try. This mirrors the classic Parsec design and
// is the piece of this package with no precedent in the retrieval pack (see
// DESIGN.md) — the merging rules below are taken directly from spec.md §4.1.
package parse

import "sort"

// Position is a location in an Input, used only for ordering and reporting.
// Concrete inputs (character streams, token streams) supply their own
// Position values; the combinator runtime only ever compares them with
// LaterThan.
type Position interface {
	// LaterThan reports whether this position is strictly after other.
	LaterThan(other Position) bool
}

// Input is the abstract source a Parser consumes. Lexer and token-view
// parsers each implement this over their own element type.
type Input interface {
	// Pos returns the input's current position, used for error reporting
	// and for furthest-error comparisons.
	Pos() Position
}

// Error is a parse failure: a position, a set of human-readable
// expectations, a message, an optional context name (set by Tagged), and
// whether input was consumed before the failure (the "committed" flag).
type Error struct {
	Pos          Position
	Consumed     bool
	Expectations map[string]struct{}
	Message      string
	Context      string
}

// Expects returns a deterministically ordered slice of this error's
// expectation set, for formatting.
func (e Error) Expects() []string {
	out := make([]string, 0, len(e.Expectations))
	for x := range e.Expectations {
		out = append(out, x)
	}
	sort.Strings(out)
	return out
}

// NewError builds an Error with the given expectation set.
func NewError(pos Position, consumed bool, msg string, expects ...string) Error {
	e := Error{Pos: pos, Consumed: consumed, Message: msg, Expectations: map[string]struct{}{}}
	for _, x := range expects {
		e.Expectations[x] = struct{}{}
	}
	return e
}

func unionExpect(a, b Error) map[string]struct{} {
	out := make(map[string]struct{}, len(a.Expectations)+len(b.Expectations))
	for x := range a.Expectations {
		out[x] = struct{}{}
	}
	for x := range b.Expectations {
		out[x] = struct{}{}
	}
	return out
}

// furthest returns whichever of a, b reaches further into the input,
// unioning expectations when they are at the same position. This is the
// merge rule shared by Seq (p's bestAlternative vs q's error) and Either's
// running best-so-far (spec.md §4.1).
func furthest(a, b Error) Error {
	if b.Pos.LaterThan(a.Pos) {
		return b
	}
	if a.Pos.LaterThan(b.Pos) {
		return a
	}
	merged := a
	merged.Expectations = unionExpect(a, b)
	if merged.Context == "" {
		merged.Context = b.Context
	}
	return merged
}

// Success is the payload of a successful parse: an output value, the
// remaining input, whether input was consumed, and an optional
// BestAlternative — a farther-reaching error discarded by a prior Either
// that a later Seq may still need to surface (spec.md §4.1).
type Success[I Input, T any] struct {
	Output          T
	Rest            I
	Consumed        bool
	BestAlternative *Error
}

// Result is either a Success[I, T] or an Error. Exactly one of IsOk()'s two
// branches is meaningful.
type Result[I Input, T any] struct {
	ok      bool
	success Success[I, T]
	err     Error
}

// Ok constructs a successful Result with no bestAlternative.
func Ok[I Input, T any](output T, rest I, consumed bool) Result[I, T] {
	return Result[I, T]{ok: true, success: Success[I, T]{Output: output, Rest: rest, Consumed: consumed}}
}

// OkWith constructs a successful Result from a fully built Success value
// (used when a bestAlternative must be attached).
func OkWith[I Input, T any](s Success[I, T]) Result[I, T] {
	return Result[I, T]{ok: true, success: s}
}

// Fail constructs a failing Result.
func Fail[I Input, T any](err Error) Result[I, T] {
	return Result[I, T]{ok: false, err: err}
}

// IsOk reports whether r is a Success.
func (r Result[I, T]) IsOk() bool { return r.ok }

// Unwrap returns the success payload; only meaningful when IsOk() is true.
func (r Result[I, T]) Unwrap() Success[I, T] { return r.success }

// Err returns the error payload; only meaningful when IsOk() is false.
func (r Result[I, T]) Err() Error { return r.err }
