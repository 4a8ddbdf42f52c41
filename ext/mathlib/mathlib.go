// Package mathlib is a sample host collaborator: it wraps the standard
// math package behind trash.Callable values, the same wrap1/wrap2 pattern
// the teacher's ext/math/math.go uses over its own Object boxing, adapted
// to trash's Callable/Value interfaces instead of *ts.Object. It is not
// part of the evaluated language core (spec.md §1 keeps native function
// registration a host concern) — cmd/trash wires it in as one of the
// globals a script sees under the "math" name.
package mathlib

import (
	"fmt"
	"math"

	trash "github.com/TheMartin/trash-lang"
)

type nativeFn func(ev *trash.Evaluator, args []trash.Value) (trash.Value, error)

func (f nativeFn) Call(ev *trash.Evaluator, args []trash.Value) (trash.Value, error) {
	return f(ev, args)
}

// argError reports a native function called with the wrong number or type
// of arguments, following the teacher's ArgError convention (errors.go)
// but surfaced as a trash.RuntimeError so it unwinds like any other
// evaluator failure.
func argError(want int, got []trash.Value) error {
	return &trash.RuntimeError{
		Kind:    trash.Arity,
		Message: fmt.Sprintf("math function expects %d numeric argument(s), got %d", want, len(got)),
	}
}

func wrap1(f func(float64) float64) trash.Value {
	return trash.FunctionValue(nativeFn(func(_ *trash.Evaluator, args []trash.Value) (trash.Value, error) {
		if len(args) != 1 || args[0].Kind != trash.KindNumber {
			return trash.Nil, argError(1, args)
		}
		return trash.Number(f(args[0].Num)), nil
	}))
}

func wrap2(f func(a, b float64) float64) trash.Value {
	return trash.FunctionValue(nativeFn(func(_ *trash.Evaluator, args []trash.Value) (trash.Value, error) {
		if len(args) != 2 || args[0].Kind != trash.KindNumber || args[1].Kind != trash.KindNumber {
			return trash.Nil, argError(2, args)
		}
		return trash.Number(f(args[0].Num, args[1].Num)), nil
	}))
}

// New returns an Indexable exposing the constants and unary/binary math
// functions a trash script can call as math.sqrt(x), math.atan2(y, x), etc.
func New() trash.Indexable {
	o := trash.NewObject()
	set := func(name string, v trash.Value) { o.Set(trash.String(name), v) }

	set("E", trash.Number(math.E))
	set("PI", trash.Number(math.Pi))
	set("SQRT2", trash.Number(math.Sqrt2))
	set("LN2", trash.Number(math.Ln2))
	set("LN10", trash.Number(math.Ln10))

	set("abs", wrap1(math.Abs))
	set("ceil", wrap1(math.Ceil))
	set("floor", wrap1(math.Floor))
	set("trunc", wrap1(math.Trunc))
	set("sqrt", wrap1(math.Sqrt))
	set("cbrt", wrap1(math.Cbrt))
	set("exp", wrap1(math.Exp))
	set("log", wrap1(math.Log))
	set("log2", wrap1(math.Log2))
	set("log10", wrap1(math.Log10))
	set("sin", wrap1(math.Sin))
	set("cos", wrap1(math.Cos))
	set("tan", wrap1(math.Tan))
	set("asin", wrap1(math.Asin))
	set("acos", wrap1(math.Acos))
	set("atan", wrap1(math.Atan))

	set("pow", wrap2(math.Pow))
	set("atan2", wrap2(math.Atan2))
	set("hypot", wrap2(math.Hypot))
	set("max", wrap2(math.Max))
	set("min", wrap2(math.Min))
	set("mod", wrap2(math.Mod))

	return o
}
