// Package strutil is a sample host collaborator wrapping strings/strconv
// behind trash.Callable values, the same stdlib-backed native-function
// idiom the teacher's ext/text/text.go uses over unicode/utf8. Like
// ext/mathlib, it is a demonstration of the Callable contract a host
// supplies (spec.md §1), not part of the evaluated core.
package strutil

import (
	"fmt"
	"strconv"
	"strings"

	trash "github.com/TheMartin/trash-lang"
)

type nativeFn func(ev *trash.Evaluator, args []trash.Value) (trash.Value, error)

func (f nativeFn) Call(ev *trash.Evaluator, args []trash.Value) (trash.Value, error) {
	return f(ev, args)
}

// argError and asString mirror ext/mathlib's small typed-error helpers,
// adapted to the string-argument natives this package exposes.
func argError(name string, want, got int) error {
	return &trash.RuntimeError{
		Kind:    trash.Arity,
		Message: fmt.Sprintf("str.%s expects %d argument(s), got %d", name, want, got),
	}
}

func asString(name string, v trash.Value) (string, error) {
	if v.Kind != trash.KindString {
		return "", &trash.RuntimeError{
			Kind:    trash.TypeMismatch,
			Message: fmt.Sprintf("str.%s expects a string argument, got %s", name, v.TypeName()),
		}
	}
	return v.Str, nil
}

func wrap(name string, arity int, f func(args []trash.Value) (trash.Value, error)) trash.Value {
	return trash.FunctionValue(nativeFn(func(_ *trash.Evaluator, args []trash.Value) (trash.Value, error) {
		if len(args) != arity {
			return trash.Nil, argError(name, arity, len(args))
		}
		return f(args)
	}))
}

// New returns an Indexable exposing string-manipulation natives a trash
// script can call as str.upper(s), str.split(s, sep), etc.
func New() trash.Indexable {
	o := trash.NewObject()
	set := func(name string, v trash.Value) { o.Set(trash.String(name), v) }

	set("upper", wrap("upper", 1, func(a []trash.Value) (trash.Value, error) {
		s, err := asString("upper", a[0])
		if err != nil {
			return trash.Nil, err
		}
		return trash.String(strings.ToUpper(s)), nil
	}))
	set("lower", wrap("lower", 1, func(a []trash.Value) (trash.Value, error) {
		s, err := asString("lower", a[0])
		if err != nil {
			return trash.Nil, err
		}
		return trash.String(strings.ToLower(s)), nil
	}))
	set("trim", wrap("trim", 1, func(a []trash.Value) (trash.Value, error) {
		s, err := asString("trim", a[0])
		if err != nil {
			return trash.Nil, err
		}
		return trash.String(strings.TrimSpace(s)), nil
	}))
	set("len", wrap("len", 1, func(a []trash.Value) (trash.Value, error) {
		s, err := asString("len", a[0])
		if err != nil {
			return trash.Nil, err
		}
		return trash.Number(float64(len(s))), nil
	}))
	set("contains", wrap("contains", 2, func(a []trash.Value) (trash.Value, error) {
		s, err := asString("contains", a[0])
		if err != nil {
			return trash.Nil, err
		}
		sub, err := asString("contains", a[1])
		if err != nil {
			return trash.Nil, err
		}
		return trash.Bool(strings.Contains(s, sub)), nil
	}))
	set("split", wrap("split", 2, func(a []trash.Value) (trash.Value, error) {
		s, err := asString("split", a[0])
		if err != nil {
			return trash.Nil, err
		}
		sep, err := asString("split", a[1])
		if err != nil {
			return trash.Nil, err
		}
		parts := strings.Split(s, sep)
		out := trash.NewObject()
		for i, p := range parts {
			out.Set(trash.Number(float64(i)), trash.String(p))
		}
		return trash.ObjectValue(out), nil
	}))
	set("toNumber", wrap("toNumber", 1, func(a []trash.Value) (trash.Value, error) {
		s, err := asString("toNumber", a[0])
		if err != nil {
			return trash.Nil, err
		}
		f, perr := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if perr != nil {
			return trash.Nil, nil
		}
		return trash.Number(f), nil
	}))

	return o
}
