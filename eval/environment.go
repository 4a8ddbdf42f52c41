package eval

import "fmt"

// Environment is a linked frame of local bindings with an optional parent
// pointer (spec.md §3). Frames are reference-shared: extending an
// environment for a block/for/function entry never copies the parent, which
// is what makes closures over the same lexical scope see each other's
// mutations (spec.md §9 "Closures over shared frames").
type Environment struct {
	vars   map[string]Value
	parent *Environment
}

// NewEnvironment constructs a top-level frame, optionally preloaded with
// host-supplied global bindings (spec.md §6, Environment.new).
func NewEnvironment(bindings map[string]Value) *Environment {
	vars := make(map[string]Value, len(bindings))
	for k, v := range bindings {
		vars[k] = v
	}
	return &Environment{vars: vars}
}

// Extend returns a new child frame sharing e as its parent.
func (e *Environment) Extend() *Environment {
	return &Environment{vars: map[string]Value{}, parent: e}
}

// UndeclaredAccessError reports a read, write, or set of an unbound name.
type UndeclaredAccessError struct {
	Name string
}

func (e *UndeclaredAccessError) Error() string {
	return fmt.Sprintf("undeclared variable %q", e.Name)
}

// DoubleDeclarationError reports a var declaration that shadows a name
// already bound in the same frame.
type DoubleDeclarationError struct {
	Name string
}

func (e *DoubleDeclarationError) Error() string {
	return fmt.Sprintf("variable %q already declared in this scope", e.Name)
}

// Get walks the parent chain looking for name, failing with
// UndeclaredAccessError if unresolved (spec.md §3 Environment.get).
func (e *Environment) Get(name string) (Value, error) {
	for f := e; f != nil; f = f.parent {
		if v, ok := f.vars[name]; ok {
			return v, nil
		}
	}
	return Nil, &UndeclaredAccessError{Name: name}
}

// Set rewrites the nearest enclosing frame that already holds name, failing
// with UndeclaredAccessError otherwise (spec.md §3 Environment.set).
func (e *Environment) Set(name string, v Value) error {
	for f := e; f != nil; f = f.parent {
		if _, ok := f.vars[name]; ok {
			f.vars[name] = v
			return nil
		}
	}
	return &UndeclaredAccessError{Name: name}
}

// Declare binds name in the current frame, failing with
// DoubleDeclarationError if it is already locally bound (spec.md §3
// Environment.declare — declarations never see through to parent frames).
func (e *Environment) Declare(name string, v Value) error {
	if _, ok := e.vars[name]; ok {
		return &DoubleDeclarationError{Name: name}
	}
	e.vars[name] = v
	return nil
}
