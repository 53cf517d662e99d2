/*
File    : verlang/env/env.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Package env implements the lexical scope chain values are looked up
// and bound in: an ordered list of named bindings per frame, a parent
// link, and the const/assignment rules the evaluator relies on.
package env

import (
	"fmt"

	"github.com/akashmaji946/verlang/value"
)

type binding struct {
	value value.Value
	const_ bool
}

// Environment is one frame of the lexical scope chain.
//
// Environment implements the hierarchical scope chain that gives the
// language its lexical scoping and closures. Each frame owns its own
// bindings map plus an insertion-ordered name list, and links upward to
// the frame it was created from. Lookup walks from the current frame
// toward the root, so a name defined in an inner frame shadows the same
// name in an outer one without disturbing it. The global environment is
// the one frame with a nil parent; it is created once per evaluator and
// outlives every call frame built on top of it.
//
// A frame is pushed with Child for a function call, for each iteration
// of a for-loop body, for a catch clause, and for a method bound to its
// instance; if/while bodies run in the enclosing frame, so a let inside
// them binds there. A frame stays alive only as long as something (a
// running call or a closure) still refers to it.
type Environment struct {
	// names preserves the order bindings were first defined in this
	// frame, independent of vars' unordered map iteration.
	names []string
	// vars holds this frame's own bindings, keyed by name.
	vars map[string]*binding
	// parent is the enclosing frame, or nil at the global frame.
	parent *Environment
}

// New creates a root environment with no parent.
//
// Parameters: none.
//
// Returns: an empty *Environment suitable for use as the global frame
// of a fresh evaluator.
func New() *Environment {
	return &Environment{vars: make(map[string]*binding)}
}

// Child creates a new environment whose parent is e, the usual shape
// for a function call frame or a block that introduces bindings.
func (e *Environment) Child() *Environment {
	return &Environment{vars: make(map[string]*binding), parent: e}
}

// Parent returns e's parent, or nil at the global frame.
func (e *Environment) Parent() *Environment {
	return e.parent
}

// Define binds name in e's own frame, overwriting any prior binding in
// this frame. Used for let/const declarations and parameter binding.
//
// Parameters:
//   - name: the identifier to bind.
//   - v: the value to bind it to.
//   - isConst: whether later Assign calls on this name should be
//     rejected.
//
// Redefining an existing name in the same frame replaces its value and
// const flag but keeps its original position in Names' insertion order.
func (e *Environment) Define(name string, v value.Value, isConst bool) {
	if _, ok := e.vars[name]; !ok {
		e.names = append(e.names, name)
	}
	e.vars[name] = &binding{value: v, const_: isConst}
}

// Get walks the parent chain looking for name, returning the value and
// whether it was found. An undefined name is the caller's concern (the
// evaluator maps not-found to nil plus a diagnostic).
func (e *Environment) Get(name string) (value.Value, bool) {
	for cur := e; cur != nil; cur = cur.parent {
		if b, ok := cur.vars[name]; ok {
			return b.value, true
		}
	}
	return value.Null, false
}

// Assign walks the chain looking for an existing binding for name and
// mutates it in place. If no binding exists anywhere in the chain, a
// new one is created in e's own frame (not the global frame) — this is
// the language's explicit assignment-creates-a-local rule. Returns an
// error if the found binding is const.
func (e *Environment) Assign(name string, v value.Value) error {
	for cur := e; cur != nil; cur = cur.parent {
		if b, ok := cur.vars[name]; ok {
			if b.const_ {
				return fmt.Errorf("cannot assign to const %q", name)
			}
			b.value = v
			return nil
		}
	}
	e.Define(name, v, false)
	return nil
}

// IsConst reports whether name resolves to a const binding somewhere
// in the chain. Returns false for an undefined name.
func (e *Environment) IsConst(name string) bool {
	for cur := e; cur != nil; cur = cur.parent {
		if b, ok := cur.vars[name]; ok {
			return b.const_
		}
	}
	return false
}

// Names returns the names bound directly in e's own frame, in
// insertion order. Used by the REPL's vars command at the global
// frame.
func (e *Environment) Names() []string {
	out := make([]string, len(e.names))
	copy(out, e.names)
	return out
}
