/*
File    : verlang/eval/types.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package eval

import (
	"fmt"

	"github.com/akashmaji946/verlang/env"
	"github.com/akashmaji946/verlang/parser"
	"github.com/akashmaji946/verlang/value"
)

// Function, Class and Instance live here rather than in package value
// because they reference *env.Environment and AST nodes; value stays
// free of both so env can depend on value without a cycle.

// Function is a user-defined closure: its parameter names, its body,
// and the environment captured at definition time.
//
// Function is what a `fn` literal or declaration evaluates to. The
// Closure field is the lexical environment active at the point the
// function was defined, not at the point it is called — this is what
// gives the language real closures: a function returned out of an
// enclosing call keeps a live link to that call's locals, and
// assignments to them made through any holder of the closure (the
// function itself, or a bound copy made by Bind) are visible to every
// other holder, because Closure is a pointer, not a snapshot copy.
//
// Each call pushes one fresh child frame off Closure (see call.go),
// binds Params positionally into it, and evaluates Body against that
// frame — so recursive and concurrent-looking calls to the same
// Function never share parameter bindings, only whatever they already
// shared through Closure.
type Function struct {
	Name    string
	Params  []string
	Body    []parser.Stmt
	Closure *env.Environment
}

func (f *Function) Type() value.Kind { return value.FunctionKind }
func (f *Function) Truthy() bool     { return true }

func (f *Function) String() string {
	name := f.Name
	if name == "" {
		name = "anonymous"
	}
	return fmt.Sprintf("<function %s>", name)
}

// Bind returns a copy of f whose closure is a child environment with
// self pre-bound to recv — the mechanism behind method binding.
//
// Parameters:
//   - recv: the instance method calls through f should see as self.
//
// Returns: a new *Function sharing f's Name, Params and Body but with
// its own one-binding closure frame, so the same Class method produces
// a distinct bound Function (and distinct self) for every instance
// that calls it, without copying or re-parsing the method body.
func (f *Function) Bind(recv *Instance) *Function {
	bound := f.Closure.Child()
	bound.Define("self", recv, false)
	return &Function{Name: f.Name, Params: f.Params, Body: f.Body, Closure: bound}
}

// Class is a named, ordered collection of methods.
//
// A Class value itself carries no instance state — it is the shared
// method table every Instance of it looks methods up through. Method
// dispatch is a plain map lookup by name (see Method); there is no
// inheritance chain to walk, since the language has no class extension.
// methodOrder exists purely so tooling that lists a class's methods
// (e.g. a future REPL introspection command) sees them in declaration
// order rather than Go's randomized map order.
type Class struct {
	Name        string
	methodOrder []string
	methods     map[string]*Function
}

// NewClass creates an empty class named name.
func NewClass(name string) *Class {
	return &Class{Name: name, methods: make(map[string]*Function)}
}

// AddMethod registers fn under name, first-declaration order preserved.
func (c *Class) AddMethod(name string, fn *Function) {
	if _, ok := c.methods[name]; !ok {
		c.methodOrder = append(c.methodOrder, name)
	}
	c.methods[name] = fn
}

// Method looks up a method by name.
func (c *Class) Method(name string) (*Function, bool) {
	fn, ok := c.methods[name]
	return fn, ok
}

func (c *Class) Type() value.Kind { return value.ClassKind }
func (c *Class) Truthy() bool     { return true }
func (c *Class) String() string   { return fmt.Sprintf("<class %s>", c.Name) }

// Instance is a live object: a class pointer plus a mutable, ordered
// field list created on first assignment.
type Instance struct {
	Class     *Class
	fieldOrder []string
	fields     map[string]value.Value
}

// NewInstance allocates an instance of class with no fields set.
func NewInstance(class *Class) *Instance {
	return &Instance{Class: class, fields: make(map[string]value.Value)}
}

// Field reads a field's current value.
func (in *Instance) Field(name string) (value.Value, bool) {
	v, ok := in.fields[name]
	return v, ok
}

// SetField creates or updates a field, preserving first-assignment order.
func (in *Instance) SetField(name string, v value.Value) {
	if _, ok := in.fields[name]; !ok {
		in.fieldOrder = append(in.fieldOrder, name)
	}
	in.fields[name] = v
}

func (in *Instance) Type() value.Kind { return value.InstanceKind }
func (in *Instance) Truthy() bool     { return true }

func (in *Instance) String() string {
	return fmt.Sprintf("<instance %s>", in.Class.Name)
}
