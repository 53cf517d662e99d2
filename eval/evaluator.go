/*
File    : verlang/eval/evaluator.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Package eval implements the tree-walking evaluator: it interprets a
// parser.Program against an env.Environment while threading a control
// signal (return/break/continue/throw) instead of using Go exceptions.
package eval

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/akashmaji946/verlang/builtin"
	"github.com/akashmaji946/verlang/env"
	"github.com/akashmaji946/verlang/parser"
	"github.com/akashmaji946/verlang/value"
)

// Evaluator is a single interpreter session: one global environment,
// the current control signal, and the I/O streams builtins read and
// write through.
//
// Evaluator implements the tree-walking strategy directly: Run and
// EvalTop recurse over the parser's AST, dispatching on each node's
// concrete type and producing a value.Value (plus, for statements that
// can exit a block early, a side effect on e.sig). There is no bytecode
// compilation step and no separate control-flow exception type — a
// return/break/continue/throw is recorded on the Evaluator itself and
// checked by every loop and block after each statement, the same
// explicit-signal approach the block-execution helpers in this package
// use throughout (see signal.go).
//
// A REPL or TCP server session reuses one Evaluator across many Run
// calls so that let/const bindings, function and class definitions, and
// included modules persist in Globals between lines, matching how the
// language's own REPL behaves.
type Evaluator struct {
	Globals *env.Environment
	Writer  io.Writer
	Reader  *bufio.Reader

	sig signal

	// ShortCircuit controls and/or evaluation: when true (the default),
	// the right operand is not evaluated once the left operand already
	// determines the result.
	ShortCircuit bool

	// IncludeDepth guards against include cycles; Includer (set by
	// package include) performs the actual file resolution and load.
	IncludeDepth int
	Includer     func(ev *Evaluator, path string) error
}

// New creates an Evaluator with an empty global environment, stdout
// and stdin wired as the default I/O streams, and short-circuiting
// and/or.
//
// Parameters: none.
//
// Returns: a ready-to-run *Evaluator with the native function library
// (print, len, range, map/filter/reduce, ...) already registered in its
// global environment via builtin.Register.
//
// Example usage:
//
//	ev := eval.New()
//	include.Install(ev)
//	ev.Run(parser.New(src).ParseProgram())
func New() *Evaluator {
	ev := &Evaluator{
		Globals:      env.New(),
		Writer:       os.Stdout,
		Reader:       bufio.NewReader(os.Stdin),
		ShortCircuit: true,
	}
	builtin.Register(ev.Globals, ev)
	return ev
}

// SetWriter redirects builtin output (print, etc).
func (e *Evaluator) SetWriter(w io.Writer) { e.Writer = w }

// SetReader redirects builtin input (input()).
func (e *Evaluator) SetReader(r io.Reader) { e.Reader = bufio.NewReader(r) }

// Output implements the builtin.Runtime interface.
func (e *Evaluator) Output() io.Writer { return e.Writer }

// diag reports a runtime diagnostic to the error stream. Most runtime
// errors recover with a sentinel value and continue, per the error
// policy table; diag is how that "log" half of "log, yield sentinel"
// happens.
func (e *Evaluator) diag(line, col int, format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "[%d:%d] runtime error: %s\n", line, col, fmt.Sprintf(format, args...))
}

// Run executes prog's statements in order against the global
// environment and returns the value of the last statement (used by the
// REPL to decide whether to print a result).
func (e *Evaluator) Run(prog *parser.Program) value.Value {
	var result value.Value = value.Null
	for _, stmt := range prog.Statements {
		result = e.evalStmt(stmt, e.Globals)
		if e.signaled() {
			// An uncaught signal reaching the program root terminates
			// execution silently, per the language's failure semantics.
			return result
		}
	}
	return result
}

// EvalTop evaluates a single top-level statement against the global
// environment. Used by package include to run an included file's
// statements regardless of the including scope.
func (e *Evaluator) EvalTop(s parser.Stmt) value.Value {
	return e.evalStmt(s, e.Globals)
}

// Call invokes fn (native or user) with args, implementing the
// builtin.Runtime interface so higher-order builtins like map/filter/
// reduce can call back into user functions without an import cycle.
func (e *Evaluator) Call(fn value.Value, args []value.Value) value.Value {
	return e.callValue(fn, args, 0, 0)
}

// Input reads one line from the evaluator's input stream, stripping
// the trailing newline, implementing the builtin.Runtime interface.
func (e *Evaluator) Input() (string, error) {
	line, err := e.Reader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
		line = line[:len(line)-1]
	}
	return line, nil
}
