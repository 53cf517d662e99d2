/*
File    : verlang/eval/stmt.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package eval

import (
	"github.com/akashmaji946/verlang/env"
	"github.com/akashmaji946/verlang/parser"
	"github.com/akashmaji946/verlang/value"
)

// evalBlock runs stmts in e against a fixed environment, stopping as
// soon as a control signal is raised. It returns the value of the last
// statement executed (nil if the block is empty).
func (e *Evaluator) evalBlock(stmts []parser.Stmt, sc *env.Environment) value.Value {
	var result value.Value = value.Null
	for _, s := range stmts {
		result = e.evalStmt(s, sc)
		if e.signaled() {
			return result
		}
	}
	return result
}

func (e *Evaluator) evalStmt(s parser.Stmt, sc *env.Environment) value.Value {
	switch n := s.(type) {
	case *parser.ExprStmt:
		return e.evalExpr(n.X, sc)
	case *parser.LetStmt:
		return e.evalLet(n, sc)
	case *parser.ClassStmt:
		return e.evalClassDecl(n, sc)
	case *parser.IfStmt:
		return e.evalIf(n, sc)
	case *parser.WhileStmt:
		return e.evalWhile(n, sc)
	case *parser.ForStmt:
		return e.evalFor(n, sc)
	case *parser.TryStmt:
		return e.evalTry(n, sc)
	case *parser.ThrowStmt:
		return e.evalThrow(n, sc)
	case *parser.ReturnStmt:
		return e.evalReturn(n, sc)
	case *parser.BreakStmt:
		e.sig = signal{kind: sigBreak}
		return value.Null
	case *parser.ContinueStmt:
		e.sig = signal{kind: sigContinue}
		return value.Null
	case *parser.IncludeStmt:
		return e.evalInclude(n, sc)
	default:
		line, col := s.Pos()
		e.diag(line, col, "unhandled statement node %T", s)
		return value.Null
	}
}

func (e *Evaluator) evalLet(n *parser.LetStmt, sc *env.Environment) value.Value {
	v := e.evalExpr(n.Value, sc)
	if e.signaled() {
		return value.Null
	}
	sc.Define(n.Name, v, n.Const)
	return value.Null
}

func (e *Evaluator) evalClassDecl(n *parser.ClassStmt, sc *env.Environment) value.Value {
	class := NewClass(n.Name)
	for _, m := range n.Methods {
		fn := &Function{Name: m.Name, Params: m.Params, Body: m.Body, Closure: sc}
		class.AddMethod(m.Name, fn)
	}
	sc.Define(n.Name, class, false)
	return value.Null
}

func (e *Evaluator) evalIf(n *parser.IfStmt, sc *env.Environment) value.Value {
	for _, branch := range n.Branches {
		cond := e.evalExpr(branch.Cond, sc)
		if e.signaled() {
			return value.Null
		}
		if cond.Truthy() {
			return e.evalBlock(branch.Body, sc)
		}
	}
	if n.Else != nil {
		return e.evalBlock(n.Else, sc)
	}
	return value.Null
}

func (e *Evaluator) evalWhile(n *parser.WhileStmt, sc *env.Environment) value.Value {
	var result value.Value = value.Null
	for {
		cond := e.evalExpr(n.Cond, sc)
		if e.signaled() {
			return value.Null
		}
		if !cond.Truthy() {
			return result
		}
		result = e.evalBlock(n.Body, sc)
		if e.sig.kind == sigBreak {
			e.clearSignal()
			return result
		}
		if e.sig.kind == sigContinue {
			e.clearSignal()
			continue
		}
		if e.signaled() {
			return result
		}
	}
}

func (e *Evaluator) evalFor(n *parser.ForStmt, sc *env.Environment) value.Value {
	iterable := e.evalExpr(n.Iterable, sc)
	if e.signaled() {
		return value.Null
	}
	list, ok := iterable.(*value.List)
	if !ok {
		line, col := n.Pos()
		e.diag(line, col, "for-in requires a list, got %s", iterable.Type())
		return value.Null
	}
	var result value.Value = value.Null
	for _, elem := range list.Elements {
		child := sc.Child()
		child.Define(n.Var, elem, false)
		result = e.evalBlock(n.Body, child)
		if e.sig.kind == sigBreak {
			e.clearSignal()
			return result
		}
		if e.sig.kind == sigContinue {
			e.clearSignal()
			continue
		}
		if e.signaled() {
			return result
		}
	}
	return result
}

func (e *Evaluator) evalTry(n *parser.TryStmt, sc *env.Environment) value.Value {
	result := e.evalBlock(n.Body, sc)
	if e.sig.kind == sigThrow && n.HasCatch {
		thrown := e.sig.value
		e.clearSignal()
		child := sc.Child()
		if n.CatchVar != "" {
			child.Define(n.CatchVar, thrown, false)
		}
		result = e.evalBlock(n.CatchBody, child)
	}
	if n.HasFinally {
		// finally runs unconditionally; a signal raised inside try/catch
		// is preserved across it unless finally itself raises a new one.
		saved := e.sig
		e.clearSignal()
		finallyResult := e.evalBlock(n.Finally, sc)
		if e.signaled() {
			return finallyResult
		}
		e.sig = saved
	}
	return result
}

func (e *Evaluator) evalThrow(n *parser.ThrowStmt, sc *env.Environment) value.Value {
	v := e.evalExpr(n.X, sc)
	if e.signaled() {
		return value.Null
	}
	e.sig = signal{kind: sigThrow, value: v}
	return value.Null
}

func (e *Evaluator) evalReturn(n *parser.ReturnStmt, sc *env.Environment) value.Value {
	var v value.Value = value.Null
	if n.X != nil {
		v = e.evalExpr(n.X, sc)
		if e.signaled() {
			return value.Null
		}
	}
	e.sig = signal{kind: sigReturn, value: v}
	return v
}

func (e *Evaluator) evalInclude(n *parser.IncludeStmt, sc *env.Environment) value.Value {
	if e.Includer == nil {
		line, col := n.Pos()
		e.diag(line, col, "include %q: no include resolver configured", n.Path)
		return value.Null
	}
	if err := e.Includer(e, n.Path); err != nil {
		line, col := n.Pos()
		e.diag(line, col, "include %q: %v", n.Path, err)
	}
	return value.Null
}
