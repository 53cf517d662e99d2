/*
File    : verlang/eval/assign.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package eval

import (
	"github.com/akashmaji946/verlang/env"
	"github.com/akashmaji946/verlang/parser"
	"github.com/akashmaji946/verlang/value"
)

// evalAssignExpr handles plain `=` and compound `+= -= *= /=` on a
// variable or attribute target. The parser already rejected any other
// target shape.
func (e *Evaluator) evalAssignExpr(n *parser.AssignExpr, sc *env.Environment) value.Value {
	rhs := e.evalExpr(n.Value, sc)
	if e.signaled() {
		return value.Null
	}
	if n.Op != "=" {
		current := e.readTarget(n.Target, sc)
		if e.signaled() {
			return value.Null
		}
		line, col := n.Pos()
		rhs = e.binary(compoundOp(n.Op), current, rhs, line, col)
	}
	e.writeTarget(n.Target, rhs, sc)
	return rhs
}

// compoundOp strips the trailing "=" from a compound-assignment lexeme,
// e.g. "+=" -> "+".
func compoundOp(op string) string {
	return op[:len(op)-1]
}

func (e *Evaluator) readTarget(target parser.Expr, sc *env.Environment) value.Value {
	switch t := target.(type) {
	case *parser.Ident:
		return e.evalIdent(t, sc)
	case *parser.AttrExpr:
		return e.evalAttrExpr(t, sc)
	default:
		return value.Null
	}
}

func (e *Evaluator) writeTarget(target parser.Expr, v value.Value, sc *env.Environment) {
	switch t := target.(type) {
	case *parser.Ident:
		if sc.IsConst(t.Name) {
			line, col := t.Pos()
			e.diag(line, col, "cannot assign to const %q", t.Name)
			return
		}
		if err := sc.Assign(t.Name, v); err != nil {
			line, col := t.Pos()
			e.diag(line, col, "%v", err)
		}
	case *parser.AttrExpr:
		obj := e.evalExpr(t.Target, sc)
		if e.signaled() {
			return
		}
		inst, ok := obj.(*Instance)
		if !ok {
			line, col := t.Pos()
			e.diag(line, col, "cannot set attribute on %s", obj.Type())
			return
		}
		inst.SetField(t.Name, v)
	}
}

// evalIncDecExpr implements ++/-- in prefix or postfix position. The
// parser guarantees Target is an Ident or AttrExpr.
func (e *Evaluator) evalIncDecExpr(n *parser.IncDecExpr, sc *env.Environment) value.Value {
	old := e.readTarget(n.Target, sc)
	if e.signaled() {
		return value.Null
	}
	delta := 1.0
	if n.Op == "--" {
		delta = -1.0
	}
	updated := value.Number{Value: value.AsNumber(old) + delta}
	e.writeTarget(n.Target, updated, sc)
	if n.Prefix {
		return updated
	}
	return old
}
