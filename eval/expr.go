/*
File    : verlang/eval/expr.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package eval

import (
	"github.com/akashmaji946/verlang/env"
	"github.com/akashmaji946/verlang/parser"
	"github.com/akashmaji946/verlang/value"
)

func (e *Evaluator) evalExpr(x parser.Expr, sc *env.Environment) value.Value {
	switch n := x.(type) {
	case *parser.NumberLit:
		return value.Number{Value: n.Value}
	case *parser.StringLit:
		return value.String{Value: n.Value}
	case *parser.BoolLit:
		return value.Bool{Value: n.Value}
	case *parser.NilLit:
		return value.Null
	case *parser.SelfExpr:
		return e.evalIdent(&parser.Ident{Name: "self"}, sc)
	case *parser.Ident:
		return e.evalIdent(n, sc)
	case *parser.ListLit:
		return e.evalListLit(n, sc)
	case *parser.MapLit:
		return e.evalMapLit(n, sc)
	case *parser.FuncLit:
		return e.evalFuncLit(n, sc)
	case *parser.NewExpr:
		return e.evalNewExpr(n, sc)
	case *parser.CallExpr:
		return e.evalCallExpr(n, sc)
	case *parser.IndexExpr:
		return e.evalIndexExpr(n, sc)
	case *parser.AttrExpr:
		return e.evalAttrExpr(n, sc)
	case *parser.BinaryExpr:
		return e.evalBinaryExpr(n, sc)
	case *parser.UnaryExpr:
		return e.evalUnaryExpr(n, sc)
	case *parser.IncDecExpr:
		return e.evalIncDecExpr(n, sc)
	case *parser.AssignExpr:
		return e.evalAssignExpr(n, sc)
	default:
		line, col := x.Pos()
		e.diag(line, col, "unhandled expression node %T", x)
		return value.Null
	}
}

func (e *Evaluator) evalIdent(n *parser.Ident, sc *env.Environment) value.Value {
	v, ok := sc.Get(n.Name)
	if !ok {
		line, col := n.Pos()
		e.diag(line, col, "undefined name %q", n.Name)
		return value.Null
	}
	return v
}

func (e *Evaluator) evalListLit(n *parser.ListLit, sc *env.Environment) value.Value {
	list := &value.List{}
	for _, el := range n.Elements {
		v := e.evalExpr(el, sc)
		if e.signaled() {
			return value.Null
		}
		list.Elements = append(list.Elements, v)
	}
	return list
}

func (e *Evaluator) evalMapLit(n *parser.MapLit, sc *env.Environment) value.Value {
	m := value.NewMap()
	for i, k := range n.Keys {
		v := e.evalExpr(n.Values[i], sc)
		if e.signaled() {
			return value.Null
		}
		m.Set(k, v)
	}
	return m
}

// evalFuncLit constructs a closure capturing sc by reference. If the
// literal is named, the name is also bound in sc; this happens wherever
// the literal appears, as a statement or inside an expression.
func (e *Evaluator) evalFuncLit(n *parser.FuncLit, sc *env.Environment) value.Value {
	fn := &Function{Name: n.Name, Params: n.Params, Body: n.Body, Closure: sc}
	if n.Name != "" {
		sc.Define(n.Name, fn, false)
	}
	return fn
}

func (e *Evaluator) evalNewExpr(n *parser.NewExpr, sc *env.Environment) value.Value {
	line, col := n.Pos()
	classVal, ok := sc.Get(n.Class)
	if !ok {
		e.diag(line, col, "unknown class %q", n.Class)
		return value.Null
	}
	class, ok := classVal.(*Class)
	if !ok {
		e.diag(line, col, "%q is not a class", n.Class)
		return value.Null
	}
	inst := NewInstance(class)
	args := make([]value.Value, 0, len(n.Args))
	for _, a := range n.Args {
		v := e.evalExpr(a, sc)
		if e.signaled() {
			return value.Null
		}
		args = append(args, v)
	}
	if init, ok := class.Method("__init__"); ok {
		e.callValue(init.Bind(inst), args, line, col)
		// The instance is produced regardless of what __init__ returns,
		// so only a return signal is discarded here. A throw must keep
		// propagating to the nearest catch.
		if e.sig.kind == sigReturn {
			e.clearSignal()
		}
	}
	return inst
}

func (e *Evaluator) evalCallExpr(n *parser.CallExpr, sc *env.Environment) value.Value {
	line, col := n.Pos()
	callee := e.evalExpr(n.Callee, sc)
	if e.signaled() {
		return value.Null
	}
	args := make([]value.Value, 0, len(n.Args))
	for _, a := range n.Args {
		v := e.evalExpr(a, sc)
		if e.signaled() {
			return value.Null
		}
		args = append(args, v)
	}
	return e.callValue(callee, args, line, col)
}

func (e *Evaluator) evalIndexExpr(n *parser.IndexExpr, sc *env.Environment) value.Value {
	target := e.evalExpr(n.Target, sc)
	if e.signaled() {
		return value.Null
	}
	idx := e.evalExpr(n.Index, sc)
	if e.signaled() {
		return value.Null
	}
	switch t := target.(type) {
	case *value.List:
		i := int(value.AsNumber(idx))
		if i < 0 || i >= len(t.Elements) {
			return value.Null
		}
		return t.Elements[i]
	case *value.Map:
		v, ok := t.Get(idx.String())
		if !ok {
			return value.Null
		}
		return v
	default:
		line, col := n.Pos()
		e.diag(line, col, "cannot index into %s", target.Type())
		return value.Null
	}
}

// evalAttrExpr implements `target.name`: instance field, then instance
// method bound to self, else nil for any other value.
func (e *Evaluator) evalAttrExpr(n *parser.AttrExpr, sc *env.Environment) value.Value {
	target := e.evalExpr(n.Target, sc)
	if e.signaled() {
		return value.Null
	}
	inst, ok := target.(*Instance)
	if !ok {
		return value.Null
	}
	if v, ok := inst.Field(n.Name); ok {
		return v
	}
	if m, ok := inst.Class.Method(n.Name); ok {
		return m.Bind(inst)
	}
	return value.Null
}

func (e *Evaluator) evalUnaryExpr(n *parser.UnaryExpr, sc *env.Environment) value.Value {
	v := e.evalExpr(n.Operand, sc)
	if e.signaled() {
		return value.Null
	}
	switch n.Op {
	case "-":
		return value.Number{Value: -value.AsNumber(v)}
	case "not":
		return value.Bool{Value: !v.Truthy()}
	case "~":
		return value.Number{Value: float64(^int64(value.AsNumber(v)))}
	default:
		line, col := n.Pos()
		e.diag(line, col, "unknown unary operator %q", n.Op)
		return value.Null
	}
}
