/*
File    : verlang/eval/operators.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package eval

import (
	"math"

	"github.com/akashmaji946/verlang/env"
	"github.com/akashmaji946/verlang/parser"
	"github.com/akashmaji946/verlang/value"
)

func (e *Evaluator) evalBinaryExpr(n *parser.BinaryExpr, sc *env.Environment) value.Value {
	if n.Op == "and" || n.Op == "or" {
		return e.evalLogical(n, sc)
	}
	left := e.evalExpr(n.Left, sc)
	if e.signaled() {
		return value.Null
	}
	right := e.evalExpr(n.Right, sc)
	if e.signaled() {
		return value.Null
	}
	line, col := n.Pos()
	return e.binary(n.Op, left, right, line, col)
}

// evalLogical implements and/or. The source language always evaluates
// both sides; this implementation short-circuits when ShortCircuit is
// set (the default), a documented deviation the language spec permits.
func (e *Evaluator) evalLogical(n *parser.BinaryExpr, sc *env.Environment) value.Value {
	left := e.evalExpr(n.Left, sc)
	if e.signaled() {
		return value.Null
	}
	if e.ShortCircuit {
		if n.Op == "or" && left.Truthy() {
			return value.Bool{Value: true}
		}
		if n.Op == "and" && !left.Truthy() {
			return value.Bool{Value: false}
		}
	}
	right := e.evalExpr(n.Right, sc)
	if e.signaled() {
		return value.Null
	}
	if n.Op == "or" {
		return value.Bool{Value: left.Truthy() || right.Truthy()}
	}
	return value.Bool{Value: left.Truthy() && right.Truthy()}
}

// binary applies op to already-evaluated operands, used by both
// evalBinaryExpr and compound-assignment (+= etc).
func (e *Evaluator) binary(op string, left, right value.Value, line, col int) value.Value {
	switch op {
	case "+":
		return addValues(left, right)
	case "-":
		return value.Number{Value: value.AsNumber(left) - value.AsNumber(right)}
	case "*":
		return value.Number{Value: value.AsNumber(left) * value.AsNumber(right)}
	case "/":
		r := value.AsNumber(right)
		if r == 0 {
			e.diag(line, col, "division by zero")
			return value.Number{Value: 0}
		}
		return value.Number{Value: value.AsNumber(left) / r}
	case "%":
		r := int64(value.AsNumber(right))
		if r == 0 {
			e.diag(line, col, "division by zero")
			return value.Number{Value: 0}
		}
		return value.Number{Value: float64(int64(value.AsNumber(left)) % r)}
	case "**":
		return value.Number{Value: math.Pow(value.AsNumber(left), value.AsNumber(right))}
	case "<":
		return value.Bool{Value: value.AsNumber(left) < value.AsNumber(right)}
	case "<=":
		return value.Bool{Value: value.AsNumber(left) <= value.AsNumber(right)}
	case ">":
		return value.Bool{Value: value.AsNumber(left) > value.AsNumber(right)}
	case ">=":
		return value.Bool{Value: value.AsNumber(left) >= value.AsNumber(right)}
	case "==":
		return value.Bool{Value: value.Equal(left, right)}
	case "!=":
		return value.Bool{Value: !value.Equal(left, right)}
	case "&":
		return value.Number{Value: float64(int64(value.AsNumber(left)) & int64(value.AsNumber(right)))}
	case "|":
		return value.Number{Value: float64(int64(value.AsNumber(left)) | int64(value.AsNumber(right)))}
	case "^":
		return value.Number{Value: float64(int64(value.AsNumber(left)) ^ int64(value.AsNumber(right)))}
	default:
		e.diag(line, col, "unknown binary operator %q", op)
		return value.Null
	}
}

// addValues implements the polymorphic `+`: string concat if either
// side is a string, list concat if both sides are lists, append/
// prepend if exactly one side is a list, else numeric addition.
func addValues(left, right value.Value) value.Value {
	_, leftStr := left.(value.String)
	_, rightStr := right.(value.String)
	if leftStr || rightStr {
		return value.String{Value: left.String() + right.String()}
	}
	leftList, leftIsList := left.(*value.List)
	rightList, rightIsList := right.(*value.List)
	if leftIsList && rightIsList {
		out := make([]value.Value, 0, len(leftList.Elements)+len(rightList.Elements))
		out = append(out, leftList.Elements...)
		out = append(out, rightList.Elements...)
		return &value.List{Elements: out}
	}
	if leftIsList {
		out := make([]value.Value, 0, len(leftList.Elements)+1)
		out = append(out, leftList.Elements...)
		out = append(out, right)
		return &value.List{Elements: out}
	}
	if rightIsList {
		out := make([]value.Value, 0, len(rightList.Elements)+1)
		out = append(out, left)
		out = append(out, rightList.Elements...)
		return &value.List{Elements: out}
	}
	return value.Number{Value: value.AsNumber(left) + value.AsNumber(right)}
}
