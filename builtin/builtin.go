/*
File    : verlang/builtin/builtin.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Package builtin registers the Language's native function library —
// print, len, range, conversions, and the higher-order combinators —
// into a global environment.
package builtin

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/akashmaji946/verlang/env"
	"github.com/akashmaji946/verlang/value"
)

// Runtime is the thin seam builtins use to call back into user
// functions and reach the session's I/O streams, without builtin
// importing eval (which would create an import cycle, since eval
// registers these builtins at startup).
type Runtime interface {
	Call(fn value.Value, args []value.Value) value.Value
	Input() (string, error)
	Output() io.Writer
}

// Register binds every builtin native function into g.
func Register(g *env.Environment, rt Runtime) {
	for _, b := range all(rt) {
		g.Define(b.Name, b, false)
	}
}

func all(rt Runtime) []*value.Native {
	return []*value.Native{
		{Name: "print", Fn: builtinPrint(rt)},
		{Name: "len", Fn: builtinLen},
		{Name: "range", Fn: builtinRange},
		{Name: "str", Fn: builtinStr},
		{Name: "int", Fn: builtinInt},
		{Name: "float", Fn: builtinFloat},
		{Name: "type", Fn: builtinType},
		{Name: "input", Fn: builtinInput(rt)},
		{Name: "map", Fn: builtinMap(rt)},
		{Name: "filter", Fn: builtinFilter(rt)},
		{Name: "reduce", Fn: builtinReduce(rt)},
		{Name: "sum", Fn: builtinSum},
		{Name: "max", Fn: builtinMax},
		{Name: "min", Fn: builtinMin},
		{Name: "abs", Fn: builtinAbs},
	}
}

func builtinPrint(rt Runtime) value.NativeFunc {
	return func(args []value.Value) value.Value {
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = a.String()
		}
		fmt.Fprintln(rt.Output(), strings.Join(parts, " "))
		return value.Null
	}
}

func builtinLen(args []value.Value) value.Value {
	if len(args) == 0 {
		return value.Number{Value: 0}
	}
	switch v := args[0].(type) {
	case value.String:
		return value.Number{Value: float64(len(v.Value))}
	case *value.List:
		return value.Number{Value: float64(len(v.Elements))}
	case *value.Map:
		return value.Number{Value: float64(len(v.Keys()))}
	default:
		return value.Number{Value: 0}
	}
}

// builtinRange implements the 1/2/3-argument forms: range(stop),
// range(start, stop) with step inferred as -1 if start >= stop else
// +1, and range(start, stop, step) with an explicit step (positive
// excludes stop from above, negative excludes stop from below).
func builtinRange(args []value.Value) value.Value {
	var start, stop, step float64
	switch len(args) {
	case 1:
		start, stop, step = 0, value.AsNumber(args[0]), 1
	case 2:
		start, stop = value.AsNumber(args[0]), value.AsNumber(args[1])
		if start >= stop {
			step = -1
		} else {
			step = 1
		}
	default:
		start, stop, step = value.AsNumber(args[0]), value.AsNumber(args[1]), value.AsNumber(args[2])
	}
	list := &value.List{}
	if step == 0 {
		return list
	}
	if step > 0 {
		for v := start; v < stop; v += step {
			list.Elements = append(list.Elements, value.Number{Value: v})
		}
	} else {
		for v := start; v > stop; v += step {
			list.Elements = append(list.Elements, value.Number{Value: v})
		}
	}
	return list
}

func builtinStr(args []value.Value) value.Value {
	if len(args) == 0 {
		return value.String{Value: ""}
	}
	return value.String{Value: args[0].String()}
}

// builtinInt parses a string to its integer-truncated numeric value;
// an unparsable string yields 0, per the language's lenient-conversion
// policy.
func builtinInt(args []value.Value) value.Value {
	if len(args) == 0 {
		return value.Number{Value: 0}
	}
	if s, ok := args[0].(value.String); ok {
		n, err := strconv.ParseFloat(strings.TrimSpace(s.Value), 64)
		if err != nil {
			return value.Number{Value: 0}
		}
		return value.Number{Value: float64(int64(n))}
	}
	return value.Number{Value: float64(int64(value.AsNumber(args[0])))}
}

func builtinFloat(args []value.Value) value.Value {
	if len(args) == 0 {
		return value.Number{Value: 0}
	}
	if s, ok := args[0].(value.String); ok {
		n, err := strconv.ParseFloat(strings.TrimSpace(s.Value), 64)
		if err != nil {
			return value.Number{Value: 0}
		}
		return value.Number{Value: n}
	}
	return value.Number{Value: value.AsNumber(args[0])}
}

func builtinType(args []value.Value) value.Value {
	if len(args) == 0 {
		return value.String{Value: string(value.NilKind)}
	}
	return value.String{Value: string(args[0].Type())}
}

func builtinInput(rt Runtime) value.NativeFunc {
	return func(args []value.Value) value.Value {
		if len(args) > 0 {
			fmt.Fprint(rt.Output(), args[0].String())
		}
		line, err := rt.Input()
		if err != nil && line == "" {
			return value.Null
		}
		return value.String{Value: line}
	}
}

func builtinMap(rt Runtime) value.NativeFunc {
	return func(args []value.Value) value.Value {
		list, fn := listAndFn(args)
		if list == nil {
			return value.Null
		}
		out := make([]value.Value, len(list.Elements))
		for i, el := range list.Elements {
			out[i] = rt.Call(fn, []value.Value{el})
		}
		return &value.List{Elements: out}
	}
}

func builtinFilter(rt Runtime) value.NativeFunc {
	return func(args []value.Value) value.Value {
		list, fn := listAndFn(args)
		if list == nil {
			return value.Null
		}
		var out []value.Value
		for _, el := range list.Elements {
			if rt.Call(fn, []value.Value{el}).Truthy() {
				out = append(out, el)
			}
		}
		return &value.List{Elements: out}
	}
}

// builtinReduce uses the first element as the seed when no init is
// given, per the language's reduce contract.
func builtinReduce(rt Runtime) value.NativeFunc {
	return func(args []value.Value) value.Value {
		list, fn := listAndFn(args)
		if list == nil {
			return value.Null
		}
		elems := list.Elements
		var acc value.Value
		if len(args) >= 3 {
			acc = args[2]
		} else if len(elems) > 0 {
			acc = elems[0]
			elems = elems[1:]
		} else {
			return value.Null
		}
		for _, el := range elems {
			acc = rt.Call(fn, []value.Value{acc, el})
		}
		return acc
	}
}

func listAndFn(args []value.Value) (*value.List, value.Value) {
	if len(args) < 2 {
		return nil, nil
	}
	list, ok := args[0].(*value.List)
	if !ok {
		return nil, nil
	}
	return list, args[1]
}

func builtinSum(args []value.Value) value.Value {
	list := firstList(args)
	var total float64
	for _, el := range list {
		total += value.AsNumber(el)
	}
	return value.Number{Value: total}
}

func builtinMax(args []value.Value) value.Value {
	list := firstList(args)
	if len(list) == 0 {
		return value.Null
	}
	max := value.AsNumber(list[0])
	for _, el := range list[1:] {
		if n := value.AsNumber(el); n > max {
			max = n
		}
	}
	return value.Number{Value: max}
}

func builtinMin(args []value.Value) value.Value {
	list := firstList(args)
	if len(list) == 0 {
		return value.Null
	}
	min := value.AsNumber(list[0])
	for _, el := range list[1:] {
		if n := value.AsNumber(el); n < min {
			min = n
		}
	}
	return value.Number{Value: min}
}

func builtinAbs(args []value.Value) value.Value {
	if len(args) == 0 {
		return value.Number{Value: 0}
	}
	n := value.AsNumber(args[0])
	if n < 0 {
		n = -n
	}
	return value.Number{Value: n}
}

func firstList(args []value.Value) []value.Value {
	if len(args) == 0 {
		return nil
	}
	if l, ok := args[0].(*value.List); ok {
		return l.Elements
	}
	return nil
}
