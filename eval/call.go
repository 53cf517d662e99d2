/*
File    : verlang/eval/call.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package eval

import "github.com/akashmaji946/verlang/value"

// callValue invokes fn with args. Native functions are invoked
// directly. User functions get a fresh environment child of their
// captured closure, with parameters bound positionally — missing
// arguments bind nil, extra arguments are ignored, matching the
// language's lenient call contract (no arity errors). line/col are
// used only for diagnostics when fn is not callable.
func (e *Evaluator) callValue(fn value.Value, args []value.Value, line, col int) value.Value {
	switch f := fn.(type) {
	case *value.Native:
		return f.Fn(args)
	case *Function:
		return e.callFunction(f, args)
	default:
		e.diag(line, col, "value of type %s is not callable", fn.Type())
		return value.Null
	}
}

func (e *Evaluator) callFunction(f *Function, args []value.Value) value.Value {
	frame := f.Closure.Child()
	for i, param := range f.Params {
		if i < len(args) {
			frame.Define(param, args[i], false)
		} else {
			frame.Define(param, value.Null, false)
		}
	}
	result := e.evalBlock(f.Body, frame)
	if e.sig.kind == sigReturn {
		result = e.sig.value
		e.clearSignal()
	}
	return result
}
