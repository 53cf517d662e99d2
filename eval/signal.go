/*
File    : verlang/eval/signal.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package eval

import "github.com/akashmaji946/verlang/value"

// signalKind is the non-local control state threaded through
// evaluation: return/break/continue/throw. These are never modeled as
// Go panics — they are an explicit field on the Evaluator, checked
// after every child evaluation, exactly as a host-exception-free
// interpreter should.
type signalKind int

const (
	sigNone signalKind = iota
	sigReturn
	sigBreak
	sigContinue
	sigThrow
)

type signal struct {
	kind  signalKind
	value value.Value // carried value for return/throw
}

func (e *Evaluator) clearSignal() {
	e.sig = signal{}
}

func (e *Evaluator) signaled() bool {
	return e.sig.kind != sigNone
}

// Signaled reports whether a control signal (return/break/continue/
// throw) is currently pending. Exported for package include, which
// needs to stop replaying an included file's statements once one
// fires.
func (e *Evaluator) Signaled() bool {
	return e.signaled()
}
