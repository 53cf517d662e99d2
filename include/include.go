/*
File    : verlang/include/include.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Package include implements path resolution and module loading for
// the `include` statement: locate a .ver source file, then execute its
// top-level effects in the interpreter's global environment.
package include

import (
	"fmt"
	"os"

	"github.com/akashmaji946/verlang/eval"
	"github.com/akashmaji946/verlang/parser"
)

// maxDepth bounds include recursion so a cycle of files including each
// other fails loudly instead of overflowing the Go stack.
const maxDepth = 64

// Install wires ev.Includer to this package's resolve-and-run logic.
func Install(ev *eval.Evaluator) {
	ev.Includer = run
}

// resolve implements the three-step path search: the exact path, then
// path+".ver", then "lib/"+path+".ver".
func resolve(path string) (string, error) {
	for _, candidate := range []string{path, path + ".ver", "lib/" + path + ".ver"} {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("not found: %s", path)
}

func run(ev *eval.Evaluator, path string) error {
	if ev.IncludeDepth >= maxDepth {
		return fmt.Errorf("include depth exceeded (possible cycle) at %q", path)
	}
	resolved, err := resolve(path)
	if err != nil {
		return err
	}
	src, err := os.ReadFile(resolved)
	if err != nil {
		return err
	}
	p := parser.New(string(src))
	prog := p.ParseProgram()
	if p.HasErrors() {
		return fmt.Errorf("parse errors in %s: %v", resolved, p.Errors)
	}
	ev.IncludeDepth++
	defer func() { ev.IncludeDepth-- }()
	// Included top-level effects always run in the global environment,
	// regardless of the scope the include statement appears in.
	for _, stmt := range prog.Statements {
		ev.EvalTop(stmt)
		if ev.Signaled() {
			break
		}
	}
	return nil
}
