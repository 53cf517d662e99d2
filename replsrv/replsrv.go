/*
File    : verlang/replsrv/replsrv.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Package replsrv implements the Language's interactive REPL: a
// readline-backed loop over one long-lived evaluator session.
package replsrv

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/akashmaji946/verlang/eval"
	"github.com/akashmaji946/verlang/parser"
	"github.com/akashmaji946/verlang/value"
)

var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	redColor    = color.New(color.FgRed)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
)

// Repl bundles the cosmetic identity of a session (banner, version,
// prompt) separately from the Evaluator it drives, so cmd/ver can
// configure both independently.
type Repl struct {
	Banner  string
	Version string
	Author  string
	Line    string
	Prompt  string
}

// New returns a Repl with sensible defaults for banner/prompt text.
func New(version string) *Repl {
	return &Repl{
		Banner:  "the Language",
		Version: version,
		Author:  "verlang",
		Line:    strings.Repeat("-", 48),
		Prompt:  "ver>>> ",
	}
}

func (r *Repl) printBanner(w io.Writer) {
	blueColor.Fprintf(w, "%s\n", r.Line)
	greenColor.Fprintf(w, "%s\n", r.Banner)
	blueColor.Fprintf(w, "%s\n", r.Line)
	yellowColor.Fprintln(w, "Version: "+r.Version)
	blueColor.Fprintf(w, "%s\n", r.Line)
	cyanColor.Fprintf(w, "%s\n", "Type Language code and press enter.")
	cyanColor.Fprintf(w, "%s\n", "Commands: exit, quit, help, vars")
	blueColor.Fprintf(w, "%s\n", r.Line)
}

// Start runs the read-eval-print loop until exit/quit or EOF. A single
// eval.Evaluator persists across lines, so declarations and state
// accumulate exactly as they would across statements in a file. The
// reader is normally os.Stdin, but a TCP session passes its connection
// so line editing happens over the wire.
func (r *Repl) Start(reader io.Reader, writer io.Writer, ev *eval.Evaluator) {
	r.printBanner(writer)

	cfg := &readline.Config{Prompt: r.Prompt, Stdout: writer}
	if rc, ok := reader.(io.ReadCloser); ok {
		cfg.Stdin = rc
	}
	rl, err := readline.NewEx(cfg)
	if err != nil {
		panic(err)
	}
	defer rl.Close()

	ev.SetWriter(writer)

	for {
		line, err := rl.Readline()
		if err != nil {
			fmt.Fprintln(writer, "Bye.")
			return
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		switch line {
		case "exit", "quit":
			fmt.Fprintln(writer, "Bye.")
			return
		case "help":
			r.printHelp(writer)
			continue
		case "vars":
			r.printVars(writer, ev)
			continue
		}
		rl.SaveHistory(line)
		r.evalLine(writer, line, ev)
	}
}

func (r *Repl) printHelp(w io.Writer) {
	cyanColor.Fprintln(w, "exit, quit   leave the REPL")
	cyanColor.Fprintln(w, "help         show this message")
	cyanColor.Fprintln(w, "vars         list current global bindings")
}

func (r *Repl) printVars(w io.Writer, ev *eval.Evaluator) {
	for _, name := range ev.Globals.Names() {
		v, _ := ev.Globals.Get(name)
		fmt.Fprintf(w, "%s = %s\n", name, v.String())
	}
}

// evalLine parses and evaluates one line, reporting parse errors in
// red without aborting the session — the REPL-specific relaxation of
// the otherwise-fatal parse-error policy.
func (r *Repl) evalLine(writer io.Writer, line string, ev *eval.Evaluator) {
	p := parser.New(line)
	prog := p.ParseProgram()
	if p.HasErrors() {
		for _, e := range p.Errors {
			redColor.Fprintln(writer, e)
		}
		return
	}

	result := ev.Run(prog)
	if isSilentStmt(prog) {
		return
	}
	if _, isNil := result.(value.Nil); isNil {
		return
	}
	yellowColor.Fprintln(writer, result.String())
}

// isSilentStmt reports whether the program's only/last top-level
// statement is a let/fn/class declaration — those never auto-print,
// per the REPL contract, even when they evaluate to a non-nil value.
func isSilentStmt(prog *parser.Program) bool {
	if len(prog.Statements) == 0 {
		return true
	}
	switch prog.Statements[len(prog.Statements)-1].(type) {
	case *parser.LetStmt, *parser.ClassStmt:
		return true
	case *parser.ExprStmt:
		_, ok := prog.Statements[len(prog.Statements)-1].(*parser.ExprStmt).X.(*parser.FuncLit)
		return ok
	default:
		return false
	}
}
