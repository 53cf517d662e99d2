/*
File    : verlang/cmd/ver/main.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Command ver is the CLI driver for the Language: no args starts a
// REPL, a file argument executes it, --examples runs a demo banner,
// and the server subcommand exposes a REPL session over TCP.
package main

import (
	"fmt"
	"io"
	"net"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/akashmaji946/verlang/eval"
	"github.com/akashmaji946/verlang/include"
	"github.com/akashmaji946/verlang/parser"
	"github.com/akashmaji946/verlang/replsrv"
)

const version = "0.1.0"

var (
	redColor  = color.New(color.FgRed)
	cyanColor = color.New(color.FgCyan)
)

var runExamples bool

func main() {
	root := newRootCmd()
	root.AddCommand(newServerCmd())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "ver [file]",
		Short:   "the Language interpreter",
		Version: version,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if runExamples {
				runExampleBanner(cmd.OutOrStdout())
				return nil
			}
			if len(args) == 1 {
				return runFile(args[0])
			}
			runREPL()
			return nil
		},
	}
	cmd.Flags().BoolVar(&runExamples, "examples", false, "run a built-in demo of the Language")
	return cmd
}

func newServerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "server <port>",
		Short: "expose a REPL session over TCP",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(args[0])
		},
	}
}

// runFile executes a source file. Parse errors are fatal in this
// mode — the process aborts, per the language's file-execution
// contract.
func runFile(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		redColor.Fprintf(os.Stderr, "cannot read %s: %v\n", path, err)
		os.Exit(1)
	}
	p := parser.New(string(src))
	prog := p.ParseProgram()
	if p.HasErrors() {
		for _, e := range p.Errors {
			redColor.Fprintln(os.Stderr, e)
		}
		os.Exit(1)
	}
	ev := eval.New()
	include.Install(ev)
	ev.Run(prog)
	return nil
}

func runREPL() {
	ev := eval.New()
	include.Install(ev)
	r := replsrv.New(version)
	r.Start(os.Stdin, os.Stdout, ev)
}

func runServer(port string) error {
	listener, err := net.Listen("tcp", ":"+port)
	if err != nil {
		return fmt.Errorf("start server on %s: %w", port, err)
	}
	cyanColor.Printf("the Language REPL server listening on :%s\n", port)
	defer listener.Close()

	for {
		conn, err := listener.Accept()
		if err != nil {
			redColor.Fprintf(os.Stderr, "accept: %v\n", err)
			continue
		}
		go handleClient(conn)
	}
}

func handleClient(conn net.Conn) {
	defer conn.Close()
	cyanColor.Printf("client connected from %s\n", conn.RemoteAddr())
	ev := eval.New()
	include.Install(ev)
	ev.SetReader(conn)
	r := replsrv.New(version)
	r.Start(conn, conn, ev)
	cyanColor.Printf("client disconnected from %s\n", conn.RemoteAddr())
}

// runExampleBanner runs a few short demonstration programs and prints
// their output, so --examples shows the interpreter actually working
// instead of a static banner.
func runExampleBanner(w io.Writer) {
	samples := []struct {
		title, src string
	}{
		{"fibonacci", `fn fib(n) if n < 2 return n end return fib(n-1) + fib(n-2) end print(fib(10))`},
		{"closures", `fn make() let c = 0 return fn() => c = c + 1 end let inc = make() print(inc()) print(inc()) print(inc())`},
		{"classes", `class Counter fn __init__(x) self.x = x end fn inc() self.x += 1 return self.x end end let c = new Counter(10) print(c.inc()) print(c.inc())`},
	}
	for _, s := range samples {
		cyanColor.Fprintf(w, "-- %s --\n", s.title)
		p := parser.New(s.src)
		prog := p.ParseProgram()
		if p.HasErrors() {
			for _, e := range p.Errors {
				redColor.Fprintln(w, e)
			}
			continue
		}
		ev := eval.New()
		ev.SetWriter(w)
		ev.Run(prog)
	}
}
