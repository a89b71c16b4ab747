/*
Lumen is an interpreter for a small symbolic language in the Rebol family.
Source is scanned into blocks of cells and evaluated left to right by a
stackless trampoline, one expression at a time:

    x: 1 + 2
    [q r]: divmod 7 2
    double: func [n] [n * 2]
    reduce [double 3 double 4]

For more detail, see: https://github.com/lumenlang/lumen

Lumen is released under an MIT-style license.
*/
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/tliron/commonlog"

	"github.com/lumenlang/lumen/internal/eval"
	"github.com/lumenlang/lumen/internal/feed"
	"github.com/lumenlang/lumen/internal/runtime"
	"github.com/lumenlang/lumen/internal/scan"
	"github.com/lumenlang/lumen/internal/system/options"
	"github.com/lumenlang/lumen/internal/ui"
	"github.com/lumenlang/lumen/internal/value"

	_ "github.com/tliron/commonlog/simple"
)

func main() {
	options.Parse()

	rt := runtime.New()

	if n := options.Depth(); n > 0 {
		rt.MaxDepth = n
	}

	hook := traceHook(rt)

	if options.Interactive() {
		ui.Run(rt, options.Prompt(), hook)

		return
	}

	label, src := source()

	block, err := scan.Text(rt.Symbols, label, src)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	run(rt, block, hook)
}

// source returns the label and text of the program to evaluate: the -c
// argument, the named script, or stdin.
func source() (string, string) {
	if command := options.Command(); command != "" {
		return options.Args()[0], command
	}

	path := options.Script()
	if path == "" {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintln(os.Stderr, "lumen: "+err.Error())
			os.Exit(1)
		}

		return "stdin", string(b)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "lumen: "+err.Error())
		os.Exit(1)
	}

	return path, string(b)
}

func run(rt *eval.Runtime, block *value.Array, hook func(*eval.Frame, eval.Bounce)) {
	s := eval.NewStepper(rt, feed.FromArray(rt.Symbols, block, 0), nil)
	s.SetHook(hook)

	for !s.AtEnd() {
		o := s.Step()

		if o.Err != nil {
			fmt.Fprintln(os.Stderr, o.Err.Error())
			os.Exit(1)
		}

		if o.Throw != nil {
			p := o.Throw.Payload
			fmt.Fprintln(os.Stderr, "** unhandled throw:", value.Mold(rt.Symbols, &p))
			os.Exit(1)
		}
	}
}

// traceHook wires a logging callback observing every trampoline bounce,
// or nil when tracing is off.
func traceHook(rt *eval.Runtime) func(*eval.Frame, eval.Bounce) {
	if !options.Trace() {
		return nil
	}

	commonlog.Configure(2, nil)

	log := commonlog.GetLogger("lumen.eval")

	return func(f *eval.Frame, b eval.Bounce) {
		log.Debugf("%s state=%d %s", rt.Symbols.Name(f.Label()), f.State(), b)
	}
}
