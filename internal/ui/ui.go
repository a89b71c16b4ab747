// Released under an MIT license. See LICENSE.

// Package ui provides the interactive read-eval loop for the lumen
// language.
package ui

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/peterh/liner"

	"github.com/lumenlang/lumen/internal/eval"
	"github.com/lumenlang/lumen/internal/feed"
	"github.com/lumenlang/lumen/internal/scan"
	"github.com/lumenlang/lumen/internal/symbol"
	"github.com/lumenlang/lumen/internal/system/history"
	"github.com/lumenlang/lumen/internal/value"
)

// Run launches the read-eval loop against rt. It returns when the user
// sends end-of-file. The hook, if non-nil, observes every executor return.
func Run(rt *eval.Runtime, prompt string, hook func(*eval.Frame, eval.Bounce)) {
	cooked, err := liner.TerminalMode()
	if err != nil {
		println(err.Error())
		os.Exit(1)
	}

	cli := liner.NewLiner()
	defer cli.Close()

	uncooked, err := liner.TerminalMode()
	if err != nil {
		println(err.Error())
		os.Exit(1)
	}

	cli.SetCtrlCAborts(true)
	cli.SetWordCompleter(completer(rt))

	_ = history.Load(func(r io.Reader) (int, error) {
		return cli.ReadHistory(r)
	})

	defer func() {
		_ = history.Save(func(w io.Writer) (int, error) {
			return cli.WriteHistory(w)
		})
	}()

	for {
		src, ok := read(cli, cooked, uncooked, prompt)
		if !ok {
			os.Stdout.Write([]byte("\n"))

			return
		}

		if strings.TrimSpace(src) == "" {
			continue
		}

		cli.AppendHistory(strings.TrimSpace(strings.ReplaceAll(src, "\n", " ")))

		block, serr := scan.Text(rt.Symbols, "repl", src)
		if serr != nil {
			fmt.Println(serr.Error())

			continue
		}

		evaluate(rt, block, hook)
	}
}

// read collects one unit of source, prompting for continuation lines while
// the scanner reports an unclosed delimiter. It reports false on EOF.
func read(cli *liner.State, cooked, uncooked liner.ModeApplier, prompt string) (string, bool) {
	src := ""

	for {
		if merr := uncooked.ApplyMode(); merr != nil {
			println(merr.Error())
			os.Exit(1)
		}

		line, err := cli.Prompt(prompt)

		if merr := cooked.ApplyMode(); merr != nil {
			println(merr.Error())
			os.Exit(1)
		}

		switch err {
		case nil:
		case liner.ErrPromptAborted:
			return "", true
		default:
			return "", false
		}

		src += line + "\n"

		if !unclosed(src) {
			return src, true
		}

		if n := len(prompt) - 1; n > 0 {
			prompt = strings.Repeat(".", n) + " "
		}
	}
}

// unclosed reports whether src fails to scan only because a closing
// delimiter has not been typed yet. A throwaway symbol table keeps the
// probe from interning partial spellings into the live runtime.
func unclosed(src string) bool {
	_, err := scan.Text(symbol.New(), "repl", src)

	return err != nil && strings.HasPrefix(err.Message, "missing")
}

func evaluate(rt *eval.Runtime, block *value.Array, hook func(*eval.Frame, eval.Bounce)) {
	s := eval.NewStepper(rt, feed.FromArray(rt.Symbols, block, 0), nil)
	s.SetHook(hook)

	for !s.AtEnd() {
		o := s.Step()

		switch {
		case o.Err != nil:
			fmt.Println(o.Err.Error())

			return
		case o.Throw != nil:
			fmt.Println("** unhandled throw:", value.Mold(rt.Symbols, &o.Throw.Payload))

			return
		case !o.Stale:
			v := o.Value
			fmt.Println("==", value.Mold(rt.Symbols, &v))
		}
	}
}

// completer suggests words visible from the lib context.
func completer(rt *eval.Runtime) liner.WordCompleter {
	return func(s string, n int) (h string, cs []string, t string) {
		h = s[:n]
		t = s[n:]

		start := n
		for start > 0 && wordByte(s[start-1]) {
			start--
		}

		prefix := s[start:n]
		if prefix == "" {
			return
		}

		h = s[:start]

		seen := map[string]bool{}

		for x := rt.Lib; x != nil; x = x.Parent() {
			for i := x.Len() - 1; i > 0; i-- {
				w := rt.Symbols.Name(x.KeyAt(i))
				if strings.HasPrefix(w, prefix) && !seen[w] {
					seen[w] = true

					cs = append(cs, w)
				}
			}
		}

		sort.Strings(cs)

		return
	}
}

func wordByte(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}

	return strings.IndexByte("-+*<>=?!.&|_~", c) >= 0
}
