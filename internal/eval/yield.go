// Released under an MIT license. See LICENSE.

package eval

import (
	"github.com/lumenlang/lumen/internal/fail"
	"github.com/lumenlang/lumen/internal/feed"
	"github.com/lumenlang/lumen/internal/symbol"
	"github.com/lumenlang/lumen/internal/value"
)

// generator is the state behind a yielder action. The body runs on its
// own goroutine with its own trampoline; yield suspends it by blocking on
// a rendezvous with the caller. Only one side is ever running, so the
// evaluator's single-threaded, cooperative contract is preserved: the
// goroutine is just where the suspended frame stack lives between
// resumptions.
type generator struct {
	rt    *Runtime
	body  *value.Array
	scope *value.Context

	resume  chan struct{}
	next    chan genResult
	started bool
	done    bool
}

type genResult struct {
	value value.T
	done  bool
	err   *fail.T
}

// NewGenerator builds an action that, each time it is called, resumes the
// suspended evaluation of body and produces the next yielded value. An
// exhausted generator produces null. The body sees a definitional yield
// bound to this generator instance.
func NewGenerator(rt *Runtime, label symbol.ID, body *value.Array, scope *value.Context) *Action {
	g := &generator{
		rt:     rt,
		body:   body,
		scope:  scope,
		resume: make(chan struct{}),
		next:   make(chan genResult),
	}

	a := NewAction(label, nil, 0, g.dispatch)
	a.Details = g

	return a
}

func (g *generator) dispatch(f *Frame) Bounce {
	if g.done {
		*f.Out() = value.NullCell

		return Out
	}

	if !g.started {
		g.started = true

		go g.run()
	} else {
		g.resume <- struct{}{}
	}

	r := <-g.next

	if r.err != nil {
		panic(r.err)
	}

	if r.done {
		g.done = true
		*f.Out() = value.NullCell

		return Out
	}

	*f.Out() = r.value

	return Out
}

func (g *generator) run() {
	tbl := g.rt.Symbols

	scope := value.NewContext(g.scope)

	ysym := tbl.Intern("yield")
	yield := NewAction(ysym, []Param{{
		Name:  tbl.Intern("value"),
		Class: Normal,
	}}, 0, g.yield)
	scope.Define(tbl, ysym, yield.Cell())

	out := RunFeed(g.rt, feed.FromArray(tbl, g.body, 0), scope)

	switch {
	case out.Err != nil:
		g.next <- genResult{err: out.Err}
	case out.Throw != nil:
		g.next <- genResult{err: fail.New(fail.UnhandledThrow, "throw escaped a generator body")}
	default:
		g.next <- genResult{done: true}
	}
}

// yield hands one value to whoever resumed the generator, then blocks
// until the next resumption.
func (g *generator) yield(f *Frame) Bounce {
	g.next <- genResult{value: value.Decay(*f.Arg(1))}

	<-g.resume

	*f.Out() = value.NullCell

	return Out
}
