// Released under an MIT license. See LICENSE.

package eval

import (
	"github.com/lumenlang/lumen/internal/fail"
	"github.com/lumenlang/lumen/internal/feed"
	"github.com/lumenlang/lumen/internal/value"
)

// Abort is a non-local exit in flight: either a labeled throw or an error
// unwinding through the same channel.
type Abort struct {
	Label   value.T
	Payload value.T
	Target  *Frame  // Exact frame a definitional return unwinds to.
	Err     *fail.T // Set for failures; nil for ordinary throws.
}

// IsThrow returns true for a labeled throw as opposed to a failure.
func (a *Abort) IsThrow() bool {
	return a.Err == nil
}

// Outcome is what running a trampoline produces: a value, an unhandled
// throw, or an error.
type Outcome struct {
	Value value.T
	Stale bool // The run produced no new value; Value is leftover.

	Throw *Abort
	Err   *fail.T
}

// Trampoline drives a stack of frames. It is the only scheduler: strictly
// depth-first, one executor invocation at a time, no native recursion per
// nesting level.
type Trampoline struct {
	rt     *Runtime
	bottom *Frame
	top    *Frame
	depth  int
	abort  *Abort

	// Hook observes every executor return. Wired by embedding callers
	// for tracing; nil in normal operation.
	Hook func(*Frame, Bounce)
}

// NewTrampoline creates a trampoline with an empty stack.
func NewTrampoline(rt *Runtime) *Trampoline {
	tr := &Trampoline{rt: rt}

	tr.bottom = &Frame{tr: tr}
	tr.top = tr.bottom

	return tr
}

// Push creates a frame above the current top. The frame's executor must
// be assigned before the trampoline runs again.
func (tr *Trampoline) push(fd *feed.T, out *value.T, scope *value.Context, flags Flag) *Frame {
	if tr.depth >= tr.rt.MaxDepth {
		fail.Raise(fail.Overflow, "evaluation nested deeper than %d frames", tr.rt.MaxDepth)
	}

	f := &Frame{
		tr:      tr,
		prior:   tr.top,
		feed:    fd,
		out:     out,
		scope:   scope,
		flags:   flags,
		circled: -1,
	}

	tr.top = f
	tr.depth++

	return f
}

func (tr *Trampoline) drop() {
	f := tr.top

	if f.flags&ownFeed != 0 && f.feed != nil {
		f.feed.Close()
	}

	if f.sub != nil {
		f.sub.Close()
		f.sub = nil
	}

	tr.top = f.prior
	tr.depth--
}

// Run invokes the top frame's executor repeatedly, reacting to bounces,
// until a keepalive frame completes, the stack empties, or an unhandled
// abort reaches the bottom sentinel.
func (tr *Trampoline) Run() Outcome {
	for {
		f := tr.top
		b := tr.invoke(f)

	settle:
		if tr.Hook != nil {
			tr.Hook(f, b)
		}

		switch b {
		case Continue, Redo:
			// New top of stack, or the same frame again.

		case Out:
			if f.flags&KeepAlive != 0 {
				return Outcome{Value: *f.out, Stale: f.out.Stale()}
			}

			tr.drop()

			if tr.top == tr.bottom {
				return Outcome{Value: *f.out, Stale: f.out.Stale()}
			}

		case Thrown:
			// The frame that threw has had its turn; every frame
			// below gets one look if it asked for one, and is
			// popped otherwise.
			tr.drop()

			for tr.top != tr.bottom {
				f = tr.top

				if f.flags&Notify != 0 {
					b = tr.invoke(f)

					if b != Thrown {
						tr.abort = nil

						goto settle
					}
				}

				tr.drop()
			}

			ab := tr.abort
			tr.abort = nil

			if ab.Err != nil {
				return Outcome{Err: ab.Err}
			}

			return Outcome{Throw: ab}
		}
	}
}

// invoke runs one executor step, converting panics into the unified
// unwind channel.
func (tr *Trampoline) invoke(f *Frame) (b Bounce) {
	defer func() {
		if r := recover(); r != nil {
			tr.abort = &Abort{Err: fail.From(r)}
			b = Thrown
		}
	}()

	return f.exec(f)
}
