// Released under an MIT license. See LICENSE.

package eval

import (
	"github.com/lumenlang/lumen/internal/feed"
	"github.com/lumenlang/lumen/internal/value"
)

// Stepper evaluates one expression at a time from a feed, preserving the
// evaluator state, including the leftover value, between steps. This is
// the incremental interface used by the read-eval loop.
type Stepper struct {
	tr    *Trampoline
	fd    *feed.T
	scope *value.Context
	out   value.T
	f     *Frame
}

// NewStepper creates a stepper over fd. A nil scope means the runtime's
// lib context.
func NewStepper(rt *Runtime, fd *feed.T, scope *value.Context) *Stepper {
	if scope == nil {
		scope = rt.Lib
	}

	s := &Stepper{tr: NewTrampoline(rt), fd: fd, scope: scope}
	s.attach()

	return s
}

func (s *Stepper) attach() {
	s.f = s.tr.push(s.fd, &s.out, s.scope, KeepAlive)
	s.f.exec = stepper
}

// Step evaluates one full expression, including any trailing enfix. A
// stale outcome means the step produced no new value.
func (s *Stepper) Step() Outcome {
	if s.tr.top == s.tr.bottom {
		// The previous step unwound the frame with an abort.
		s.attach()
	}

	s.f.state = stInitial

	return s.tr.Run()
}

// AtEnd reports whether the feed is exhausted.
func (s *Stepper) AtEnd() bool {
	return s.fd.AtEnd()
}

// SetHook wires a tracing callback observing every executor return.
func (s *Stepper) SetHook(h func(*Frame, Bounce)) {
	s.tr.Hook = h
}

// StepFeed evaluates exactly one expression from fd.
func StepFeed(rt *Runtime, fd *feed.T, scope *value.Context) Outcome {
	return runFeed(rt, fd, scope, 0)
}

// RunFeed evaluates fd to exhaustion, returning the last expression's
// result.
func RunFeed(rt *Runtime, fd *feed.T, scope *value.Context) Outcome {
	return runFeed(rt, fd, scope, ToEnd)
}

func runFeed(rt *Runtime, fd *feed.T, scope *value.Context, flags Flag) Outcome {
	if scope == nil {
		scope = rt.Lib
	}

	tr := NewTrampoline(rt)

	var out value.T

	f := tr.push(fd, &out, scope, flags)
	f.exec = stepper

	return tr.Run()
}
