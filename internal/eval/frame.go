// Released under an MIT license. See LICENSE.

package eval

import (
	"github.com/lumenlang/lumen/internal/fail"
	"github.com/lumenlang/lumen/internal/feed"
	"github.com/lumenlang/lumen/internal/symbol"
	"github.com/lumenlang/lumen/internal/value"
)

// Flag bits for a frame.
type Flag uint16

// Frame flags.
const (
	// KeepAlive frames stay on the stack when they complete; the
	// trampoline returns their value to whoever requested the step.
	KeepAlive Flag = 1 << iota

	// ToEnd makes the stepper begin a new expression after each one
	// completes, until the feed is exhausted.
	ToEnd

	// Fulfilling marks a stepper frame that is gathering a function
	// argument. Barriers stop it and deferred enfix is left for the
	// parent.
	Fulfilling

	// NoLookahead suppresses trailing enfix lookahead for this frame.
	// Set when fulfilling the right argument of an enfix action so that
	// operators chain left to right.
	NoLookahead

	// FirstFromOut makes action fulfillment take its first unfilled
	// ordinary parameter from the output cell instead of the feed.
	// Consumed exactly once; this is how enfix steals its left operand.
	FirstFromOut

	// Notify frames get one executor invocation with Aborting() true
	// when a throw or failure passes by, instead of being popped
	// silently.
	Notify

	// ownFeed marks a frame that allocated its feed and must close it.
	ownFeed
)

// Frame is one in-flight evaluation activation: a heap-resident record of
// everything needed to resume after a suspension.
type Frame struct {
	tr    *Trampoline
	prior *Frame

	feed  *feed.T
	out   *value.T
	spare value.T

	exec  Executor
	state byte
	flags Flag
	label symbol.ID

	scope *value.Context // Where unbound words resolve.

	// Stepper scratch.
	current value.T
	target  value.T // Pending set-word/set-tuple target.
	acc     *value.Array
	sub     *feed.T // Owned inner feed for reduce-style loops.
	noLeft  bool    // A comma severed the leftover value from enfix.

	// Action invocation scratch.
	action   *Action
	args     *value.Context
	paramIdx int
	refines  []symbol.ID // Pending refinements, pushed in reverse.
	outputs  []outTarget // Resolved multiple-return targets.
	outIdx   int
	circled  int // Index into outputs whose value becomes the result, or -1.
}

type outTarget struct {
	mode   byte // targetBind, targetDiscard, targetRequest
	meta   bool
	word   value.T // The word or tuple to write back through.
	result value.T
	filled bool
}

const (
	targetBind byte = iota
	targetDiscard
	targetRequest
)

// Rt returns the runtime this frame evaluates under.
func (f *Frame) Rt() *Runtime {
	return f.tr.rt
}

// Out returns the frame's output cell.
func (f *Frame) Out() *value.T {
	return f.out
}

// Feed returns the frame's input cursor.
func (f *Frame) Feed() *feed.T {
	return f.feed
}

// Label returns the symbol naming the running action, if any.
func (f *Frame) Label() symbol.ID {
	return f.label
}

// Scope returns the context unbound words resolve in.
func (f *Frame) Scope() *value.Context {
	return f.scope
}

// State returns the frame's resumption tag. Dispatchers that suspend
// record where to pick up by setting a state at or above StateBegin.
func (f *Frame) State() byte {
	return f.state
}

// SetState sets the frame's resumption tag.
func (f *Frame) SetState(s byte) {
	f.state = s
}

// Arg returns a pointer to argument slot n (1-based) of an action frame.
func (f *Frame) Arg(n int) *value.T {
	return f.args.At(n)
}

// ArgBySym returns the argument slot named s, or nil.
func (f *Frame) ArgBySym(s symbol.ID) *value.T {
	if n := f.args.Find(f.Rt().Symbols, s); n != 0 {
		return f.args.At(n)
	}

	return nil
}

// Aborting returns the throw or failure passing through this frame, if
// any. Only Notify frames observe one.
func (f *Frame) Aborting() *Abort {
	return f.tr.abort
}

// Continue pushes a child stepper frame that evaluates one expression
// from the frame's own feed into the frame's output cell, then suspends.
func (f *Frame) Continue(nextState byte) Bounce {
	f.state = nextState

	child := f.tr.push(f.feed, f.out, f.scope, 0)
	child.exec = stepper

	return Continue
}

// ContinueInto pushes a child stepper frame over its own feed for the
// array a, writing into dst. Used for groups and bodies.
func (f *Frame) ContinueInto(a *value.Array, dst *value.T, scope *value.Context, flags Flag, nextState byte) Bounce {
	f.state = nextState

	child := f.tr.push(feed.FromArray(f.Rt().Symbols, a, 0), dst, scope, flags|ToEnd|ownFeed)
	child.exec = stepper

	return Continue
}

// fulfillStep pushes a child stepper that gathers one argument into dst.
func (f *Frame) fulfillStep(dst *value.T, enfix bool, nextState byte) Bounce {
	f.state = nextState

	flags := Fulfilling
	if enfix {
		flags |= NoLookahead
	}

	child := f.tr.push(f.feed, dst, f.scope, flags)
	child.exec = stepper

	return Continue
}

// Throw raises a labeled non-local exit from this frame.
func (f *Frame) Throw(label, payload value.T, target *Frame) Bounce {
	f.tr.abort = &Abort{Label: label, Payload: payload, Target: target}

	return Thrown
}

// Fail raises an evaluator error. It does not return.
func (f *Frame) Fail(k fail.Kind, format string, args ...interface{}) {
	err := fail.New(k, format, args...)

	if !f.current.Unset() {
		err.Near = value.Mold(f.Rt().Symbols, &f.current)
	}

	panic(err)
}
