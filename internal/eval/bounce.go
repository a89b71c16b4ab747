// Released under an MIT license. See LICENSE.

package eval

// Bounce is what an executor hands back to the trampoline.
type Bounce uint8

// The bounce signals.
const (
	// Out: the frame has completed and its output cell holds the result
	// (possibly still stale, meaning the frame produced no new value).
	Out Bounce = iota

	// Continue: the executor pushed a child frame as a side effect; the
	// trampoline should run the new top of stack before resuming this
	// frame.
	Continue

	// Redo: re-invoke the same frame. Used by the stepper to begin the
	// next expression of a step-to-end evaluation without native
	// recursion, while still passing through the trampoline so hooks
	// observe every re-entry.
	Redo

	// Thrown: a labeled non-local exit is in flight on the trampoline.
	Thrown
)

func (b Bounce) String() string {
	switch b {
	case Out:
		return "out"
	case Continue:
		return "continue"
	case Redo:
		return "redo"
	}

	return "thrown"
}

// Executor implements one frame's state machine step.
type Executor func(*Frame) Bounce

// Dispatcher runs an action once its call frame is fulfilled.
type Dispatcher func(*Frame) Bounce
