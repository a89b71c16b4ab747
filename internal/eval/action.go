// Released under an MIT license. See LICENSE.

package eval

import (
	"github.com/lumenlang/lumen/internal/symbol"
	"github.com/lumenlang/lumen/internal/value"
)

// ParamClass says how an argument is obtained from the feed.
type ParamClass uint8

// The parameter classes.
const (
	Normal ParamClass = iota // Evaluate one full expression step.
	Hard                     // Take the next token literally.
	Soft                     // Literal, unless a get-form, which evaluates.
	Medium                   // Literal, unless a get-group.
	MetaArg                  // Evaluate, then meta-quotify the result.
	Output                   // Pre-loaded by set-block binding, not fed.
	ReturnSlot               // Synthesized definitional return.
)

// Param describes one parameter of an action.
type Param struct {
	Name       symbol.ID
	Class      ParamClass
	Refinement bool
	Endable    bool                // Null when the feed runs out instead of an arity failure.
	Check      func(*value.T) bool // Legal-type predicate, nil for any.
}

// ActionFlag bits.
type ActionFlag uint8

// Action flags.
const (
	Enfixed     ActionFlag = 1 << iota // Takes its first argument from the left.
	QuotesFirst                        // First parameter is a quoting class.
	DefersLeft                         // Lookback is deferred to the parent step.
	Postpones                          // Runs only after everything to its left.
	Intercepts                         // Dispatcher is re-invoked to inspect passing throws and failures.
)

// Action is an invocable unit. The dispatcher is the currently active
// implementation; swapping it redirects every existing reference to the
// action, which is how hijacking works.
type Action struct {
	Label  symbol.ID
	Params []Param
	Flags  ActionFlag

	Dispatch Dispatcher
	Details  interface{}    // Interpreted by the dispatcher.
	Exemplar *value.Context // Partially pre-filled call frame, or nil.

	Body  *value.Array   // For interpreted actions.
	Scope *value.Context // Captured definition scope for interpreted actions.
}

// NewAction builds an action, canonicalizing any return parameter into
// slot zero so return-path logic stays uniform.
func NewAction(label symbol.ID, params []Param, flags ActionFlag, d Dispatcher) *Action {
	for i, p := range params {
		if p.Class == ReturnSlot && i != 0 {
			reordered := make([]Param, 0, len(params))
			reordered = append(reordered, p)
			reordered = append(reordered, params[:i]...)
			reordered = append(reordered, params[i+1:]...)
			params = reordered

			break
		}
	}

	if len(params) > 0 && !params[0].Refinement {
		switch params[0].Class {
		case Hard, Soft, Medium:
			flags |= QuotesFirst
		}
	}

	return &Action{Label: label, Params: params, Flags: flags, Dispatch: d}
}

// Enfix returns true if the action takes its first argument from the left.
func (a *Action) Enfix() bool {
	return a.Flags&Enfixed != 0
}

// Cell wraps the action in an action cell.
func (a *Action) Cell() value.T {
	return value.NewAction(a)
}

// ActionOf extracts the action implementation from an action cell, or nil.
func ActionOf(c *value.T) *Action {
	if c.Heart() != value.ActionKind {
		return nil
	}

	a, _ := c.Box().(*Action)

	return a
}

// firstUnfilled returns the index of the first non-return, non-output,
// non-refinement parameter.
func (a *Action) firstUnfilled() int {
	for i, p := range a.Params {
		if p.Class == ReturnSlot || p.Class == Output || p.Refinement {
			continue
		}

		return i
	}

	return -1
}
