// Released under an MIT license. See LICENSE.

package eval

import (
	"github.com/lumenlang/lumen/internal/fail"
	"github.com/lumenlang/lumen/internal/feed"
	"github.com/lumenlang/lumen/internal/symbol"
	"github.com/lumenlang/lumen/internal/value"
)

// Fulfiller resumption states.
const (
	fsFulfill byte = iota
	fsArgDone
	fsSoftDone
)

// StateBegin is the state a call frame presents to its dispatcher on
// first invocation, once every argument is fulfilled. Dispatchers that
// suspend record where to resume using states above it.
const StateBegin byte = 16

// beginInvoke pushes a call frame for a above this frame. The child
// shares the feed, so argument fulfillment consumes from the same input,
// and shares the output cell, so the action's result lands where this
// frame's expression value belongs.
func (f *Frame) beginInvoke(a *Action, label symbol.ID, fromOut bool, nextState byte) Bounce {
	f.state = nextState

	flags := Notify
	if fromOut {
		flags |= FirstFromOut
	}

	child := f.tr.push(f.feed, f.out, f.scope, flags)
	child.exec = fulfiller
	child.action = a
	child.label = label
	child.refines = f.refines
	child.outputs = f.outputs
	child.args = buildArgs(a)

	f.refines = nil

	return Continue
}

// buildArgs creates the argument context for a call: one slot per
// parameter, pre-filled from the exemplar when the action is a
// specialization. The context chains to the action's definition scope so
// an interpreted body resolves through its arguments first.
func buildArgs(a *Action) *value.Context {
	x := value.NewContext(a.Scope)

	for i := range a.Params {
		x.Extend(a.Params[i].Name)
	}

	if a.Exemplar != nil {
		n := x.Len() - 1
		if m := a.Exemplar.Len() - 1; m < n {
			n = m
		}

		for i := 1; i <= n; i++ {
			if v := a.Exemplar.At(i); !v.Unset() {
				*x.At(i) = *v
			}
		}
	}

	return x
}

// fulfiller is the call-frame state machine: it gathers arguments per the
// parameter classes, then hands the frame to the action's dispatcher.
// Call frames are notified of passing throws so a definitional return
// aimed at exactly this frame can land here.
func fulfiller(f *Frame) Bounce {
	if ab := f.Aborting(); ab != nil {
		if ab.IsThrow() && ab.Target == f {
			*f.out = ab.Payload

			return Out
		}

		if f.state >= StateBegin && f.action.Flags&Intercepts != 0 {
			return f.action.Dispatch(f)
		}

		return Thrown
	}

	switch f.state {
	case fsFulfill:
		return f.fulfill()

	case fsArgDone:
		return f.argDone()

	case fsSoftDone:
		p := &f.action.Params[f.paramIdx]
		slot := f.args.At(f.paramIdx + 1)

		*slot = value.Decay(*slot)
		f.typecheck(p, slot)
		f.paramIdx++

		return f.fulfill()
	}

	return f.action.Dispatch(f)
}

// fulfill walks parameters and argument slots in lockstep, consuming
// input per each parameter's class, until every slot is filled.
func (f *Frame) fulfill() Bounce {
	a := f.action

	for f.paramIdx < len(a.Params) {
		p := &a.Params[f.paramIdx]
		slot := f.args.At(f.paramIdx + 1)

		switch {
		case p.Class == ReturnSlot:
			*slot = f.makeReturn()

		case p.Class == Output:
			f.bindOutput(slot)

		case p.Refinement:
			if slot.Unset() {
				*slot = f.refinement(p)
			}

		case !slot.Unset():
			// Specialized; the exemplar already filled it.

		case f.flags&FirstFromOut != 0:
			f.flags &^= FirstFromOut

			if f.out.Unset() {
				f.Fail(fail.Arity, "%s is missing its left argument", f.name(f.label))
			}

			*slot = *f.out

			if p.Class == Normal || p.Class == MetaArg {
				f.finishArg(p, slot)
			} else {
				f.typecheck(p, slot)
			}

		case p.Class == Hard || p.Class == Soft || p.Class == Medium:
			b, done := f.takeLiteral(p, slot)
			if !done {
				return b
			}

		default: // Normal, MetaArg.
			if f.feed.AtEnd() || f.feed.Flags()&feed.Barrier != 0 {
				if p.Endable {
					*slot = value.NullCell

					break
				}

				f.Fail(fail.Arity, "%s is missing its %s argument", f.name(f.label), f.name(p.Name))
			}

			return f.fulfillStep(slot, a.Enfix(), fsArgDone)
		}

		f.paramIdx++
	}

	f.checkRefines()

	f.state = StateBegin

	return a.Dispatch(f)
}

// argDone finalizes an evaluated argument. A stale slot means the
// argument expression vanished; fulfillment keeps stepping until a value
// is produced or the input runs out.
func (f *Frame) argDone() Bounce {
	a := f.action
	p := &a.Params[f.paramIdx]
	slot := f.args.At(f.paramIdx + 1)

	if slot.Stale() {
		if f.feed.AtEnd() || f.feed.Flags()&feed.Barrier != 0 {
			if p.Endable {
				*slot = value.NullCell
				f.paramIdx++

				return f.fulfill()
			}

			f.Fail(fail.Arity, "%s is missing its %s argument", f.name(f.label), f.name(p.Name))
		}

		return f.fulfillStep(slot, a.Enfix(), fsArgDone)
	}

	f.finishArg(p, slot)
	f.paramIdx++

	return f.fulfill()
}

// finishArg applies the per-class conversion to an evaluated argument:
// normal arguments decay, meta arguments are meta-quotified so isotopes
// can flow through the slot.
func (f *Frame) finishArg(p *Param, slot *value.T) {
	switch p.Class {
	case Normal:
		v := value.Decay(*slot)

		if v.Isotope() && v.Heart() == value.ErrorKind {
			if e, ok := v.Box().(*fail.T); ok {
				panic(e)
			}

			f.Fail(fail.TypeMismatch, "error isotope passed to %s", f.name(f.label))
		}

		*slot = v

	case MetaArg:
		*slot = value.MetaQuotify(*slot)
	}

	f.typecheck(p, slot)
}

// takeLiteral fills a quoting-class parameter. Hard takes the next value
// verbatim; soft evaluates get-words and get-groups; medium evaluates
// get-groups only. Returns done=false when a child evaluation was pushed.
func (f *Frame) takeLiteral(p *Param, slot *value.T) (Bounce, bool) {
	fd := f.feed

	if fd.AtEnd() || fd.Flags()&feed.Barrier != 0 {
		if p.Endable {
			*slot = value.NullCell

			return Out, true
		}

		f.Fail(fail.Arity, "%s is missing its %s argument", f.name(f.label), f.name(p.Name))
	}

	c := *fd.At()

	if c.Plain() {
		switch {
		case p.Class == Soft && c.Heart() == value.GetWord:
			fd.Next()

			v := f.resolveQuiet(&c)
			if v == nil || v.Unset() {
				f.Fail(fail.Access, "%s has no value", f.name(c.Symbol()))
			}

			*slot = *v
			f.typecheck(p, slot)

			return Out, true

		case (p.Class == Soft || p.Class == Medium) && c.Heart() == value.GetGroup:
			fd.Next()

			return f.ContinueInto(c.Series(), slot, f.scope, 0, fsSoftDone), false
		}
	}

	fd.Next()

	*slot = c
	f.typecheck(p, slot)

	return Out, true
}

// bindOutput fills an output-class slot with whether the caller asked for
// that return. The value itself arrives later through SetOutput.
func (f *Frame) bindOutput(slot *value.T) {
	if f.outIdx < len(f.outputs) && f.outputs[f.outIdx].mode != targetDiscard {
		*slot = value.TrueCell
	} else {
		*slot = value.NullCell
	}

	f.outIdx++
}

// SetOutput delivers output i of a multiple-return action. Output zero is
// the primary and also becomes the frame's result.
func (f *Frame) SetOutput(i int, v value.T) {
	if i == 0 {
		*f.out = v
	}

	if i < len(f.outputs) {
		t := &f.outputs[i]
		t.result = v
		t.filled = true
	}
}

// refinement returns the switch value for an optional parameter: true
// when the call's path named it, null otherwise.
func (f *Frame) refinement(p *Param) value.T {
	for _, s := range f.refines {
		if f.Rt().Symbols.Same(s, p.Name) {
			return value.TrueCell
		}
	}

	return value.NullCell
}

// checkRefines rejects refinements that name no parameter.
func (f *Frame) checkRefines() {
	tbl := f.Rt().Symbols

outer:
	for _, s := range f.refines {
		for i := range f.action.Params {
			p := &f.action.Params[i]
			if p.Refinement && tbl.Same(s, p.Name) {
				continue outer
			}
		}

		f.Fail(fail.NoOperation, "%s has no %s refinement", f.name(f.label), f.name(s))
	}
}

func (f *Frame) typecheck(p *Param, slot *value.T) {
	if p.Check != nil && !p.Check(slot) {
		f.Fail(fail.TypeMismatch, "%s does not accept %s for %s",
			f.name(f.label), value.Mold(f.Rt().Symbols, slot), f.name(p.Name))
	}
}

// makeReturn synthesizes the definitional return for this call: an ad hoc
// action whose details record this exact frame, so invoking it unwinds
// precisely here no matter how deeply nested the invocation is.
func (f *Frame) makeReturn() value.T {
	params := []Param{{
		Name:    f.Rt().Symbols.Intern("value"),
		Class:   Normal,
		Endable: true,
	}}

	ret := NewAction(symbol.Return, params, 0, returnDispatch)
	ret.Details = f

	return ret.Cell()
}

func returnDispatch(rf *Frame) Bounce {
	target, _ := rf.action.Details.(*Frame)
	if target == nil {
		rf.Fail(fail.Internal, "return lost its originating frame")
	}

	return rf.Throw(value.NewWord(value.Word, symbol.Return), *rf.Arg(1), target)
}

// NewInterpreted builds an action whose body is a block evaluated in a
// fresh argument context chained to the definition scope. A definitional
// return slot is added in front of the declared parameters.
func NewInterpreted(label symbol.ID, params []Param, body *value.Array, scope *value.Context) *Action {
	ps := make([]Param, 0, len(params)+1)
	ps = append(ps, Param{Name: symbol.Return, Class: ReturnSlot})
	ps = append(ps, params...)

	a := NewAction(label, ps, 0, applyBody)
	a.Body = body
	a.Scope = scope

	return a
}

// applyBody runs an interpreted action's body to completion.
func applyBody(f *Frame) Bounce {
	if f.state == StateBegin {
		a := f.action

		if a.Body.Len() == 0 {
			return Out
		}

		f.state = StateBegin + 1

		child := f.tr.push(feed.FromArray(f.Rt().Symbols, a.Body, 0), f.out, f.args, ToEnd|ownFeed)
		child.exec = stepper

		return Continue
	}

	return Out
}
