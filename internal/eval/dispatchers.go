// Released under an MIT license. See LICENSE.

package eval

import (
	"github.com/lumenlang/lumen/internal/fail"
	"github.com/lumenlang/lumen/internal/feed"
	"github.com/lumenlang/lumen/internal/value"
)

// Dispatchers for natives whose control flow needs the frame's inner
// loop machinery. They live here rather than with the other natives
// because they step a block expression by expression, which takes the
// frame's owned sub-feed and accumulator.

// ReduceDispatch evaluates every expression of the block in slot one and
// collects the results into a new block.
func ReduceDispatch(f *Frame) Bounce {
	if f.state == StateBegin {
		v := f.Arg(1)
		if !v.Plain() || v.Heart() != value.Block {
			f.Fail(fail.TypeMismatch, "reduce needs a block")
		}

		f.acc = value.NewSeries()

		a := v.Series()
		if a.Len() == 0 {
			*f.out = value.NewArray(value.Block, f.acc)
			f.acc = nil

			return Out
		}

		f.sub = feed.FromArray(f.Rt().Symbols, a, 0)
	} else {
		if !f.spare.Stale() {
			v := value.Decay(f.spare)

			if v.Isotope() {
				f.Fail(fail.TypeMismatch, "cannot put an isotope in a block")
			}

			if v.Heart() == value.Null {
				f.Fail(fail.TypeMismatch, "cannot put null in a block")
			}

			f.acc.Append(v)
		}

		if f.sub.AtEnd() {
			f.sub.Close()
			f.sub = nil

			*f.out = value.NewArray(value.Block, f.acc)
			f.acc = nil

			return Out
		}
	}

	f.spare = value.T{}
	f.spare.MarkStale()

	return f.continueFeed(f.sub, &f.spare, StateBegin+1)
}

// AllDispatch steps the block in slot one until an expression produces a
// falsey value, which yields null, or the block runs out, which yields
// the last value produced. Steps that produce no value are skipped, so a
// vanishing group does not count as a result.
func AllDispatch(f *Frame) Bounce {
	if f.state == StateBegin {
		a := f.blockArg("all")

		if a.Len() == 0 {
			*f.out = value.TrueCell

			return Out
		}

		f.sub = feed.FromArray(f.Rt().Symbols, a, 0)

		return f.continueFeed(f.sub, f.out, StateBegin+1)
	}

	if !f.out.Stale() {
		v := value.Decay(*f.out)

		if !v.Truthy() {
			f.sub.Close()
			f.sub = nil

			*f.out = value.NullCell

			return Out
		}

		*f.out = v
	}

	if f.sub.AtEnd() {
		f.sub.Close()
		f.sub = nil

		if f.out.Unset() {
			*f.out = value.TrueCell
		}

		return Out
	}

	return f.continueFeed(f.sub, f.out, StateBegin+1)
}

// AnyDispatch steps the block in slot one until an expression produces a
// truthy value, which becomes the result; otherwise null.
func AnyDispatch(f *Frame) Bounce {
	if f.state == StateBegin {
		a := f.blockArg("any")

		if a.Len() == 0 {
			*f.out = value.NullCell

			return Out
		}

		f.sub = feed.FromArray(f.Rt().Symbols, a, 0)

		return f.continueFeed(f.sub, f.out, StateBegin+1)
	}

	if !f.out.Stale() {
		v := value.Decay(*f.out)

		if v.Truthy() {
			f.sub.Close()
			f.sub = nil

			*f.out = v

			return Out
		}
	}

	if f.sub.AtEnd() {
		f.sub.Close()
		f.sub = nil

		*f.out = value.NullCell

		return Out
	}

	return f.continueFeed(f.sub, f.out, StateBegin+1)
}

// MakeObjectDispatch builds an object by evaluating a spec block inside
// a fresh context chained to the calling scope. Set-words in the spec
// become the object's fields.
func MakeObjectDispatch(f *Frame) Bounce {
	if f.state == StateBegin {
		a := f.blockArg("object")

		x := value.NewContext(f.scope)
		*f.out = value.NewObject(x)

		if a.Len() == 0 {
			return Out
		}

		return f.ContinueInto(a, &f.spare, x, 0, StateBegin+1)
	}

	// The spec's own result is discarded; the object cell already
	// sits in the output slot.
	return Out
}

// SpecializeDispatch pre-fills some of an action's parameters. The spec
// block is evaluated in a context shaped like the action's call frame,
// so set-words in it land in argument slots; the result is a new action
// sharing the original's implementation with those slots fixed. Slots
// the spec leaves untouched stay open and are fulfilled at call time.
func SpecializeDispatch(f *Frame) Bounce {
	if f.state == StateBegin {
		act := ActionOf(f.Arg(1))
		if act == nil {
			f.Fail(fail.TypeMismatch, "specialize needs an action")
		}

		b := f.Arg(2)
		if !b.Plain() || b.Heart() != value.Block {
			f.Fail(fail.TypeMismatch, "specialize needs a spec block")
		}

		x := buildArgs(act)
		*f.out = value.NewObject(x)

		if b.Series().Len() > 0 {
			return f.ContinueInto(b.Series(), &f.spare, x, 0, StateBegin+1)
		}
	}

	base := *ActionOf(f.Arg(1))
	base.Exemplar = f.out.Ctx()
	*f.out = base.Cell()

	return Out
}

func (f *Frame) blockArg(who string) *value.Array {
	v := f.Arg(1)
	if !v.Plain() || v.Heart() != value.Block {
		f.Fail(fail.TypeMismatch, "%s needs a block", who)
	}

	return v.Series()
}
