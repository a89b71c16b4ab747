// Released under an MIT license. See LICENSE.

package runtime

import (
	"github.com/lumenlang/lumen/internal/eval"
	"github.com/lumenlang/lumen/internal/fail"
	"github.com/lumenlang/lumen/internal/value"
)

func control(rt *eval.Runtime) {
	tbl := rt.Symbols

	define(rt, "if", 0, ifD,
		normal(tbl, "condition"), normal(tbl, "branch"))
	define(rt, "either", 0, eitherD,
		normal(tbl, "condition"), normal(tbl, "true-branch"), normal(tbl, "false-branch"))

	define(rt, "all", 0, eval.AllDispatch, normal(tbl, "block"))
	define(rt, "any", 0, eval.AnyDispatch, normal(tbl, "block"))

	define(rt, "do", 0, doD, normal(tbl, "source"))
	define(rt, "reduce", 0, eval.ReduceDispatch, normal(tbl, "block"))

	define(rt, "try", eval.Intercepts, tryD, normal(tbl, "block"))
	define(rt, "catch", eval.Intercepts, catchD, normal(tbl, "block"))
	define(rt, "throw", 0, throwD, normal(tbl, "value"))

	define(rt, "then", eval.Enfixed|eval.DefersLeft, thenD,
		normal(tbl, "left"), normal(tbl, "branch"))
	define(rt, "else", eval.Enfixed|eval.DefersLeft, elseD,
		eval.Param{Name: tbl.Intern("left"), Class: eval.Normal, Endable: true},
		normal(tbl, "branch"))

	define(rt, "comment", 0, vanishD, hard(tbl, "ignored"))
	define(rt, "elide", 0, vanishD, normal(tbl, "discarded"))
}

func branch(f *eval.Frame, v *value.T, nextState byte) eval.Bounce {
	if !blockOf(v) {
		*f.Out() = *v

		return eval.Out
	}

	return f.ContinueInto(v.Series(), f.Out(), f.Scope(), 0, nextState)
}

func ifD(f *eval.Frame) eval.Bounce {
	if f.State() != eval.StateBegin {
		return eval.Out
	}

	if !f.Arg(1).Truthy() {
		*f.Out() = value.NullCell

		return eval.Out
	}

	return branch(f, f.Arg(2), eval.StateBegin+1)
}

func eitherD(f *eval.Frame) eval.Bounce {
	if f.State() != eval.StateBegin {
		return eval.Out
	}

	if f.Arg(1).Truthy() {
		return branch(f, f.Arg(2), eval.StateBegin+1)
	}

	return branch(f, f.Arg(3), eval.StateBegin+1)
}

func doD(f *eval.Frame) eval.Bounce {
	if f.State() != eval.StateBegin {
		return eval.Out
	}

	v := f.Arg(1)

	switch v.Heart() {
	case value.Block, value.Group:
		if v.Series().Len() == 0 {
			*f.Out() = value.NullCell

			return eval.Out
		}

		return f.ContinueInto(v.Series(), f.Out(), f.Scope(), 0, eval.StateBegin+1)
	default:
		*f.Out() = *v

		return eval.Out
	}
}

// tryD runs its block and converts a failure unwinding through it into
// an error isotope result. Throws pass through untouched.
func tryD(f *eval.Frame) eval.Bounce {
	if ab := f.Aborting(); ab != nil {
		if !ab.IsThrow() {
			*f.Out() = value.Isotopify(value.NewError(ab.Err))

			return eval.Out
		}

		return eval.Thrown
	}

	if f.State() != eval.StateBegin {
		return eval.Out
	}

	v := f.Arg(1)
	if !blockOf(v) {
		f.Fail(fail.TypeMismatch, "try needs a block")
	}

	return f.ContinueInto(v.Series(), f.Out(), f.Scope(), 0, eval.StateBegin+1)
}

// catchD runs its block and catches a non-definitional throw, producing
// the thrown payload. Definitional returns aim at an exact frame and are
// not ours to stop.
func catchD(f *eval.Frame) eval.Bounce {
	if ab := f.Aborting(); ab != nil {
		if ab.IsThrow() && ab.Target == nil {
			*f.Out() = ab.Payload

			return eval.Out
		}

		return eval.Thrown
	}

	if f.State() != eval.StateBegin {
		*f.Out() = value.NullCell // Block completed without a throw.

		return eval.Out
	}

	v := f.Arg(1)
	if !blockOf(v) {
		f.Fail(fail.TypeMismatch, "catch needs a block")
	}

	return f.ContinueInto(v.Series(), f.Out(), f.Scope(), 0, eval.StateBegin+1)
}

func throwD(f *eval.Frame) eval.Bounce {
	label := value.NewWord(value.Word, f.Rt().Symbols.Intern("throw"))

	return f.Throw(label, *f.Arg(1), nil)
}

func thenD(f *eval.Frame) eval.Bounce {
	if f.State() != eval.StateBegin {
		return eval.Out
	}

	if f.Arg(1).Heart() == value.Null {
		*f.Out() = value.NullCell

		return eval.Out
	}

	return branch(f, f.Arg(2), eval.StateBegin+1)
}

func elseD(f *eval.Frame) eval.Bounce {
	if f.State() != eval.StateBegin {
		return eval.Out
	}

	if f.Arg(1).Heart() != value.Null {
		*f.Out() = *f.Arg(1)

		return eval.Out
	}

	return branch(f, f.Arg(2), eval.StateBegin+1)
}

// vanishD produces no value at all, leaving the step's output stale.
func vanishD(*eval.Frame) eval.Bounce {
	return eval.Out
}
