// Released under an MIT license. See LICENSE.

package runtime

import (
	"fmt"

	"github.com/lumenlang/lumen/internal/eval"
	"github.com/lumenlang/lumen/internal/fail"
	"github.com/lumenlang/lumen/internal/value"
)

func core(rt *eval.Runtime) {
	tbl := rt.Symbols

	define(rt, "the", 0, theD, hard(tbl, "value"))
	define(rt, "quote", 0, quoteD, normal(tbl, "value"))
	define(rt, "meta", 0, metaD, metaP(tbl, "value"))
	define(rt, "unmeta", 0, unmetaD, normal(tbl, "value"))

	define(rt, "get", 0, getD, normal(tbl, "target"), refine(tbl, "any"))
	define(rt, "set", 0, setD, normal(tbl, "target"), normal(tbl, "value"))

	define(rt, "func", 0, funcD, normal(tbl, "spec"), normal(tbl, "body"))
	define(rt, "yielder", 0, yielderD, normal(tbl, "body"))
	define(rt, "object", 0, eval.MakeObjectDispatch, normal(tbl, "spec"))
	define(rt, "specialize", 0, eval.SpecializeDispatch, normal(tbl, "action"), normal(tbl, "spec"))

	define(rt, "probe", 0, probeD, normal(tbl, "value"))
	define(rt, "mold", 0, moldD, normal(tbl, "value"))
}

func theD(f *eval.Frame) eval.Bounce {
	*f.Out() = *f.Arg(1)

	return eval.Out
}

func quoteD(f *eval.Frame) eval.Bounce {
	*f.Out() = value.Quotify(*f.Arg(1), 1)

	return eval.Out
}

// metaD's parameter is meta class, so the conversion happened during
// fulfillment and isotopes arrive reified.
func metaD(f *eval.Frame) eval.Bounce {
	*f.Out() = *f.Arg(1)

	return eval.Out
}

func unmetaD(f *eval.Frame) eval.Bounce {
	*f.Out() = value.MetaUnquotify(*f.Arg(1))

	return eval.Out
}

// getD fetches a variable without invoking actions. The any refinement
// tolerates isotopes, which plain word access refuses.
func getD(f *eval.Frame) eval.Bounce {
	w := f.Arg(1)
	if !value.AnyWordKind(w.Heart()) {
		f.Fail(fail.TypeMismatch, "get needs a word")
	}

	tolerant := f.Arg(2).Truthy()

	v := f.Resolve(w)
	if v == nil || v.Unset() {
		if tolerant {
			*f.Out() = value.NullCell

			return eval.Out
		}

		f.Fail(fail.Access, "%s has no value", f.Rt().Symbols.Name(w.Symbol()))
	}

	if v.Isotope() && !tolerant {
		f.Fail(fail.Access, "%s is an isotope; use get/any to read it", f.Rt().Symbols.Name(w.Symbol()))
	}

	*f.Out() = *v

	return eval.Out
}

func setD(f *eval.Frame) eval.Bounce {
	w := f.Arg(1)

	switch w.Heart() {
	case value.Word, value.SetWord, value.Tuple, value.SetTuple:
		f.Store(*w, *f.Arg(2))
	default:
		f.Fail(fail.TypeMismatch, "set needs a word or tuple")
	}

	*f.Out() = *f.Arg(2)

	return eval.Out
}

// funcD builds an interpreted action: word parameters evaluate their
// arguments, 'word takes them literally, :word soft-quotes, ':word
// medium-quotes (only a get-group escapes), ^word passes them through
// the meta protocol, and @word declares an output.
func funcD(f *eval.Frame) eval.Bounce {
	tbl := f.Rt().Symbols

	spec, body := f.Arg(1), f.Arg(2)
	if !blockOf(spec) || !blockOf(body) {
		f.Fail(fail.TypeMismatch, "func needs a spec block and a body block")
	}

	var params []eval.Param

	sa := spec.Series()
	for i := 0; i < sa.Len(); i++ {
		e := sa.At(i)

		p := eval.Param{Class: eval.Normal}

		switch {
		case e.Quoted() && e.QuoteDepth() == 1 && e.Heart() == value.Word:
			p.Class = eval.Hard
		case e.Quoted() && e.QuoteDepth() == 1 && e.Heart() == value.GetWord:
			p.Class = eval.Medium
		case e.Plain() && e.Heart() == value.Word:
			p.Class = eval.Normal
		case e.Plain() && e.Heart() == value.GetWord:
			p.Class = eval.Soft
		case e.Plain() && e.Heart() == value.MetaWord:
			p.Class = eval.MetaArg
		case e.Plain() && e.Heart() == value.TheWord:
			p.Class = eval.Output
		default:
			f.Fail(fail.BadTarget, "bad parameter spec %s", value.Mold(tbl, e))
		}

		p.Name = e.Symbol()

		for j := range params {
			if tbl.Same(params[j].Name, p.Name) {
				f.Fail(fail.Arity, "duplicate parameter %s", tbl.Name(p.Name))
			}
		}

		params = append(params, p)
	}

	a := eval.NewInterpreted(tbl.Intern("func"), params, body.Series(), f.Scope())

	*f.Out() = a.Cell()

	return eval.Out
}

func yielderD(f *eval.Frame) eval.Bounce {
	body := f.Arg(1)
	if !blockOf(body) {
		f.Fail(fail.TypeMismatch, "yielder needs a body block")
	}

	rt := f.Rt()
	a := eval.NewGenerator(rt, rt.Symbols.Intern("yielder"), body.Series(), f.Scope())

	*f.Out() = a.Cell()

	return eval.Out
}

func probeD(f *eval.Frame) eval.Bounce {
	v := f.Arg(1)

	fmt.Println(value.Mold(f.Rt().Symbols, v))

	*f.Out() = *v

	return eval.Out
}

func moldD(f *eval.Frame) eval.Bounce {
	*f.Out() = value.NewText(value.Mold(f.Rt().Symbols, f.Arg(1)))

	return eval.Out
}
