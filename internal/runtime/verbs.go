// Released under an MIT license. See LICENSE.

package runtime

import (
	"github.com/lumenlang/lumen/internal/eval"
	"github.com/lumenlang/lumen/internal/fail"
	"github.com/lumenlang/lumen/internal/symbol"
)

// verbs installs the generic actions whose behavior comes from each
// datatype's operation table.
func verbs(rt *eval.Runtime) {
	tbl := rt.Symbols

	define(rt, "pick", 0, generic(symbol.Pick),
		normal(tbl, "value"), normal(tbl, "index"))
	define(rt, "poke", 0, generic(symbol.Poke),
		normal(tbl, "value"), normal(tbl, "index"), normal(tbl, "new"))
	define(rt, "append", 0, generic(symbol.Append),
		normal(tbl, "series"), normal(tbl, "value"))
	define(rt, "copy", 0, generic(symbol.Copy),
		normal(tbl, "value"))
	define(rt, "length", 0, generic(symbol.Length),
		normal(tbl, "value"))
	define(rt, "reflect", 0, generic(symbol.Reflect),
		normal(tbl, "value"))
}

// generic routes a verb to the first argument's operation table. Values
// at any quote depth share the quoted layer's table regardless of heart.
func generic(verb symbol.ID) eval.Dispatcher {
	return func(f *eval.Frame) eval.Bounce {
		v := f.Arg(1)

		var d eval.Dispatcher
		if v.Quoted() {
			d = f.Rt().QuotedOp(verb)
		} else {
			d = f.Rt().Generic(v.Heart(), verb)
		}

		if d == nil {
			f.Fail(fail.NoOperation, "no %s operation for %s",
				f.Rt().Symbols.Name(verb), v.Heart())
		}

		return d(f)
	}
}
