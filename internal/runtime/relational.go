// Released under an MIT license. See LICENSE.

package runtime

import (
	"github.com/lumenlang/lumen/internal/eval"
	"github.com/lumenlang/lumen/internal/fail"
	"github.com/lumenlang/lumen/internal/value"
)

func relational(rt *eval.Runtime) {
	tbl := rt.Symbols

	two := func() []eval.Param {
		return []eval.Param{normal(tbl, "a"), normal(tbl, "b")}
	}

	define(rt, "=", eval.Enfixed, equalD(false), two()...)
	define(rt, "<>", eval.Enfixed, equalD(true), two()...)
	define(rt, "<", eval.Enfixed, orderD(func(n int) bool { return n < 0 }), two()...)
	define(rt, ">", eval.Enfixed, orderD(func(n int) bool { return n > 0 }), two()...)
	define(rt, "<=", eval.Enfixed, orderD(func(n int) bool { return n <= 0 }), two()...)
	define(rt, ">=", eval.Enfixed, orderD(func(n int) bool { return n >= 0 }), two()...)

	define(rt, "not", 0, not, normal(tbl, "value"))
}

func equalD(invert bool) eval.Dispatcher {
	return func(f *eval.Frame) eval.Bounce {
		eq := f.Arg(1).Equal(f.Arg(2))
		if invert {
			eq = !eq
		}

		*f.Out() = value.NewLogic(eq)

		return eval.Out
	}
}

func orderD(ok func(int) bool) eval.Dispatcher {
	return func(f *eval.Frame) eval.Bounce {
		*f.Out() = value.NewLogic(ok(order(f, f.Arg(1), f.Arg(2))))

		return eval.Out
	}
}

// order compares two comparable values: numbers by value, money by
// cents, text by bytes.
func order(f *eval.Frame, a, b *value.T) int {
	ak, bk := a.Heart(), b.Heart()

	switch {
	case numeric(ak) && numeric(bk):
		x, y := toFloat(a), toFloat(b)

		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}

		return 0

	case ak == value.Money && bk == value.Money:
		switch {
		case a.Int() < b.Int():
			return -1
		case a.Int() > b.Int():
			return 1
		}

		return 0

	case ak == value.Text && bk == value.Text:
		switch {
		case a.String() < b.String():
			return -1
		case a.String() > b.String():
			return 1
		}

		return 0
	}

	f.Fail(fail.TypeMismatch, "cannot order %s and %s", ak, bk)

	return 0
}

func not(f *eval.Frame) eval.Bounce {
	*f.Out() = value.NewLogic(!f.Arg(1).Truthy())

	return eval.Out
}
