// Released under an MIT license. See LICENSE.

package runtime

import (
	"github.com/lumenlang/lumen/internal/eval"
	"github.com/lumenlang/lumen/internal/fail"
	"github.com/lumenlang/lumen/internal/value"
)

func arithmetic(rt *eval.Runtime) {
	tbl := rt.Symbols

	two := func(a, b string) []eval.Param {
		return []eval.Param{normal(tbl, a), normal(tbl, b)}
	}

	define(rt, "add", 0, arith('+'), two("a", "b")...)
	define(rt, "subtract", 0, arith('-'), two("a", "b")...)
	define(rt, "multiply", 0, arith('*'), two("a", "b")...)
	define(rt, "divide", 0, arith('/'), two("a", "b")...)

	define(rt, "+", eval.Enfixed, arith('+'), two("a", "b")...)
	define(rt, "-", eval.Enfixed, arith('-'), two("a", "b")...)
	define(rt, "*", eval.Enfixed, arith('*'), two("a", "b")...)

	define(rt, "negate", 0, negate, normal(tbl, "value"))

	define(rt, "divmod", 0, divmod,
		normal(tbl, "dividend"), normal(tbl, "divisor"),
		output(tbl, "quotient"), output(tbl, "remainder"))
}

func arith(op byte) eval.Dispatcher {
	return func(f *eval.Frame) eval.Bounce {
		*f.Out() = compute(f, op, f.Arg(1), f.Arg(2))

		return eval.Out
	}
}

func compute(f *eval.Frame, op byte, a, b *value.T) value.T {
	ak, bk := a.Heart(), b.Heart()

	switch {
	case ak == value.Integer && bk == value.Integer:
		x, y := a.Int(), b.Int()

		switch op {
		case '+':
			return value.NewInteger(x + y)
		case '-':
			return value.NewInteger(x - y)
		case '*':
			return value.NewInteger(x * y)
		case '/':
			if y == 0 {
				f.Fail(fail.Overflow, "attempt to divide by zero")
			}

			if x%y == 0 {
				return value.NewInteger(x / y)
			}

			return value.NewDecimal(float64(x) / float64(y))
		}

	case ak == value.Money && bk == value.Money && (op == '+' || op == '-'):
		if op == '+' {
			return value.NewMoney(a.Int() + b.Int())
		}

		return value.NewMoney(a.Int() - b.Int())

	case ak == value.Money && bk == value.Integer && op == '*':
		return value.NewMoney(a.Int() * b.Int())

	case numeric(ak) && numeric(bk):
		x, y := toFloat(a), toFloat(b)

		switch op {
		case '+':
			return value.NewDecimal(x + y)
		case '-':
			return value.NewDecimal(x - y)
		case '*':
			return value.NewDecimal(x * y)
		case '/':
			if y == 0 {
				f.Fail(fail.Overflow, "attempt to divide by zero")
			}

			return value.NewDecimal(x / y)
		}
	}

	f.Fail(fail.TypeMismatch, "cannot combine %s and %s", ak, bk)

	return value.T{}
}

func numeric(k value.Kind) bool {
	return k == value.Integer || k == value.Decimal
}

func toFloat(v *value.T) float64 {
	if v.Heart() == value.Integer {
		return float64(v.Int())
	}

	return v.Float()
}

func negate(f *eval.Frame) eval.Bounce {
	v := f.Arg(1)

	switch v.Heart() {
	case value.Integer:
		*f.Out() = value.NewInteger(-v.Int())
	case value.Decimal:
		*f.Out() = value.NewDecimal(-v.Float())
	case value.Money:
		*f.Out() = value.NewMoney(-v.Int())
	default:
		f.Fail(fail.TypeMismatch, "cannot negate %s", v.Heart())
	}

	return eval.Out
}

// divmod produces its quotient and remainder as two outputs, so it pairs
// with the multiple-return binding form: [q r]: divmod 7 2.
func divmod(f *eval.Frame) eval.Bounce {
	a, b := f.Arg(1), f.Arg(2)

	if a.Heart() != value.Integer || b.Heart() != value.Integer {
		f.Fail(fail.TypeMismatch, "divmod needs integers")
	}

	if b.Int() == 0 {
		f.Fail(fail.Overflow, "attempt to divide by zero")
	}

	q := a.Int() / b.Int()
	r := a.Int() - q*b.Int()

	f.SetOutput(0, value.NewInteger(q))
	f.SetOutput(1, value.NewInteger(r))

	return eval.Out
}
