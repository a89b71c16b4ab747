// Released under an MIT license. See LICENSE.

// Package types installs the per-datatype operation tables consulted by
// generic verb dispatch. Each handler runs with a fulfilled call frame:
// slot one is the target value, further slots depend on the verb.
package types

import (
	"github.com/lumenlang/lumen/internal/eval"
	"github.com/lumenlang/lumen/internal/fail"
	"github.com/lumenlang/lumen/internal/symbol"
	"github.com/lumenlang/lumen/internal/value"
)

// RegisterAll installs every operation table on rt.
func RegisterAll(rt *eval.Runtime) {
	for _, k := range []value.Kind{
		value.Block, value.Group, value.Tuple, value.Path,
	} {
		rt.RegisterGeneric(k, symbol.Pick, arrayPick)
		rt.RegisterGeneric(k, symbol.Poke, arrayPoke)
		rt.RegisterGeneric(k, symbol.Append, arrayAppend)
		rt.RegisterGeneric(k, symbol.Copy, arrayCopy)
		rt.RegisterGeneric(k, symbol.Length, arrayLength)
		rt.RegisterGeneric(k, symbol.Reflect, reflectKind)
	}

	rt.RegisterGeneric(value.Text, symbol.Pick, textPick)
	rt.RegisterGeneric(value.Text, symbol.Append, textAppend)
	rt.RegisterGeneric(value.Text, symbol.Copy, selfCopy)
	rt.RegisterGeneric(value.Text, symbol.Length, textLength)
	rt.RegisterGeneric(value.Text, symbol.Reflect, reflectKind)

	rt.RegisterGeneric(value.Binary, symbol.Pick, binaryPick)
	rt.RegisterGeneric(value.Binary, symbol.Poke, binaryPoke)
	rt.RegisterGeneric(value.Binary, symbol.Append, binaryAppend)
	rt.RegisterGeneric(value.Binary, symbol.Copy, binaryCopy)
	rt.RegisterGeneric(value.Binary, symbol.Length, binaryLength)
	rt.RegisterGeneric(value.Binary, symbol.Reflect, reflectKind)

	rt.RegisterGeneric(value.BitsetKind, symbol.Pick, bitsetPick)
	rt.RegisterGeneric(value.BitsetKind, symbol.Poke, bitsetPoke)
	rt.RegisterGeneric(value.BitsetKind, symbol.Append, bitsetAppend)
	rt.RegisterGeneric(value.BitsetKind, symbol.Copy, bitsetCopy)
	rt.RegisterGeneric(value.BitsetKind, symbol.Length, bitsetLength)
	rt.RegisterGeneric(value.BitsetKind, symbol.Reflect, reflectKind)

	rt.RegisterGeneric(value.Money, symbol.Copy, selfCopy)
	rt.RegisterGeneric(value.Money, symbol.Reflect, reflectKind)

	rt.RegisterGeneric(value.Logic, symbol.Copy, selfCopy)
	rt.RegisterGeneric(value.Logic, symbol.Reflect, reflectKind)

	rt.RegisterGeneric(value.Object, symbol.Pick, objectPick)
	rt.RegisterGeneric(value.Object, symbol.Poke, objectPoke)
	rt.RegisterGeneric(value.Object, symbol.Copy, objectCopy)
	rt.RegisterGeneric(value.Object, symbol.Length, objectLength)
	rt.RegisterGeneric(value.Object, symbol.Reflect, reflectKind)

	rt.RegisterQuoted(symbol.Copy, selfCopy)
	rt.RegisterQuoted(symbol.Length, quotedLength)
	rt.RegisterQuoted(symbol.Reflect, quotedReflect)
}

func index1(f *eval.Frame, n int, limit int) int {
	v := f.Arg(n)
	if v.Heart() != value.Integer || !v.Plain() {
		f.Fail(fail.TypeMismatch, "index must be an integer")
	}

	i := int(v.Int())
	if i < 1 || i > limit {
		f.Fail(fail.Access, "index %d out of range", i)
	}

	return i
}

func arrayPick(f *eval.Frame) eval.Bounce {
	a := f.Arg(1).Series()
	i := index1(f, 2, a.Len())

	*f.Out() = *a.At(i - 1)

	return eval.Out
}

func arrayPoke(f *eval.Frame) eval.Bounce {
	a := f.Arg(1).Series()
	i := index1(f, 2, a.Len())

	a.Poke(i-1, *f.Arg(3))
	*f.Out() = *f.Arg(3)

	return eval.Out
}

func arrayAppend(f *eval.Frame) eval.Bounce {
	a := f.Arg(1).Series()
	a.Append(*f.Arg(2))

	*f.Out() = *f.Arg(1)

	return eval.Out
}

func arrayCopy(f *eval.Frame) eval.Bounce {
	v := f.Arg(1)

	*f.Out() = value.NewArray(v.Heart(), v.Series().Copy())

	return eval.Out
}

func arrayLength(f *eval.Frame) eval.Bounce {
	*f.Out() = value.NewInteger(int64(f.Arg(1).Series().Len()))

	return eval.Out
}

func textPick(f *eval.Frame) eval.Bounce {
	runes := []rune(f.Arg(1).String())
	i := index1(f, 2, len(runes))

	*f.Out() = value.NewIssue(string(runes[i-1]))

	return eval.Out
}

func textAppend(f *eval.Frame) eval.Bounce {
	v := f.Arg(2)

	var tail string

	switch v.Heart() {
	case value.Text, value.Issue:
		tail = v.String()
	default:
		tail = value.Mold(f.Rt().Symbols, v)
	}

	*f.Out() = value.NewText(f.Arg(1).String() + tail)

	return eval.Out
}

func textLength(f *eval.Frame) eval.Bounce {
	*f.Out() = value.NewInteger(int64(len([]rune(f.Arg(1).String()))))

	return eval.Out
}

func binaryPick(f *eval.Frame) eval.Bounce {
	b := f.Arg(1).Bytes()
	i := index1(f, 2, len(b))

	*f.Out() = value.NewInteger(int64(b[i-1]))

	return eval.Out
}

func binaryPoke(f *eval.Frame) eval.Bounce {
	b := f.Arg(1).Bytes()
	i := index1(f, 2, len(b))

	v := f.Arg(3)
	if v.Heart() != value.Integer || v.Int() < 0 || v.Int() > 255 {
		f.Fail(fail.TypeMismatch, "binary poke needs an integer 0 to 255")
	}

	b[i-1] = byte(v.Int())
	*f.Out() = *v

	return eval.Out
}

func binaryAppend(f *eval.Frame) eval.Bounce {
	b := f.Arg(1).Bytes()
	v := f.Arg(2)

	switch v.Heart() {
	case value.Binary:
		b = append(b, v.Bytes()...)
	case value.Integer:
		if v.Int() < 0 || v.Int() > 255 {
			f.Fail(fail.TypeMismatch, "binary append needs an integer 0 to 255")
		}

		b = append(b, byte(v.Int()))
	default:
		f.Fail(fail.TypeMismatch, "cannot append %s to a binary", v.Heart())
	}

	*f.Out() = value.NewBinary(b)

	return eval.Out
}

func binaryCopy(f *eval.Frame) eval.Bounce {
	src := f.Arg(1).Bytes()

	b := make([]byte, len(src))
	copy(b, src)

	*f.Out() = value.NewBinary(b)

	return eval.Out
}

func binaryLength(f *eval.Frame) eval.Bounce {
	*f.Out() = value.NewInteger(int64(len(f.Arg(1).Bytes())))

	return eval.Out
}

func bitsetPick(f *eval.Frame) eval.Bounce {
	v := f.Arg(2)
	if v.Heart() != value.Integer {
		f.Fail(fail.TypeMismatch, "bitset pick needs an integer")
	}

	*f.Out() = value.NewLogic(f.Arg(1).Bits().Get(int(v.Int())))

	return eval.Out
}

func bitsetPoke(f *eval.Frame) eval.Bounce {
	i := f.Arg(2)
	if i.Heart() != value.Integer {
		f.Fail(fail.TypeMismatch, "bitset poke needs an integer")
	}

	on := f.Arg(3)
	if on.Heart() != value.Logic {
		f.Fail(fail.TypeMismatch, "bitset poke needs a logic value")
	}

	f.Arg(1).Bits().Set(int(i.Int()), on.Bool())
	*f.Out() = *on

	return eval.Out
}

func bitsetAppend(f *eval.Frame) eval.Bounce {
	v := f.Arg(2)
	if v.Heart() != value.Integer {
		f.Fail(fail.TypeMismatch, "bitset append needs an integer")
	}

	f.Arg(1).Bits().Set(int(v.Int()), true)
	*f.Out() = *f.Arg(1)

	return eval.Out
}

func bitsetCopy(f *eval.Frame) eval.Bounce {
	*f.Out() = value.NewBitset(f.Arg(1).Bits().Copy())

	return eval.Out
}

func bitsetLength(f *eval.Frame) eval.Bounce {
	*f.Out() = value.NewInteger(int64(f.Arg(1).Bits().Len()))

	return eval.Out
}

func objectPick(f *eval.Frame) eval.Bounce {
	x := f.Arg(1).Ctx()

	w := f.Arg(2)
	if !value.AnyWordKind(w.Heart()) {
		f.Fail(fail.TypeMismatch, "object pick needs a word")
	}

	n := x.Find(f.Rt().Symbols, w.Symbol())
	if n == 0 {
		f.Fail(fail.Access, "no %s field", f.Rt().Symbols.Name(w.Symbol()))
	}

	*f.Out() = *x.At(n)

	return eval.Out
}

func objectPoke(f *eval.Frame) eval.Bounce {
	x := f.Arg(1).Ctx()

	w := f.Arg(2)
	if !value.AnyWordKind(w.Heart()) {
		f.Fail(fail.TypeMismatch, "object poke needs a word")
	}

	n := x.Find(f.Rt().Symbols, w.Symbol())
	if n == 0 {
		f.Fail(fail.Access, "no %s field", f.Rt().Symbols.Name(w.Symbol()))
	}

	*x.At(n) = *f.Arg(3)
	*f.Out() = *f.Arg(3)

	return eval.Out
}

func objectCopy(f *eval.Frame) eval.Bounce {
	src := f.Arg(1).Ctx()

	x := src.Instance()
	for i := 1; i < src.Len(); i++ {
		*x.At(i) = *src.At(i)
	}

	*f.Out() = value.NewObject(x)

	return eval.Out
}

func objectLength(f *eval.Frame) eval.Bounce {
	*f.Out() = value.NewInteger(int64(f.Arg(1).Ctx().Len() - 1))

	return eval.Out
}

func selfCopy(f *eval.Frame) eval.Bounce {
	*f.Out() = *f.Arg(1)

	return eval.Out
}

func quotedLength(f *eval.Frame) eval.Bounce {
	*f.Out() = value.NewInteger(int64(f.Arg(1).QuoteDepth()))

	return eval.Out
}

func quotedReflect(f *eval.Frame) eval.Bounce {
	*f.Out() = value.NewWord(value.Word, f.Rt().Symbols.Intern("quoted"))

	return eval.Out
}

func reflectKind(f *eval.Frame) eval.Bounce {
	*f.Out() = value.NewWord(value.Word, f.Rt().Symbols.Intern(f.Arg(1).Heart().String()))

	return eval.Out
}
