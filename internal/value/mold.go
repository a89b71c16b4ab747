// Released under an MIT license. See LICENSE.

package value

import (
	"strconv"
	"strings"

	"github.com/michaelmacinnis/adapted"

	"github.com/lumenlang/lumen/internal/symbol"
)

// Mold renders the cell c in its literal form. Words need the symbol
// table tbl to recover their spellings.
func Mold(tbl *symbol.T, c *T) string {
	s := moldHeart(tbl, c)

	if c.quote == isotope || c.quote&quasi != 0 {
		// Isotopes have no literal form; they display as their
		// reified quasi form.
		if c.heart == Void {
			s = "~"
		} else {
			s = "~" + s + "~"
		}
	}

	if d := c.QuoteDepth(); d > 0 {
		s = strings.Repeat("'", d) + s
	}

	return s
}

func moldHeart(tbl *symbol.T, c *T) string {
	switch c.heart {
	case None:
		return "~unset~"
	case Null:
		return "null"
	case Void:
		return "void"
	case Blank:
		return "_"
	case Blackhole:
		return "#"
	case Comma:
		return ","
	case Logic:
		if c.i != 0 {
			return "true"
		}

		return "false"
	case Integer:
		return strconv.FormatInt(c.i, 10)
	case Decimal:
		return strconv.FormatFloat(c.f, 'g', -1, 64)
	case Money:
		return "$" + strconv.FormatInt(c.i/100, 10) + "." +
			pad2(c.i%100)
	case Pair:
		return strconv.FormatFloat(c.f, 'g', -1, 64) + "x" +
			strconv.FormatFloat(c.f2, 'g', -1, 64)
	case Time:
		return strconv.FormatFloat(float64(c.i)/1e9, 'g', -1, 64)
	case Date:
		return strconv.FormatInt(c.i, 10) + "-jan-1970"
	case Word:
		return tbl.Name(c.sym)
	case SetWord:
		return tbl.Name(c.sym) + ":"
	case GetWord:
		return ":" + tbl.Name(c.sym)
	case MetaWord:
		return "^" + tbl.Name(c.sym)
	case TheWord:
		return "@" + tbl.Name(c.sym)
	case Text:
		return moldText(c.str)
	case Issue:
		return "#" + c.str
	case Tag:
		return "<" + c.str + ">"
	case File:
		return "%" + c.str
	case URL:
		return c.str
	case Binary:
		return moldBinary(c.bytes)
	case BitsetKind:
		return "make bitset! [" + strconv.Itoa(c.bits.Len()) + "]"
	case Object:
		return moldObject(tbl, c.ctx)
	case ErrorKind:
		if err, ok := c.box.(error); ok {
			return "make error! " + moldText(err.Error())
		}

		return "make error! \"\""
	case ActionKind:
		return "~action~"
	case Block:
		return "[" + moldSeries(tbl, c.series, " ") + "]"
	case SetBlock:
		return "[" + moldSeries(tbl, c.series, " ") + "]:"
	case GetBlock:
		return ":[" + moldSeries(tbl, c.series, " ") + "]"
	case MetaBlock:
		return "^[" + moldSeries(tbl, c.series, " ") + "]"
	case Group:
		return "(" + moldSeries(tbl, c.series, " ") + ")"
	case SetGroup:
		return "(" + moldSeries(tbl, c.series, " ") + "):"
	case GetGroup:
		return ":(" + moldSeries(tbl, c.series, " ") + ")"
	case MetaGroup:
		return "^(" + moldSeries(tbl, c.series, " ") + ")"
	case Tuple:
		return moldSeries(tbl, c.series, ".")
	case SetTuple:
		return moldSeries(tbl, c.series, ".") + ":"
	case Path:
		return moldSeries(tbl, c.series, "/")
	case SetPath:
		return moldSeries(tbl, c.series, "/") + ":"
	}

	return "~unknown~"
}

func moldSeries(tbl *symbol.T, a *Array, sep string) string {
	parts := make([]string, a.Len())

	for i := 0; i < a.Len(); i++ {
		parts[i] = Mold(tbl, a.At(i))
	}

	return strings.Join(parts, sep)
}

func moldObject(tbl *symbol.T, x *Context) string {
	parts := []string{"make object!", "["}

	for i := 1; i < x.Len(); i++ {
		parts = append(parts, tbl.Name(x.KeyAt(i))+":", Mold(tbl, x.At(i)))
	}

	return strings.Join(append(parts, "]"), " ")
}

// moldText renders text, deferring to the canonical escaped form when the
// simple quoted form would be ambiguous.
func moldText(s string) string {
	if !strings.ContainsAny(s, "\"\\\n\t") {
		return "\"" + s + "\""
	}

	return adapted.CanonicalString(s)
}

func moldBinary(b []byte) string {
	const digits = "0123456789ABCDEF"

	s := make([]byte, 0, len(b)*2+4)
	s = append(s, '#', '{')

	for _, x := range b {
		s = append(s, digits[x>>4], digits[x&15])
	}

	return string(append(s, '}'))
}

func pad2(n int64) string {
	if n < 0 {
		n = -n
	}

	if n < 10 {
		return "0" + strconv.FormatInt(n, 10)
	}

	return strconv.FormatInt(n, 10)
}
