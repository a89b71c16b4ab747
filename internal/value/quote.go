// Released under an MIT license. See LICENSE.

package value

import (
	"github.com/lumenlang/lumen/internal/fail"
)

// MaxQuoteDepth bounds the quote field. Deeper quoting fails rather than
// wrapping.
const MaxQuoteDepth = 126

// Markers in the quote field. The quasi bit is orthogonal to quote
// depth, so a quasi form can itself be quoted (the meta protocol lifts
// quasi to quoted quasi). Isotopes are the one state that never mixes
// with quoting.
const (
	quasi   int16 = 1 << 8
	isotope int16 = -2

	depthMask int16 = quasi - 1
)

// QuoteDepth returns the ordinary quote depth, or 0 for the isotope form.
func (c cell) QuoteDepth() int {
	if c.quote < 0 {
		return 0
	}

	return int(c.quote & depthMask)
}

// Quoted returns true if the cell has at least one ordinary quote level.
func (c cell) Quoted() bool {
	return c.quote > 0 && c.quote&depthMask > 0
}

// Quasi returns true for the undecorated quasi (literal ~x~) form. A
// quoted quasi form answers false; it evaluates by unquoting first.
func (c cell) Quasi() bool {
	return c.quote == quasi
}

// Isotope returns true for the isotope form.
func (c cell) Isotope() bool {
	return c.quote == isotope
}

// Plain returns true if the cell carries no quoting, quasi, or isotope state.
func (c cell) Plain() bool {
	return c.quote == 0
}

// Quotify adds depth quote levels to c. Quasi forms quote like anything
// else; only isotopes have no quoted form.
func Quotify(c T, depth int) T {
	if c.quote == isotope {
		fail.Raise(fail.TypeMismatch, "cannot quote a %s in its isotope form", c.heart)
	}

	if c.QuoteDepth()+depth > MaxQuoteDepth {
		fail.Raise(fail.Overflow, "quote depth exceeds %d", MaxQuoteDepth)
	}

	c.quote += int16(depth)

	return c
}

// Unquotify removes depth quote levels from c.
func Unquotify(c T, depth int) T {
	if c.QuoteDepth() < depth {
		fail.Raise(fail.TypeMismatch, "cannot remove %d quote levels from depth %d",
			depth, c.QuoteDepth())
	}

	c.quote -= int16(depth)

	return c
}

// Dequotify removes all quote levels from c at once, returning the depth
// that was removed. The quasi state, if any, stays.
func Dequotify(c T) (T, int) {
	depth := c.QuoteDepth()
	if c.quote > 0 {
		c.quote &= quasi
	}

	return c, depth
}

// Quasify converts a plain quasi-eligible cell into its quasi form.
func Quasify(c T) T {
	if c.quote != 0 || !QuasiEligible(c.heart) {
		fail.Raise(fail.TypeMismatch, "no quasi form for %s", describe(&c))
	}

	c.quote = quasi

	return c
}

// Isotopify converts a plain quasi-eligible cell into its isotope form.
func Isotopify(c T) T {
	if c.quote != 0 || !QuasiEligible(c.heart) {
		fail.Raise(fail.TypeMismatch, "no isotope form for %s", describe(&c))
	}

	c.quote = isotope

	return c
}

// Unisotopify converts an isotope back to its plain counterpart.
func Unisotopify(c T) T {
	if c.quote == isotope {
		c.quote = 0
	}

	return c
}

// Reify converts an isotope to its quasi form and leaves everything else
// alone. The result is storable in an array.
func Reify(c T) T {
	if c.quote == isotope {
		c.quote = quasi
	}

	return c
}

// Decay collapses the isotopes with decay rules to their ordinary
// counterparts: isotope null to null, isotope false to false, isotope
// blank to blank, isotope blackhole to the blackhole sentinel. Any other
// cell passes through unchanged. The set is intentionally small and fixed.
func Decay(c T) T {
	if c.quote != isotope {
		return c
	}

	switch c.heart {
	case Null:
		return NullCell
	case Blank:
		return BlankCell
	case Blackhole:
		return BlackholeCell
	case Logic:
		if c.i == 0 {
			return FalseCell
		}

		return TrueCell
	}

	return c
}

// MetaQuotify lifts a cell one meta level: an isotope becomes its quasi
// form; anything else, quasi included, gains one quote level. The result
// can travel through channels that cannot carry raw isotopes, like
// ordinary arguments and arrays, and MetaUnquotify restores it exactly.
func MetaQuotify(c T) T {
	if c.quote == isotope {
		c.quote = quasi

		return c
	}

	return Quotify(c, 1)
}

// MetaUnquotify is the exact inverse of MetaQuotify.
func MetaUnquotify(c T) T {
	if c.quote == quasi {
		c.quote = isotope

		return c
	}

	return Unquotify(c, 1)
}

func describe(c *T) string {
	if c.quote >= 0 && c.quote&quasi != 0 {
		return "quasi " + c.heart.String()
	}

	if c.quote == isotope {
		return "isotope " + c.heart.String()
	}

	return c.heart.String()
}
