// Released under an MIT license. See LICENSE.

// Package value provides lumen's cell data model: the cell itself, the
// quoting and isotope layer, series, contexts, and bitsets.
//
// A cell is a concrete record rather than an interface so that the quote
// byte is orthogonal to the datatype, the way the evaluator needs it to be.
// Everything the evaluator touches, including evaluator-internal states
// like void, is a cell.
package value

import (
	"github.com/lumenlang/lumen/internal/symbol"
)

// T (cell) is the basic unit of storage in lumen.
//
// The heart is the concrete datatype. The quote field layers quoting depth
// or the quasi/isotope markers on top of the heart; the two layers never
// mix. The remaining fields are payload, and which of them is meaningful
// depends on the heart.
type T struct {
	heart Kind
	quote int16
	stale bool

	i   int64
	f   float64
	f2  float64
	sym symbol.ID
	str string

	series *Array
	bytes  []byte
	bits   *Bitset
	ctx    *Context
	slot   int
	box    interface{} // Action implementation or error value. Opaque here.
}

type cell = T

// Cells for the fixed singleton states.
//
//nolint:gochecknoglobals
var (
	NullCell      = T{heart: Null}
	VoidCell      = T{heart: Void}
	BlankCell     = T{heart: Blank}
	BlackholeCell = T{heart: Blackhole}
	CommaCell     = T{heart: Comma}
	TrueCell      = T{heart: Logic, i: 1}
	FalseCell     = T{heart: Logic}
)

// Heart returns the cell's concrete datatype.
func (c cell) Heart() Kind {
	return c.heart
}

// Unset returns true if the cell has never been written.
func (c cell) Unset() bool {
	return c.heart == None
}

// MarkStale marks the cell as holding a leftover value. Writing any new
// value over the cell clears the mark, since constructors never set it.
func (c *cell) MarkStale() {
	c.stale = true
}

// Stale returns true if no new value has been written since MarkStale.
func (c cell) Stale() bool {
	return c.stale
}

// NewLogic creates a logic cell.
func NewLogic(v bool) T {
	if v {
		return TrueCell
	}

	return FalseCell
}

// NewInteger creates an integer cell.
func NewInteger(v int64) T {
	return T{heart: Integer, i: v}
}

// NewDecimal creates a decimal cell.
func NewDecimal(v float64) T {
	return T{heart: Decimal, f: v}
}

// NewMoney creates a money cell. The amount is in hundredths.
func NewMoney(cents int64) T {
	return T{heart: Money, i: cents}
}

// NewPair creates a pair cell.
func NewPair(x, y float64) T {
	return T{heart: Pair, f: x, f2: y}
}

// NewTime creates a time cell from nanoseconds.
func NewTime(nanos int64) T {
	return T{heart: Time, i: nanos}
}

// NewDate creates a date cell from a unix day number.
func NewDate(day int64) T {
	return T{heart: Date, i: day}
}

// NewWord creates an unbound word cell of the given word kind.
func NewWord(k Kind, s symbol.ID) T {
	return T{heart: k, sym: s}
}

// NewText creates a text cell.
func NewText(s string) T {
	return T{heart: Text, str: s}
}

// NewIssue creates an issue cell.
func NewIssue(s string) T {
	return T{heart: Issue, str: s}
}

// NewString creates a string-payload cell of kind k (text/tag/file/url).
func NewString(k Kind, s string) T {
	return T{heart: k, str: s}
}

// NewBinary creates a binary cell.
func NewBinary(b []byte) T {
	return T{heart: Binary, bytes: b}
}

// NewBitset creates a bitset cell.
func NewBitset(b *Bitset) T {
	return T{heart: BitsetKind, bits: b}
}

// NewArray creates a cell of the array kind k over the series a.
func NewArray(k Kind, a *Array) T {
	return T{heart: k, series: a}
}

// NewObject creates an object cell over the context x.
func NewObject(x *Context) T {
	return T{heart: Object, ctx: x}
}

// NewAction creates an action cell. The implementation is opaque to this
// package; the evaluator knows what it holds.
func NewAction(impl interface{}) T {
	return T{heart: ActionKind, box: impl}
}

// NewError creates an error cell.
func NewError(err error) T {
	return T{heart: ErrorKind, box: err}
}

// Int returns the integer payload.
func (c cell) Int() int64 {
	return c.i
}

// Float returns the decimal payload.
func (c cell) Float() float64 {
	return c.f
}

// PairXY returns the pair payload.
func (c cell) PairXY() (x, y float64) {
	return c.f, c.f2
}

// Bool returns the logic payload.
func (c cell) Bool() bool {
	return c.i != 0
}

// Symbol returns the word payload.
func (c cell) Symbol() symbol.ID {
	return c.sym
}

// String returns the string payload.
func (c cell) String() string {
	return c.str
}

// Bytes returns the binary payload.
func (c cell) Bytes() []byte {
	return c.bytes
}

// Bits returns the bitset payload.
func (c cell) Bits() *Bitset {
	return c.bits
}

// Series returns the array payload.
func (c cell) Series() *Array {
	return c.series
}

// Ctx returns the context payload, or a word's binding.
func (c cell) Ctx() *Context {
	return c.ctx
}

// Box returns the opaque payload (action implementation, error).
func (c cell) Box() interface{} {
	return c.box
}

// Binding returns the context and slot a word is bound into, or nil.
func (c cell) Binding() (*Context, int) {
	return c.ctx, c.slot
}

// Bind returns a copy of the word cell c bound to slot n of x.
func (c cell) Bind(x *Context, n int) T {
	c.ctx = x
	c.slot = n

	return c
}

// AsKind returns a copy of c with the heart swapped to k. Used to flip
// between the members of a family (set-word to word, group to block).
func (c cell) AsKind(k Kind) T {
	c.heart = k

	return c
}

// Truthy returns the conditional truth of an ordinary (non-isotope) cell.
// Null, void, and blank are falsey, as is logic false. Everything else
// is truthy.
func (c cell) Truthy() bool {
	switch c.heart {
	case Null, Void, Blank:
		return false
	case Logic:
		return c.i != 0
	}

	return true
}

// Equal returns true if c and o have the same heart, quote state, and a
// structurally equal payload.
func (c *cell) Equal(o *T) bool {
	// Staleness is an evaluator-side note, not part of the value.
	if c.heart != o.heart || c.quote != o.quote {
		return false
	}

	switch c.heart {
	case None, Null, Void, Blank, Blackhole, Comma:
		return true
	case Logic, Integer, Money, Time, Date:
		return c.i == o.i
	case Decimal:
		return c.f == o.f
	case Pair:
		return c.f == o.f && c.f2 == o.f2
	case Word, SetWord, GetWord, MetaWord, TheWord:
		return c.sym == o.sym
	case Text, Issue, Tag, File, URL:
		return c.str == o.str
	case Binary:
		if len(c.bytes) != len(o.bytes) {
			return false
		}

		for i, b := range c.bytes {
			if o.bytes[i] != b {
				return false
			}
		}

		return true
	case BitsetKind:
		return c.bits.Equal(o.bits)
	case Object:
		return c.ctx == o.ctx
	case ErrorKind, ActionKind:
		return c.box == o.box
	}

	if AnyArrayKind(c.heart) {
		return c.series.Equal(o.series)
	}

	return false
}
