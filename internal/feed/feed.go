// Released under an MIT license. See LICENSE.

// Package feed provides the cursor abstraction over "where the next value
// comes from": a fixed array with an index, or a variadic sequence of
// parts classified lazily one unit at a time.
//
// A feed retains exactly one unit of retrospection. That single lookback
// cell is what makes infix dispatch possible without unbounded buffering.
package feed

import (
	"github.com/lumenlang/lumen/internal/fail"
	"github.com/lumenlang/lumen/internal/scan"
	"github.com/lumenlang/lumen/internal/symbol"
	"github.com/lumenlang/lumen/internal/value"
)

// Flag bits for a feed.
type Flag uint8

// Feed flags.
const (
	NoLookahead Flag = 1 << iota // Suppress enfix lookahead for one step.
	Barrier                      // A comma barrier was hit.
)

// T is a feed.
type T struct {
	tbl *symbol.T

	array *value.Array
	index int
	held  *value.Array

	parts []interface{}
	local value.T

	cur     *value.T
	prev    value.T
	hasPrev bool

	flags Flag
}

type feed = T

// FromArray creates a feed over a, starting at index. The array is held
// against structural mutation until the feed finishes with it.
func FromArray(tbl *symbol.T, a *value.Array, index int) *T {
	a.Hold()

	f := &feed{tbl: tbl, array: a, index: index, held: a}
	f.fetch()

	return f
}

// Variadic creates a feed over a mixed sequence of parts. Each part is
// classified when the cursor reaches it: a cell is spliced as itself; a
// string is scanned into a transient array whose values are spliced in
// and exhausted before the next part is pulled.
func Variadic(tbl *symbol.T, parts ...interface{}) *T {
	f := &feed{tbl: tbl, parts: parts}
	f.fetch()

	return f
}

// At returns the current value, or nil when the feed is exhausted.
func (f *feed) At() *value.T {
	return f.cur
}

// AtEnd returns true when no values remain.
func (f *feed) AtEnd() bool {
	return f.cur == nil
}

// Next advances the cursor one logical unit. The value that was current
// is copied aside first, since advancing can overwrite its storage.
func (f *feed) Next() {
	if f.cur != nil {
		f.prev = *f.cur
		f.hasPrev = true
	}

	f.fetch()
}

// Lookback returns the value that was current immediately before the most
// recent advance, or nil.
func (f *feed) Lookback() *value.T {
	if !f.hasPrev {
		return nil
	}

	return &f.prev
}

// Flags returns the feed's flag set.
func (f *feed) Flags() Flag {
	return f.flags
}

// Set sets the given flags.
func (f *feed) Set(fl Flag) {
	f.flags |= fl
}

// Clear clears the given flags.
func (f *feed) Clear(fl Flag) {
	f.flags &^= fl
}

// Close releases any held array. A feed that runs to exhaustion releases
// on its own; Close covers feeds discarded early.
func (f *feed) Close() {
	f.releaseHeld()

	f.array = nil
	f.parts = nil
	f.cur = nil
}

func (f *feed) fetch() {
	for {
		if f.array != nil {
			if f.index < f.array.Len() {
				f.cur = f.array.At(f.index)
				f.index++

				return
			}

			f.array = nil
			f.releaseHeld()
		}

		if len(f.parts) == 0 {
			f.cur = nil

			return
		}

		part := f.parts[0]
		f.parts = f.parts[1:]

		switch p := part.(type) {
		case value.T:
			f.local = p
			f.cur = &f.local

			return
		case *value.T:
			f.cur = p

			return
		case string:
			a, err := scan.Text(f.tbl, "variadic", p)
			if err != nil {
				panic(err)
			}

			// Transient one-shot array; spliced, not held.
			f.array, f.index = a, 0
		default:
			fail.Raise(fail.Internal, "unclassifiable variadic part %T", part)
		}
	}
}

func (f *feed) releaseHeld() {
	if f.held != nil {
		f.held.Release()
		f.held = nil
	}
}
