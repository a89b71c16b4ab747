// Released under an MIT license. See LICENSE.

package value

import (
	"github.com/lumenlang/lumen/internal/fail"
)

// Array is a series of cells. Blocks, groups, paths, and tuples all share
// this representation and differ only in the heart of the cell that
// references the series.
type Array struct {
	cells []T
	holds int
}

// NewSeries creates an array over the given cells.
func NewSeries(cells ...T) *Array {
	return &Array{cells: cells}
}

// Len returns the number of cells.
func (a *Array) Len() int {
	return len(a.cells)
}

// At returns a pointer to the cell at index i.
func (a *Array) At(i int) *T {
	return &a.cells[i]
}

// Cells returns the underlying cells.
func (a *Array) Cells() []T {
	return a.cells
}

// Hold takes a cooperative hold on the array. While held, structural
// mutation fails. Feeds hold the arrays they are actively consuming.
func (a *Array) Hold() {
	a.holds++
}

// Release releases one hold.
func (a *Array) Release() {
	if a.holds > 0 {
		a.holds--
	}
}

// Held returns true while any holds are outstanding.
func (a *Array) Held() bool {
	return a.holds > 0
}

// Append adds a cell to the end of the array. Isotopes cannot be stored
// in an array; callers reify them first.
func (a *Array) Append(c T) {
	a.mutable()

	if c.Isotope() {
		fail.Raise(fail.TypeMismatch, "cannot store an isotope in an array")
	}

	a.cells = append(a.cells, c)
}

// Poke overwrites the cell at index i.
func (a *Array) Poke(i int, c T) {
	if c.Isotope() {
		fail.Raise(fail.TypeMismatch, "cannot store an isotope in an array")
	}

	a.cells[i] = c
}

// Remove deletes n cells starting at index i.
func (a *Array) Remove(i, n int) {
	a.mutable()

	a.cells = append(a.cells[:i], a.cells[i+n:]...)
}

// Copy returns a shallow copy of the array with no holds.
func (a *Array) Copy() *Array {
	cells := make([]T, len(a.cells))
	copy(cells, a.cells)

	return &Array{cells: cells}
}

// Slice returns a copy of the cells from index i to the end.
func (a *Array) Slice(i int) *Array {
	cells := make([]T, len(a.cells)-i)
	copy(cells, a.cells[i:])

	return &Array{cells: cells}
}

// Equal returns true if b has structurally equal cells in the same order.
func (a *Array) Equal(b *Array) bool {
	if a == b {
		return true
	}

	if a == nil || b == nil || len(a.cells) != len(b.cells) {
		return false
	}

	for i := range a.cells {
		if !a.cells[i].Equal(&b.cells[i]) {
			return false
		}
	}

	return true
}

func (a *Array) mutable() {
	if a.holds > 0 {
		fail.Raise(fail.Access, "array is held by an active feed")
	}
}
