// Released under an MIT license. See LICENSE.

package value

import (
	"github.com/lumenlang/lumen/internal/symbol"
)

// Context associates symbols with cells. The keylist and varlist are
// parallel: key i names slot i. Slot 0 is the archetype slot, reserved for
// a cell describing the context itself, so user keys start at 1. Instances
// made from the same source share one keylist.
type Context struct {
	keys   *Keylist
	vars   []T
	parent *Context
}

// Keylist is an ordered sequence of symbols shared between contexts.
type Keylist struct {
	syms []symbol.ID
}

// NewContext creates an empty context chained to parent for lookup.
func NewContext(parent *Context) *Context {
	return &Context{
		keys:   &Keylist{syms: []symbol.ID{symbol.None}},
		vars:   make([]T, 1),
		parent: parent,
	}
}

// Instance creates a context sharing x's keylist, with fresh unset slots.
func (x *Context) Instance() *Context {
	return &Context{
		keys:   x.keys,
		vars:   make([]T, len(x.vars)),
		parent: x.parent,
	}
}

// Len returns the number of slots, counting the archetype slot.
func (x *Context) Len() int {
	return len(x.vars)
}

// KeyAt returns the symbol naming slot n.
func (x *Context) KeyAt(n int) symbol.ID {
	return x.keys.syms[n]
}

// At returns a pointer to slot n.
func (x *Context) At(n int) *T {
	return &x.vars[n]
}

// Parent returns the context searched after this one.
func (x *Context) Parent() *Context {
	return x.parent
}

// Find returns the slot index for s, or 0 if s is not a key. Matching is
// by canonical symbol.
func (x *Context) Find(tbl *symbol.T, s symbol.ID) int {
	for i := 1; i < len(x.keys.syms); i++ {
		if tbl.Same(x.keys.syms[i], s) {
			return i
		}
	}

	return 0
}

// Resolve searches this context and then its parents for s. It returns
// the owning context and slot, or nil and 0.
func (x *Context) Resolve(tbl *symbol.T, s symbol.ID) (*Context, int) {
	for c := x; c != nil; c = c.parent {
		if n := c.Find(tbl, s); n != 0 {
			return c, n
		}
	}

	return nil, 0
}

// Extend appends a slot named s and returns its index. If the keylist is
// shared the context gets its own copy first.
func (x *Context) Extend(s symbol.ID) int {
	syms := make([]symbol.ID, len(x.keys.syms), len(x.keys.syms)+1)
	copy(syms, x.keys.syms)

	x.keys = &Keylist{syms: append(syms, s)}
	x.vars = append(x.vars, T{})

	return len(x.vars) - 1
}

// Define sets the slot for s, extending the context if s is not yet a key,
// and returns the slot index.
func (x *Context) Define(tbl *symbol.T, s symbol.ID, v T) int {
	n := x.Find(tbl, s)
	if n == 0 {
		n = x.Extend(s)
	}

	x.vars[n] = v

	return n
}
