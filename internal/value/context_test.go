// Released under an MIT license. See LICENSE.

package value_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenlang/lumen/internal/symbol"
	"github.com/lumenlang/lumen/internal/value"
)

func TestContextDefineAndFind(t *testing.T) {
	tbl := symbol.New()
	x := value.NewContext(nil)

	n := x.Define(tbl, tbl.Intern("a"), value.NewInteger(1))
	require.Equal(t, 1, n)

	// Redefining reuses the slot.
	assert.Equal(t, n, x.Define(tbl, tbl.Intern("a"), value.NewInteger(2)))
	assert.Equal(t, int64(2), x.At(n).Int())

	// Slot 0 is the archetype; user keys start at 1.
	assert.Equal(t, 2, x.Len())
	assert.Equal(t, 0, x.Find(tbl, tbl.Intern("b")))
}

func TestContextFindIsCanonical(t *testing.T) {
	tbl := symbol.New()
	x := value.NewContext(nil)

	n := x.Define(tbl, tbl.Intern("foo"), value.NewInteger(1))

	assert.Equal(t, n, x.Find(tbl, tbl.Intern("FOO")))
	assert.Equal(t, n, x.Find(tbl, tbl.Intern("Foo")))
}

func TestContextResolveWalksParents(t *testing.T) {
	tbl := symbol.New()

	outer := value.NewContext(nil)
	outer.Define(tbl, tbl.Intern("a"), value.NewInteger(1))

	inner := value.NewContext(outer)
	inner.Define(tbl, tbl.Intern("b"), value.NewInteger(2))

	c, n := inner.Resolve(tbl, tbl.Intern("a"))
	require.Same(t, outer, c)
	assert.Equal(t, int64(1), c.At(n).Int())

	c, n = inner.Resolve(tbl, tbl.Intern("b"))
	require.Same(t, inner, c)
	assert.Equal(t, int64(2), c.At(n).Int())

	c, _ = inner.Resolve(tbl, tbl.Intern("missing"))
	assert.Nil(t, c)

	// Shadowing: the innermost definition wins.
	inner.Define(tbl, tbl.Intern("a"), value.NewInteger(9))
	c, n = inner.Resolve(tbl, tbl.Intern("a"))
	require.Same(t, inner, c)
	assert.Equal(t, int64(9), c.At(n).Int())
}

func TestContextInstance(t *testing.T) {
	tbl := symbol.New()

	src := value.NewContext(nil)
	src.Define(tbl, tbl.Intern("a"), value.NewInteger(1))

	inst := src.Instance()

	// Same shape, fresh unset slots.
	require.Equal(t, src.Len(), inst.Len())
	assert.Equal(t, src.KeyAt(1), inst.KeyAt(1))
	assert.True(t, inst.At(1).Unset())

	*inst.At(1) = value.NewInteger(5)

	assert.Equal(t, int64(1), src.At(1).Int())
}

func TestContextExtendCopiesSharedKeylist(t *testing.T) {
	tbl := symbol.New()

	src := value.NewContext(nil)
	src.Define(tbl, tbl.Intern("a"), value.NewInteger(1))

	inst := src.Instance()
	inst.Extend(tbl.Intern("b"))

	// The source's keylist is unaffected by the instance growing.
	assert.Equal(t, 2, src.Len())
	assert.Equal(t, 3, inst.Len())
	assert.Equal(t, 0, src.Find(tbl, tbl.Intern("b")))
}
