// Released under an MIT license. See LICENSE.

package symbol_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lumenlang/lumen/internal/symbol"
)

func TestInternIsStable(t *testing.T) {
	tbl := symbol.New()

	a := tbl.Intern("frobnicate")
	b := tbl.Intern("frobnicate")

	assert.Equal(t, a, b)
	assert.Equal(t, "frobnicate", tbl.Name(a))
}

func TestCaseVariantsShareACanonical(t *testing.T) {
	tbl := symbol.New()

	lower := tbl.Intern("foo")
	upper := tbl.Intern("FOO")
	mixed := tbl.Intern("Foo")

	assert.NotEqual(t, lower, upper)
	assert.NotEqual(t, lower, mixed)

	assert.Equal(t, lower, tbl.Canonical(upper))
	assert.Equal(t, lower, tbl.Canonical(mixed))
	assert.True(t, tbl.Same(upper, mixed))

	// Spellings are preserved even though matching folds.
	assert.Equal(t, "FOO", tbl.Name(upper))
}

func TestCanonicalOfFoldedSpellingIsItself(t *testing.T) {
	tbl := symbol.New()

	id := tbl.Intern("bar")
	assert.Equal(t, id, tbl.Canonical(id))
}

func TestWellKnownIDs(t *testing.T) {
	tbl := symbol.New()

	assert.Equal(t, symbol.Return, tbl.Intern("return"))
	assert.Equal(t, symbol.Pick, tbl.Intern("pick"))
	assert.Equal(t, symbol.Reflect, tbl.Intern("reflect"))
}

func TestIndependentTables(t *testing.T) {
	a := symbol.New()
	b := symbol.New()

	ida := a.Intern("only-in-a")

	// The same spelling interned into a fresh table gets the same id
	// only because the tables evolved identically, not because state
	// is shared.
	idb := b.Intern("only-in-a")

	assert.Equal(t, ida, idb)
	assert.Equal(t, "only-in-a", a.Name(ida))
}
