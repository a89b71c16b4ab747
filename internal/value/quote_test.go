// Released under an MIT license. See LICENSE.

package value_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenlang/lumen/internal/symbol"
	"github.com/lumenlang/lumen/internal/value"
)

func TestQuotifyUnquotifyInverse(t *testing.T) {
	c := value.NewInteger(42)

	for depth := 1; depth <= 5; depth++ {
		q := value.Quotify(c, depth)

		assert.Equal(t, depth, q.QuoteDepth())
		assert.True(t, q.Quoted())
		assert.Equal(t, value.Integer, q.Heart())

		u := value.Unquotify(q, depth)
		assert.True(t, u.Plain())
		assert.Equal(t, int64(42), u.Int())
	}
}

func TestQuotifyZeroIsIdentity(t *testing.T) {
	c := value.NewInteger(7)

	assert.Equal(t, c, value.Quotify(c, 0))
}

func TestDequotify(t *testing.T) {
	c := value.Quotify(value.NewLogic(true), 3)

	plain, depth := value.Dequotify(c)

	assert.Equal(t, 3, depth)
	assert.True(t, plain.Plain())
	assert.True(t, plain.Bool())
}

func TestQuasiAndIsotopeAreDistinctStates(t *testing.T) {
	tbl := symbol.New()
	w := value.NewWord(value.Word, tbl.Intern("dead"))

	q := value.Quasify(w)
	require.True(t, q.Quasi())
	require.False(t, q.Isotope())
	require.False(t, q.Quoted())

	i := value.Isotopify(w)
	require.True(t, i.Isotope())
	require.False(t, i.Quasi())

	assert.Equal(t, 0, q.QuoteDepth())
	assert.Equal(t, 0, i.QuoteDepth())
}

func TestReify(t *testing.T) {
	i := value.Isotopify(value.NewLogic(false))

	r := value.Reify(i)
	assert.True(t, r.Quasi())

	// Reify leaves non-isotopes alone.
	q := value.Quotify(value.NewInteger(1), 2)
	assert.Equal(t, q, value.Reify(q))
}

func TestDecay(t *testing.T) {
	// The decaying isotopes collapse to their ordinary counterparts.
	assert.Equal(t, value.NullCell, value.Decay(value.Isotopify(value.NullCell)))
	assert.Equal(t, value.BlankCell, value.Decay(value.Isotopify(value.BlankCell)))
	assert.Equal(t, value.FalseCell, value.Decay(value.Isotopify(value.FalseCell)))
	assert.Equal(t, value.TrueCell, value.Decay(value.Isotopify(value.TrueCell)))

	// A word isotope is stable: it survives decay unchanged.
	tbl := symbol.New()
	w := value.Isotopify(value.NewWord(value.Word, tbl.Intern("dead")))
	assert.True(t, value.Decay(w).Isotope())

	// Plain values pass through.
	n := value.NewInteger(9)
	assert.Equal(t, n, value.Decay(n))
}

func TestDecayIdempotent(t *testing.T) {
	cases := []value.T{
		value.Isotopify(value.NullCell),
		value.Isotopify(value.FalseCell),
		value.NewInteger(3),
	}

	for _, c := range cases {
		once := value.Decay(c)
		assert.Equal(t, once, value.Decay(once))
	}
}

func TestMetaRoundTrip(t *testing.T) {
	tbl := symbol.New()

	cases := []value.T{
		value.NewInteger(1),
		value.Quotify(value.NewInteger(1), 2),
		value.Isotopify(value.NewWord(value.Word, tbl.Intern("dead"))),
		value.Quasify(value.NewWord(value.Word, tbl.Intern("alive"))),
		value.NullCell,
	}

	for _, c := range cases {
		m := value.MetaQuotify(c)

		// A meta form is always storable: never an isotope.
		require.False(t, m.Isotope())

		assert.Equal(t, c, value.MetaUnquotify(m))
	}
}

func TestQuotedQuasiForm(t *testing.T) {
	tbl := symbol.New()
	q := value.Quasify(value.NewWord(value.Word, tbl.Intern("dead")))

	// Lifting a quasi form quotes it; the quasi state rides along
	// under the quote level.
	m := value.MetaQuotify(q)
	require.False(t, m.Quasi())
	require.True(t, m.Quoted())
	assert.Equal(t, 1, m.QuoteDepth())

	back := value.MetaUnquotify(m)
	require.True(t, back.Quasi())
	assert.Equal(t, q, back)
}

func TestMetaQuotifyLiftsIsotopeToQuasi(t *testing.T) {
	i := value.Isotopify(value.NullCell)

	m := value.MetaQuotify(i)

	assert.True(t, m.Quasi())
	assert.Equal(t, value.Null, m.Heart())
}

func TestTruthy(t *testing.T) {
	assert.True(t, value.NewInteger(0).Truthy())
	assert.True(t, value.TrueCell.Truthy())
	assert.False(t, value.FalseCell.Truthy())
	assert.False(t, value.NullCell.Truthy())
}
