// Released under an MIT license. See LICENSE.

package scan_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenlang/lumen/internal/scan"
	"github.com/lumenlang/lumen/internal/symbol"
	"github.com/lumenlang/lumen/internal/value"
)

func one(t *testing.T, src string) value.T {
	t.Helper()

	a, err := scan.Text(symbol.New(), "test", src)
	require.Nil(t, err)
	require.Equal(t, 1, a.Len(), "expected exactly one value from %q", src)

	return *a.At(0)
}

func TestScanScalars(t *testing.T) {
	assert.Equal(t, value.NewInteger(42), one(t, "42"))
	assert.Equal(t, value.NewInteger(-7), one(t, "-7"))
	assert.Equal(t, value.NewDecimal(3.5), one(t, "3.5"))
	assert.Equal(t, value.NewMoney(150), one(t, "$1.50"))
	assert.Equal(t, value.NewText("hi"), one(t, `"hi"`))
	assert.Equal(t, value.BlankCell, one(t, "_"))
	assert.Equal(t, value.BlackholeCell, one(t, "#"))
	assert.Equal(t, value.CommaCell, one(t, ","))
	assert.Equal(t, value.NewBinary([]byte{0xde, 0xad}), one(t, "#{DEAD}"))
	assert.Equal(t, value.NewIssue("topic"), one(t, "#topic"))
	assert.Equal(t, value.NewString(value.Tag, "a"), one(t, "<a>"))
	assert.Equal(t, value.NewString(value.File, "notes"), one(t, "%notes"))
}

func TestScanWordForms(t *testing.T) {
	cases := []struct {
		src  string
		kind value.Kind
	}{
		{"foo", value.Word},
		{"foo:", value.SetWord},
		{":foo", value.GetWord},
		{"^foo", value.MetaWord},
		{"@foo", value.TheWord},
	}

	for _, c := range cases {
		v := one(t, c.src)
		assert.Equal(t, c.kind, v.Heart(), c.src)
		assert.True(t, v.Plain(), c.src)
	}
}

func TestScanComparisonWords(t *testing.T) {
	// Angle brackets open a tag only when followed by tag content;
	// the comparison spellings scan as words.
	for _, src := range []string{"<", ">", "<=", ">=", "<>"} {
		v := one(t, src)
		assert.Equal(t, value.Word, v.Heart(), src)
	}

	a, err := scan.Text(symbol.New(), "test", "1 < 2")
	require.Nil(t, err)
	require.Equal(t, 3, a.Len())
	assert.Equal(t, value.Word, a.At(1).Heart())

	// A closing bracket right after the angle still means a word.
	a, err = scan.Text(symbol.New(), "test", "(<)")
	require.Nil(t, err)
	assert.Equal(t, value.Word, a.At(0).Series().At(0).Heart())
}

func TestScanQuotes(t *testing.T) {
	v := one(t, "'foo")
	assert.Equal(t, value.Word, v.Heart())
	assert.Equal(t, 1, v.QuoteDepth())

	v = one(t, "'''3")
	assert.Equal(t, value.Integer, v.Heart())
	assert.Equal(t, 3, v.QuoteDepth())

	v = one(t, "'[a]")
	assert.Equal(t, value.Block, v.Heart())
	assert.Equal(t, 1, v.QuoteDepth())
}

func TestScanQuasiForms(t *testing.T) {
	v := one(t, "~")
	assert.True(t, v.Quasi())
	assert.Equal(t, value.Void, v.Heart())

	v = one(t, "~dead~")
	assert.True(t, v.Quasi())
	assert.Equal(t, value.Word, v.Heart())

	v = one(t, "~null~")
	assert.True(t, v.Quasi())
	assert.Equal(t, value.Null, v.Heart())

	v = one(t, "~false~")
	assert.True(t, v.Quasi())
	assert.Equal(t, value.Logic, v.Heart())
}

func TestScanSequences(t *testing.T) {
	v := one(t, "a.b.c")
	require.Equal(t, value.Tuple, v.Heart())
	assert.Equal(t, 3, v.Series().Len())

	v = one(t, "a/b")
	require.Equal(t, value.Path, v.Heart())
	assert.Equal(t, 2, v.Series().Len())

	v = one(t, "a.b:")
	assert.Equal(t, value.SetTuple, v.Heart())

	v = one(t, "1.2.3")
	require.Equal(t, value.Tuple, v.Heart())
	assert.Equal(t, value.NewInteger(2), *v.Series().At(1))
}

func TestScanNesting(t *testing.T) {
	v := one(t, "[a (b c) [d]]")
	require.Equal(t, value.Block, v.Heart())

	a := v.Series()
	require.Equal(t, 3, a.Len())
	assert.Equal(t, value.Word, a.At(0).Heart())
	assert.Equal(t, value.Group, a.At(1).Heart())
	assert.Equal(t, value.Block, a.At(2).Heart())

	assert.Equal(t, value.SetBlock, one(t, "[a b]:").Heart())
	assert.Equal(t, value.GetBlock, one(t, ":[a b]").Heart())
	assert.Equal(t, value.MetaBlock, one(t, "^[a b]").Heart())
	assert.Equal(t, value.SetGroup, one(t, "(a):").Heart())
	assert.Equal(t, value.GetGroup, one(t, ":(a)").Heart())
	assert.Equal(t, value.MetaGroup, one(t, "^(a)").Heart())
}

func TestScanComments(t *testing.T) {
	a, err := scan.Text(symbol.New(), "test", "1 ; the rest is ignored\n2")
	require.Nil(t, err)
	require.Equal(t, 2, a.Len())
	assert.Equal(t, value.NewInteger(2), *a.At(1))
}

func TestScanURL(t *testing.T) {
	v := one(t, "https://example.com/x")
	assert.Equal(t, value.URL, v.Heart())
	assert.Equal(t, "https://example.com/x", v.String())
}

func TestScanErrors(t *testing.T) {
	tbl := symbol.New()

	for _, src := range []string{"[1 2", "(a", `"unterminated`, "'", "~oops"} {
		_, err := scan.Text(tbl, "test", src)
		assert.NotNil(t, err, src)
	}
}

func TestScanCaseVariantWordsShareCanonical(t *testing.T) {
	tbl := symbol.New()

	a, err := scan.Text(tbl, "test", "Foo foo")
	require.Nil(t, err)
	require.Equal(t, 2, a.Len())

	assert.True(t, tbl.Same(a.At(0).Symbol(), a.At(1).Symbol()))
}
