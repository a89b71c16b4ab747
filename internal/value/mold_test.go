// Released under an MIT license. See LICENSE.

package value_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lumenlang/lumen/internal/symbol"
	"github.com/lumenlang/lumen/internal/value"
)

func mold(c value.T) string {
	return value.Mold(symbol.New(), &c)
}

func TestMoldScalars(t *testing.T) {
	assert.Equal(t, "3", mold(value.NewInteger(3)))
	assert.Equal(t, "3.5", mold(value.NewDecimal(3.5)))
	assert.Equal(t, "$1.50", mold(value.NewMoney(150)))
	assert.Equal(t, "true", mold(value.TrueCell))
	assert.Equal(t, "null", mold(value.NullCell))
	assert.Equal(t, "_", mold(value.BlankCell))
	assert.Equal(t, "#", mold(value.BlackholeCell))
}

func TestMoldWords(t *testing.T) {
	tbl := symbol.New()
	w := value.NewWord(value.Word, tbl.Intern("foo"))

	assert.Equal(t, "foo", value.Mold(tbl, &w))

	sw := w.AsKind(value.SetWord)
	assert.Equal(t, "foo:", value.Mold(tbl, &sw))

	gw := w.AsKind(value.GetWord)
	assert.Equal(t, ":foo", value.Mold(tbl, &gw))

	mw := w.AsKind(value.MetaWord)
	assert.Equal(t, "^foo", value.Mold(tbl, &mw))

	tw := w.AsKind(value.TheWord)
	assert.Equal(t, "@foo", value.Mold(tbl, &tw))
}

func TestMoldQuoteStates(t *testing.T) {
	tbl := symbol.New()
	w := value.NewWord(value.Word, tbl.Intern("x"))

	q := value.Quotify(w, 2)
	assert.Equal(t, "''x", value.Mold(tbl, &q))

	qa := value.Quasify(w)
	assert.Equal(t, "~x~", value.Mold(tbl, &qa))

	// An isotope has no literal form; it displays reified.
	i := value.Isotopify(w)
	assert.Equal(t, "~x~", value.Mold(tbl, &i))

	v := value.VoidCell
	assert.Equal(t, "~", mold(value.Quasify(v)))

	// A lifted quasi form quotes outside the tildes.
	mq := value.MetaQuotify(qa)
	assert.Equal(t, "'~x~", value.Mold(tbl, &mq))
}

func TestMoldSeries(t *testing.T) {
	tbl := symbol.New()

	a := value.NewSeries()
	a.Append(value.NewInteger(1))
	a.Append(value.NewWord(value.Word, tbl.Intern("x")))

	b := value.NewArray(value.Block, a)
	assert.Equal(t, "[1 x]", value.Mold(tbl, &b))

	g := value.NewArray(value.Group, a)
	assert.Equal(t, "(1 x)", value.Mold(tbl, &g))
}

func TestMoldText(t *testing.T) {
	assert.Equal(t, `"hi"`, mold(value.NewText("hi")))
	assert.Equal(t, "#{DECAFBAD}", mold(value.NewBinary([]byte{0xde, 0xca, 0xfb, 0xad})))
}
