// Released under an MIT license. See LICENSE.

package feed_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenlang/lumen/internal/feed"
	"github.com/lumenlang/lumen/internal/scan"
	"github.com/lumenlang/lumen/internal/symbol"
	"github.com/lumenlang/lumen/internal/value"
)

func scanInto(t *testing.T, tbl *symbol.T, src string) *value.Array {
	t.Helper()

	a, err := scan.Text(tbl, "test", src)
	require.Nil(t, err)

	return a
}

func TestFromArrayIteration(t *testing.T) {
	tbl := symbol.New()
	fd := feed.FromArray(tbl, scanInto(t, tbl, "1 2 3"), 0)

	var got []int64

	for !fd.AtEnd() {
		got = append(got, fd.At().Int())
		fd.Next()
	}

	assert.Equal(t, []int64{1, 2, 3}, got)
	assert.Nil(t, fd.At())
}

func TestFromArrayIndexOffset(t *testing.T) {
	tbl := symbol.New()
	fd := feed.FromArray(tbl, scanInto(t, tbl, "1 2 3"), 2)

	require.False(t, fd.AtEnd())
	assert.Equal(t, int64(3), fd.At().Int())

	fd.Next()
	assert.True(t, fd.AtEnd())
}

func TestLookback(t *testing.T) {
	tbl := symbol.New()
	fd := feed.FromArray(tbl, scanInto(t, tbl, "1 2"), 0)

	assert.Nil(t, fd.Lookback())

	first := *fd.At()
	fd.Next()

	require.NotNil(t, fd.Lookback())
	assert.True(t, first.Equal(fd.Lookback()))

	// Exactly one unit of retrospection: advancing again replaces it.
	fd.Next()
	assert.Equal(t, int64(2), fd.Lookback().Int())
}

func TestVariadicSplicing(t *testing.T) {
	tbl := symbol.New()

	fd := feed.Variadic(tbl, "1 2", value.NewInteger(3), "4")

	var got []int64

	for !fd.AtEnd() {
		got = append(got, fd.At().Int())
		fd.Next()
	}

	assert.Equal(t, []int64{1, 2, 3, 4}, got)
}

func TestVariadicCellPointer(t *testing.T) {
	tbl := symbol.New()
	c := value.NewInteger(9)

	fd := feed.Variadic(tbl, &c)

	require.False(t, fd.AtEnd())
	assert.Same(t, &c, fd.At())
}

func TestHoldReleasedAtExhaustion(t *testing.T) {
	tbl := symbol.New()
	a := scanInto(t, tbl, "1 2")

	fd := feed.FromArray(tbl, a, 0)

	// Held arrays refuse structural mutation.
	assert.Panics(t, func() { a.Append(value.NewInteger(3)) })

	for !fd.AtEnd() {
		fd.Next()
	}

	assert.NotPanics(t, func() { a.Append(value.NewInteger(3)) })
}

func TestCloseReleasesEarly(t *testing.T) {
	tbl := symbol.New()
	a := scanInto(t, tbl, "1 2 3")

	fd := feed.FromArray(tbl, a, 0)
	fd.Close()

	assert.NotPanics(t, func() { a.Append(value.NewInteger(4)) })
}

func TestFlags(t *testing.T) {
	tbl := symbol.New()
	fd := feed.FromArray(tbl, scanInto(t, tbl, "1"), 0)

	assert.Zero(t, fd.Flags()&feed.Barrier)

	fd.Set(feed.Barrier | feed.NoLookahead)
	assert.NotZero(t, fd.Flags()&feed.Barrier)

	fd.Clear(feed.NoLookahead)
	assert.NotZero(t, fd.Flags()&feed.Barrier)
	assert.Zero(t, fd.Flags()&feed.NoLookahead)
}
