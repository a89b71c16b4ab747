// Released under an MIT license. See LICENSE.

package eval_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenlang/lumen/internal/eval"
	"github.com/lumenlang/lumen/internal/fail"
	"github.com/lumenlang/lumen/internal/feed"
	"github.com/lumenlang/lumen/internal/runtime"
	"github.com/lumenlang/lumen/internal/scan"
	"github.com/lumenlang/lumen/internal/value"
)

func run(t *testing.T, src string) eval.Outcome {
	t.Helper()

	rt := runtime.New()

	block, err := scan.Text(rt.Symbols, "test", src)
	require.Nil(t, err)

	return eval.RunFeed(rt, feed.FromArray(rt.Symbols, block, 0), nil)
}

// result runs src and requires a clean, non-stale outcome.
func result(t *testing.T, src string) value.T {
	t.Helper()

	o := run(t, src)
	require.Nil(t, o.Err, "unexpected failure: %v", o.Err)
	require.Nil(t, o.Throw, "unexpected throw")
	require.False(t, o.Stale, "expected a value, got a stale step")

	return o.Value
}

func wantInt(t *testing.T, src string, want int64) {
	t.Helper()

	v := result(t, src)
	require.Equal(t, value.Integer, v.Heart(), src)
	assert.Equal(t, want, v.Int(), src)
}

func TestLiteralsEvaluateToThemselves(t *testing.T) {
	wantInt(t, "3", 3)

	assert.Equal(t, value.Text, result(t, `"hi"`).Heart())
	assert.Equal(t, value.Null, result(t, "_").Heart())
	assert.Equal(t, value.Logic, result(t, "true").Heart())
	assert.False(t, result(t, "off").Bool())
}

func TestEnfixArithmetic(t *testing.T) {
	wantInt(t, "1 + 2", 3)
	wantInt(t, "7 - 3 - 2", 2)

	// Enfix evaluates strictly left to right, no precedence.
	wantInt(t, "1 + 2 * 3", 9)

	// A group restores conventional grouping.
	wantInt(t, "1 + (2 * 3)", 7)
}

func TestPrefixArithmetic(t *testing.T) {
	wantInt(t, "add 1 2", 3)
	wantInt(t, "add 1 multiply 2 3", 7)
	wantInt(t, "negate 5", -5)
	wantInt(t, "divide 6 2", 3)

	v := result(t, "divide 7 2")
	assert.Equal(t, value.Decimal, v.Heart())
	assert.Equal(t, 3.5, v.Float())
}

func TestDivideByZeroFails(t *testing.T) {
	o := run(t, "divide 1 0")
	require.NotNil(t, o.Err)
	assert.Equal(t, fail.Overflow, o.Err.Kind)
}

func TestSetWord(t *testing.T) {
	// A set-word passes its value through.
	wantInt(t, "x: 1 + 2", 3)

	// And binds it for later expressions.
	wantInt(t, "x: 1 + 2 x + 10", 13)

	// Chained assignment.
	wantInt(t, "a: b: 5 a + b", 10)
}

func TestUnboundWordFails(t *testing.T) {
	o := run(t, "nonesuch")
	require.NotNil(t, o.Err)
	assert.Equal(t, fail.Access, o.Err.Kind)
}

func TestQuoteForms(t *testing.T) {
	v := result(t, "'foo")
	assert.Equal(t, value.Word, v.Heart())
	assert.True(t, v.Plain())

	v = result(t, "''foo")
	assert.Equal(t, 1, v.QuoteDepth())

	v = result(t, "quote 3")
	assert.Equal(t, 1, v.QuoteDepth())
	assert.Equal(t, value.Integer, v.Heart())

	v = result(t, "the foo")
	assert.Equal(t, value.Word, v.Heart())
	assert.True(t, v.Plain())
}

func TestCommentVanishes(t *testing.T) {
	o := run(t, `comment "nothing here"`)
	require.Nil(t, o.Err)
	assert.True(t, o.Stale)

	// A vanished expression leaves the previous value visible to a
	// trailing enfix op.
	wantInt(t, `1 + 2 comment "gap" * 3`, 9)

	// And leaves the previous result as the leftover answer.
	o = run(t, `1 + 2 elide "gap"`)
	require.Nil(t, o.Err)
	assert.True(t, o.Stale)
	assert.Equal(t, int64(3), o.Value.Int())
}

func TestQuasiVoidVanishes(t *testing.T) {
	o := run(t, "3 ~")
	require.Nil(t, o.Err)
	assert.True(t, o.Stale)
	assert.Equal(t, int64(3), o.Value.Int())

	o = run(t, "~")
	require.Nil(t, o.Err)
	assert.True(t, o.Stale)
}

func TestGroupEvaluation(t *testing.T) {
	wantInt(t, "(1 + 2)", 3)
	wantInt(t, "(1 2 3)", 3)

	// An empty group vanishes.
	o := run(t, "5 ()")
	require.Nil(t, o.Err)
	assert.True(t, o.Stale)
	assert.Equal(t, int64(5), o.Value.Int())

	// Which makes it transparent to a trailing enfix op.
	wantInt(t, "1 + 2 () * 3", 9)
}

func TestMetaGroup(t *testing.T) {
	v := result(t, "^(1 + 2)")
	assert.Equal(t, 1, v.QuoteDepth())
	assert.Equal(t, value.Integer, v.Heart())

	// A meta-group over nothing produces quasi void.
	v = result(t, "^()")
	assert.True(t, v.Quasi())
	assert.Equal(t, value.Void, v.Heart())
}

func TestCommaIsAnExpressionBarrier(t *testing.T) {
	wantInt(t, "1 + 2, 4", 4)

	// The barrier stops enfix from reaching back across it.
	o := run(t, "1 + 2, * 3")
	assert.NotNil(t, o.Err)
}

func TestIsotopeAccess(t *testing.T) {
	// A word holding an isotope refuses plain access.
	o := run(t, "x: ~dead~ x")
	require.NotNil(t, o.Err)
	assert.Equal(t, fail.Access, o.Err.Kind)

	// get/any reads it unchanged.
	v := result(t, "x: ~dead~ get/any 'x")
	assert.True(t, v.Isotope())
	assert.Equal(t, value.Word, v.Heart())
}

func TestGetAnyOfMissing(t *testing.T) {
	v := result(t, "get/any 'nonesuch")
	assert.Equal(t, value.Null, v.Heart())

	o := run(t, "get 'nonesuch")
	require.NotNil(t, o.Err)
	assert.Equal(t, fail.Access, o.Err.Kind)
}

func TestMetaAndUnmeta(t *testing.T) {
	v := result(t, "meta 3")
	assert.Equal(t, 1, v.QuoteDepth())

	v = result(t, "meta ~dead~")
	assert.True(t, v.Quasi())

	wantInt(t, "unmeta meta 3", 3)
}

func TestMetaLiftsQuasiValue(t *testing.T) {
	// Lifting a stored quasi form quotes it rather than failing.
	v := result(t, "x: meta ~dead~ ^x")
	assert.True(t, v.Quoted())
	assert.Equal(t, 1, v.QuoteDepth())
	assert.True(t, value.MetaUnquotify(v).Quasi())

	// The quoted quasi literal evaluates back down to quasi.
	assert.True(t, result(t, "'~dead~").Quasi())
}

func TestIfEither(t *testing.T) {
	wantInt(t, "if 1 [2]", 2)

	v := result(t, "if _ [2]")
	assert.Equal(t, value.Null, v.Heart())

	wantInt(t, "either 1 [2] [3]", 2)
	wantInt(t, "either _ [2] [3]", 3)

	// Branch blocks see the surrounding scope.
	wantInt(t, "x: 7 if 1 [x + 1]", 8)

	// A non-block branch is taken as-is.
	wantInt(t, "if 1 2", 2)
}

func TestThenElse(t *testing.T) {
	wantInt(t, "1 then [2]", 2)
	wantInt(t, "_ else [3]", 3)
	wantInt(t, "1 else [3]", 1)

	v := result(t, "_ then [2]")
	assert.Equal(t, value.Null, v.Heart())
}

func TestAllAnyReduce(t *testing.T) {
	wantInt(t, "all [1 2 3]", 3)
	assert.Equal(t, value.Null, result(t, "all [1 _ 3]").Heart())
	assert.Equal(t, value.Logic, result(t, "all []").Heart())

	wantInt(t, "any [_ 2]", 2)
	assert.Equal(t, value.Null, result(t, "any [_ _]").Heart())

	v := result(t, "reduce [1 + 2 3 * 4]")
	require.Equal(t, value.Block, v.Heart())

	a := v.Series()
	require.Equal(t, 2, a.Len())
	assert.Equal(t, int64(3), a.At(0).Int())
	assert.Equal(t, int64(12), a.At(1).Int())
}

func TestGetBlockReduces(t *testing.T) {
	v := result(t, ":[1 + 2 10]")
	require.Equal(t, value.Block, v.Heart())

	a := v.Series()
	require.Equal(t, 2, a.Len())
	assert.Equal(t, int64(3), a.At(0).Int())
	assert.Equal(t, int64(10), a.At(1).Int())
}

func TestDo(t *testing.T) {
	wantInt(t, "do [1 + 2]", 3)
	wantInt(t, "do 5", 5)
	assert.Equal(t, value.Null, result(t, "do []").Heart())
}

func TestRelational(t *testing.T) {
	tr := func(src string) bool {
		t.Helper()

		v := result(t, src)
		require.Equal(t, value.Logic, v.Heart(), src)

		return v.Bool()
	}

	assert.True(t, tr("1 < 2"))
	assert.False(t, tr("2 < 1"))
	assert.True(t, tr("2 = 2"))
	assert.True(t, tr("2 <> 3"))
	assert.True(t, tr(`"abc" < "abd"`))
	assert.True(t, tr("$1.50 <= $2.00"))
}

func TestFuncAndCall(t *testing.T) {
	wantInt(t, "double: func [n] [n * 2] double 4", 8)

	// Arguments evaluate before the body runs.
	wantInt(t, "double: func [n] [n * 2] double 1 + 2", 6)

	// Parameters shadow, the surrounding scope shows through for the rest.
	wantInt(t, "k: 10 addk: func [n] [n + k] addk 5", 15)
}

func TestFuncMediumQuotedParameter(t *testing.T) {
	// A ':word parameter takes its argument literally, even a
	// get-word, and only a get-group opts into evaluation.
	v := result(t, "grab: func [':w] [w] grab foo")
	assert.Equal(t, value.Word, v.Heart())

	v = result(t, "grab: func [':w] [w] x: 5 grab :x")
	assert.Equal(t, value.GetWord, v.Heart())

	wantInt(t, "grab: func [':w] [w] grab :(1 + 2)", 3)
}

func TestFuncRejectsDuplicateParameter(t *testing.T) {
	o := run(t, "func [n N] [n]")
	require.NotNil(t, o.Err)
	assert.Equal(t, fail.Arity, o.Err.Kind)
}

func TestFuncQuotedParameter(t *testing.T) {
	v := result(t, "name-of: func ['w] [w] name-of foo")
	assert.Equal(t, value.Word, v.Heart())
}

func TestSpecialize(t *testing.T) {
	// A pre-filled slot is skipped at call time; open slots still
	// consume input.
	wantInt(t, "double: specialize :multiply [b: 2] double 21", 42)
	wantInt(t, "add2: specialize :add [b: 2] add2 1 + 4", 7)

	// An empty spec leaves every slot open.
	wantInt(t, "plus: specialize :add [] plus 1 2", 3)

	// Interpreted actions specialize too.
	wantInt(t, "f: func [a b] [a - b] f10: specialize :f [a: 10] f10 3", 7)

	o := run(t, "specialize 3 [b: 2]")
	require.NotNil(t, o.Err)
	assert.Equal(t, fail.TypeMismatch, o.Err.Kind)
}

func TestReturn(t *testing.T) {
	wantInt(t, "f: func [n] [return n + 1 99] f 1", 2)

	// return unwinds through nested frames to its own definition frame.
	wantInt(t, "f: func [n] [do [if 1 [return n]] 99] f 7", 7)

	// return with nothing to its right returns null.
	v := result(t, "f: func [n] [if n [return] 5] f 1")
	assert.Equal(t, value.Null, v.Heart())
}

func TestReturnIsDefinitional(t *testing.T) {
	// Each call gets its own return; the inner one does not unwind
	// the outer call.
	wantInt(t, `
		inner: func [n] [return n 99]
		outer: func [n] [inner n + 1]
		outer 1
	`, 2)
}

func TestThrowCatch(t *testing.T) {
	wantInt(t, "catch [throw 5]", 5)
	wantInt(t, "catch [1 + throw 5 99]", 5)

	assert.Equal(t, value.Null, result(t, "catch [1 2]").Heart())

	o := run(t, "throw 5")
	require.NotNil(t, o.Throw)
	assert.Equal(t, int64(5), o.Throw.Payload.Int())
}

func TestCatchDoesNotStopReturn(t *testing.T) {
	// A definitional return aims past any catch inside the function.
	wantInt(t, "f: func [n] [catch [return n] 99] f 3", 3)
}

func TestTry(t *testing.T) {
	v := result(t, "try [divide 1 0]")
	assert.True(t, v.Isotope())
	assert.Equal(t, value.ErrorKind, v.Heart())

	wantInt(t, "try [1 + 2]", 3)

	// Assigning an error isotope is a failure at the assignment.
	o := run(t, "x: try [divide 1 0]")
	assert.NotNil(t, o.Err)

	// The meta form is storable.
	v = result(t, "meta try [divide 1 0]")
	assert.True(t, v.Quasi())
	assert.Equal(t, value.ErrorKind, v.Heart())
}

func TestDivmodMultipleReturns(t *testing.T) {
	// Plain call: just the quotient.
	wantInt(t, "divmod 7 2", 3)

	wantInt(t, "[q r]: divmod 7 2 q", 3)
	wantInt(t, "[q r]: divmod 7 2 r", 1)

	// The overall result of a set-block is the first output.
	wantInt(t, "[q r]: divmod 7 2", 3)

	// Blank discards a position.
	wantInt(t, "[q _]: divmod 7 2 q", 3)

	// Circling picks which output is the overall result.
	wantInt(t, "[q @r]: divmod 7 2", 1)
}

func TestSetBlockGroupTarget(t *testing.T) {
	// A group target evaluates to the word to set.
	wantInt(t, "w: 'q [(w) r]: divmod 9 4 q", 2)
}

func TestSetGroup(t *testing.T) {
	wantInt(t, "x: 'y (x): 5 y", 5)
}

func TestObject(t *testing.T) {
	v := result(t, "object [x: 3 y: 4]")
	require.Equal(t, value.Object, v.Heart())

	wantInt(t, "o: object [x: 3 y: 4] o.x", 3)
	wantInt(t, "o: object [x: 3 y: 4] o.y", 4)

	// Field values may use the surrounding scope.
	wantInt(t, "k: 10 o: object [x: k + 1] o.x", 11)

	// Generic access by word index.
	wantInt(t, "o: object [x: 3] pick o 'x", 3)
	wantInt(t, "o: object [x: 3] length o", 1)
}

func TestSetTuple(t *testing.T) {
	wantInt(t, "o: object [x: 3] o.x: 7 o.x", 7)
}

func TestYielder(t *testing.T) {
	wantInt(t, "g: yielder [yield 1 yield 2] g", 1)
	wantInt(t, "g: yielder [yield 1 yield 2] g g", 2)

	// Exhausted generators keep returning null.
	assert.Equal(t, value.Null, result(t, "g: yielder [yield 1] g g").Heart())
	assert.Equal(t, value.Null, result(t, "g: yielder [yield 1] g g g").Heart())
}

func TestYielderSeesItsScope(t *testing.T) {
	wantInt(t, "k: 10 g: yielder [yield k + 1] g", 11)
}

func TestGenericsOnBlocks(t *testing.T) {
	wantInt(t, "pick [10 20 30] 2", 20)
	wantInt(t, "length [10 20 30]", 3)

	v := result(t, "append [1 2] 3")
	require.Equal(t, value.Block, v.Heart())
	assert.Equal(t, 3, v.Series().Len())

	wantInt(t, "b: [1 2 3] poke b 2 9 pick b 2", 9)

	// copy detaches: mutating the copy leaves the original alone.
	wantInt(t, "b: [1 2 3] c: copy b poke c 1 9 pick b 1", 1)
}

func TestGenericsOnText(t *testing.T) {
	wantInt(t, `length "abc"`, 3)

	v := result(t, `pick "abc" 2`)
	assert.Equal(t, value.Issue, v.Heart())
	assert.Equal(t, "b", v.String())

	v = result(t, `append "ab" "cd"`)
	assert.Equal(t, "abcd", v.String())
}

func TestGenericsOnBinary(t *testing.T) {
	wantInt(t, "length #{DEAD}", 2)
	wantInt(t, "pick #{DEAD} 1", 0xde)
}

func TestQuotedLayerGenerics(t *testing.T) {
	wantInt(t, "length quote 3", 1)

	v := result(t, "reflect quote 3")
	assert.Equal(t, value.Word, v.Heart())

	o := run(t, "pick quote 3 1")
	require.NotNil(t, o.Err)
	assert.Equal(t, fail.NoOperation, o.Err.Kind)
}

func TestPickOutOfRangeFails(t *testing.T) {
	o := run(t, "pick [1 2] 5")
	assert.NotNil(t, o.Err)

	o = run(t, "pick [1 2] 0")
	assert.NotNil(t, o.Err)
}

func TestMold(t *testing.T) {
	v := result(t, "mold [1 + 2]")
	require.Equal(t, value.Text, v.Heart())
	assert.Equal(t, "[1 + 2]", v.String())
}

func TestStepper(t *testing.T) {
	rt := runtime.New()

	block, err := scan.Text(rt.Symbols, "test", "x: 1 x + 1 comment 1")
	require.Nil(t, err)

	s := eval.NewStepper(rt, feed.FromArray(rt.Symbols, block, 0), nil)

	o := s.Step()
	require.Nil(t, o.Err)
	assert.Equal(t, int64(1), o.Value.Int())

	o = s.Step()
	require.Nil(t, o.Err)
	assert.Equal(t, int64(2), o.Value.Int())

	o = s.Step()
	require.Nil(t, o.Err)
	assert.True(t, o.Stale)

	assert.True(t, s.AtEnd())
}

func TestStepperSurvivesFailure(t *testing.T) {
	rt := runtime.New()

	block, err := scan.Text(rt.Symbols, "test", "nonesuch 5")
	require.Nil(t, err)

	s := eval.NewStepper(rt, feed.FromArray(rt.Symbols, block, 0), nil)

	o := s.Step()
	require.NotNil(t, o.Err)

	// The next step starts clean.
	o = s.Step()
	require.Nil(t, o.Err)
	assert.Equal(t, int64(5), o.Value.Int())
}

func TestDepthGuard(t *testing.T) {
	rt := runtime.New()
	rt.MaxDepth = 16

	block, err := scan.Text(rt.Symbols, "test", "f: func [n] [f n] f 1")
	require.Nil(t, err)

	o := eval.RunFeed(rt, feed.FromArray(rt.Symbols, block, 0), nil)
	require.NotNil(t, o.Err)
	assert.Equal(t, fail.Overflow, o.Err.Kind)
}

func TestErrorCarriesNear(t *testing.T) {
	o := run(t, "1 + 2 nonesuch")
	require.NotNil(t, o.Err)
	assert.NotEmpty(t, o.Err.Near)
}
