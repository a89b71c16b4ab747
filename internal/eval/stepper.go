// Released under an MIT license. See LICENSE.

package eval

import (
	"github.com/lumenlang/lumen/internal/fail"
	"github.com/lumenlang/lumen/internal/feed"
	"github.com/lumenlang/lumen/internal/symbol"
	"github.com/lumenlang/lumen/internal/value"
)

// Stepper resumption states.
const (
	stInitial byte = iota
	stActionDone
	stGroup
	stMetaGroup
	stSetRight
	stSetGroupTarget
	stGetBlockStep
	stSetBlockPre
	stSetBlockBack
)

// stepper is the expression evaluation state machine. One frame running
// stepper consumes one full expression from its feed per pass, or keeps
// looping over expressions when the frame was pushed with ToEnd.
func stepper(f *Frame) Bounce {
	switch f.state {
	case stInitial:
		return f.begin()

	case stActionDone, stGroup:
		return f.lookahead()

	case stMetaGroup:
		if f.out.Stale() {
			*f.out = value.Quasify(value.VoidCell)
		} else {
			*f.out = value.MetaQuotify(*f.out)
		}

		return f.lookahead()

	case stSetRight:
		f.assign()

		return f.lookahead()

	case stSetGroupTarget:
		return f.setGroupTarget()

	case stGetBlockStep:
		return f.reduceStep()

	case stSetBlockPre:
		return f.scannedTarget()

	case stSetBlockBack:
		return f.finishMulti()
	}

	f.Fail(fail.Internal, "stepper resumed in unknown state %d", f.state)

	return Out
}

// begin starts one expression: mark the output stale, consume the current
// value with one unit of lookback retained, check for a left-quoting
// enfix operator immediately to the right, and dispatch on kind.
func (f *Frame) begin() Bounce {
	f.out.MarkStale()

	fd := f.feed

	if fd.Flags()&feed.Barrier != 0 {
		if f.flags&Fulfilling != 0 {
			return Out
		}

		fd.Clear(feed.Barrier)
	}

	c := fd.At()
	if c == nil {
		return Out
	}

	if c.Plain() && c.Heart() == value.Comma {
		if f.flags&Fulfilling != 0 {
			fd.Set(feed.Barrier)

			return Out
		}

		fd.Next()

		f.noLeft = true

		return f.finish()
	}

	fd.Next()

	f.current = *fd.Lookback()

	if f.flags&NoLookahead == 0 {
		if a, label := f.leftQuoter(); a != nil {
			fd.Next() // Consume the operator.

			if fd.AtEnd() {
				// Nothing to the operator's right. Priority
				// reverts to evaluating the left value plainly;
				// the operator then takes the result.
				f.action = a
				f.label = label

				return f.dispatchCurrent()
			}

			*f.out = f.current

			return f.beginInvoke(a, label, true, stActionDone)
		}
	}

	b := f.dispatchCurrent()
	f.noLeft = false

	return b
}

// leftQuoter returns the enfix action bound to the next word if it wants
// to quote the value to its left, without consuming anything.
func (f *Frame) leftQuoter() (*Action, symbol.ID) {
	nxt := f.feed.At()
	if nxt == nil || !nxt.Plain() || nxt.Heart() != value.Word {
		return nil, symbol.None
	}

	v := f.resolveQuiet(nxt)
	if v == nil || !v.Plain() || v.Heart() != value.ActionKind {
		return nil, symbol.None
	}

	a := ActionOf(v)
	if a == nil || a.Flags&(Enfixed|QuotesFirst) != Enfixed|QuotesFirst {
		return nil, symbol.None
	}

	return a, nxt.Symbol()
}

// dispatchCurrent evaluates the already-consumed current value.
func (f *Frame) dispatchCurrent() Bounce {
	c := &f.current

	switch {
	case c.Quasi():
		if c.Heart() == value.Void {
			return f.lookahead() // Quasi-void vanishes.
		}

		*f.out = value.MetaUnquotify(f.current)

		return f.lookahead()

	case c.Quoted():
		*f.out = value.Unquotify(f.current, 1)

		return f.lookahead()

	case c.Isotope():
		f.Fail(fail.IllegalLiteral, "isotope in evaluation position")
	}

	switch c.Heart() {
	case value.Null:
		f.Fail(fail.IllegalLiteral, "null is illegal as source")

	case value.Void:
		return f.lookahead() // Vanishes.

	case value.Blank:
		// A deliberate special case distinct from generic inertness.
		*f.out = value.NullCell

	case value.ActionKind:
		a := ActionOf(c)

		if a.Enfix() && f.noLeft {
			f.Fail(fail.Arity, "enfix action has no value to its left")
		}

		return f.beginInvoke(a, a.Label, a.Enfix(), stActionDone)

	case value.Word:
		return f.word()

	case value.GetWord:
		v := f.resolveQuiet(c)
		if v == nil || v.Unset() {
			f.Fail(fail.Access, "%s has no value", f.name(c.Symbol()))
		}

		if v.Isotope() {
			f.Fail(fail.Access, "%s is an isotope; use get/any to read it", f.name(c.Symbol()))
		}

		*f.out = *v

	case value.MetaWord:
		v := f.resolveQuiet(c)
		if v == nil || v.Unset() {
			f.Fail(fail.Access, "%s has no value", f.name(c.Symbol()))
		}

		*f.out = value.MetaQuotify(*v)

	case value.SetWord, value.SetTuple, value.SetPath:
		if c.Heart() == value.SetPath {
			// Accepted for compatibility; behaves as the
			// equivalent set-tuple.
			f.current = f.current.AsKind(value.SetTuple)
		}

		f.target = f.current

		if f.feed.AtEnd() {
			f.Fail(fail.Arity, "assignment needs a value on its right")
		}

		return f.Continue(stSetRight)

	case value.Group, value.GetGroup:
		a := c.Series()
		if a.Len() == 0 {
			return f.lookahead() // Vanishes; output stays stale.
		}

		return f.ContinueInto(a, f.out, f.scope, 0, stGroup)

	case value.MetaGroup:
		a := c.Series()
		if a.Len() == 0 {
			*f.out = value.Quasify(value.VoidCell)

			return f.lookahead()
		}

		return f.ContinueInto(a, f.out, f.scope, 0, stMetaGroup)

	case value.SetGroup:
		a := c.Series()
		if a.Len() == 0 {
			f.Fail(fail.BadTarget, "empty set-group")
		}

		f.spare = value.T{}

		return f.ContinueInto(a, &f.spare, f.scope, 0, stSetGroupTarget)

	case value.Tuple:
		v, _ := f.resolveChain(c.Series(), false)
		if v.Isotope() {
			f.Fail(fail.Access, "isotope reached through %s; use get/any", value.Mold(f.Rt().Symbols, c))
		}

		*f.out = *v

	case value.Path:
		return f.path()

	case value.SetBlock:
		a := c.Series()
		if a.Len() == 0 {
			f.Fail(fail.BadTarget, "empty multiple-return target")
		}

		f.target = f.current
		f.paramIdx = 0
		f.outputs = make([]outTarget, 0, a.Len())

		return f.scanTargets()

	case value.GetBlock:
		return f.beginReduce()

	case value.MetaBlock:
		*f.out = value.Quotify(value.NewArray(value.Block, c.Series()), 1)

	default:
		// Inert: a literal copy of the value itself.
		*f.out = f.current
	}

	return f.lookahead()
}

// word evaluates a plain word: action bindings are invoked, anything else
// is copied to the output.
func (f *Frame) word() Bounce {
	c := &f.current

	v := f.resolveQuiet(c)
	if v == nil || v.Unset() {
		f.Fail(fail.Access, "%s has no value", f.name(c.Symbol()))
	}

	if v.Plain() && v.Heart() == value.ActionKind {
		a := ActionOf(v)

		if a.Enfix() && f.noLeft {
			f.Fail(fail.Arity, "%s has no value to its left", f.name(c.Symbol()))
		}

		return f.beginInvoke(a, c.Symbol(), a.Enfix(), stActionDone)
	}

	if v.Isotope() {
		f.Fail(fail.Access, "%s is an isotope; use get/any to read it", f.name(c.Symbol()))
	}

	*f.out = *v

	return f.lookahead()
}

// path evaluates a path: a fetch chain whose head may resolve to an
// action, in which case remaining segments become refinements.
func (f *Frame) path() Bounce {
	c := &f.current

	v, refines := f.resolveChain(c.Series(), true)

	if v.Plain() && v.Heart() == value.ActionKind {
		a := ActionOf(v)
		if a.Enfix() {
			f.Fail(fail.BadTarget, "enfix action cannot head a path")
		}

		f.refines = refines

		return f.beginInvoke(a, c.Series().At(0).Symbol(), false, stActionDone)
	}

	if v.Isotope() {
		f.Fail(fail.Access, "isotope reached through %s; use get/any", value.Mold(f.Rt().Symbols, c))
	}

	*f.out = *v

	return f.lookahead()
}

// lookahead checks for a trailing enfix operator after the expression's
// value has been produced, invoking it with the value as its first
// argument when the deferral rules allow.
func (f *Frame) lookahead() Bounce {
	if a := f.action; a != nil {
		// Operator already consumed during backward-quote lookahead
		// with nothing to its right; it takes the evaluated value.
		f.action = nil

		return f.beginInvoke(a, f.label, true, stActionDone)
	}

	fd := f.feed

	if fd.Flags()&feed.Barrier != 0 || f.flags&NoLookahead != 0 {
		return f.finish()
	}

	if fd.Flags()&feed.NoLookahead != 0 {
		fd.Clear(feed.NoLookahead)

		return f.finish()
	}

	nxt := fd.At()
	if nxt == nil || !nxt.Plain() || nxt.Heart() != value.Word {
		return f.finish()
	}

	v := f.resolveQuiet(nxt)
	if v == nil || !v.Plain() || v.Heart() != value.ActionKind {
		return f.finish()
	}

	a := ActionOf(v)
	if a == nil || !a.Enfix() {
		return f.finish()
	}

	if a.Flags&Postpones != 0 {
		// Picked up as the head of the next expression, after
		// everything to its left has run.
		return f.finish()
	}

	if f.flags&Fulfilling != 0 && a.Flags&DefersLeft != 0 {
		// Left for the parent evaluation to resolve, so deferred
		// operators bind the outermost result rather than a
		// partially-evaluated inner one.
		return f.finish()
	}

	label := nxt.Symbol()
	fd.Next()

	return f.beginInvoke(a, label, true, stActionDone)
}

// finish ends the current expression, looping to the next one when the
// frame steps to end of feed. The bounce still passes through the
// trampoline so hooks observe every expression boundary.
func (f *Frame) finish() Bounce {
	if f.flags&ToEnd != 0 && !f.feed.AtEnd() {
		f.state = stInitial

		return Redo
	}

	return Out
}

// assign writes the evaluated right-hand side through the pending target.
// A stale output means the right side vanished, which unsets the target
// instead of assigning.
func (f *Frame) assign() {
	if f.out.Stale() {
		f.unset(f.target)

		return
	}

	v := value.Decay(*f.out)

	if v.Isotope() && v.Heart() == value.ErrorKind {
		if e, ok := v.Box().(*fail.T); ok {
			panic(e)
		}

		f.Fail(fail.TypeMismatch, "cannot assign an error isotope")
	}

	f.store(f.target, v)

	*f.out = v
}

func (f *Frame) setGroupTarget() Bounce {
	v := value.Decay(f.spare)

	switch v.Heart() {
	case value.Word:
		f.target = v.AsKind(value.SetWord)
	case value.Tuple, value.Path:
		f.target = v.AsKind(value.SetTuple)
	case value.Blank:
		f.target = value.BlankCell // Evaluate the right side, discard it.
	default:
		f.Fail(fail.BadTarget, "set-group produced %s, not an assignment target", v.Heart())
	}

	if f.feed.AtEnd() {
		f.Fail(fail.Arity, "assignment needs a value on its right")
	}

	return f.Continue(stSetRight)
}

// beginReduce starts the get-block implicit reduce: every expression of
// the block is evaluated and the results are collected into a new block.
func (f *Frame) beginReduce() Bounce {
	a := f.current.Series()

	f.acc = value.NewSeries()

	if a.Len() == 0 {
		*f.out = value.NewArray(value.Block, f.acc)
		f.acc = nil

		return f.lookahead()
	}

	f.sub = feed.FromArray(f.Rt().Symbols, a, 0)
	f.spare = value.T{}
	f.spare.MarkStale()

	return f.continueFeed(f.sub, &f.spare, stGetBlockStep)
}

func (f *Frame) reduceStep() Bounce {
	if !f.spare.Stale() {
		v := value.Decay(f.spare)

		if v.Isotope() {
			f.Fail(fail.TypeMismatch, "cannot put an isotope in a block")
		}

		if v.Heart() == value.Null {
			f.Fail(fail.TypeMismatch, "cannot put null in a block")
		}

		f.acc.Append(v)
	}

	if f.sub.AtEnd() {
		f.sub.Close()
		f.sub = nil

		*f.out = value.NewArray(value.Block, f.acc)
		f.acc = nil

		return f.lookahead()
	}

	f.spare = value.T{}
	f.spare.MarkStale()

	return f.continueFeed(f.sub, &f.spare, stGetBlockStep)
}

// scanTargets pre-scans the set-block for its element kinds, resolving
// each into an output target. Groups are evaluated immediately, left to
// right, before the right-hand call is even looked up.
func (f *Frame) scanTargets() Bounce {
	a := f.target.Series()

	for f.paramIdx < a.Len() {
		e := a.At(f.paramIdx)
		f.paramIdx++

		if e.Quoted() || e.Quasi() || e.Isotope() {
			f.Fail(fail.BadTarget, "bad multiple-return target %s", value.Mold(f.Rt().Symbols, e))
		}

		switch e.Heart() {
		case value.Blank:
			f.outputs = append(f.outputs, outTarget{mode: targetDiscard})

		case value.Blackhole:
			f.outputs = append(f.outputs, outTarget{mode: targetRequest})

		case value.Word, value.Tuple, value.Path:
			f.outputs = append(f.outputs, outTarget{mode: targetBind, word: *e})

		case value.TheWord:
			// Circling: this slot's value becomes the overall
			// result.
			f.circled = len(f.outputs)
			f.outputs = append(f.outputs, outTarget{mode: targetBind, word: e.AsKind(value.Word)})

		case value.MetaWord:
			f.outputs = append(f.outputs, outTarget{mode: targetBind, meta: true, word: e.AsKind(value.Word)})

		case value.Group:
			f.spare = value.T{}

			return f.ContinueInto(e.Series(), &f.spare, f.scope, 0, stSetBlockPre)

		default:
			f.Fail(fail.BadTarget, "bad multiple-return target %s", value.Mold(f.Rt().Symbols, e))
		}
	}

	return f.multiInvoke()
}

func (f *Frame) scannedTarget() Bounce {
	v := value.Decay(f.spare)

	switch v.Heart() {
	case value.Word, value.Tuple, value.Path:
		f.outputs = append(f.outputs, outTarget{mode: targetBind, word: v})
	case value.Blank:
		f.outputs = append(f.outputs, outTarget{mode: targetDiscard})
	case value.Blackhole:
		f.outputs = append(f.outputs, outTarget{mode: targetRequest})
	default:
		f.Fail(fail.BadTarget, "multiple-return group produced %s, not a target", v.Heart())
	}

	return f.scanTargets()
}

// multiInvoke resolves the right side of a set-block to a callable and
// invokes it with the scanned output targets pre-loaded.
func (f *Frame) multiInvoke() Bounce {
	fd := f.feed

	if fd.AtEnd() {
		f.Fail(fail.Arity, "multiple-return needs a callable on its right")
	}

	fd.Next()

	c := *fd.Lookback()
	f.current = c

	var act *Action

	var label symbol.ID

	switch {
	case c.Plain() && c.Heart() == value.Word:
		v := f.resolveQuiet(&c)
		if v == nil || !v.Plain() || v.Heart() != value.ActionKind {
			f.Fail(fail.BadTarget, "%s is not a callable", f.name(c.Symbol()))
		}

		act, label = ActionOf(v), c.Symbol()

	case c.Plain() && c.Heart() == value.Path:
		v, refines := f.resolveChain(c.Series(), true)
		if !v.Plain() || v.Heart() != value.ActionKind {
			f.Fail(fail.BadTarget, "right side of a multiple-return must be a callable")
		}

		f.refines = refines
		act, label = ActionOf(v), c.Series().At(0).Symbol()

	case c.Plain() && c.Heart() == value.ActionKind:
		act = ActionOf(&c)
		label = act.Label

	default:
		f.Fail(fail.BadTarget, "right side of a multiple-return must be a callable")
	}

	if act.Enfix() {
		f.Fail(fail.BadTarget, "enfix action cannot head a multiple-return")
	}

	return f.beginInvoke(act, label, false, stSetBlockBack)
}

// finishMulti proxies each output parameter's value into its resolved
// target after the call completes. The circled target, or the first one,
// becomes the overall result.
func (f *Frame) finishMulti() Bounce {
	outs := f.outputs
	f.outputs = nil

	if !outs[0].filled {
		// An action without output parameters still feeds its main
		// return to the first target.
		outs[0].result = *f.out
		outs[0].filled = true
	}

	for i := range outs {
		t := &outs[i]
		if t.mode != targetBind {
			continue
		}

		if !t.filled {
			f.unset(t.word)

			continue
		}

		v := value.Decay(t.result)
		if t.meta {
			v = value.MetaQuotify(t.result)
		}

		f.store(t.word, v)
	}

	if f.circled >= 0 && outs[f.circled].filled {
		*f.out = outs[f.circled].result
	} else if outs[0].filled {
		*f.out = outs[0].result
	}

	f.circled = -1

	return f.lookahead()
}

// resolveQuiet looks up a word's storage without invoking anything: the
// cell's own binding when present, the frame's scope chain otherwise.
func (f *Frame) resolveQuiet(w *value.T) *value.T {
	if x, n := w.Binding(); x != nil {
		return x.At(n)
	}

	if x, n := f.scope.Resolve(f.Rt().Symbols, w.Symbol()); x != nil {
		return x.At(n)
	}

	return nil
}

// resolveChain picks through the segments of a tuple or path. For paths,
// reaching an action stops the walk and the remaining word segments are
// returned as refinements, in reverse order.
func (f *Frame) resolveChain(a *value.Array, path bool) (*value.T, []symbol.ID) {
	head := a.At(0)
	if !head.Plain() || head.Heart() != value.Word {
		f.Fail(fail.BadTarget, "sequence head must be a word")
	}

	cur := f.resolveQuiet(head)
	if cur == nil || cur.Unset() {
		f.Fail(fail.Access, "%s has no value", f.name(head.Symbol()))
	}

	for i := 1; i < a.Len(); i++ {
		if path && cur.Plain() && cur.Heart() == value.ActionKind {
			var refines []symbol.ID

			for j := a.Len() - 1; j >= i; j-- {
				seg := a.At(j)
				if !seg.Plain() || seg.Heart() != value.Word {
					f.Fail(fail.BadTarget, "refinement must be a word")
				}

				refines = append(refines, seg.Symbol())
			}

			return cur, refines
		}

		if cur.Isotope() {
			f.Fail(fail.Access, "isotope reached mid-sequence; use get/any")
		}

		cur = f.pickFrom(cur, a.At(i))
	}

	return cur, nil
}

// pickFrom resolves one pick step: a named field of an object, or a
// one-based index into an array kind.
func (f *Frame) pickFrom(cur, seg *value.T) *value.T {
	switch {
	case cur.Heart() == value.Object && seg.Plain() && seg.Heart() == value.Word:
		x := cur.Ctx()

		n := x.Find(f.Rt().Symbols, seg.Symbol())
		if n == 0 {
			f.Fail(fail.Access, "no %s field", f.name(seg.Symbol()))
		}

		return x.At(n)

	case value.AnyArrayKind(cur.Heart()) && seg.Plain() && seg.Heart() == value.Integer:
		a := cur.Series()

		n := int(seg.Int())
		if n < 1 || n > a.Len() {
			f.Fail(fail.Access, "index %d out of range", n)
		}

		return a.At(n - 1)
	}

	f.Fail(fail.BadTarget, "cannot pick %s from %s", value.Mold(f.Rt().Symbols, seg), cur.Heart())

	return nil
}

// store writes v through an assignment target. Assignment to an unbound
// word defines it in the frame's scope.
func (f *Frame) store(target, v value.T) {
	switch target.Heart() {
	case value.Blank:
		// Discard.

	case value.Word, value.SetWord, value.GetWord, value.MetaWord, value.TheWord:
		if x, n := target.Binding(); x != nil {
			*x.At(n) = v

			return
		}

		tbl := f.Rt().Symbols

		if x, n := f.scope.Resolve(tbl, target.Symbol()); x != nil {
			*x.At(n) = v

			return
		}

		f.scope.Define(tbl, target.Symbol(), v)

	case value.Tuple, value.SetTuple, value.Path, value.SetPath:
		f.storeChain(target.Series(), v)

	default:
		f.Fail(fail.BadTarget, "cannot assign through %s", target.Heart())
	}
}

// storeChain walks all but the last segment of a tuple, then writes
// through the final one.
func (f *Frame) storeChain(a *value.Array, v value.T) {
	if a.Len() < 2 {
		f.Fail(fail.BadTarget, "assignment needs at least two segments")
	}

	head := a.At(0)
	if !head.Plain() || head.Heart() != value.Word {
		f.Fail(fail.BadTarget, "sequence head must be a word")
	}

	cur := f.resolveQuiet(head)
	if cur == nil || cur.Unset() {
		f.Fail(fail.Access, "%s has no value", f.name(head.Symbol()))
	}

	for i := 1; i < a.Len()-1; i++ {
		cur = f.pickFrom(cur, a.At(i))
	}

	last := a.At(a.Len() - 1)

	switch {
	case cur.Heart() == value.Object && last.Plain() && last.Heart() == value.Word:
		x := cur.Ctx()

		n := x.Find(f.Rt().Symbols, last.Symbol())
		if n == 0 {
			f.Fail(fail.Access, "no %s field", f.name(last.Symbol()))
		}

		*x.At(n) = v

	case value.AnyArrayKind(cur.Heart()) && last.Plain() && last.Heart() == value.Integer:
		s := cur.Series()

		n := int(last.Int())
		if n < 1 || n > s.Len() {
			f.Fail(fail.Access, "index %d out of range", n)
		}

		s.Poke(n-1, v)

	default:
		f.Fail(fail.BadTarget, "cannot assign through %s", value.Mold(f.Rt().Symbols, last))
	}
}

// unset clears an assignment target's variable. Missing bindings are
// left alone.
func (f *Frame) unset(target value.T) {
	if !value.AnyWordKind(target.Heart()) {
		return
	}

	if x, n := target.Binding(); x != nil {
		*x.At(n) = value.T{}

		return
	}

	if x, n := f.scope.Resolve(f.Rt().Symbols, target.Symbol()); x != nil {
		*x.At(n) = value.T{}
	}
}

// continueFeed pushes a child stepper over an existing feed.
func (f *Frame) continueFeed(fd *feed.T, dst *value.T, nextState byte) Bounce {
	f.state = nextState

	child := f.tr.push(fd, dst, f.scope, 0)
	child.exec = stepper

	return Continue
}

func (f *Frame) name(s symbol.ID) string {
	return f.Rt().Symbols.Name(s)
}

// Resolve returns the storage cell a word designates, or nil. For
// natives that fetch variables on their caller's behalf.
func (f *Frame) Resolve(w *value.T) *value.T {
	return f.resolveQuiet(w)
}

// Store writes v through an assignment target word or tuple on behalf
// of a native.
func (f *Frame) Store(target, v value.T) {
	f.store(target, v)
}
