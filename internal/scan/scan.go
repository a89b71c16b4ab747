// Released under an MIT license. See LICENSE.

// Package scan turns lumen source text into arrays of cells.
//
// The scanner is the upstream producer for the evaluator: it knows spelling
// and nesting, nothing about binding or evaluation. Feeds call back into it
// lazily when a variadic part is a text fragment.
package scan

import (
	"strconv"
	"strings"

	"github.com/lumenlang/lumen/internal/fail"
	"github.com/lumenlang/lumen/internal/symbol"
	"github.com/lumenlang/lumen/internal/value"
)

// T holds the state of one scan.
type T struct {
	tbl   *symbol.T
	label string

	src   string
	index int
	line  int
}

type scanner = T

// Text scans a complete source string into a block's worth of cells.
func Text(tbl *symbol.T, label, src string) (a *value.Array, err *fail.T) {
	defer func() {
		if r := recover(); r != nil {
			a, err = nil, fail.From(r)
		}
	}()

	s := &scanner{tbl: tbl, label: label, src: src, line: 1}

	a = s.sequence(0)

	if s.index < len(s.src) {
		s.die("unexpected %q", s.src[s.index])
	}

	return a, nil
}

// sequence scans values until the closing delimiter (or end of input when
// close is zero).
func (s *scanner) sequence(close byte) *value.Array {
	a := value.NewSeries()

	for {
		s.skip()

		if s.index >= len(s.src) {
			if close != 0 {
				s.die("missing %q", close)
			}

			return a
		}

		if c := s.src[s.index]; c == ']' || c == ')' {
			if c != close {
				s.die("unexpected %q", c)
			}

			s.index++

			return a
		}

		a.Append(s.value())
	}
}

// value scans one complete value, including any quote or meta prefixes and
// any path/tuple continuation or trailing set-colon.
func (s *scanner) value() value.T {
	c := s.src[s.index]

	switch {
	case c == '\'':
		depth := 0
		for s.index < len(s.src) && s.src[s.index] == '\'' {
			depth++
			s.index++
		}

		if s.index >= len(s.src) {
			s.die("quote with nothing to quote")
		}

		return value.Quotify(s.value(), depth)

	case c == '^':
		s.index++

		return s.metaForm()

	case c == ':':
		s.index++

		return s.getForm()

	case c == '~':
		return s.quasiForm()

	case c == ',':
		s.index++

		return value.CommaCell

	case c == '@':
		s.index++

		w := s.wordish()
		if w.Heart() != value.Word {
			s.die("bad the-word")
		}

		return w.AsKind(value.TheWord)

	case c == '[':
		s.index++

		return s.maybeSet(value.NewArray(value.Block, s.sequence(']')), value.SetBlock)

	case c == '(':
		s.index++

		return s.maybeSet(value.NewArray(value.Group, s.sequence(')')), value.SetGroup)

	case c == '"':
		return value.NewText(s.text())

	case c == '#':
		return s.hashForm()

	case c == '$':
		s.index++

		return s.money()

	case c == '%':
		s.index++

		return value.NewString(value.File, s.wordText())

	case c == '<' && s.tagAhead(s.index+1):
		return s.tag()

	case c == '_' && !s.wordAhead(s.index+1):
		s.index++

		return value.BlankCell

	case c >= '0' && c <= '9', c == '-' && s.digitAhead(s.index+1), c == '+' && s.digitAhead(s.index+1):
		return s.number()
	}

	return s.wordish()
}

// metaForm handles ^x, ^[...] and ^(...).
func (s *scanner) metaForm() value.T {
	if s.index < len(s.src) {
		switch s.src[s.index] {
		case '[':
			s.index++

			return value.NewArray(value.MetaBlock, s.sequence(']'))
		case '(':
			s.index++

			return value.NewArray(value.MetaGroup, s.sequence(')'))
		}
	}

	w := s.wordish()
	if w.Heart() != value.Word {
		s.die("bad meta form")
	}

	return w.AsKind(value.MetaWord)
}

// getForm handles :x, :[...] and :(...).
func (s *scanner) getForm() value.T {
	if s.index < len(s.src) {
		switch s.src[s.index] {
		case '[':
			s.index++

			return value.NewArray(value.GetBlock, s.sequence(']'))
		case '(':
			s.index++

			return value.NewArray(value.GetGroup, s.sequence(')'))
		}
	}

	w := s.wordish()

	switch w.Heart() {
	case value.Word:
		return w.AsKind(value.GetWord)
	case value.Tuple:
		return w.AsKind(value.GetWord) // Get-tuples read as get-words of the head.
	}

	s.die("bad get form")

	return value.T{}
}

// quasiForm handles ~, ~word~ and the quasi spellings of the fixed states.
func (s *scanner) quasiForm() value.T {
	s.index++

	if !s.wordAhead(s.index) {
		return value.Quasify(value.VoidCell)
	}

	spelling := s.wordText()

	if s.index >= len(s.src) || s.src[s.index] != '~' {
		s.die("unterminated quasi form ~%s", spelling)
	}

	s.index++

	switch strings.ToLower(spelling) {
	case "null":
		return value.Quasify(value.NullCell)
	case "blank", "_":
		return value.Quasify(value.BlankCell)
	case "true":
		return value.Quasify(value.TrueCell)
	case "false":
		return value.Quasify(value.FalseCell)
	case "blackhole", "#":
		return value.Quasify(value.BlackholeCell)
	}

	return value.Quasify(value.NewWord(value.Word, s.tbl.Intern(spelling)))
}

// hashForm handles #, #{...} and #issue.
func (s *scanner) hashForm() value.T {
	s.index++

	if s.index < len(s.src) && s.src[s.index] == '{' {
		return s.binary()
	}

	if !s.wordAhead(s.index) {
		return value.BlackholeCell
	}

	return value.NewIssue(s.wordText())
}

// wordish scans a word and any dot/slash continuation into a tuple or
// path, then checks for a trailing set-colon.
func (s *scanner) wordish() value.T {
	head := s.word()

	switch {
	case s.peek('.'):
		return s.joined(head, '.', value.Tuple, value.SetTuple)
	case s.peek('/'):
		return s.joined(head, '/', value.Path, value.SetPath)
	case s.peek(':'):
		s.index++

		if head.Heart() != value.Word {
			s.die("bad set form")
		}

		return head.AsKind(value.SetWord)
	}

	return head
}

// joined scans the remaining segments of a tuple or path.
func (s *scanner) joined(head value.T, sep byte, kind, setKind value.Kind) value.T {
	a := value.NewSeries(head)

	for s.peek(sep) {
		s.index++
		a.Append(s.segment())
	}

	if s.peek(':') {
		s.index++

		return value.NewArray(setKind, a)
	}

	return value.NewArray(kind, a)
}

// segment scans one tuple or path segment.
func (s *scanner) segment() value.T {
	if s.index >= len(s.src) {
		s.die("trailing sequence separator")
	}

	switch c := s.src[s.index]; {
	case c == '(':
		s.index++

		return value.NewArray(value.Group, s.sequence(')'))
	case c == '_':
		s.index++

		return value.BlankCell
	case c >= '0' && c <= '9':
		start := s.index
		for s.index < len(s.src) && s.src[s.index] >= '0' && s.src[s.index] <= '9' {
			s.index++
		}

		n, _ := strconv.ParseInt(s.src[start:s.index], 10, 64)

		return value.NewInteger(n)
	}

	return s.word()
}

// word scans a plain word. A word followed by "://" is the scheme of a url
// and the rest of the url is consumed with it.
func (s *scanner) word() value.T {
	spelling := s.wordText()
	if spelling == "" {
		s.die("unexpected %q", s.src[s.index])
	}

	if strings.HasPrefix(s.src[s.index:], "://") {
		start := s.index

		for s.index < len(s.src) && urlByte(s.src[s.index]) {
			s.index++
		}

		return value.NewString(value.URL, spelling+s.src[start:s.index])
	}

	return value.NewWord(value.Word, s.tbl.Intern(spelling))
}

func urlByte(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', '[', ']', '(', ')', '"', ';':
		return false
	}

	return true
}

func (s *scanner) wordText() string {
	start := s.index

	for s.index < len(s.src) && wordByte(s.src[s.index]) {
		s.index++
	}

	return s.src[start:s.index]
}

func (s *scanner) number() value.T {
	start := s.index

	if c := s.src[s.index]; c == '-' || c == '+' {
		s.index++
	}

	dots := 0

	for s.index < len(s.src) {
		c := s.src[s.index]
		if c >= '0' && c <= '9' {
			s.index++

			continue
		}

		if c == '.' && s.digitAhead(s.index+1) {
			dots++
			s.index++

			continue
		}

		break
	}

	text := s.src[start:s.index]

	switch dots {
	case 0:
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			s.die("bad integer %s", text)
		}

		return value.NewInteger(n)
	case 1:
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			s.die("bad decimal %s", text)
		}

		return value.NewDecimal(f)
	}

	// Two or more dots is a tuple of integers.
	a := value.NewSeries()

	for _, part := range strings.Split(text, ".") {
		n, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			s.die("bad tuple %s", text)
		}

		a.Append(value.NewInteger(n))
	}

	return value.NewArray(value.Tuple, a)
}

func (s *scanner) money() value.T {
	start := s.index

	for s.index < len(s.src) {
		c := s.src[s.index]
		if (c < '0' || c > '9') && c != '.' && c != '-' {
			break
		}

		s.index++
	}

	f, err := strconv.ParseFloat(s.src[start:s.index], 64)
	if err != nil {
		s.die("bad money literal")
	}

	return value.NewMoney(int64(f*100 + 0.5))
}

func (s *scanner) text() string {
	s.index++ // Opening quote.

	var b strings.Builder

	for s.index < len(s.src) {
		c := s.src[s.index]

		switch c {
		case '"':
			s.index++

			return b.String()
		case '^':
			// Caret escapes: ^- tab, ^/ newline, ^^ caret, ^" quote.
			s.index++
			if s.index >= len(s.src) {
				s.die("unterminated escape")
			}

			switch s.src[s.index] {
			case '-':
				b.WriteByte('\t')
			case '/':
				b.WriteByte('\n')
			default:
				b.WriteByte(s.src[s.index])
			}

			s.index++
		case '\n':
			s.die("unterminated text")
		default:
			b.WriteByte(c)
			s.index++
		}
	}

	s.die("unterminated text")

	return ""
}

func (s *scanner) tag() value.T {
	s.index++ // Opening angle.

	start := s.index
	for s.index < len(s.src) && s.src[s.index] != '>' {
		s.index++
	}

	if s.index >= len(s.src) {
		s.die("unterminated tag")
	}

	text := s.src[start:s.index]
	s.index++

	return value.NewString(value.Tag, text)
}

func (s *scanner) binary() value.T {
	s.index++ // Opening brace.

	var b []byte

	hi := -1

	for s.index < len(s.src) {
		c := s.src[s.index]
		s.index++

		switch {
		case c == '}':
			if hi >= 0 {
				s.die("odd number of binary digits")
			}

			return value.NewBinary(b)
		case c == ' ' || c == '\t' || c == '\n':
			continue
		}

		d := hexDigit(c)
		if d < 0 {
			s.die("bad binary digit %q", c)
		}

		if hi < 0 {
			hi = d
		} else {
			b = append(b, byte(hi<<4|d))
			hi = -1
		}
	}

	s.die("unterminated binary")

	return value.T{}
}

// maybeSet checks for the trailing colon that turns a block or group into
// its set form.
func (s *scanner) maybeSet(c value.T, setKind value.Kind) value.T {
	if s.peek(':') {
		s.index++

		return c.AsKind(setKind)
	}

	return c
}

// skip consumes whitespace and comments.
func (s *scanner) skip() {
	for s.index < len(s.src) {
		switch s.src[s.index] {
		case ' ', '\t', '\r':
			s.index++
		case '\n':
			s.line++
			s.index++
		case ';':
			for s.index < len(s.src) && s.src[s.index] != '\n' {
				s.index++
			}
		default:
			return
		}
	}
}

func (s *scanner) peek(c byte) bool {
	return s.index < len(s.src) && s.src[s.index] == c
}

func (s *scanner) digitAhead(i int) bool {
	return i < len(s.src) && s.src[i] >= '0' && s.src[i] <= '9'
}

func (s *scanner) wordAhead(i int) bool {
	return i < len(s.src) && wordByte(s.src[i])
}

// tagAhead distinguishes a <tag> opener from the comparison words that
// also begin with an angle bracket (<, <=, <>). An angle bracket followed
// by a delimiter, another comparison byte, or end of input is a word.
func (s *scanner) tagAhead(i int) bool {
	if i >= len(s.src) {
		return false
	}

	switch s.src[i] {
	case ' ', '\t', '\n', '=', '>', '<', ')', ']', ',', ';':
		return false
	}

	return true
}

func (s *scanner) die(format string, args ...interface{}) {
	err := fail.New(fail.IllegalLiteral, format, args...)
	err.Near = s.label + ":" + strconv.Itoa(s.line)

	panic(err)
}

// hexDigit returns the value of a hexadecimal digit, or -1.
func hexDigit(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	}

	return -1
}

// wordByte reports bytes legal inside a word spelling. Delimiters, the
// sequence separators, and the decoration characters are excluded.
func wordByte(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	}

	return strings.IndexByte("+-*=<>!?&|_", c) >= 0
}
