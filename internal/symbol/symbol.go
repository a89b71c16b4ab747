// Released under an MIT license. See LICENSE.

// Package symbol provides interned identifiers for lumen words.
//
// Spellings are interned into a table owned by a runtime instance, not a
// process-wide cache, so independent runtimes never share state. Each
// spelling maps to an id; ids for case-variant spellings of the same word
// share one canonical id.
package symbol

import "strings"

// ID identifies an interned spelling. The zero ID is reserved.
type ID int32

// None is the absence of a symbol.
const None ID = 0

// Well-known symbols. Interned by New in this exact order so that their
// ids are constants.
const (
	Return ID = iota + 1
	Null
	Void
	Blank
	Blackhole
	End
	True
	False
	Yes
	No
	On
	Off

	Pick
	Poke
	Append
	Copy
	Length
	Reflect

	wellKnownEnd
)

//nolint:gochecknoglobals
var wellKnown = []string{
	"return", "null", "void", "blank", "blackhole", "end",
	"true", "false", "yes", "no", "on", "off",
	"pick", "poke", "append", "copy", "length", "reflect",
}

// T is an interning table.
type T struct {
	names []string
	canon []ID
	ids   map[string]ID
}

type table = T

// New creates a table pre-loaded with the well-known symbols.
func New() *T {
	t := &table{
		names: make([]string, 1, 64), // Slot 0 is reserved for None.
		canon: make([]ID, 1, 64),
		ids:   map[string]ID{},
	}

	for _, s := range wellKnown {
		t.Intern(s)
	}

	return t
}

// Canonical returns the id shared by all case variants of id's spelling.
func (t *table) Canonical(id ID) ID {
	return t.canon[id]
}

// Intern returns the id for the spelling s, assigning one if needed.
func (t *table) Intern(s string) ID {
	if id, ok := t.ids[s]; ok {
		return id
	}

	id := t.add(s)

	folded := strings.ToLower(s)
	if folded == s {
		t.canon[id] = id

		return id
	}

	canon, ok := t.ids[folded]
	if !ok {
		canon = t.add(folded)
		t.canon[canon] = canon
	}

	t.canon[id] = canon

	return id
}

// Name returns the spelling for the id.
func (t *table) Name(id ID) string {
	return t.names[id]
}

// Same returns true if a and b fold to the same canonical symbol.
func (t *table) Same(a, b ID) bool {
	return t.canon[a] == t.canon[b]
}

func (t *table) add(s string) ID {
	id := ID(len(t.names))

	t.names = append(t.names, s)
	t.canon = append(t.canon, None)
	t.ids[s] = id

	return id
}
