// Released under an MIT license. See LICENSE.

package value

// Kind is the heart of a cell: its concrete datatype, independent of any
// quoting or isotope state layered on top.
type Kind uint8

// The concrete datatypes.
const (
	None Kind = iota // Unset cell. Never a legal evaluation product.

	Null
	Void
	Blank
	Blackhole
	Comma

	Logic
	Integer
	Decimal
	Money
	Pair
	Time
	Date

	Word
	SetWord
	GetWord
	MetaWord
	TheWord

	Tuple
	SetTuple
	Path
	SetPath

	Block
	SetBlock
	GetBlock
	MetaBlock
	Group
	SetGroup
	GetGroup
	MetaGroup

	Text
	Binary
	BitsetKind
	Issue
	Tag
	File
	URL

	Object
	ErrorKind
	ActionKind

	maxKind
)

//nolint:gochecknoglobals
var kindNames = [maxKind]string{
	None: "none", Null: "null", Void: "void", Blank: "blank",
	Blackhole: "blackhole", Comma: "comma",
	Logic: "logic", Integer: "integer", Decimal: "decimal", Money: "money",
	Pair: "pair", Time: "time", Date: "date",
	Word: "word", SetWord: "set-word", GetWord: "get-word", MetaWord: "meta-word",
	TheWord: "the-word",
	Tuple: "tuple", SetTuple: "set-tuple", Path: "path", SetPath: "set-path",
	Block: "block", SetBlock: "set-block", GetBlock: "get-block", MetaBlock: "meta-block",
	Group: "group", SetGroup: "set-group", GetGroup: "get-group", MetaGroup: "meta-group",
	Text: "text", Binary: "binary", BitsetKind: "bitset", Issue: "issue",
	Tag: "tag", File: "file", URL: "url",
	Object: "object", ErrorKind: "error", ActionKind: "action",
}

// String returns the datatype name.
func (k Kind) String() string {
	return kindNames[k]
}

// AnyWordKind returns true for the word family.
func AnyWordKind(k Kind) bool {
	return k == Word || k == SetWord || k == GetWord || k == MetaWord || k == TheWord
}

// AnyArrayKind returns true for kinds whose payload is a cell series.
func AnyArrayKind(k Kind) bool {
	switch k {
	case Block, SetBlock, GetBlock, MetaBlock,
		Group, SetGroup, GetGroup, MetaGroup,
		Tuple, SetTuple, Path, SetPath:
		return true
	}

	return false
}

// AnySequenceKind returns true for the tuple and path families.
func AnySequenceKind(k Kind) bool {
	return k == Tuple || k == SetTuple || k == Path || k == SetPath
}

// Inert returns true for kinds that evaluate to themselves.
func Inert(k Kind) bool {
	switch k {
	case Logic, Integer, Decimal, Money, Pair, Time, Date,
		Block, Text, Binary, BitsetKind, Issue, Tag, File, URL,
		TheWord, Object, ErrorKind:
		return true
	}

	return false
}

// QuasiEligible returns true for the kinds that have quasi and isotope
// forms. The set is small and fixed.
func QuasiEligible(k Kind) bool {
	switch k {
	case Null, Void, Blank, Blackhole, Logic, Word, Block, ErrorKind:
		return true
	}

	return false
}
