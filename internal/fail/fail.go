// Released under an MIT license. See LICENSE.

// Package fail provides lumen's structured error values.
//
// Failures are raised with panic and recovered by the trampoline at the
// step boundary, where they become the failure state of the current frame.
// The evaluator never prints or logs; whoever drives the trampoline decides
// what to do with the error value it surfaces.
package fail

import "fmt"

// Kind classifies a failure.
type Kind uint8

// The failure taxonomy.
const (
	Internal Kind = iota
	IllegalLiteral
	Access       // Unbound word, or isotope seen through a plain access.
	BadTarget    // Malformed assignment target.
	TypeMismatch // Argument or return type predicate not satisfied.
	Arity        // Missing argument, duplicate name, bad enfix interaction.
	Overflow     // Evaluation depth guard tripped.
	NoOperation  // Verb not handled for a datatype.
	UnhandledThrow
)

//nolint:gochecknoglobals
var kindNames = map[Kind]string{
	Internal:       "internal",
	IllegalLiteral: "illegal-literal",
	Access:         "access",
	BadTarget:      "bad-target",
	TypeMismatch:   "type-mismatch",
	Arity:          "arity",
	Overflow:       "overflow",
	NoOperation:    "no-operation",
	UnhandledThrow: "unhandled-throw",
}

// T is a lumen error value.
type T struct {
	Kind    Kind
	Message string
	Near    string // Molded form of the value being evaluated, if known.
}

// New creates an error value.
func New(k Kind, format string, args ...interface{}) *T {
	return &T{Kind: k, Message: fmt.Sprintf(format, args...)}
}

// Raise panics with a new error value. The trampoline recovers it.
func Raise(k Kind, format string, args ...interface{}) {
	panic(New(k, format, args...))
}

func (e *T) Error() string {
	s := "** " + kindNames[e.Kind] + " error: " + e.Message

	if e.Near != "" {
		s += "\n** near: " + e.Near
	}

	return s
}

// In attaches location context to e and returns it.
func (e *T) In(near string) *T {
	if e.Near == "" {
		e.Near = near
	}

	return e
}

// From converts a recovered panic value into an error value.
func From(r interface{}) *T {
	switch r := r.(type) {
	case *T:
		return r
	case error:
		return &T{Kind: Internal, Message: r.Error()}
	default:
		return &T{Kind: Internal, Message: fmt.Sprintf("%v", r)}
	}
}
