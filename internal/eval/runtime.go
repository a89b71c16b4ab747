// Released under an MIT license. See LICENSE.

// Package eval provides lumen's evaluator core: frames, the trampoline,
// the expression stepper, and the action invocation protocol.
package eval

import (
	"github.com/lumenlang/lumen/internal/symbol"
	"github.com/lumenlang/lumen/internal/value"
)

// Runtime is one independent evaluator instance: the symbol table, the
// root (lib) context, the evaluation limits, and the generic dispatch
// registry. Everything the evaluator would otherwise reach for as a
// process-wide global lives here, so multiple runtimes can coexist in one
// process. It is constructed fully initialized before first use; nothing
// here mutates during normal evaluation except context variables.
//
// The type lives in this package rather than a runtime package of its own
// because frames, dispatchers, and generic handlers all need it and it
// needs their types.
type Runtime struct {
	Symbols *symbol.T
	Lib     *value.Context

	// MaxDepth bounds the frame stack. The default is scaled from the
	// process stack rlimit when the embedding caller probes one.
	MaxDepth int

	generics map[value.Kind]map[symbol.ID]Dispatcher
	quoted   map[symbol.ID]Dispatcher
}

// DefaultMaxDepth is used when no stack probe has been done.
const DefaultMaxDepth = 4096

// NewRuntime creates an empty runtime: symbols and lib only. Natives and
// generic tables are installed by the runtime package.
func NewRuntime() *Runtime {
	return &Runtime{
		Symbols:  symbol.New(),
		Lib:      value.NewContext(nil),
		MaxDepth: DefaultMaxDepth,
		generics: map[value.Kind]map[symbol.ID]Dispatcher{},
		quoted:   map[symbol.ID]Dispatcher{},
	}
}

// RegisterGeneric installs the handler for a verb on a datatype.
func (rt *Runtime) RegisterGeneric(k value.Kind, verb symbol.ID, d Dispatcher) {
	table := rt.generics[k]
	if table == nil {
		table = map[symbol.ID]Dispatcher{}
		rt.generics[k] = table
	}

	table[verb] = d
}

// Generic looks up the handler for a verb on a datatype, or nil.
func (rt *Runtime) Generic(k value.Kind, verb symbol.ID) Dispatcher {
	return rt.generics[k][rt.Symbols.Canonical(verb)]
}

// RegisterQuoted installs the handler for a verb on the quoted layer,
// which applies to any value at quote depth one or more regardless of its
// heart.
func (rt *Runtime) RegisterQuoted(verb symbol.ID, d Dispatcher) {
	rt.quoted[verb] = d
}

// QuotedOp looks up the quoted-layer handler for a verb, or nil.
func (rt *Runtime) QuotedOp(verb symbol.ID) Dispatcher {
	return rt.quoted[rt.Symbols.Canonical(verb)]
}
