// Released under an MIT license. See LICENSE.

// Package runtime assembles a complete lumen instance: symbol table, lib
// context, native actions, and the per-datatype operation tables.
package runtime

import (
	"github.com/lumenlang/lumen/internal/eval"
	"github.com/lumenlang/lumen/internal/symbol"
	"github.com/lumenlang/lumen/internal/types"
	"github.com/lumenlang/lumen/internal/value"
)

// New creates a fully initialized runtime. Multiple instances may coexist
// in one process; nothing here is shared between them.
func New() *eval.Runtime {
	rt := eval.NewRuntime()

	arithmetic(rt)
	relational(rt)
	control(rt)
	core(rt)
	verbs(rt)
	constants(rt)

	types.RegisterAll(rt)

	return rt
}

// constants installs the word-valued fixtures of the lib context.
func constants(rt *eval.Runtime) {
	tbl := rt.Symbols

	fixed := []struct {
		spelling string
		v        value.T
	}{
		{"true", value.TrueCell},
		{"false", value.FalseCell},
		{"yes", value.TrueCell},
		{"no", value.FalseCell},
		{"on", value.TrueCell},
		{"off", value.FalseCell},
		{"null", value.NullCell},
		{"blank", value.BlankCell},
	}

	for _, c := range fixed {
		rt.Lib.Define(tbl, tbl.Intern(c.spelling), c.v)
	}
}

// define installs a native action in the runtime's lib context.
func define(rt *eval.Runtime, spelling string, flags eval.ActionFlag, d eval.Dispatcher, params ...eval.Param) {
	tbl := rt.Symbols

	sym := tbl.Intern(spelling)
	a := eval.NewAction(sym, params, flags, d)

	rt.Lib.Define(tbl, sym, a.Cell())
}

func normal(tbl *symbol.T, name string) eval.Param {
	return eval.Param{Name: tbl.Intern(name), Class: eval.Normal}
}

func hard(tbl *symbol.T, name string) eval.Param {
	return eval.Param{Name: tbl.Intern(name), Class: eval.Hard}
}

func soft(tbl *symbol.T, name string) eval.Param {
	return eval.Param{Name: tbl.Intern(name), Class: eval.Soft}
}

func metaP(tbl *symbol.T, name string) eval.Param {
	return eval.Param{Name: tbl.Intern(name), Class: eval.MetaArg}
}

func output(tbl *symbol.T, name string) eval.Param {
	return eval.Param{Name: tbl.Intern(name), Class: eval.Output}
}

func refine(tbl *symbol.T, name string) eval.Param {
	return eval.Param{Name: tbl.Intern(name), Class: eval.Normal, Refinement: true}
}

func blockOf(v *value.T) bool {
	return v.Plain() && v.Heart() == value.Block
}
