// Package ast defines the expression tree produced by the parser and
// consumed by every later pipeline stage: Exp = (Node, Annot).
//
// The data model follows spec.md §3 exactly: Identifier, Symbol, Abort,
// Union, Match, Let, Function and Application are the only Node variants.
// accept/reject/abort are ordinary identifiers with a fixed Halt type
// (see internal/config), not separate node kinds.
package ast

import (
	"github.com/funvibe/tmc/internal/token"
	"github.com/funvibe/tmc/internal/typesystem"
)

// Annot carries the per-node annotations threaded through the pipeline:
// a type (nil until the type checker runs) and the originating source
// location.
type Annot struct {
	Type typesystem.Type
	Loc  token.Location
}

// Exp is a single AST node paired with its annotation.
type Exp struct {
	Node  Node
	Annot Annot
}

// Node is the sum type of expression shapes. It is implemented by the
// NodeX structs below; a type switch over Exp.Node is the idiomatic way
// to inspect one (no visitor indirection is needed for a tree this
// small).
type Node interface {
	node()
}

// Identifier references a bound variable or a built-in name.
type Identifier struct {
	Name string
}

// Symbol is a literal alphabet symbol, or the blank symbol when Blank is
// true (source syntax '').
type Symbol struct {
	Value string
	Blank bool
}

// Abort represents a branch that can never be reached at runtime, as
// produced by the simplifier; the textual `abort` built-in is parsed as
// an Identifier, not as this node. It type-checks
// against anything (Halt is a subtype of every type) and simplifies away
// wherever it appears as a whole branch.
type Abort struct{}

// Union is the disjunction of two symbol-producing expressions; it
// flattens to an n-ary set of symbols during simplification.
type Union struct {
	LHS, RHS Exp
}

// Arm is one branch of a Match: a pattern (Pat) guarding Exp, with an
// optional name (CatchID) bound to the matched symbol inside Exp.
type Arm struct {
	CatchID *string
	Pat     Pattern
	Exp     Exp
}

// Pattern is either a concrete union of symbols or the wildcard `any`.
type Pattern struct {
	IsAny bool
	Union Exp // valid when !IsAny; always type Union/Symbol-shaped
}

// Match scrutinizes a symbol-typed expression against an ordered list of
// arms; the first matching arm's body is taken.
type Match struct {
	Exp  Exp
	Arms []Arm
}

// Binding is one `name = value` clause of a Let.
type Binding struct {
	Name  string
	Value Exp
}

// Let evaluates its bindings left to right, then its body in the
// extended environment. Matches spec.md §3's `Let{bindings, body}` shape
// exactly (not original_source's alternate 3-tuple encoding).
type Let struct {
	Bindings []Binding
	Body     Exp
}

// Function introduces a single argument binding over its body.
type Function struct {
	Arg string
	Exp Exp
}

// Application applies Func to Arg.
type Application struct {
	Func, Arg Exp
}

func (Identifier) node()  {}
func (Symbol) node()      {}
func (Abort) node()       {}
func (Union) node()       {}
func (Match) node()       {}
func (Let) node()         {}
func (Function) node()    {}
func (Application) node() {}

// New wraps a Node with its source location, leaving the type unset.
func New(n Node, loc token.Location) Exp {
	return Exp{Node: n, Annot: Annot{Loc: loc}}
}
