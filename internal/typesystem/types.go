// Package typesystem implements the tape-language's type algebra and the
// cast-graph solver used by the type checker (spec.md §4.1, §9). The
// richer Tape{Owned} + graph/SCC design is used throughout, per spec.md's
// explicit resolution of its Open Question over the simpler direct-
// substitution table an earlier design considered.
package typesystem

import "fmt"

// Type is any member of the tape language's type algebra.
type Type interface {
	String() string
	typ()
}

// Symbol is the type of a single alphabet symbol.
type Symbol struct{}

// Union is the type of "a symbol from some alphabet", produced by
// Union expressions and match patterns before the symbol/union ambiguity
// is resolved.
type Union struct{}

// Tape is the type of the machine tape. Owned tapes may be consumed
// (passed into set/next/prev/recursion); a borrowed tape (Owned==false)
// may only be read via get. Owned ≤ Tape{Owned:false}.
type Tape struct{ Owned bool }

// Function is an arrow type; contravariant in Arg, covariant in Ret.
type Function struct{ Arg, Ret Type }

// Halt is the bottom type of `abort`/`accept`/`reject`: castable to
// anything, since control never continues past it.
type Halt struct{}

// Var is an as-yet-unresolved type graph node, valid only during
// solving; it never appears in a finalized annotation.
type Var struct{ ID int }

// UnresolvedUnion is a placeholder for a type the graph solver could not
// pin to Symbol or Union from local evidence alone; ID 0 is the sentinel
// value produced by the solver, fixed up to a unique positive ID by the
// union resolver (internal/unionresolve) before being decided.
type UnresolvedUnion struct{ ID int }

func (Symbol) typ()          {}
func (Union) typ()           {}
func (Tape) typ()            {}
func (Function) typ()        {}
func (Halt) typ()            {}
func (Var) typ()             {}
func (UnresolvedUnion) typ() {}

func (Symbol) String() string { return "Symbol" }
func (Union) String() string  { return "Union" }
func (t Tape) String() string {
	if t.Owned {
		return "Tape"
	}
	return "&Tape"
}
func (f Function) String() string { return fmt.Sprintf("(%s -> %s)", f.Arg, f.Ret) }
func (Halt) String() string       { return "Halt" }
func (v Var) String() string      { return fmt.Sprintf("?%d", v.ID) }
func (u UnresolvedUnion) String() string {
	if u.ID == 0 {
		return "Union?"
	}
	return fmt.Sprintf("Union?%d", u.ID)
}

// IsUnresolvedNonUnion reports whether t still contains a Var or a
// structurally-unresolved component — used by the checker to reject a
// program whose types could not be pinned down at all. UnresolvedUnion
// is deliberately NOT reported here: it is a legal, final type of the
// type-checking phase, resolved later by internal/unionresolve.
func IsUnresolvedNonUnion(t Type) bool {
	switch t := t.(type) {
	case Var:
		return true
	case Function:
		return IsUnresolvedNonUnion(t.Arg) || IsUnresolvedNonUnion(t.Ret)
	default:
		return false
	}
}

// CanCast reports whether a value of type `from` may be used where `to`
// is expected, per spec.md §3's subtyping rules: Symbol ≤ Union,
// Tape(owned) ≤ Tape(borrow), Halt ≤ anything, Function is contravariant
// in its argument and covariant in its result.
func CanCast(from, to Type) bool {
	if _, ok := from.(Halt); ok {
		return true
	}
	switch f := from.(type) {
	case Symbol:
		switch to.(type) {
		case Symbol, Union:
			return true
		}
		if _, ok := to.(UnresolvedUnion); ok {
			return true
		}
		return false
	case Union:
		switch to.(type) {
		case Union:
			return true
		}
		if _, ok := to.(UnresolvedUnion); ok {
			return true
		}
		return false
	case UnresolvedUnion:
		switch to.(type) {
		case Symbol, Union, UnresolvedUnion:
			return true
		}
		return false
	case Tape:
		t, ok := to.(Tape)
		if !ok {
			return false
		}
		// owned (true) may be used as borrowed (false); borrowed may
		// not be used where owned is required.
		return f.Owned || !t.Owned
	case Function:
		t, ok := to.(Function)
		if !ok {
			return false
		}
		return CanCast(t.Arg, f.Arg) && CanCast(f.Ret, t.Ret)
	case Halt:
		return true
	default:
		return false
	}
}

// Equal reports structural equality, used to detect conflicting bindings
// during solving.
func Equal(a, b Type) bool {
	switch a := a.(type) {
	case Symbol:
		_, ok := b.(Symbol)
		return ok
	case Union:
		_, ok := b.(Union)
		return ok
	case Halt:
		_, ok := b.(Halt)
		return ok
	case Tape:
		bt, ok := b.(Tape)
		return ok && bt.Owned == a.Owned
	case Function:
		bf, ok := b.(Function)
		return ok && Equal(a.Arg, bf.Arg) && Equal(a.Ret, bf.Ret)
	case Var:
		bv, ok := b.(Var)
		return ok && bv.ID == a.ID
	case UnresolvedUnion:
		bu, ok := b.(UnresolvedUnion)
		return ok && bu.ID == a.ID
	default:
		return false
	}
}
