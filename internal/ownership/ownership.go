// Package ownership implements the linear tape-usage checker from
// spec.md §4.2, grounded in original_source's ownership_checker.rs. A
// tape-typed identifier may be used (passed where a Tape is expected)
// at most once along any single control-flow path; get's implicit
// borrow is the one exception, since it reads without consuming.
package ownership

import (
	"github.com/funvibe/tmc/internal/ast"
	"github.com/funvibe/tmc/internal/diagnostics"
	"github.com/funvibe/tmc/internal/typesystem"
)

// Check walks the fully type-annotated tree and reports the first
// linearity violation found.
func Check(e ast.Exp) *diagnostics.CompileError {
	return traverse(e, map[string]bool{}, false)
}

func isTape(t typesystem.Type) bool {
	_, ok := t.(typesystem.Tape)
	return ok
}

func traverse(e ast.Exp, consumed map[string]bool, isRef bool) *diagnostics.CompileError {
	switch n := e.Node.(type) {
	case ast.Identifier:
		if isTape(e.Annot.Type) {
			if consumed[n.Name] {
				return diagnostics.New(diagnostics.PhaseOwnership, diagnostics.ErrOwnershipUseAfterMove, e.Annot.Loc, n.Name)
			}
			if !isRef {
				consumed[n.Name] = true
			}
		}

	case ast.Match:
		if err := traverse(n.Exp, consumed, false); err != nil {
			return err
		}
		initial := cloneSet(consumed)
		for _, arm := range n.Arms {
			armSet := cloneSet(initial)
			if arm.CatchID != nil {
				delete(armSet, *arm.CatchID)
			}
			if err := traverse(arm.Exp, armSet, isRef); err != nil {
				return err
			}
			for k := range armSet {
				consumed[k] = true
			}
		}

	case ast.Function:
		delete(consumed, n.Arg)
		if err := traverse(n.Exp, consumed, false); err != nil {
			return err
		}

	case ast.Application:
		funcT, ok := n.Func.Annot.Type.(typesystem.Function)
		if !ok {
			return diagnostics.New(diagnostics.PhaseOwnership, diagnostics.ErrTypeUnresolved, n.Func.Annot.Loc)
		}

		switch {
		case isTape(funcT.Arg) && typesystem.Equal(funcT.Ret, typesystem.Symbol{}):
			if err := traverse(n.Func, consumed, false); err != nil {
				return err
			}
			if err := traverse(n.Arg, consumed, true); err != nil {
				return err
			}
		case isTape(funcT.Arg) && !isTape(funcT.Ret):
			return diagnostics.New(diagnostics.PhaseOwnership, diagnostics.ErrOwnershipBorrowEscape, n.Func.Annot.Loc, funcT.Ret.String())
		default:
			if err := traverse(n.Func, consumed, false); err != nil {
				return err
			}
			if err := traverse(n.Arg, consumed, false); err != nil {
				return err
			}
		}
	}

	return nil
}

func cloneSet(s map[string]bool) map[string]bool {
	out := make(map[string]bool, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}
