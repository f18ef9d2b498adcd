package simplify

import "github.com/funvibe/tmc/internal/ast"

// Matcher constant-folds a match over a known literal symbol and
// propagates Abort, grounded on original_source's matcher.rs
// `match_const` merged with abort_spreader.rs `spread_aborts`, per
// spec.md's Invariant 6: a match whose scrutinee is already Abort
// becomes Abort outright; an arm whose own pattern degenerated to
// Abort (pat-dedup/any-remover produce this when a catch-all's
// remaining symbol set empties out) can never fire and is dropped,
// and once no arm is left the whole match becomes Abort; and if the
// scrutinee is a literal Symbol, the arm covering it is selected
// directly, or the match becomes Abort if none does.
func Matcher(e ast.Exp) (ast.Exp, bool) {
	return bottomUp(e, func(e ast.Exp) (ast.Exp, bool) {
		m, ok := e.Node.(ast.Match)
		if !ok {
			return e, false
		}

		if _, isAbort := m.Exp.Node.(ast.Abort); isAbort {
			return ast.Exp{Node: ast.Abort{}, Annot: e.Annot}, true
		}

		changed := false
		arms := make([]ast.Arm, 0, len(m.Arms))
		for _, arm := range m.Arms {
			if !arm.Pat.IsAny {
				if _, isAbort := arm.Pat.Union.Node.(ast.Abort); isAbort {
					changed = true
					continue
				}
			}
			arms = append(arms, arm)
		}
		if len(arms) == 0 {
			return ast.Exp{Node: ast.Abort{}, Annot: e.Annot}, true
		}

		sym, ok := m.Exp.Node.(ast.Symbol)
		if !ok {
			if !changed {
				return e, false
			}
			return ast.Exp{Node: ast.Match{Exp: m.Exp, Arms: arms}, Annot: e.Annot}, true
		}

		for _, arm := range arms {
			if arm.Pat.IsAny {
				return bindCatch(arm, sym), true
			}
			syms, ok := unionToSymbols(arm.Pat.Union)
			if !ok {
				continue
			}
			for _, s := range syms {
				if s == sym.Value && sym.Blank == (s == "") {
					return bindCatch(arm, sym), true
				}
			}
		}
		return ast.Exp{Node: ast.Abort{}, Annot: e.Annot}, true
	})
}

func bindCatch(arm ast.Arm, sym ast.Symbol) ast.Exp {
	if arm.CatchID == nil {
		return arm.Exp
	}
	return substitute(arm.Exp, *arm.CatchID, ast.Exp{Node: sym, Annot: arm.Exp.Annot})
}
