package simplify

import "github.com/funvibe/tmc/internal/ast"

// AnyRemover replaces the `any` wildcard pattern in a match arm with an
// explicit union of every alphabet symbol not already covered by an
// earlier arm in the same match, grounded on original_source's
// any_remover.rs. Downstream passes (matcher, pat-dedup) only need to
// reason about concrete symbol sets, not a separate wildcard case.
func AnyRemover(alphabet []string) Pass {
	return func(e ast.Exp) (ast.Exp, bool) {
		return bottomUp(e, func(e ast.Exp) (ast.Exp, bool) {
			m, ok := e.Node.(ast.Match)
			if !ok {
				return e, false
			}

			changed := false
			covered := map[string]bool{}
			arms := make([]ast.Arm, 0, len(m.Arms))
			for _, arm := range m.Arms {
				if arm.Pat.IsAny {
					remaining := make([]string, 0, len(alphabet))
					for _, s := range alphabet {
						if !covered[s] {
							remaining = append(remaining, s)
						}
					}
					arm = ast.Arm{CatchID: arm.CatchID, Pat: ast.Pattern{Union: symbolsToUnion(remaining, arm.Exp.Annot)}, Exp: arm.Exp}
					changed = true
				}
				if syms, ok := unionToSymbols(arm.Pat.Union); ok {
					for _, s := range syms {
						covered[s] = true
					}
				}
				arms = append(arms, arm)
			}

			if !changed {
				return e, false
			}
			return ast.Exp{Node: ast.Match{Exp: m.Exp, Arms: arms}, Annot: e.Annot}, true
		})
	}
}
