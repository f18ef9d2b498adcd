package simplify

import "github.com/funvibe/tmc/internal/ast"

// MatchMerger folds a match over a match into a single flat match,
// grounded on original_source's match_merger.rs:
//
//	match (match e { qi > si }) { pj > tj }  ==>  match e { qi' > tj }
//
// where qi' restricts qi to the letters whose inner result si lies in
// some outer arm pj's symbol set, and the body carried forward is that
// outer arm's tj. This is what collapses the `match t {sym > sym}`
// shape get-remover produces back down into a single match directly on
// the tape identifier, which the generator requires.
func MatchMerger(e ast.Exp) (ast.Exp, bool) {
	return bottomUp(e, func(e ast.Exp) (ast.Exp, bool) {
		outer, ok := e.Node.(ast.Match)
		if !ok {
			return e, false
		}
		inner, ok := outer.Exp.Node.(ast.Match)
		if !ok {
			return e, false
		}

		for _, arm := range outer.Arms {
			if arm.CatchID != nil || arm.Pat.IsAny {
				return e, false
			}
			if _, ok := unionToSymbols(arm.Pat.Union); !ok {
				return e, false
			}
		}
		for _, arm := range inner.Arms {
			if arm.CatchID != nil || arm.Pat.IsAny {
				return e, false
			}
			if _, ok := unionToSymbols(arm.Exp); !ok {
				return e, false
			}
		}

		arms := make([]ast.Arm, 0, len(outer.Arms))
		for _, outerArm := range outer.Arms {
			outerSyms, _ := unionToSymbols(outerArm.Pat.Union)
			outerSet := make(map[string]bool, len(outerSyms))
			for _, s := range outerSyms {
				outerSet[s] = true
			}

			var merged []string
			for _, innerArm := range inner.Arms {
				innerPatSyms, _ := unionToSymbols(innerArm.Pat.Union)
				innerResultSyms, _ := unionToSymbols(innerArm.Exp)
				reaches := false
				for _, rs := range innerResultSyms {
					if outerSet[rs] {
						reaches = true
						break
					}
				}
				if reaches {
					merged = append(merged, innerPatSyms...)
				}
			}
			if len(merged) == 0 {
				continue
			}
			arms = append(arms, ast.Arm{Pat: ast.Pattern{Union: symbolsToUnion(merged, outerArm.Pat.Union.Annot)}, Exp: outerArm.Exp})
		}

		return ast.Exp{Node: ast.Match{Exp: inner.Exp, Arms: arms}, Annot: e.Annot}, true
	})
}
