package simplify

import "github.com/funvibe/tmc/internal/ast"

// PatDedup removes every pattern symbol already covered earlier in the
// same match, grounded on original_source's pat_dedup.rs: `'A' | 'A' |
// 'B'` collapses to `'A' | 'B'`, and in `match e { 'A' > x, 'A' | 'B' >
// y }` the second arm keeps only 'B', since the first matching arm wins.
// An arm left with no symbol gets an Abort pattern, which Matcher drops.
// Repetition arises naturally once earlier passes substitute
// identifiers into union patterns and can no longer tell the duplicates
// apart syntactically.
func PatDedup(e ast.Exp) (ast.Exp, bool) {
	return bottomUp(e, func(e ast.Exp) (ast.Exp, bool) {
		m, ok := e.Node.(ast.Match)
		if !ok {
			return e, false
		}

		changed := false
		seen := map[string]bool{}
		arms := make([]ast.Arm, len(m.Arms))
		for i, arm := range m.Arms {
			arms[i] = arm
			if arm.Pat.IsAny {
				continue
			}
			syms, ok := unionToSymbols(arm.Pat.Union)
			if !ok {
				continue
			}
			deduped := make([]string, 0, len(syms))
			for _, s := range syms {
				if seen[s] {
					continue
				}
				seen[s] = true
				deduped = append(deduped, s)
			}
			if len(deduped) == len(syms) {
				continue
			}
			changed = true
			arms[i] = ast.Arm{CatchID: arm.CatchID, Pat: ast.Pattern{Union: symbolsToUnion(deduped, arm.Pat.Union.Annot)}, Exp: arm.Exp}
		}
		if !changed {
			return e, false
		}
		return ast.Exp{Node: ast.Match{Exp: m.Exp, Arms: arms}, Annot: e.Annot}, true
	})
}
