package simplify

import "github.com/funvibe/tmc/internal/ast"

// CaptureRemover replaces every match arm that binds a catch_id with
// one arm per symbol of its pattern, each without a catch_id and with
// the catch_id substituted by that literal symbol in the arm body,
// grounded on original_source's capture_remover.rs. Arms without a
// catch_id are left as they are. Once split, no arm body still
// depends on a symbol bound at runtime — every catch_id reference has
// become a compile-time-known Symbol, which the generator requires.
func CaptureRemover(e ast.Exp) (ast.Exp, bool) {
	return bottomUp(e, func(e ast.Exp) (ast.Exp, bool) {
		m, ok := e.Node.(ast.Match)
		if !ok {
			return e, false
		}

		changed := false
		arms := make([]ast.Arm, 0, len(m.Arms))
		for _, arm := range m.Arms {
			if arm.Pat.IsAny || arm.CatchID == nil {
				arms = append(arms, arm)
				continue
			}
			syms, ok := unionToSymbols(arm.Pat.Union)
			if !ok {
				arms = append(arms, arm)
				continue
			}

			changed = true
			for _, s := range syms {
				sym := ast.Exp{Node: ast.Symbol{Value: s, Blank: s == ""}, Annot: arm.Exp.Annot}
				arms = append(arms, ast.Arm{
					CatchID: nil,
					Pat:     ast.Pattern{Union: sym},
					Exp:     substitute(arm.Exp, *arm.CatchID, sym),
				})
			}
		}

		if !changed {
			return e, false
		}
		return ast.Exp{Node: ast.Match{Exp: m.Exp, Arms: arms}, Annot: e.Annot}, true
	})
}
