package simplify

import "github.com/funvibe/tmc/internal/ast"

// ArmMerger merges adjacent arms whose bodies are syntactically
// identical into a single arm covering the union of their patterns,
// grounded on original_source's arm_merger.rs. Identical bodies mean
// the generator would otherwise emit the same transition twice under
// two different symbol guards.
func ArmMerger(e ast.Exp) (ast.Exp, bool) {
	return bottomUp(e, func(e ast.Exp) (ast.Exp, bool) {
		m, ok := e.Node.(ast.Match)
		if !ok || len(m.Arms) < 2 {
			return e, false
		}

		changed := false
		arms := make([]ast.Arm, 0, len(m.Arms))
		for _, arm := range m.Arms {
			if len(arms) == 0 || arm.Pat.IsAny || arm.CatchID != nil {
				arms = append(arms, arm)
				continue
			}
			last := arms[len(arms)-1]
			if last.Pat.IsAny || last.CatchID != nil || !sameExp(last.Exp, arm.Exp) {
				arms = append(arms, arm)
				continue
			}
			lastSyms, ok1 := unionToSymbols(last.Pat.Union)
			armSyms, ok2 := unionToSymbols(arm.Pat.Union)
			if !ok1 || !ok2 {
				arms = append(arms, arm)
				continue
			}
			changed = true
			merged := append(append([]string{}, lastSyms...), armSyms...)
			arms[len(arms)-1] = ast.Arm{Pat: ast.Pattern{Union: symbolsToUnion(merged, last.Pat.Union.Annot)}, Exp: last.Exp}
		}
		if !changed {
			return e, false
		}
		return ast.Exp{Node: ast.Match{Exp: m.Exp, Arms: arms}, Annot: e.Annot}, true
	})
}

func sameExp(a, b ast.Exp) bool {
	switch an := a.Node.(type) {
	case ast.Identifier:
		bn, ok := b.Node.(ast.Identifier)
		return ok && an.Name == bn.Name
	case ast.Symbol:
		bn, ok := b.Node.(ast.Symbol)
		return ok && an.Value == bn.Value && an.Blank == bn.Blank
	case ast.Abort:
		_, ok := b.Node.(ast.Abort)
		return ok
	case ast.Union:
		bn, ok := b.Node.(ast.Union)
		return ok && sameExp(an.LHS, bn.LHS) && sameExp(an.RHS, bn.RHS)
	case ast.Application:
		bn, ok := b.Node.(ast.Application)
		return ok && sameExp(an.Func, bn.Func) && sameExp(an.Arg, bn.Arg)
	case ast.Function:
		bn, ok := b.Node.(ast.Function)
		return ok && an.Arg == bn.Arg && sameExp(an.Exp, bn.Exp)
	case ast.Let:
		bn, ok := b.Node.(ast.Let)
		if !ok || len(an.Bindings) != len(bn.Bindings) {
			return false
		}
		for i := range an.Bindings {
			if an.Bindings[i].Name != bn.Bindings[i].Name || !sameExp(an.Bindings[i].Value, bn.Bindings[i].Value) {
				return false
			}
		}
		return sameExp(an.Body, bn.Body)
	case ast.Match:
		bn, ok := b.Node.(ast.Match)
		if !ok || len(an.Arms) != len(bn.Arms) || !sameExp(an.Exp, bn.Exp) {
			return false
		}
		for i := range an.Arms {
			ai, bi := an.Arms[i], bn.Arms[i]
			if ai.Pat.IsAny != bi.Pat.IsAny {
				return false
			}
			if !ai.Pat.IsAny && !sameExp(ai.Pat.Union, bi.Pat.Union) {
				return false
			}
			if (ai.CatchID == nil) != (bi.CatchID == nil) {
				return false
			}
			if ai.CatchID != nil && *ai.CatchID != *bi.CatchID {
				return false
			}
			if !sameExp(ai.Exp, bi.Exp) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
