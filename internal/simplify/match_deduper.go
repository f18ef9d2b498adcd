package simplify

import (
	"github.com/funvibe/tmc/internal/ast"
	"github.com/funvibe/tmc/internal/config"
	"github.com/funvibe/tmc/internal/typesystem"
)

// MatchDeduper resolves nested matches and writes against a tape whose
// current symbol a surrounding arm has already pinned down, grounded
// on original_source's match_deduper.rs `dedup_matches`: once an outer
// `match t { s > body }` arm fixes t's current symbol to s, any
// further match on t inside body already knows the answer, and a
// `set s t` that writes back the very symbol just read is a no-op.
// This only fires post-type-check, once a Match's scrutinee identifier
// actually carries a resolved Tape annotation — pre-type it is a no-op.
func MatchDeduper(e ast.Exp) (ast.Exp, bool) {
	return bottomUp(e, func(e ast.Exp) (ast.Exp, bool) {
		m, ok := e.Node.(ast.Match)
		if !ok {
			return e, false
		}
		id, ok := m.Exp.Node.(ast.Identifier)
		if !ok || !isTapeType(m.Exp.Annot.Type) {
			return e, false
		}

		changed := false
		arms := make([]ast.Arm, len(m.Arms))
		for i, arm := range m.Arms {
			var known *string
			if !arm.Pat.IsAny {
				if sym, ok := arm.Pat.Union.Node.(ast.Symbol); ok {
					v := sym.Value
					known = &v
				}
			}
			body, armChanged := dedupMatchesIn(arm.Exp, id.Name, known)
			if armChanged {
				changed = true
			}
			arms[i] = ast.Arm{CatchID: arm.CatchID, Pat: arm.Pat, Exp: body}
		}
		if !changed {
			return e, false
		}
		return ast.Exp{Node: ast.Match{Exp: m.Exp, Arms: arms}, Annot: e.Annot}, true
	})
}

// dedupMatchesIn rewrites every further match/write against the tape
// identifier id inside e, given that its current symbol is already
// known to be *known (nil if not pinned down), reporting whether
// anything changed. It stops descending into a nested binder that
// rebinds id, since that shadows the fact being propagated.
func dedupMatchesIn(e ast.Exp, id string, known *string) (ast.Exp, bool) {
	switch n := e.Node.(type) {
	case ast.Match:
		scrutinee := n.Exp
		changed := false
		if sc, ok := scrutinee.Node.(ast.Identifier); ok && sc.Name == id && known != nil {
			scrutinee = ast.Exp{Node: ast.Symbol{Value: *known, Blank: *known == ""}, Annot: scrutinee.Annot}
			changed = true
		}

		arms := make([]ast.Arm, 0, len(n.Arms))
		for _, arm := range n.Arms {
			if arm.CatchID != nil && *arm.CatchID == id {
				arms = append(arms, arm)
				continue
			}
			pat := arm.Pat
			if !pat.IsAny {
				p, c := dedupMatchesIn(pat.Union, id, known)
				pat = ast.Pattern{Union: p}
				changed = changed || c
			}
			body, c := dedupMatchesIn(arm.Exp, id, known)
			changed = changed || c
			arms = append(arms, ast.Arm{CatchID: arm.CatchID, Pat: pat, Exp: body})
		}

		if !changed {
			return e, false
		}
		return ast.Exp{Node: ast.Match{Exp: scrutinee, Arms: arms}, Annot: e.Annot}, true

	case ast.Function:
		if n.Arg == id {
			return e, false
		}
		body, changed := dedupMatchesIn(n.Exp, id, known)
		if !changed {
			return e, false
		}
		return ast.Exp{Node: ast.Function{Arg: n.Arg, Exp: body}, Annot: e.Annot}, true

	case ast.Application:
		if known != nil && isRedundantSet(n, id, *known) {
			return ast.Exp{Node: ast.Identifier{Name: id}, Annot: n.Arg.Annot}, true
		}
		fn, fc := dedupMatchesIn(n.Func, id, known)
		arg, ac := dedupMatchesIn(n.Arg, id, known)
		if !fc && !ac {
			return e, false
		}
		return ast.Exp{Node: ast.Application{Func: fn, Arg: arg}, Annot: e.Annot}, true

	case ast.Union:
		lhs, lc := dedupMatchesIn(n.LHS, id, known)
		rhs, rc := dedupMatchesIn(n.RHS, id, known)
		if !lc && !rc {
			return e, false
		}
		return ast.Exp{Node: ast.Union{LHS: lhs, RHS: rhs}, Annot: e.Annot}, true

	default:
		return e, false
	}
}

// isRedundantSet reports whether app is `set sym id` where sym equals
// the tape's already-known current symbol, a write that leaves the
// tape unchanged.
func isRedundantSet(app ast.Application, id, known string) bool {
	argID, ok := app.Arg.Node.(ast.Identifier)
	if !ok || argID.Name != id {
		return false
	}
	inner, ok := app.Func.Node.(ast.Application)
	if !ok {
		return false
	}
	fn, ok := inner.Func.Node.(ast.Identifier)
	if !ok || fn.Name != config.BuiltinSet {
		return false
	}
	sym, ok := inner.Arg.Node.(ast.Symbol)
	if !ok {
		return false
	}
	return sym.Value == known && sym.Blank == (known == "")
}

func isTapeType(t typesystem.Type) bool {
	_, ok := t.(typesystem.Tape)
	return ok
}
