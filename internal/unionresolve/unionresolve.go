// Package unionresolve implements spec.md §4.3: resolving every
// UnresolvedUnion placeholder the type checker left behind to either
// Symbol or Union, grounded line-for-line in original_source's
// union_resolver.rs. A placeholder resolves to Symbol only if it casts,
// directly or transitively, to something already known to be Symbol;
// everything else defaults to Union, the safe supertype.
package unionresolve

import (
	"github.com/funvibe/tmc/internal/ast"
	"github.com/funvibe/tmc/internal/typesystem"
)

// Resolve fixes every UnresolvedUnion(0) placeholder in the tree.
func Resolve(e ast.Exp) ast.Exp {
	count := 2 // 0 reserved for Symbol, 1 for Union.
	e = fixIDs(e, &count)

	var casts [][2]int
	collectCasts(e, &casts, map[string]typesystem.Type{}, nil)
	resolved := generateResolved(count, casts)

	return removeUnresolved(e, resolved)
}

func fixIDsInType(t typesystem.Type, count *int) typesystem.Type {
	switch t := t.(type) {
	case typesystem.Function:
		return typesystem.Function{Arg: fixIDsInType(t.Arg, count), Ret: fixIDsInType(t.Ret, count)}
	case typesystem.UnresolvedUnion:
		if t.ID == 0 {
			*count++
			return typesystem.UnresolvedUnion{ID: *count - 1}
		}
		return t
	default:
		return t
	}
}

func fixIDs(e ast.Exp, count *int) ast.Exp {
	annot := ast.Annot{Type: fixIDsInType(e.Annot.Type, count), Loc: e.Annot.Loc}

	var node ast.Node
	switch n := e.Node.(type) {
	case ast.Union:
		node = ast.Union{LHS: fixIDs(n.LHS, count), RHS: fixIDs(n.RHS, count)}
	case ast.Match:
		arms := make([]ast.Arm, 0, len(n.Arms))
		for _, arm := range n.Arms {
			pat := arm.Pat
			if !pat.IsAny {
				pat = ast.Pattern{Union: fixIDs(pat.Union, count)}
			}
			arms = append(arms, ast.Arm{CatchID: arm.CatchID, Pat: pat, Exp: fixIDs(arm.Exp, count)})
		}
		node = ast.Match{Exp: fixIDs(n.Exp, count), Arms: arms}
	case ast.Function:
		node = ast.Function{Arg: n.Arg, Exp: fixIDs(n.Exp, count)}
	case ast.Application:
		node = ast.Application{Func: fixIDs(n.Func, count), Arg: fixIDs(n.Arg, count)}
	default:
		node = e.Node
	}

	return ast.Exp{Node: node, Annot: annot}
}

func collectCastsInType(from, to typesystem.Type, casts *[][2]int) {
	if from == nil || to == nil {
		return
	}
	switch f := from.(type) {
	case typesystem.Function:
		t, ok := to.(typesystem.Function)
		if !ok {
			return
		}
		collectCastsInType(t.Arg, f.Arg, casts)
		collectCastsInType(f.Ret, t.Ret, casts)
	case typesystem.UnresolvedUnion:
		switch to.(type) {
		case typesystem.Symbol:
			*casts = append(*casts, [2]int{f.ID, 0})
		case typesystem.Union:
			*casts = append(*casts, [2]int{f.ID, 1})
		case typesystem.UnresolvedUnion:
			t := to.(typesystem.UnresolvedUnion)
			if t.ID != f.ID {
				*casts = append(*casts, [2]int{f.ID, t.ID})
			}
		}
	case typesystem.Symbol:
		if t, ok := to.(typesystem.UnresolvedUnion); ok {
			*casts = append(*casts, [2]int{0, t.ID})
		}
	case typesystem.Union:
		if t, ok := to.(typesystem.UnresolvedUnion); ok {
			*casts = append(*casts, [2]int{1, t.ID})
		}
	}
}

func collectCasts(e ast.Exp, casts *[][2]int, ids map[string]typesystem.Type, retT typesystem.Type) {
	switch n := e.Node.(type) {
	case ast.Identifier:
		if t, ok := ids[n.Name]; ok {
			collectCastsInType(t, e.Annot.Type, casts)
			collectCastsInType(e.Annot.Type, retT, casts)
		}

	case ast.Symbol:
		collectCastsInType(typesystem.Symbol{}, retT, casts)

	case ast.Union:
		collectCasts(n.LHS, casts, ids, typesystem.Union{})
		collectCasts(n.RHS, casts, ids, typesystem.Union{})
		collectCastsInType(typesystem.Union{}, retT, casts)

	case ast.Match:
		collectCastsInType(e.Annot.Type, retT, casts)
		collectCasts(n.Exp, casts, ids, typesystem.Symbol{})
		for _, arm := range n.Arms {
			if !arm.Pat.IsAny {
				collectCasts(arm.Pat.Union, casts, ids, typesystem.Union{})
			}
			if arm.CatchID != nil {
				next := cloneIDs(ids)
				next[*arm.CatchID] = typesystem.Symbol{}
				collectCasts(arm.Exp, casts, next, e.Annot.Type)
			} else {
				collectCasts(arm.Exp, casts, ids, e.Annot.Type)
			}
		}

	case ast.Function:
		collectCastsInType(e.Annot.Type, retT, casts)
		funcT := e.Annot.Type.(typesystem.Function)
		if _, ok := funcT.Arg.(typesystem.UnresolvedUnion); ok {
			next := cloneIDs(ids)
			next[n.Arg] = funcT.Arg
			collectCasts(n.Exp, casts, next, funcT.Ret)
		} else {
			collectCasts(n.Exp, casts, ids, funcT.Ret)
		}

	case ast.Application:
		funcT := n.Func.Annot.Type.(typesystem.Function)
		collectCastsInType(n.Arg.Annot.Type, funcT.Arg, casts)
		collectCastsInType(funcT.Ret, e.Annot.Type, casts)
		collectCastsInType(e.Annot.Type, retT, casts)
		collectCasts(n.Func, casts, ids, nil)
		collectCasts(n.Arg, casts, ids, nil)
	}
}

func cloneIDs(ids map[string]typesystem.Type) map[string]typesystem.Type {
	next := make(map[string]typesystem.Type, len(ids)+1)
	for k, v := range ids {
		next[k] = v
	}
	return next
}

// generateResolved resolves every placeholder id to Symbol or Union:
// anything that casts, directly or transitively, to something already
// resolved to Symbol becomes Symbol; everything left over becomes Union.
func generateResolved(count int, casts [][2]int) []typesystem.Type {
	types := make([]typesystem.Type, count)
	types[0] = typesystem.Symbol{}
	types[1] = typesystem.Union{}
	for i := 2; i < count; i++ {
		types[i] = typesystem.UnresolvedUnion{ID: 0}
	}

	for {
		changed := false
		for _, c := range casts {
			from, to := c[0], c[1]
			if isUnresolved(types[from]) && isSymbol(types[to]) {
				types[from] = typesystem.Symbol{}
				changed = true
			}
		}
		if !changed {
			break
		}
	}

	for i := 2; i < count; i++ {
		if isUnresolved(types[i]) {
			types[i] = typesystem.Union{}
		}
	}

	return types
}

func isUnresolved(t typesystem.Type) bool {
	u, ok := t.(typesystem.UnresolvedUnion)
	return ok && u.ID == 0
}

func isSymbol(t typesystem.Type) bool {
	_, ok := t.(typesystem.Symbol)
	return ok
}

func removeUnresolvedInType(t typesystem.Type, types []typesystem.Type) typesystem.Type {
	switch t := t.(type) {
	case typesystem.Function:
		return typesystem.Function{Arg: removeUnresolvedInType(t.Arg, types), Ret: removeUnresolvedInType(t.Ret, types)}
	case typesystem.UnresolvedUnion:
		return types[t.ID]
	default:
		return t
	}
}

func removeUnresolved(e ast.Exp, types []typesystem.Type) ast.Exp {
	annot := ast.Annot{Type: removeUnresolvedInType(e.Annot.Type, types), Loc: e.Annot.Loc}

	var node ast.Node
	switch n := e.Node.(type) {
	case ast.Union:
		node = ast.Union{LHS: removeUnresolved(n.LHS, types), RHS: removeUnresolved(n.RHS, types)}
	case ast.Match:
		arms := make([]ast.Arm, 0, len(n.Arms))
		for _, arm := range n.Arms {
			pat := arm.Pat
			if !pat.IsAny {
				pat = ast.Pattern{Union: removeUnresolved(pat.Union, types)}
			}
			arms = append(arms, ast.Arm{CatchID: arm.CatchID, Pat: pat, Exp: removeUnresolved(arm.Exp, types)})
		}
		node = ast.Match{Exp: removeUnresolved(n.Exp, types), Arms: arms}
	case ast.Function:
		node = ast.Function{Arg: n.Arg, Exp: removeUnresolved(n.Exp, types)}
	case ast.Application:
		node = ast.Application{Func: removeUnresolved(n.Func, types), Arg: removeUnresolved(n.Arg, types)}
	default:
		node = e.Node
	}

	return ast.Exp{Node: node, Annot: annot}
}
