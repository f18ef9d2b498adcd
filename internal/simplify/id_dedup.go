package simplify

import "github.com/funvibe/tmc/internal/ast"

// IDDedup alpha-renames shadowed binders so every identifier bound in
// the tree is lexically unique, grounded on original_source's
// id_dedup.rs `dedup_ids`: the first binder to introduce a name keeps
// it, and every later binder that shadows an already-bound name is
// renamed by prepending `_` (repeated once per additional nesting
// level of shadowing). This has to run before Applier ever
// beta-reduces: substitute (simplify.go:114) is not capture-avoiding —
// it stops at a binder reusing the substituted name but never renames
// it — so a program that reuses a binder name, such as a `Y (self: t:
// …)` body whose inner `t` shadows an outer `t`, would otherwise
// capture a free variable during reduction and generate a wrong
// machine.
func IDDedup(e ast.Exp) (ast.Exp, bool) {
	changed := false
	out := dedupIDs(e, map[string]string{}, &changed)
	if !changed {
		return e, false
	}
	return out, true
}

func dedupIDs(e ast.Exp, renames map[string]string, changed *bool) ast.Exp {
	switch n := e.Node.(type) {
	case ast.Identifier:
		return ast.Exp{Node: ast.Identifier{Name: lookupID(renames, n.Name)}, Annot: e.Annot}

	case ast.Union:
		return ast.Exp{Node: ast.Union{
			LHS: dedupIDs(n.LHS, renames, changed),
			RHS: dedupIDs(n.RHS, renames, changed),
		}, Annot: e.Annot}

	case ast.Match:
		exp := dedupIDs(n.Exp, renames, changed)
		arms := make([]ast.Arm, len(n.Arms))
		for i, arm := range n.Arms {
			pat := arm.Pat
			if !pat.IsAny {
				pat = ast.Pattern{Union: dedupIDs(pat.Union, renames, changed)}
			}

			armRenames := cloneRenames(renames)
			catchID := arm.CatchID
			if catchID != nil {
				renamed := pushID(armRenames, *catchID, changed)
				catchID = &renamed
			}

			arms[i] = ast.Arm{CatchID: catchID, Pat: pat, Exp: dedupIDs(arm.Exp, armRenames, changed)}
		}
		return ast.Exp{Node: ast.Match{Exp: exp, Arms: arms}, Annot: e.Annot}

	case ast.Function:
		argRenames := cloneRenames(renames)
		arg := pushID(argRenames, n.Arg, changed)
		return ast.Exp{Node: ast.Function{Arg: arg, Exp: dedupIDs(n.Exp, argRenames, changed)}, Annot: e.Annot}

	case ast.Application:
		return ast.Exp{Node: ast.Application{
			Func: dedupIDs(n.Func, renames, changed),
			Arg:  dedupIDs(n.Arg, renames, changed),
		}, Annot: e.Annot}

	default:
		return e
	}
}

func cloneRenames(renames map[string]string) map[string]string {
	out := make(map[string]string, len(renames)+1)
	for k, v := range renames {
		out[k] = v
	}
	return out
}

// pushID records a new binder for id, renaming it with a leading `_`
// if id already names an enclosing binder.
func pushID(renames map[string]string, id string, changed *bool) string {
	if existing, ok := renames[id]; ok {
		renamed := "_" + existing
		renames[id] = renamed
		*changed = true
		return renamed
	}
	renames[id] = id
	return id
}

// lookupID resolves id to its current rename, or itself if unbound.
func lookupID(renames map[string]string, id string) string {
	if renamed, ok := renames[id]; ok {
		return renamed
	}
	return id
}
