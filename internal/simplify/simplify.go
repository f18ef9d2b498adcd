// Package simplify implements spec.md §4.4's AST simplifier: thirteen
// independent, pure rewrites, each grounded in the
// corresponding file under original_source/src/simplifier/ (see
// DESIGN.md's "Simplifier pass mapping"), driven to a whole-pipeline
// fixpoint. Every pass has the shape `func(ast.Exp) (ast.Exp, bool)`,
// the changed flag reporting whether it rewrote anything; Run loops the
// full list until a whole sweep over it changes nothing.
package simplify

import "github.com/funvibe/tmc/internal/ast"

// Pass is one rewrite rule.
type Pass func(ast.Exp) (ast.Exp, bool)

// Config carries the declared alphabet, which any-removal and get-removal
// expand over. Only the declared symbols are used: the blank symbol and
// literals named in the program are not added to it.
type Config struct {
	Alphabet []string
}

// Run drives every pass from the ordered list to a pipeline-wide
// fixpoint, matching spec.md §5's load-bearing convergence order.
func Run(e ast.Exp, cfg Config) ast.Exp {
	passes := []Pass{
		LetRemover,
		AnyRemover(cfg.Alphabet),
		TrivialRemover,
		IDDedup,
		Applier,
		CaptureRemover,
		MatchMover,
		Matcher,
		PatDedup,
		MatchMerger,
		GetRemover(cfg.Alphabet),
		MatchDeduper,
		ArmMerger,
	}

	for {
		changedAny := false
		for _, p := range passes {
			next, changed := p(e)
			if changed {
				e = next
				changedAny = true
			}
		}
		if !changedAny {
			return e
		}
	}
}

// freeVars collects the set of free identifier names in e.
func freeVars(e ast.Exp) map[string]bool {
	fv := map[string]bool{}
	collectFreeVars(e, fv)
	return fv
}

func collectFreeVars(e ast.Exp, fv map[string]bool) {
	switch n := e.Node.(type) {
	case ast.Identifier:
		fv[n.Name] = true
	case ast.Union:
		collectFreeVars(n.LHS, fv)
		collectFreeVars(n.RHS, fv)
	case ast.Match:
		collectFreeVars(n.Exp, fv)
		for _, arm := range n.Arms {
			if !arm.Pat.IsAny {
				collectFreeVars(arm.Pat.Union, fv)
			}
			armFV := map[string]bool{}
			collectFreeVars(arm.Exp, armFV)
			if arm.CatchID != nil {
				delete(armFV, *arm.CatchID)
			}
			for k := range armFV {
				fv[k] = true
			}
		}
	case ast.Let:
		bodyFV := map[string]bool{}
		collectFreeVars(n.Body, bodyFV)
		bound := map[string]bool{}
		for _, b := range n.Bindings {
			bound[b.Name] = true
			collectFreeVars(b.Value, fv)
		}
		for k := range bodyFV {
			if !bound[k] {
				fv[k] = true
			}
		}
	case ast.Function:
		bodyFV := map[string]bool{}
		collectFreeVars(n.Exp, bodyFV)
		for k := range bodyFV {
			if k != n.Arg {
				fv[k] = true
			}
		}
	case ast.Application:
		collectFreeVars(n.Func, fv)
		collectFreeVars(n.Arg, fv)
	}
}

// substitute replaces every free occurrence of name with value in e,
// respecting binders (Function args, Let-bound names, match catch ids).
func substitute(e ast.Exp, name string, value ast.Exp) ast.Exp {
	switch n := e.Node.(type) {
	case ast.Identifier:
		if n.Name == name {
			return value
		}
		return e

	case ast.Symbol, ast.Abort:
		return e

	case ast.Union:
		return ast.Exp{Node: ast.Union{LHS: substitute(n.LHS, name, value), RHS: substitute(n.RHS, name, value)}, Annot: e.Annot}

	case ast.Match:
		arms := make([]ast.Arm, 0, len(n.Arms))
		for _, arm := range n.Arms {
			pat := arm.Pat
			if !pat.IsAny {
				pat = ast.Pattern{Union: substitute(pat.Union, name, value)}
			}
			body := arm.Exp
			if arm.CatchID == nil || *arm.CatchID != name {
				body = substitute(arm.Exp, name, value)
			}
			arms = append(arms, ast.Arm{CatchID: arm.CatchID, Pat: pat, Exp: body})
		}
		return ast.Exp{Node: ast.Match{Exp: substitute(n.Exp, name, value), Arms: arms}, Annot: e.Annot}

	case ast.Let:
		bindings := make([]ast.Binding, 0, len(n.Bindings))
		shadowed := false
		for _, b := range n.Bindings {
			bv := b.Value
			if !shadowed {
				bv = substitute(b.Value, name, value)
			}
			bindings = append(bindings, ast.Binding{Name: b.Name, Value: bv})
			if b.Name == name {
				shadowed = true
			}
		}
		body := n.Body
		if !shadowed {
			body = substitute(n.Body, name, value)
		}
		return ast.Exp{Node: ast.Let{Bindings: bindings, Body: body}, Annot: e.Annot}

	case ast.Function:
		if n.Arg == name {
			return e
		}
		return ast.Exp{Node: ast.Function{Arg: n.Arg, Exp: substitute(n.Exp, name, value)}, Annot: e.Annot}

	case ast.Application:
		return ast.Exp{Node: ast.Application{Func: substitute(n.Func, name, value), Arg: substitute(n.Arg, name, value)}, Annot: e.Annot}
	}
	return e
}

// unionToSymbols flattens a Union/Symbol tree into its symbol set.
func unionToSymbols(e ast.Exp) ([]string, bool) {
	switch n := e.Node.(type) {
	case ast.Symbol:
		if n.Blank {
			return []string{""}, true
		}
		return []string{n.Value}, true
	case ast.Union:
		l, ok := unionToSymbols(n.LHS)
		if !ok {
			return nil, false
		}
		r, ok := unionToSymbols(n.RHS)
		if !ok {
			return nil, false
		}
		return append(l, r...), true
	default:
		return nil, false
	}
}

func symbolsToUnion(syms []string, loc ast.Annot) ast.Exp {
	if len(syms) == 0 {
		return ast.Exp{Node: ast.Abort{}, Annot: loc}
	}
	exp := ast.Exp{Node: ast.Symbol{Value: syms[0], Blank: syms[0] == ""}, Annot: loc}
	for _, s := range syms[1:] {
		exp = ast.Exp{Node: ast.Union{LHS: exp, RHS: ast.Exp{Node: ast.Symbol{Value: s, Blank: s == ""}, Annot: loc}}, Annot: loc}
	}
	return exp
}

// mapChildren applies f to each immediate child expression of e,
// rebuilding the node only when at least one child changed.
func mapChildren(e ast.Exp, f func(ast.Exp) (ast.Exp, bool)) (ast.Exp, bool) {
	changed := false
	apply := func(child ast.Exp) ast.Exp {
		next, didChange := f(child)
		if didChange {
			changed = true
		}
		return next
	}

	var node ast.Node
	switch n := e.Node.(type) {
	case ast.Union:
		node = ast.Union{LHS: apply(n.LHS), RHS: apply(n.RHS)}
	case ast.Match:
		arms := make([]ast.Arm, 0, len(n.Arms))
		for _, arm := range n.Arms {
			pat := arm.Pat
			if !pat.IsAny {
				pat = ast.Pattern{Union: apply(pat.Union)}
			}
			arms = append(arms, ast.Arm{CatchID: arm.CatchID, Pat: pat, Exp: apply(arm.Exp)})
		}
		node = ast.Match{Exp: apply(n.Exp), Arms: arms}
	case ast.Let:
		bindings := make([]ast.Binding, 0, len(n.Bindings))
		for _, b := range n.Bindings {
			bindings = append(bindings, ast.Binding{Name: b.Name, Value: apply(b.Value)})
		}
		node = ast.Let{Bindings: bindings, Body: apply(n.Body)}
	case ast.Function:
		node = ast.Function{Arg: n.Arg, Exp: apply(n.Exp)}
	case ast.Application:
		node = ast.Application{Func: apply(n.Func), Arg: apply(n.Arg)}
	default:
		return e, false
	}

	if !changed {
		return e, false
	}
	return ast.Exp{Node: node, Annot: e.Annot}, true
}

// bottomUp recursively rewrites every child first, then applies f to
// the (possibly rewritten) node itself, reporting whether anything
// changed anywhere in the subtree.
func bottomUp(e ast.Exp, f func(ast.Exp) (ast.Exp, bool)) (ast.Exp, bool) {
	e, childChanged := mapChildren(e, func(c ast.Exp) (ast.Exp, bool) { return bottomUp(c, f) })
	e2, selfChanged := f(e)
	return e2, childChanged || selfChanged
}
