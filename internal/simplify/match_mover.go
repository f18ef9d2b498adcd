package simplify

import "github.com/funvibe/tmc/internal/ast"

// MatchMover pushes a Match out of an Application's function or
// argument position, distributing the surrounding application into
// every arm body, grounded on original_source's match_mover.rs:
//
//	(match x { p > f }) arg  ==>  match x { p > f arg }
//	func (match x { p > a }) ==>  match x { p > func a }
//
// This lets later passes see a direct Application in each arm, which
// the generator and applier both need.
func MatchMover(e ast.Exp) (ast.Exp, bool) {
	return bottomUp(e, func(e ast.Exp) (ast.Exp, bool) {
		app, ok := e.Node.(ast.Application)
		if !ok {
			return e, false
		}

		if m, ok := app.Func.Node.(ast.Match); ok {
			return distributeOverArms(m, func(body ast.Exp) ast.Exp {
				return ast.Exp{Node: ast.Application{Func: body, Arg: app.Arg}, Annot: e.Annot}
			}, e.Annot), true
		}
		if m, ok := app.Arg.Node.(ast.Match); ok {
			return distributeOverArms(m, func(body ast.Exp) ast.Exp {
				return ast.Exp{Node: ast.Application{Func: app.Func, Arg: body}, Annot: e.Annot}
			}, e.Annot), true
		}
		return e, false
	})
}

func distributeOverArms(m ast.Match, wrap func(ast.Exp) ast.Exp, annot ast.Annot) ast.Exp {
	arms := make([]ast.Arm, 0, len(m.Arms))
	for _, arm := range m.Arms {
		arms = append(arms, ast.Arm{CatchID: arm.CatchID, Pat: arm.Pat, Exp: wrap(arm.Exp)})
	}
	return ast.Exp{Node: ast.Match{Exp: m.Exp, Arms: arms}, Annot: annot}
}
