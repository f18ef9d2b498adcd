package simplify

import "github.com/funvibe/tmc/internal/ast"

// TrivialRemover removes trivial applications, grounded on
// original_source's trivial_remover.rs `remove_trivial`:
//
//	(x: x) y    > y
//	(x: f x) y  > f y
//	(x: e) y    > e      when x is not free in e
//
// An application whose function literal is the identity, merely wraps
// another function around its own argument unchanged, or never uses
// its argument, carries no information once its argument is known, so
// it collapses away.
func TrivialRemover(e ast.Exp) (ast.Exp, bool) {
	return bottomUp(e, func(e ast.Exp) (ast.Exp, bool) {
		app, ok := e.Node.(ast.Application)
		if !ok {
			return e, false
		}
		if isIdentity(app.Func) {
			return app.Arg, true
		}
		if inner, ok := asApplicationWrapper(app.Func); ok {
			return ast.Exp{Node: ast.Application{Func: inner, Arg: app.Arg}, Annot: e.Annot}, true
		}
		if fn, ok := app.Func.Node.(ast.Function); ok && !freeVars(fn.Exp)[fn.Arg] {
			return fn.Exp, true
		}
		return e, false
	})
}

// isIdentity reports whether exp is literally `(x: x)`.
func isIdentity(exp ast.Exp) bool {
	fn, ok := exp.Node.(ast.Function)
	if !ok {
		return false
	}
	id, ok := fn.Exp.Node.(ast.Identifier)
	return ok && id.Name == fn.Arg
}

// asApplicationWrapper reports whether exp is literally `(x: f x)`,
// returning f.
func asApplicationWrapper(exp ast.Exp) (ast.Exp, bool) {
	fn, ok := exp.Node.(ast.Function)
	if !ok {
		return ast.Exp{}, false
	}
	app, ok := fn.Exp.Node.(ast.Application)
	if !ok {
		return ast.Exp{}, false
	}
	id, ok := app.Arg.Node.(ast.Identifier)
	if !ok || id.Name != fn.Arg {
		return ast.Exp{}, false
	}
	return app.Func, true
}
