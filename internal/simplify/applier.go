package simplify

import "github.com/funvibe/tmc/internal/ast"

// Applier beta-reduces an Application whose Func is a literal Function,
// grounded on original_source's applier.rs: `(arg: body) value`
// rewrites to `body[arg := value]`. This is the workhorse that turns
// combinator-style source (Y-bound recursive helpers, `set`/`get`
// pipelines) into the direct tape-transition shapes the generator
// recognizes.
func Applier(e ast.Exp) (ast.Exp, bool) {
	return bottomUp(e, func(e ast.Exp) (ast.Exp, bool) {
		app, ok := e.Node.(ast.Application)
		if !ok {
			return e, false
		}
		fn, ok := app.Func.Node.(ast.Function)
		if !ok {
			return e, false
		}
		return substitute(fn.Exp, fn.Arg, app.Arg), true
	})
}
