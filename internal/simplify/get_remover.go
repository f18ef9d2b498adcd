package simplify

import (
	"github.com/funvibe/tmc/internal/ast"
	"github.com/funvibe/tmc/internal/config"
)

// GetRemover replaces every `get t` read of a tape identifier with a
// match over the declared alphabet that returns the symbol it finds,
// grounded on original_source's get_remover.rs: `get t` becomes
// `match t { {a} > a, {b} > b, ... }`. After this pass, the only
// Tape-typed application left standing is next/prev/set/Y or a
// user-defined recursive call, which is what the generator expects.
func GetRemover(alphabet []string) Pass {
	return func(e ast.Exp) (ast.Exp, bool) {
		return bottomUp(e, func(e ast.Exp) (ast.Exp, bool) {
			app, ok := e.Node.(ast.Application)
			if !ok {
				return e, false
			}
			fn, ok := app.Func.Node.(ast.Identifier)
			if !ok || fn.Name != config.BuiltinGet {
				return e, false
			}
			if _, ok := app.Arg.Node.(ast.Identifier); !ok {
				return e, false
			}

			arms := make([]ast.Arm, 0, len(alphabet))
			for _, s := range alphabet {
				sym := ast.Exp{Node: ast.Symbol{Value: s, Blank: s == ""}, Annot: app.Arg.Annot}
				arms = append(arms, ast.Arm{Pat: ast.Pattern{Union: sym}, Exp: sym})
			}
			return ast.Exp{Node: ast.Match{Exp: app.Arg, Arms: arms}, Annot: e.Annot}, true
		})
	}
}
