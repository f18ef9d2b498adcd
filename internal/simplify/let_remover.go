package simplify

import "github.com/funvibe/tmc/internal/ast"

// LetRemover eliminates Let nodes entirely, grounded on
// original_source's let_remover.rs: each binding is substituted into
// the rest of the bindings and the body, left to right, then the Let
// wrapper is dropped. The machine generator has no Let case, so every
// occurrence must be gone by the time generation runs.
func LetRemover(e ast.Exp) (ast.Exp, bool) {
	return bottomUp(e, func(e ast.Exp) (ast.Exp, bool) {
		n, ok := e.Node.(ast.Let)
		if !ok {
			return e, false
		}
		if len(n.Bindings) == 0 {
			return n.Body, true
		}

		for len(n.Bindings) > 0 {
			b := n.Bindings[0]
			rest := ast.Let{Bindings: n.Bindings[1:], Body: n.Body}
			n = substitute(ast.Exp{Node: rest, Annot: e.Annot}, b.Name, b.Value).Node.(ast.Let)
		}
		return n.Body, true
	})
}
