package typesystem

import (
	"github.com/funvibe/tmc/internal/ast"
	"github.com/funvibe/tmc/internal/config"
	"github.com/funvibe/tmc/internal/diagnostics"
)

// scope maps a bound name to (fixed, type): fixed vars (built-ins) are
// checked by direct cast against the expected type; non-fixed vars get a
// fresh graph node so the solver can unify uses across the whole body.
type scopeVar struct {
	fixed bool
	typ   Type
}

type scope map[string]scopeVar

func (s scope) extend(name string, v scopeVar) scope {
	next := make(scope, len(s)+1)
	for k, vv := range s {
		next[k] = vv
	}
	next[name] = v
	return next
}

func builtinScope() scope {
	tape := func() Type { return Tape{Owned: true} }
	s := scope{}
	s[config.BuiltinSet] = scopeVar{true, Function{Arg: Symbol{}, Ret: Function{Arg: tape(), Ret: tape()}}}
	s[config.BuiltinGet] = scopeVar{true, Function{Arg: Tape{Owned: false}, Ret: Symbol{}}}
	s[config.BuiltinNext] = scopeVar{true, Function{Arg: tape(), Ret: tape()}}
	s[config.BuiltinPrev] = scopeVar{true, Function{Arg: tape(), Ret: tape()}}
	tapeToTape := Function{Arg: tape(), Ret: tape()}
	s[config.BuiltinY] = scopeVar{true, Function{
		Arg: Function{Arg: tapeToTape, Ret: tapeToTape},
		Ret: tapeToTape,
	}}
	s[config.BuiltinAccept] = scopeVar{true, Halt{}}
	s[config.BuiltinReject] = scopeVar{true, Halt{}}
	s[config.BuiltinAbort] = scopeVar{true, Halt{}}
	return s
}

// Check type-checks a program, which must have the overall type
// Tape -> Tape (spec.md §3 "the program is itself a tape->tape function").
// It returns the fully annotated tree; any residual ambiguity between
// Symbol and Union is left as an UnresolvedUnion placeholder for
// internal/unionresolve, per spec.md §9.
func Check(program ast.Exp) (ast.Exp, *diagnostics.CompileError) {
	g := NewGraph()
	programType := Function{Arg: Tape{Owned: true}, Ret: Tape{Owned: true}}

	checked, err := checkExp(program, builtinScope(), g, programType)
	if err != nil {
		return ast.Exp{}, err
	}

	resolved, err := g.Solve()
	if err != nil {
		return ast.Exp{}, err
	}

	checked.Annot.Type = programType
	return resolveExp(checked, resolved)
}

func checkExp(e ast.Exp, vars scope, g *Graph, retT Type) (ast.Exp, *diagnostics.CompileError) {
	loc := e.Annot.Loc

	switch n := e.Node.(type) {
	case ast.Identifier:
		v, ok := vars[n.Name]
		if !ok {
			return ast.Exp{}, diagnostics.New(diagnostics.PhaseType, diagnostics.ErrTypeUndefinedIdentifier, loc, n.Name)
		}
		if v.fixed {
			if err := g.Cast(v.typ, retT, loc); err != nil {
				return ast.Exp{}, err
			}
			return ast.Exp{Node: n, Annot: ast.Annot{Type: v.typ, Loc: loc}}, nil
		}
		t := g.Push()
		if err := g.Cast(v.typ, t, loc); err != nil {
			return ast.Exp{}, err
		}
		if err := g.Cast(t, retT, loc); err != nil {
			return ast.Exp{}, err
		}
		return ast.Exp{Node: n, Annot: ast.Annot{Type: t, Loc: loc}}, nil

	case ast.Symbol:
		if err := g.Cast(Symbol{}, retT, loc); err != nil {
			return ast.Exp{}, err
		}
		return ast.Exp{Node: n, Annot: ast.Annot{Type: Symbol{}, Loc: loc}}, nil

	case ast.Abort:
		return ast.Exp{Node: n, Annot: ast.Annot{Type: Halt{}, Loc: loc}}, nil

	case ast.Union:
		lhs, err := checkExp(n.LHS, vars, g, Union{})
		if err != nil {
			return ast.Exp{}, err
		}
		rhs, err := checkExp(n.RHS, vars, g, Union{})
		if err != nil {
			return ast.Exp{}, err
		}
		if err := g.Cast(Union{}, retT, loc); err != nil {
			return ast.Exp{}, err
		}
		return ast.Exp{Node: ast.Union{LHS: lhs, RHS: rhs}, Annot: ast.Annot{Type: Union{}, Loc: loc}}, nil

	case ast.Match:
		matchExp, err := checkExp(n.Exp, vars, g, Symbol{})
		if err != nil {
			return ast.Exp{}, err
		}

		newArms := make([]ast.Arm, 0, len(n.Arms))
		for _, arm := range n.Arms {
			pat := arm.Pat
			if !pat.IsAny {
				u, err := checkExp(pat.Union, vars, g, Union{})
				if err != nil {
					return ast.Exp{}, err
				}
				pat = ast.Pattern{Union: u}
			}

			armVars := vars
			if arm.CatchID != nil {
				armVars = vars.extend(*arm.CatchID, scopeVar{fixed: false, typ: Symbol{}})
			}

			body, err := checkExp(arm.Exp, armVars, g, retT)
			if err != nil {
				return ast.Exp{}, err
			}
			newArms = append(newArms, ast.Arm{CatchID: arm.CatchID, Pat: pat, Exp: body})
		}

		return ast.Exp{Node: ast.Match{Exp: matchExp, Arms: newArms}, Annot: ast.Annot{Type: retT, Loc: loc}}, nil

	case ast.Let:
		curVars := vars
		newBindings := make([]ast.Binding, 0, len(n.Bindings))
		for _, b := range n.Bindings {
			t := g.Push()
			val, err := checkExp(b.Value, curVars, g, t)
			if err != nil {
				return ast.Exp{}, err
			}
			curVars = curVars.extend(b.Name, scopeVar{fixed: false, typ: t})
			newBindings = append(newBindings, ast.Binding{Name: b.Name, Value: val})
		}
		body, err := checkExp(n.Body, curVars, g, retT)
		if err != nil {
			return ast.Exp{}, err
		}
		return ast.Exp{Node: ast.Let{Bindings: newBindings, Body: body}, Annot: ast.Annot{Type: retT, Loc: loc}}, nil

	case ast.Function:
		argT := g.Push()
		retExpT := g.Push()
		fVars := vars.extend(n.Arg, scopeVar{fixed: false, typ: argT})
		body, err := checkExp(n.Exp, fVars, g, retExpT)
		if err != nil {
			return ast.Exp{}, err
		}
		funcT := Function{Arg: argT, Ret: retExpT}
		if err := g.Cast(funcT, retT, loc); err != nil {
			return ast.Exp{}, err
		}
		return ast.Exp{Node: ast.Function{Arg: n.Arg, Exp: body}, Annot: ast.Annot{Type: funcT, Loc: loc}}, nil

	case ast.Application:
		argT := g.Push()
		arg, err := checkExp(n.Arg, vars, g, argT)
		if err != nil {
			return ast.Exp{}, err
		}
		funcT := Function{Arg: argT, Ret: retT}
		fn, err := checkExp(n.Func, vars, g, funcT)
		if err != nil {
			return ast.Exp{}, err
		}
		return ast.Exp{Node: ast.Application{Func: fn, Arg: arg}, Annot: ast.Annot{Type: retT, Loc: loc}}, nil
	}

	return ast.Exp{}, diagnostics.New(diagnostics.PhaseType, diagnostics.ErrTypeUnresolved, loc)
}

// resolveExp substitutes every graph Var with its solved type, erroring
// if something genuinely unconstrained (not even an UnresolvedUnion)
// remains.
func resolveExp(e ast.Exp, resolved map[int]Type) (ast.Exp, *diagnostics.CompileError) {
	t := Apply(e.Annot.Type, resolved)

	var node ast.Node
	switch n := e.Node.(type) {
	case ast.Union:
		lhs, err := resolveExp(n.LHS, resolved)
		if err != nil {
			return ast.Exp{}, err
		}
		rhs, err := resolveExp(n.RHS, resolved)
		if err != nil {
			return ast.Exp{}, err
		}
		node = ast.Union{LHS: lhs, RHS: rhs}

	case ast.Match:
		matchExp, err := resolveExp(n.Exp, resolved)
		if err != nil {
			return ast.Exp{}, err
		}
		newArms := make([]ast.Arm, 0, len(n.Arms))
		for _, arm := range n.Arms {
			pat := arm.Pat
			if !pat.IsAny {
				u, err := resolveExp(pat.Union, resolved)
				if err != nil {
					return ast.Exp{}, err
				}
				pat = ast.Pattern{Union: u}
			}
			body, err := resolveExp(arm.Exp, resolved)
			if err != nil {
				return ast.Exp{}, err
			}
			newArms = append(newArms, ast.Arm{CatchID: arm.CatchID, Pat: pat, Exp: body})
		}
		node = ast.Match{Exp: matchExp, Arms: newArms}

	case ast.Let:
		newBindings := make([]ast.Binding, 0, len(n.Bindings))
		for _, b := range n.Bindings {
			v, err := resolveExp(b.Value, resolved)
			if err != nil {
				return ast.Exp{}, err
			}
			newBindings = append(newBindings, ast.Binding{Name: b.Name, Value: v})
		}
		body, err := resolveExp(n.Body, resolved)
		if err != nil {
			return ast.Exp{}, err
		}
		node = ast.Let{Bindings: newBindings, Body: body}

	case ast.Function:
		body, err := resolveExp(n.Exp, resolved)
		if err != nil {
			return ast.Exp{}, err
		}
		node = ast.Function{Arg: n.Arg, Exp: body}

	case ast.Application:
		fn, err := resolveExp(n.Func, resolved)
		if err != nil {
			return ast.Exp{}, err
		}
		arg, err := resolveExp(n.Arg, resolved)
		if err != nil {
			return ast.Exp{}, err
		}
		node = ast.Application{Func: fn, Arg: arg}

	default:
		node = e.Node
	}

	if IsUnresolvedNonUnion(t) {
		return ast.Exp{}, diagnostics.New(diagnostics.PhaseType, diagnostics.ErrTypeUnresolved, e.Annot.Loc)
	}

	return ast.Exp{Node: node, Annot: ast.Annot{Type: t, Loc: e.Annot.Loc}}, nil
}
