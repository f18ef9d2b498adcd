package machine

import (
	"github.com/funvibe/tmc/internal/ast"
	"github.com/funvibe/tmc/internal/config"
)

// Generate builds a Turing machine from a fully simplified expression
// of type tape -> tape, grounded on original_source's generator.rs.
// The expression is expected to already be in the normal form the
// simplifier pipeline produces: no Let, no beta-redexes, no captured
// patterns, no get — just set/next/prev/accept/reject/Y combined through
// Application, Function and Match on the tape identifier.
func Generate(e ast.Exp) *Machine {
	m := New()
	generateFunction(e, m, 0, 1, map[string]int{})
	m.Simplify()
	return m
}

func str(s string) *string { return &s }

// generateFunction lowers an expression known to have type tape -> tape.
func generateFunction(e ast.Exp, m *Machine, src, dst int, rec map[string]int) bool {
	if generateSet(e, m, src, dst) {
		return true
	}
	if generateMove(e, m, src, dst) {
		return true
	}
	if generateHalt(e, m, src) {
		return true
	}
	if generateY(e, m, src, dst, rec) {
		return true
	}

	switch n := e.Node.(type) {
	case ast.Function:
		return generateFromTape(n.Exp, n.Arg, m, src, dst, rec)
	case ast.Identifier:
		state, ok := rec[n.Name]
		if !ok {
			return false
		}
		m.PushTransition(Transition{From: End{src, nil}, To: End{state, nil}, Dir: Stay})
		return true
	case ast.Abort:
		return true
	default:
		return false
	}
}

// generateFromTape lowers an expression known to evaluate a tape bound
// to the identifier id into another tape.
func generateFromTape(e ast.Exp, id string, m *Machine, src, dst int, rec map[string]int) bool {
	switch n := e.Node.(type) {
	case ast.Identifier:
		if n.Name != id {
			return false
		}
		m.PushTransition(Transition{From: End{src, nil}, To: End{dst, nil}, Dir: Stay})
		return true
	case ast.Abort:
		return true
	default:
		if generateApplication(e, id, m, src, dst, rec) {
			return true
		}
		return generateMatch(e, id, m, src, dst, rec)
	}
}

// generateApplication lowers `func arg` where arg evaluates the tape id.
func generateApplication(e ast.Exp, id string, m *Machine, src, dst int, rec map[string]int) bool {
	app, ok := e.Node.(ast.Application)
	if !ok {
		return false
	}
	s := m.PushState()
	return generateFromTape(app.Arg, id, m, src, s, rec) && generateFunction(app.Func, m, s, dst, rec)
}

// generateMatch lowers a match over the tape id.
func generateMatch(e ast.Exp, id string, m *Machine, src, dst int, rec map[string]int) bool {
	match, ok := e.Node.(ast.Match)
	if !ok {
		return false
	}
	scrut, ok := match.Exp.Node.(ast.Identifier)
	if !ok || scrut.Name != id {
		return false
	}

	s := m.PushState()
	if !generateFromTape(match.Exp, id, m, src, s, rec) {
		return false
	}

	for _, arm := range match.Arms {
		symbols, ok := armSymbols(arm)
		if !ok {
			continue
		}
		if len(symbols) == 0 {
			continue
		}
		a := m.PushState()
		for _, sy := range symbols {
			m.PushTransition(Transition{From: End{s, str(sy)}, To: End{a, str(sy)}, Dir: Stay})
		}
		if !generateFromTape(arm.Exp, id, m, a, dst, rec) {
			return false
		}
	}
	return true
}

// armSymbols enumerates the symbols an arm's pattern covers. Blank
// tape cells are represented as the empty string.
func armSymbols(arm ast.Arm) ([]string, bool) {
	if arm.Pat.IsAny {
		return nil, false
	}
	var out []string
	var walk func(e ast.Exp) bool
	walk = func(e ast.Exp) bool {
		switch n := e.Node.(type) {
		case ast.Symbol:
			if n.Blank {
				out = append(out, "")
			} else {
				out = append(out, n.Value)
			}
			return true
		case ast.Union:
			return walk(n.LHS) && walk(n.RHS)
		default:
			return false
		}
	}
	if !walk(arm.Pat.Union) {
		return nil, false
	}
	return out, true
}

// generateSet lowers `set 'x'`.
func generateSet(e ast.Exp, m *Machine, src, dst int) bool {
	app, ok := e.Node.(ast.Application)
	if !ok {
		return false
	}
	id, ok := app.Func.Node.(ast.Identifier)
	if !ok || id.Name != config.BuiltinSet {
		return false
	}
	sy, ok := app.Arg.Node.(ast.Symbol)
	if !ok {
		return false
	}
	val := sy.Value
	if sy.Blank {
		val = ""
	}
	m.PushTransition(Transition{From: End{src, nil}, To: End{dst, str(val)}, Dir: Stay})
	return true
}

// generateMove lowers `next`/`prev`.
func generateMove(e ast.Exp, m *Machine, src, dst int) bool {
	id, ok := e.Node.(ast.Identifier)
	if !ok {
		return false
	}
	var dir Direction
	switch id.Name {
	case config.BuiltinNext:
		dir = Right
	case config.BuiltinPrev:
		dir = Left
	default:
		return false
	}
	m.PushTransition(Transition{From: End{src, nil}, To: End{dst, nil}, Dir: dir})
	return true
}

// generateHalt lowers `accept`/`reject`.
func generateHalt(e ast.Exp, m *Machine, src int) bool {
	id, ok := e.Node.(ast.Identifier)
	if !ok {
		return false
	}
	var to int
	switch id.Name {
	case config.BuiltinAccept:
		to = 1
	case config.BuiltinReject:
		to = 2
	default:
		return false
	}
	m.PushTransition(Transition{From: End{src, nil}, To: End{to, nil}, Dir: Stay})
	return true
}

// generateY lowers `Y (rec: exp)`, binding rec to the entry state of
// the recursive body so a later Identifier reference to rec can jump
// back to it.
func generateY(e ast.Exp, m *Machine, src, dst int, rec map[string]int) bool {
	app, ok := e.Node.(ast.Application)
	if !ok {
		return false
	}
	id, ok := app.Func.Node.(ast.Identifier)
	if !ok || id.Name != config.BuiltinY {
		return false
	}
	fn, ok := app.Arg.Node.(ast.Function)
	if !ok {
		return false
	}

	s := m.PushState()
	m.PushTransition(Transition{From: End{src, nil}, To: End{s, nil}, Dir: Stay})

	next := make(map[string]int, len(rec)+1)
	for k, v := range rec {
		next[k] = v
	}
	next[fn.Arg] = s
	return generateFunction(fn.Exp, m, s, dst, next)
}
