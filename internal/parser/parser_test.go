package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/funvibe/tmc/internal/ast"
	"github.com/funvibe/tmc/internal/lexer"
)

func mustParse(t *testing.T, src string) ast.Exp {
	t.Helper()
	toks, lexErr := lexer.Tokenize(src, "", "prog.tmc", nil)
	require.Nil(t, lexErr)
	exp, err := Parse(toks)
	require.Nil(t, err)
	return exp
}

func TestParseIdentityFunction(t *testing.T) {
	exp := mustParse(t, "t: t")
	fn, ok := exp.Node.(ast.Function)
	require.True(t, ok)
	require.Equal(t, "t", fn.Arg)
	id, ok := fn.Exp.Node.(ast.Identifier)
	require.True(t, ok)
	require.Equal(t, "t", id.Name)
}

func TestParseApplication(t *testing.T) {
	exp := mustParse(t, "f x")
	app, ok := exp.Node.(ast.Application)
	require.True(t, ok)
	require.Equal(t, ast.Identifier{Name: "f"}, app.Func.Node)
	require.Equal(t, ast.Identifier{Name: "x"}, app.Arg.Node)
}

func TestParseLeftAssociativeApplication(t *testing.T) {
	exp := mustParse(t, "f x y")
	outer, ok := exp.Node.(ast.Application)
	require.True(t, ok)
	require.Equal(t, ast.Identifier{Name: "y"}, outer.Arg.Node)
	inner, ok := outer.Func.Node.(ast.Application)
	require.True(t, ok)
	require.Equal(t, ast.Identifier{Name: "f"}, inner.Func.Node)
	require.Equal(t, ast.Identifier{Name: "x"}, inner.Arg.Node)
}

func TestParseUnion(t *testing.T) {
	exp := mustParse(t, "'A' | 'B'")
	u, ok := exp.Node.(ast.Union)
	require.True(t, ok)
	require.Equal(t, ast.Symbol{Value: "A"}, u.LHS.Node)
	require.Equal(t, ast.Symbol{Value: "B"}, u.RHS.Node)
}

func TestParseMatch(t *testing.T) {
	exp := mustParse(t, "match t { 'A' > accept, any > reject, }")
	m, ok := exp.Node.(ast.Match)
	require.True(t, ok)
	require.Equal(t, ast.Identifier{Name: "t"}, m.Exp.Node)
	require.Len(t, m.Arms, 2)

	require.False(t, m.Arms[0].Pat.IsAny)
	require.Equal(t, ast.Symbol{Value: "A"}, m.Arms[0].Pat.Union.Node)
	require.Equal(t, ast.Identifier{Name: "accept"}, m.Arms[0].Exp.Node)

	require.True(t, m.Arms[1].Pat.IsAny)
	require.Equal(t, ast.Identifier{Name: "reject"}, m.Arms[1].Exp.Node)
}

func TestParseMatchArmCatchID(t *testing.T) {
	exp := mustParse(t, "match t { s@'A' > s, any > reject, }")
	m := exp.Node.(ast.Match)
	require.NotNil(t, m.Arms[0].CatchID)
	require.Equal(t, "s", *m.Arms[0].CatchID)
}

func TestParseLet(t *testing.T) {
	exp := mustParse(t, "let x = 'A', in x")
	l, ok := exp.Node.(ast.Let)
	require.True(t, ok)
	require.Len(t, l.Bindings, 1)
	require.Equal(t, "x", l.Bindings[0].Name)
	require.Equal(t, ast.Symbol{Value: "A"}, l.Bindings[0].Value.Node)
	require.Equal(t, ast.Identifier{Name: "x"}, l.Body.Node)
}

func TestParseTrailingTokensError(t *testing.T) {
	toks, lexErr := lexer.Tokenize("t: t )", "", "prog.tmc", nil)
	require.Nil(t, lexErr)
	_, err := Parse(toks)
	require.NotNil(t, err)
	require.Equal(t, "P001", string(err.Code))
}
