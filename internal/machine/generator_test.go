package machine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/funvibe/tmc/internal/ast"
)

func TestGenerateBareAcceptProgram(t *testing.T) {
	e := ast.Exp{Node: ast.Identifier{Name: "accept"}}

	m := Generate(e)

	require.Equal(t, 3, m.StateCount)
	require.Len(t, m.Transitions, 1)
	require.Equal(t, Transition{From: End{0, nil}, To: End{1, nil}, Dir: Stay}, m.Transitions[0])
}

func TestGenerateSimpleMove(t *testing.T) {
	e := ast.Exp{Node: ast.Function{
		Arg: "t",
		Exp: ast.Exp{Node: ast.Application{
			Func: ast.Exp{Node: ast.Identifier{Name: "next"}},
			Arg:  ast.Exp{Node: ast.Identifier{Name: "t"}},
		}},
	}}

	m := Generate(e)

	require.Equal(t, 3, m.StateCount)
	require.Len(t, m.Transitions, 1)
	require.Equal(t, Transition{From: End{0, nil}, To: End{1, nil}, Dir: Right}, m.Transitions[0])
}

func TestGenerateSetTransition(t *testing.T) {
	e := ast.Exp{Node: ast.Function{
		Arg: "t",
		Exp: ast.Exp{Node: ast.Application{
			Func: ast.Exp{Node: ast.Application{
				Func: ast.Exp{Node: ast.Identifier{Name: "set"}},
				Arg:  ast.Exp{Node: ast.Symbol{Value: "A"}},
			}},
			Arg: ast.Exp{Node: ast.Identifier{Name: "t"}},
		}},
	}}

	m := Generate(e)

	require.Equal(t, 3, m.StateCount)
	require.Len(t, m.Transitions, 1)
	tr := m.Transitions[0]
	require.Equal(t, 0, tr.From.State)
	require.Nil(t, tr.From.Symbol)
	require.Equal(t, 1, tr.To.State)
	require.Equal(t, "A", *tr.To.Symbol)
	require.Equal(t, Stay, tr.Dir)
}

func TestGenerateMatchSingleArm(t *testing.T) {
	e := ast.Exp{Node: ast.Function{
		Arg: "t",
		Exp: ast.Exp{Node: ast.Match{
			Exp: ast.Exp{Node: ast.Identifier{Name: "t"}},
			Arms: []ast.Arm{
				{Pat: ast.Pattern{Union: ast.Exp{Node: ast.Symbol{Value: "A"}}}, Exp: ast.Exp{Node: ast.Identifier{Name: "t"}}},
			},
		}},
	}}

	m := Generate(e)

	require.Equal(t, 3, m.StateCount)
	require.Len(t, m.Transitions, 1)
	tr := m.Transitions[0]
	require.Equal(t, 0, tr.From.State)
	require.Equal(t, "A", *tr.From.Symbol)
	require.Equal(t, 1, tr.To.State)
	require.Equal(t, "A", *tr.To.Symbol)
	require.Equal(t, Stay, tr.Dir)
}
