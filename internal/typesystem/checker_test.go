package typesystem

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/funvibe/tmc/internal/ast"
)

func TestCheckIdentityProgram(t *testing.T) {
	program := ast.Exp{Node: ast.Function{
		Arg: "t",
		Exp: ast.Exp{Node: ast.Identifier{Name: "t"}},
	}}

	checked, err := Check(program)
	require.Nil(t, err)

	want := Function{Arg: Tape{Owned: true}, Ret: Tape{Owned: true}}
	require.Equal(t, want, checked.Annot.Type)

	body := checked.Node.(ast.Function).Exp
	require.Equal(t, Tape{Owned: true}, body.Annot.Type)
}

func TestCheckUndefinedIdentifier(t *testing.T) {
	program := ast.Exp{Node: ast.Function{
		Arg: "t",
		Exp: ast.Exp{Node: ast.Identifier{Name: "y"}},
	}}

	_, err := Check(program)
	require.NotNil(t, err)
	require.Equal(t, "T001", string(err.Code))
}

func TestCheckBuiltinApplication(t *testing.T) {
	program := ast.Exp{Node: ast.Function{
		Arg: "t",
		Exp: ast.Exp{Node: ast.Application{
			Func: ast.Exp{Node: ast.Identifier{Name: "next"}},
			Arg:  ast.Exp{Node: ast.Identifier{Name: "t"}},
		}},
	}}

	checked, err := Check(program)
	require.Nil(t, err)

	body := checked.Node.(ast.Function).Exp
	require.Equal(t, Tape{Owned: true}, body.Annot.Type)
}

func TestCheckMatchWithHaltArms(t *testing.T) {
	program := ast.Exp{Node: ast.Function{
		Arg: "t",
		Exp: ast.Exp{Node: ast.Match{
			Exp: ast.Exp{Node: ast.Application{
				Func: ast.Exp{Node: ast.Identifier{Name: "get"}},
				Arg:  ast.Exp{Node: ast.Identifier{Name: "t"}},
			}},
			Arms: []ast.Arm{
				{
					Pat: ast.Pattern{Union: ast.Exp{Node: ast.Symbol{Value: "A"}}},
					Exp: ast.Exp{Node: ast.Identifier{Name: "accept"}},
				},
				{
					Pat: ast.Pattern{IsAny: true},
					Exp: ast.Exp{Node: ast.Identifier{Name: "reject"}},
				},
			},
		}},
	}}

	checked, err := Check(program)
	require.Nil(t, err)

	body := checked.Node.(ast.Function).Exp
	require.Equal(t, Tape{Owned: true}, body.Annot.Type)

	match := body.Node.(ast.Match)
	require.Len(t, match.Arms, 2)
	require.Equal(t, Symbol{}, match.Exp.Annot.Type)
}
