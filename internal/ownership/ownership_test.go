package ownership

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/funvibe/tmc/internal/ast"
	"github.com/funvibe/tmc/internal/typesystem"
)

func tapeIdent(name string, owned bool) ast.Exp {
	return ast.Exp{Node: ast.Identifier{Name: name}, Annot: ast.Annot{Type: typesystem.Tape{Owned: owned}}}
}

func TestCheckAllowsSingleConsumingUse(t *testing.T) {
	nextFn := ast.Exp{Node: ast.Identifier{Name: "next"}, Annot: ast.Annot{
		Type: typesystem.Function{Arg: typesystem.Tape{Owned: true}, Ret: typesystem.Tape{Owned: true}},
	}}
	app := ast.Exp{Node: ast.Application{Func: nextFn, Arg: tapeIdent("t", true)}, Annot: ast.Annot{
		Type: typesystem.Tape{Owned: true},
	}}

	require.Nil(t, Check(app))
}

func TestUseAfterMoveDetected(t *testing.T) {
	nextFn := ast.Exp{Node: ast.Identifier{Name: "next"}, Annot: ast.Annot{
		Type: typesystem.Function{Arg: typesystem.Tape{Owned: true}, Ret: typesystem.Tape{Owned: true}},
	}}
	app := ast.Exp{Node: ast.Application{Func: nextFn, Arg: tapeIdent("t", true)}, Annot: ast.Annot{
		Type: typesystem.Tape{Owned: true},
	}}

	consumed := map[string]bool{}
	require.Nil(t, traverse(app, consumed, false))

	err := traverse(app, consumed, false)
	require.NotNil(t, err)
	require.Equal(t, "O001", string(err.Code))
}

func TestBorrowDoesNotConsume(t *testing.T) {
	getFn := ast.Exp{Node: ast.Identifier{Name: "get"}, Annot: ast.Annot{
		Type: typesystem.Function{Arg: typesystem.Tape{Owned: false}, Ret: typesystem.Symbol{}},
	}}
	app := ast.Exp{Node: ast.Application{Func: getFn, Arg: tapeIdent("t", true)}, Annot: ast.Annot{
		Type: typesystem.Symbol{},
	}}

	consumed := map[string]bool{}
	require.Nil(t, traverse(app, consumed, false))
	require.False(t, consumed["t"])

	// Borrowing again afterwards must still succeed.
	require.Nil(t, traverse(app, consumed, false))
}

func TestBorrowEscapeRejected(t *testing.T) {
	fFn := ast.Exp{Node: ast.Identifier{Name: "f"}, Annot: ast.Annot{
		Type: typesystem.Function{Arg: typesystem.Tape{Owned: true}, Ret: typesystem.Union{}},
	}}
	app := ast.Exp{Node: ast.Application{Func: fFn, Arg: tapeIdent("t", true)}, Annot: ast.Annot{
		Type: typesystem.Union{},
	}}

	err := Check(app)
	require.NotNil(t, err)
	require.Equal(t, "O003", string(err.Code))
}

func TestMatchArmsForkIndependently(t *testing.T) {
	nextFn := ast.Exp{Node: ast.Identifier{Name: "next"}, Annot: ast.Annot{
		Type: typesystem.Function{Arg: typesystem.Tape{Owned: true}, Ret: typesystem.Tape{Owned: true}},
	}}
	armExp := ast.Exp{Node: ast.Application{Func: nextFn, Arg: tapeIdent("t", true)}, Annot: ast.Annot{
		Type: typesystem.Tape{Owned: true},
	}}
	scrutinee := ast.Exp{Node: ast.Identifier{Name: "s"}, Annot: ast.Annot{Type: typesystem.Symbol{}}}

	match := ast.Exp{Node: ast.Match{
		Exp: scrutinee,
		Arms: []ast.Arm{
			{Pat: ast.Pattern{IsAny: true}, Exp: armExp},
			{Pat: ast.Pattern{IsAny: true}, Exp: armExp},
		},
	}}

	require.Nil(t, Check(match))
}

func TestFunctionArgClearsPriorConsumption(t *testing.T) {
	fn := ast.Exp{Node: ast.Function{Arg: "t", Exp: tapeIdent("t", true)}}

	consumed := map[string]bool{"t": true}
	require.Nil(t, traverse(fn, consumed, false))
}
