package unionresolve

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/funvibe/tmc/internal/ast"
	"github.com/funvibe/tmc/internal/typesystem"
)

func TestGenerateResolvedDirectSymbolCast(t *testing.T) {
	types := generateResolved(3, [][2]int{{2, 0}})
	require.Equal(t, typesystem.Symbol{}, types[2])
}

func TestGenerateResolvedDefaultsToUnion(t *testing.T) {
	types := generateResolved(3, nil)
	require.Equal(t, typesystem.Union{}, types[2])
}

func TestGenerateResolvedTransitiveSymbolCast(t *testing.T) {
	types := generateResolved(4, [][2]int{{3, 2}, {2, 0}})
	require.Equal(t, typesystem.Symbol{}, types[2])
	require.Equal(t, typesystem.Symbol{}, types[3])
}

func TestRemoveUnresolvedInTypeSubstitutesFunction(t *testing.T) {
	types := []typesystem.Type{typesystem.Symbol{}, typesystem.Union{}, typesystem.Symbol{}}
	fn := typesystem.Function{Arg: typesystem.UnresolvedUnion{ID: 2}, Ret: typesystem.UnresolvedUnion{ID: 1}}

	resolved := removeUnresolvedInType(fn, types)
	require.Equal(t, typesystem.Function{Arg: typesystem.Symbol{}, Ret: typesystem.Union{}}, resolved)
}

func TestResolveDefaultsUnionExpressionToUnion(t *testing.T) {
	sideType := ast.Annot{Type: typesystem.Symbol{}}
	e := ast.Exp{
		Node: ast.Union{
			LHS: ast.Exp{Node: ast.Symbol{Value: "A"}, Annot: sideType},
			RHS: ast.Exp{Node: ast.Symbol{Value: "B"}, Annot: sideType},
		},
		Annot: ast.Annot{Type: typesystem.UnresolvedUnion{ID: 0}},
	}

	resolved := Resolve(e)
	require.Equal(t, typesystem.Union{}, resolved.Annot.Type)
}
