package typesystem

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/funvibe/tmc/internal/token"
)

func TestSolveDirectSymbolConstraint(t *testing.T) {
	g := NewGraph()
	v := g.Push().(Var)
	g.Cast(Symbol{}, v, token.Location{})

	resolved, err := g.Solve()
	require.Nil(t, err)
	require.Equal(t, Symbol{}, resolved[v.ID])
}

func TestSolveUnionDominatesSymbol(t *testing.T) {
	g := NewGraph()
	v := g.Push().(Var)
	g.Cast(Symbol{}, v, token.Location{})
	g.Cast(Union{}, v, token.Location{})

	resolved, err := g.Solve()
	require.Nil(t, err)
	require.Equal(t, Union{}, resolved[v.ID])
}

func TestSolveDefersAmbiguousVar(t *testing.T) {
	g := NewGraph()
	v := g.Push().(Var)

	resolved, err := g.Solve()
	require.Nil(t, err)
	require.Equal(t, UnresolvedUnion{ID: 0}, resolved[v.ID])
}

func TestSolvePropagatesThroughChain(t *testing.T) {
	g := NewGraph()
	a := g.Push().(Var)
	b := g.Push().(Var)
	g.Cast(Symbol{}, a, token.Location{})
	g.Cast(a, b, token.Location{})

	resolved, err := g.Solve()
	require.Nil(t, err)
	require.Equal(t, Symbol{}, resolved[b.ID])
}

func TestSolveFunctionDecomposition(t *testing.T) {
	g := NewGraph()
	argVar := g.Push().(Var)
	retVar := g.Push().(Var)
	fnVar := Function{Arg: argVar, Ret: retVar}
	target := Function{Arg: Union{}, Ret: Symbol{}}
	g.Cast(fnVar, target, token.Location{})

	resolved, err := g.Solve()
	require.Nil(t, err)
	// Contravariant: target.Arg casts into argVar.
	require.Equal(t, Union{}, resolved[argVar.ID])
	require.Equal(t, Symbol{}, resolved[retVar.ID])
}

func TestApplySubstitutesVars(t *testing.T) {
	resolved := map[int]Type{0: Symbol{}, 1: Union{}}
	fn := Function{Arg: Var{ID: 0}, Ret: Var{ID: 1}}

	applied := Apply(fn, resolved)
	require.Equal(t, Function{Arg: Symbol{}, Ret: Union{}}, applied)
}

