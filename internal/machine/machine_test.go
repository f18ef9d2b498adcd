package machine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestNewReservesThreeStates(t *testing.T) {
	m := New()
	require.Equal(t, 3, m.StateCount)
	require.Empty(t, m.Transitions)
}

func TestPushStateAllocatesSequentially(t *testing.T) {
	m := New()
	require.Equal(t, 3, m.PushState())
	require.Equal(t, 4, m.PushState())
	require.Equal(t, 5, m.StateCount)
}

func TestIndegOutdeg(t *testing.T) {
	m := New()
	m.PushTransition(Transition{From: End{0, nil}, To: End{1, nil}, Dir: Stay})
	m.PushTransition(Transition{From: End{0, nil}, To: End{2, nil}, Dir: Stay})

	require.Equal(t, 2, m.outdeg(0))
	require.Equal(t, 1, m.indeg(1))
	require.Equal(t, 1, m.indeg(2))
	require.Equal(t, 0, m.indeg(0))
}

func TestRemoveStateDropsTransitionsTouchingIt(t *testing.T) {
	m := &Machine{StateCount: 5}
	m.PushTransition(Transition{From: End{0, nil}, To: End{3, nil}, Dir: Stay})
	m.PushTransition(Transition{From: End{3, nil}, To: End{4, nil}, Dir: Right})

	m.removeState(3)

	require.Equal(t, 4, m.StateCount)
	require.Empty(t, m.Transitions)
}

func TestSimplifyPropagatesSymbolForward(t *testing.T) {
	m := &Machine{StateCount: 3}
	m.PushTransition(Transition{From: End{0, strPtr("A")}, To: End{1, nil}, Dir: Right})

	m.Simplify()

	require.Equal(t, 3, m.StateCount)
	require.Len(t, m.Transitions, 1)
	tr := m.Transitions[0]
	require.Equal(t, End{0, strPtr("A")}, tr.From)
	require.NotNil(t, tr.To.Symbol)
	require.Equal(t, "A", *tr.To.Symbol)
	require.Equal(t, Right, tr.Dir)
}

func TestSimplifyInlinesSingleInOutState(t *testing.T) {
	m := &Machine{StateCount: 4}
	m.PushTransition(Transition{From: End{0, nil}, To: End{3, nil}, Dir: Stay})
	m.PushTransition(Transition{From: End{3, nil}, To: End{1, strPtr("A")}, Dir: Right})

	m.Simplify()

	require.Equal(t, 3, m.StateCount)
	require.Len(t, m.Transitions, 1)
	tr := m.Transitions[0]
	require.Equal(t, 0, tr.From.State)
	require.Nil(t, tr.From.Symbol)
	require.Equal(t, 1, tr.To.State)
	require.Equal(t, "A", *tr.To.Symbol)
	require.Equal(t, Right, tr.Dir)
}

func TestMergeTransitionsRejectsNonAdjacentStates(t *testing.T) {
	incoming := Transition{From: End{0, nil}, To: End{3, nil}, Dir: Stay}
	outgoing := Transition{From: End{4, nil}, To: End{1, nil}, Dir: Right}

	_, ok := mergeTransitions(incoming, outgoing)
	require.False(t, ok)
}
