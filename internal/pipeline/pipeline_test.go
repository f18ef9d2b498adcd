package pipeline

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/funvibe/tmc/internal/machine"
)

func TestCompileIdentityProgram(t *testing.T) {
	res, err := Compile("t: t", "", "prog.tmc", Options{Alphabet: []string{"A", "B"}})
	require.Nil(t, err)
	require.NotNil(t, res.Machine)
	require.Equal(t, 3, res.Machine.StateCount)
	require.Equal(t, []machine.Transition{
		{From: machine.End{State: 0, Symbol: nil}, To: machine.End{State: 1, Symbol: nil}, Dir: machine.Stay},
	}, res.Machine.Transitions)
}

func TestCompileMoveProgram(t *testing.T) {
	res, err := Compile("t: next t", "", "prog.tmc", Options{Alphabet: []string{"A", "B"}})
	require.Nil(t, err)
	require.Equal(t, []machine.Transition{
		{From: machine.End{State: 0, Symbol: nil}, To: machine.End{State: 1, Symbol: nil}, Dir: machine.Right},
	}, res.Machine.Transitions)
}

func TestCompileSetProgram(t *testing.T) {
	res, err := Compile("t: set 'A' t", "", "prog.tmc", Options{Alphabet: []string{"A", "B"}})
	require.Nil(t, err)
	require.Len(t, res.Machine.Transitions, 1)
	tr := res.Machine.Transitions[0]
	require.Equal(t, 0, tr.From.State)
	require.Equal(t, 1, tr.To.State)
	require.Equal(t, "A", *tr.To.Symbol)
	require.Equal(t, machine.Stay, tr.Dir)
}

func TestCompileStopsAtLexError(t *testing.T) {
	res, err := Compile("'A\n", "", "prog.tmc", Options{})
	require.NotNil(t, err)
	require.Equal(t, "L001", string(err.Code))
	require.Nil(t, res.Machine)
}

func TestCompileStopsAtParseError(t *testing.T) {
	res, err := Compile("t: t )", "", "prog.tmc", Options{})
	require.NotNil(t, err)
	require.Equal(t, "P001", string(err.Code))
	require.Nil(t, res.Parsed.Node)
	require.Nil(t, res.Machine)
}

func TestCompileStopsAtTypeError(t *testing.T) {
	res, err := Compile("t: undefined_name", "", "prog.tmc", Options{})
	require.NotNil(t, err)
	require.Equal(t, "T001", string(err.Code))
	require.Nil(t, res.Machine)
}
