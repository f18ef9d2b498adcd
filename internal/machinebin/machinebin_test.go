package machinebin

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/funvibe/tmc/internal/machine"
)

func strPtr(s string) *string { return &s }

func TestEncodeDecodeRoundTrip(t *testing.T) {
	m := &machine.Machine{
		StateCount: 4,
		Transitions: []machine.Transition{
			{From: machine.End{State: 0, Symbol: nil}, To: machine.End{State: 3, Symbol: strPtr("A")}, Dir: machine.Right},
			{From: machine.End{State: 3, Symbol: strPtr("")}, To: machine.End{State: 1, Symbol: nil}, Dir: machine.Stay},
		},
	}

	data, err := Encode(m)
	require.NoError(t, err)
	require.Equal(t, []byte("TMCB"), data[:4])
	require.Equal(t, byte(0x01), data[4])

	decoded, err := Decode(data)
	require.NoError(t, err)
	require.Equal(t, m.StateCount, decoded.StateCount)
	require.Len(t, decoded.Transitions, 2)

	require.Equal(t, 0, decoded.Transitions[0].From.State)
	require.Nil(t, decoded.Transitions[0].From.Symbol)
	require.Equal(t, 3, decoded.Transitions[0].To.State)
	require.Equal(t, "A", *decoded.Transitions[0].To.Symbol)
	require.Equal(t, machine.Right, decoded.Transitions[0].Dir)

	require.Equal(t, 3, decoded.Transitions[1].From.State)
	require.Equal(t, "", *decoded.Transitions[1].From.Symbol)
	require.Equal(t, 1, decoded.Transitions[1].To.State)
	require.Nil(t, decoded.Transitions[1].To.Symbol)
	require.Equal(t, machine.Stay, decoded.Transitions[1].Dir)
}

func TestDecodeRejectsBadMagic(t *testing.T) {
	_, err := Decode([]byte("XXXX\x01\x00\x00\x00\x00"))
	require.Error(t, err)
}

func TestDecodeRejectsShortData(t *testing.T) {
	_, err := Decode([]byte("TM"))
	require.Error(t, err)
}

func TestDecodeRejectsUnsupportedVersion(t *testing.T) {
	data := append([]byte("TMCB"), 0x02)
	_, err := Decode(data)
	require.Error(t, err)
}
