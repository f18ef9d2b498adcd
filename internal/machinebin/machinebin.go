// Package machinebin serializes a machine.Machine to a compact binary
// bundle for tools that want to consume a compiled tmc program without
// re-parsing its awmorp text export. It mirrors the magic-number +
// version-byte framing the teacher repo's internal/vm bundle format
// uses, but encodes each transition's fields with funbit bitstring
// segments instead of gob, the way mcgru-funxy's funbit acceptance
// tests encode length-prefixed variable-size records.
package machinebin

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/funvibe/funbit/pkg/funbit"

	"github.com/funvibe/tmc/internal/machine"
)

var magic = [4]byte{'T', 'M', 'C', 'B'}

const formatVersion byte = 0x01

// Encode renders a machine as a self-contained binary blob: a magic
// number and version byte, the state count and transition count, then
// one length-prefixed funbit-encoded record per transition.
func Encode(m *machine.Machine) ([]byte, error) {
	buf := new(bytes.Buffer)
	buf.Write(magic[:])
	buf.WriteByte(formatVersion)

	if err := binary.Write(buf, binary.BigEndian, uint32(m.StateCount)); err != nil {
		return nil, err
	}
	if err := binary.Write(buf, binary.BigEndian, uint32(len(m.Transitions))); err != nil {
		return nil, err
	}

	for _, t := range m.Transitions {
		payload, err := encodeTransition(t)
		if err != nil {
			return nil, fmt.Errorf("machinebin: encoding transition: %w", err)
		}
		if err := binary.Write(buf, binary.BigEndian, uint32(len(payload))); err != nil {
			return nil, err
		}
		buf.Write(payload)
	}

	return buf.Bytes(), nil
}

// Decode parses a blob produced by Encode back into a machine.Machine.
func Decode(data []byte) (*machine.Machine, error) {
	if len(data) < 5 {
		return nil, fmt.Errorf("machinebin: data too short")
	}
	if !bytes.Equal(data[:4], magic[:]) {
		return nil, fmt.Errorf("machinebin: bad magic number")
	}
	if data[4] != formatVersion {
		return nil, fmt.Errorf("machinebin: unsupported format version %d", data[4])
	}

	r := bytes.NewReader(data[5:])
	var stateCount, count uint32
	if err := binary.Read(r, binary.BigEndian, &stateCount); err != nil {
		return nil, err
	}
	if err := binary.Read(r, binary.BigEndian, &count); err != nil {
		return nil, err
	}

	m := &machine.Machine{StateCount: int(stateCount)}
	for i := uint32(0); i < count; i++ {
		var size uint32
		if err := binary.Read(r, binary.BigEndian, &size); err != nil {
			return nil, err
		}
		payload := make([]byte, size)
		if _, err := r.Read(payload); err != nil {
			return nil, err
		}
		t, err := decodeTransition(payload)
		if err != nil {
			return nil, fmt.Errorf("machinebin: decoding transition %d: %w", i, err)
		}
		m.Transitions = append(m.Transitions, t)
	}
	return m, nil
}

func encodeEnd(b *funbit.Builder, end machine.End) {
	funbit.AddInteger(b, end.State, funbit.WithSize(32))
	has := 0
	var symBytes []byte
	if end.Symbol != nil {
		has = 1
		symBytes = []byte(*end.Symbol)
	}
	funbit.AddInteger(b, has, funbit.WithSize(8))
	funbit.AddInteger(b, len(symBytes), funbit.WithSize(8))
	funbit.AddBinary(b, symBytes)
}

func encodeTransition(t machine.Transition) ([]byte, error) {
	b := funbit.NewBuilder()
	encodeEnd(b, t.From)
	encodeEnd(b, t.To)
	funbit.AddInteger(b, int(t.Dir), funbit.WithSize(8))

	bs, err := funbit.Build(b)
	if err != nil {
		return nil, err
	}
	return bs.ToBytes(), nil
}

func decodeTransition(data []byte) (machine.Transition, error) {
	bs := funbit.NewBitStringFromBytes(data)
	matcher := funbit.NewMatcher()

	var fromState, fromHas, fromLen int
	var fromSym []byte
	funbit.Integer(matcher, &fromState, funbit.WithSize(32))
	funbit.Integer(matcher, &fromHas, funbit.WithSize(8))
	funbit.Integer(matcher, &fromLen, funbit.WithSize(8))
	funbit.RegisterVariable(matcher, "fromLen", &fromLen)
	funbit.Binary(matcher, &fromSym, funbit.WithDynamicSizeExpression("fromLen*8"), funbit.WithUnit(1))

	var toState, toHas, toLen int
	var toSym []byte
	funbit.Integer(matcher, &toState, funbit.WithSize(32))
	funbit.Integer(matcher, &toHas, funbit.WithSize(8))
	funbit.Integer(matcher, &toLen, funbit.WithSize(8))
	funbit.RegisterVariable(matcher, "toLen", &toLen)
	funbit.Binary(matcher, &toSym, funbit.WithDynamicSizeExpression("toLen*8"), funbit.WithUnit(1))

	var dir int
	funbit.Integer(matcher, &dir, funbit.WithSize(8))

	if _, err := funbit.Match(matcher, bs); err != nil {
		return machine.Transition{}, err
	}

	t := machine.Transition{
		From: machine.End{State: fromState},
		To:   machine.End{State: toState},
		Dir:  machine.Direction(dir),
	}
	if fromHas != 0 {
		s := string(fromSym)
		t.From.Symbol = &s
	}
	if toHas != 0 {
		s := string(toSym)
		t.To.Symbol = &s
	}
	return t, nil
}
