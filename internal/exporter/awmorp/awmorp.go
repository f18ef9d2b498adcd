// Package awmorp exports a machine.Machine to the line format used by
// the Turing machine emulator at https://github.com/awmorp/turing,
// grounded on original_source's exporter/awmorp.rs.
package awmorp

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/funvibe/tmc/internal/machine"
)

func convertState(state int) string {
	switch state {
	case 0:
		return "0"
	case 1:
		return "halt-accept"
	case 2:
		return "halt-reject"
	default:
		return strconv.Itoa(state - 2)
	}
}

func convertSymbol(s *string) (rune, error) {
	if s == nil {
		return '*', nil
	}
	if *s == "" {
		return '_', nil
	}
	runes := []rune(*s)
	if len(runes) > 1 {
		return 0, fmt.Errorf("unsupported symbol %q, only one character allowed", *s)
	}
	c := runes[0]
	switch c {
	case '_', ';', '*':
		return 0, fmt.Errorf("unsupported symbol %q, reserved symbol", *s)
	}
	if unicode.IsSpace(c) {
		return 0, fmt.Errorf("unsupported symbol %q, whitespace not allowed", *s)
	}
	return c, nil
}

func convertDirection(dir machine.Direction) string {
	switch dir {
	case machine.Left:
		return "l"
	case machine.Right:
		return "r"
	default:
		return "*"
	}
}

// Export renders the machine as sorted `from_state from_sym to_sym dir
// to_state` lines.
func Export(m *machine.Machine) (string, error) {
	transitions := append([]machine.Transition(nil), m.Transitions...)
	sort.SliceStable(transitions, func(i, j int) bool {
		if transitions[i].From.State != transitions[j].From.State {
			return transitions[i].From.State < transitions[j].From.State
		}
		return transitions[i].To.State < transitions[j].To.State
	})

	var b strings.Builder
	for _, t := range transitions {
		fromSym, err := convertSymbol(t.From.Symbol)
		if err != nil {
			return "", err
		}
		toSym, err := convertSymbol(t.To.Symbol)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "%s %c %c %s %s\n",
			convertState(t.From.State), fromSym, toSym, convertDirection(t.Dir), convertState(t.To.State))
	}
	return b.String(), nil
}
