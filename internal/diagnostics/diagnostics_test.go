package diagnostics

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/funvibe/tmc/internal/token"
)

func TestCompileErrorFormatting(t *testing.T) {
	loc := token.Location{Source: "prog.tmc", Line: 4, Column: 2}
	err := New(PhaseType, ErrTypeUndefinedIdentifier, loc, "foo")

	require.Equal(t, "prog.tmc: [type] error at 4:2 [T001]: undefined identifier \"foo\"", err.Error())
}

func TestCompileErrorWithHint(t *testing.T) {
	loc := token.Location{Source: "prog.tmc", Line: 1, Column: 1}
	err := New(PhaseOwnership, ErrOwnershipUseAfterMove, loc, "t").WithHint("read it before moving it again")

	require.Contains(t, err.Error(), "(read it before moving it again)")
}

func TestUnknownCodeFallsBackToCode(t *testing.T) {
	loc := token.Location{Source: "prog.tmc", Line: 1, Column: 1}
	err := New(PhaseConfig, ErrorCode("X999"), loc)

	require.Contains(t, err.Error(), "X999")
}
