package token

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLookupKeyword(t *testing.T) {
	tests := []struct {
		lexeme string
		want   Type
		ok     bool
	}{
		{"match", MATCH, true},
		{"any", ANY, true},
		{"let", LET, true},
		{"in", IN, true},
		{"import", IMPORT, true},
		{"frobnicate", "", false},
	}

	for _, tt := range tests {
		got, ok := LookupKeyword(tt.lexeme)
		require.Equal(t, tt.ok, ok, tt.lexeme)
		if ok {
			require.Equal(t, tt.want, got, tt.lexeme)
		}
	}
}

func TestLocationString(t *testing.T) {
	loc := Location{Source: "prog.tmc", Line: 3, Column: 7}
	require.Equal(t, "prog.tmc:3:7", loc.String())
}

func TestTokenString(t *testing.T) {
	tok := Token{Type: IDENTIFIER, Lexeme: "tape", Loc: Location{Source: "a.tmc", Line: 1, Column: 1}}
	require.Contains(t, tok.String(), "tape")
}
