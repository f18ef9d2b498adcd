package stdlib

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLookupFindsEmbeddedModule(t *testing.T) {
	src, ok := Lookup("identity")
	require.True(t, ok)
	require.Contains(t, src, "x: x")
}

func TestLookupMissingModule(t *testing.T) {
	_, ok := Lookup("does-not-exist")
	require.False(t, ok)
}

func TestModulesContainsBool(t *testing.T) {
	src, ok := Modules["bool"]
	require.True(t, ok)
	require.Contains(t, src, "'T'")
	require.Contains(t, src, "'F'")
}
