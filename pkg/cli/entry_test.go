package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/funvibe/tmc/internal/tmcconfig"
)

func TestParseFlagsDefaults(t *testing.T) {
	f, err := parseFlags([]string{"tmc", "prog.tmc"})
	require.NoError(t, err)
	require.Equal(t, "prog.tmc", f.Path)
	require.Equal(t, tmcconfig.FormatAwmorp, f.Format)
	require.False(t, f.Stdin)
}

func TestParseFlagsAlphabetSplit(t *testing.T) {
	f, err := parseFlags([]string{"tmc", "--alphabet", "A,B,C", "prog.tmc"})
	require.NoError(t, err)
	require.Equal(t, []string{"A", "B", "C"}, f.Alphabet)
}

func TestParseFlagsAlphabetEqualsForm(t *testing.T) {
	f, err := parseFlags([]string{"tmc", "--alphabet=A,B"})
	require.NoError(t, err)
	require.Equal(t, []string{"A", "B"}, f.Alphabet)
}

func TestParseFlagsFormatEqualsForm(t *testing.T) {
	f, err := parseFlags([]string{"tmc", "--format=binary"})
	require.NoError(t, err)
	require.Equal(t, tmcconfig.FormatBinary, f.Format)
}

func TestParseFlagsRejectsBadFormat(t *testing.T) {
	_, err := parseFlags([]string{"tmc", "--format=xml"})
	require.Error(t, err)
}

func TestParseFlagsRejectsUnknownFlag(t *testing.T) {
	_, err := parseFlags([]string{"tmc", "--bogus"})
	require.Error(t, err)
}

func TestParseFlagsRejectsExtraPositionalArgument(t *testing.T) {
	_, err := parseFlags([]string{"tmc", "a.tmc", "b.tmc"})
	require.Error(t, err)
}

func TestParseFlagsDumpSwitches(t *testing.T) {
	f, err := parseFlags([]string{"tmc", "--tokens", "--parser", "--annotated", "--simplified"})
	require.NoError(t, err)
	require.True(t, f.Tokens)
	require.True(t, f.Parser)
	require.True(t, f.Annotated)
	require.True(t, f.Simplified)
}

func TestResolveAlphabetPrefersFlag(t *testing.T) {
	f := Flags{Alphabet: []string{"X", "Y"}}
	require.Equal(t, []string{"X", "Y"}, resolveAlphabet(f, t.TempDir()))
}

func TestResolveAlphabetFallsBackToConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".tmc.yaml"), []byte(`alphabet: ["Q", "R"]`), 0o644))

	f := Flags{}
	require.Equal(t, []string{"Q", "R"}, resolveAlphabet(f, dir))
}

func TestReadSourceReadsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.tmc")
	require.NoError(t, os.WriteFile(path, []byte("t: t"), 0o644))

	src, srcDir, name, err := readSource(Flags{Path: path})
	require.NoError(t, err)
	require.Equal(t, "t: t", src)
	require.Equal(t, dir, srcDir)
	require.Equal(t, "prog", name)
}
