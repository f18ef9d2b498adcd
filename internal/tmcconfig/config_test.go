package tmcconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseConfigAppliesDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte(`alphabet: ["A", "B"]`), "test.yaml")
	require.NoError(t, err)
	require.Equal(t, []string{"A", "B"}, cfg.Alphabet)
	require.Equal(t, FormatAwmorp, cfg.Format)
}

func TestParseConfigRejectsUnknownFormat(t *testing.T) {
	_, err := ParseConfig([]byte(`format: "xml"`), "test.yaml")
	require.Error(t, err)
}

func TestParseConfigRejectsMultiCharAlphabetSymbol(t *testing.T) {
	_, err := ParseConfig([]byte(`alphabet: ["AB"]`), "test.yaml")
	require.Error(t, err)
}

func TestParseConfigRejectsReservedAlphabetSymbol(t *testing.T) {
	_, err := ParseConfig([]byte(`alphabet: ["_"]`), "test.yaml")
	require.Error(t, err)
}

func TestParseConfigKeepsExplicitBinaryFormat(t *testing.T) {
	cfg, err := ParseConfig([]byte(`format: "binary"`), "test.yaml")
	require.NoError(t, err)
	require.Equal(t, FormatBinary, cfg.Format)
}

func TestLoadConfigReadsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".tmc.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`alphabet: ["A"]`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, []string{"A"}, cfg.Alphabet)
}

func TestFindConfigWalksUpToParent(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".tmc.yaml"), []byte(`alphabet: ["A"]`), 0o644))

	sub := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	found, err := FindConfig(sub)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, ".tmc.yaml"), found)
}

func TestFindConfigReturnsEmptyWhenNotFound(t *testing.T) {
	dir := t.TempDir()
	found, err := FindConfig(dir)
	require.NoError(t, err)
	require.Empty(t, found)
}
