// Package tmcconfig loads the optional .tmc.yaml project configuration
// file, grounded on the teacher's internal/ext funxy.yaml loader:
// the same find-upward/load/parse/validate/defaults shape, carried
// over to a much smaller schema since tmc has no Go-binding surface.
package tmcconfig

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/funvibe/tmc/internal/config"
)

// Config represents the top-level .tmc.yaml configuration.
type Config struct {
	// Alphabet is the default tape alphabet used to expand `any`
	// patterns, overridden by the --alphabet CLI flag.
	Alphabet []string `yaml:"alphabet"`

	// Format names an export format, "awmorp" or "binary". It is
	// validated here; the CLI takes the format from --format only.
	Format string `yaml:"format,omitempty"`

	// Imports lists directories for `import 'name'` statements. It is
	// parsed here; neither the lexer nor the CLI searches them.
	Imports []string `yaml:"imports,omitempty"`
}

const (
	FormatAwmorp = "awmorp"
	FormatBinary = "binary"
)

// LoadConfig reads and parses a .tmc.yaml file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return ParseConfig(data, path)
}

// ParseConfig parses .tmc.yaml content from bytes. The path argument
// is used only for error messages.
func ParseConfig(data []byte, path string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.validate(path); err != nil {
		return nil, err
	}
	cfg.setDefaults()
	return &cfg, nil
}

// FindConfig searches for .tmc.yaml starting from dir and walking up
// to parent directories, similar to how .gitignore is found. Returns
// the path to the config file, or an empty string if none was found.
func FindConfig(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}

	for {
		candidate := filepath.Join(dir, ".tmc.yaml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		candidate = filepath.Join(dir, ".tmc.yml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

func (c *Config) validate(path string) error {
	if c.Format != "" && c.Format != FormatAwmorp && c.Format != FormatBinary {
		return fmt.Errorf("%s: format must be %q or %q, got %q", path, FormatAwmorp, FormatBinary, c.Format)
	}
	for i, sym := range c.Alphabet {
		if len(sym) > 1 {
			return fmt.Errorf("%s: alphabet[%d]: %q is not a single character", path, i, sym)
		}
		for _, c := range config.ReservedExportChars {
			if len(sym) == 1 && rune(sym[0]) == c {
				return fmt.Errorf("%s: alphabet[%d]: %q is a reserved symbol", path, i, sym)
			}
		}
	}
	return nil
}

func (c *Config) setDefaults() {
	if c.Format == "" {
		c.Format = FormatAwmorp
	}
}
