package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned for config files or flags that cannot be used.
var ErrInvalidConfig = errors.New("invalid config")

// Config controls how input lines are turned into table rows.
type Config struct {
	// Fill, Separator, and Rule are single characters. Empty keeps the
	// table's current setting.
	Fill      string `yaml:"fill" toml:"fill"`
	Separator string `yaml:"separator" toml:"separator"`
	Rule      string `yaml:"rule" toml:"rule"`

	// PageSize is the number of output lines between repeated headers.
	// Zero uses the terminal height when writing to a terminal; negative
	// disables paging.
	PageSize int `yaml:"page_size" toml:"page_size"`

	// Lines starting with these prefixes declare headers, draw a rule, or
	// are dropped. An empty prefix is disabled.
	HeaderPrefix  string `yaml:"header_prefix" toml:"header_prefix"`
	RulePrefix    string `yaml:"rule_prefix" toml:"rule_prefix"`
	CommentPrefix string `yaml:"comment_prefix" toml:"comment_prefix"`

	Headers []HeaderConfig `yaml:"headers" toml:"headers"`
}

// HeaderConfig declares one column header and its minimum width.
type HeaderConfig struct {
	Label string `yaml:"label" toml:"label"`
	Width int    `yaml:"width" toml:"width"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		HeaderPrefix: ";",
		RulePrefix:   "--",
	}
}

// LoadConfig decodes the file at path over cfg. The format is chosen by
// extension: .yaml and .yml for YAML, .toml for TOML.
func LoadConfig(path string, cfg *Config) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		dec := yaml.NewDecoder(f)
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: %s: %w", ErrInvalidConfig, path, err)
		}
	case ".toml":
		md, err := toml.DecodeFile(path, cfg)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidConfig, path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return fmt.Errorf("%w: %s: unknown key %q", ErrInvalidConfig, path, undecoded[0].String())
		}
	default:
		return fmt.Errorf("%w: %s: unsupported extension %q", ErrInvalidConfig, path, ext)
	}
	return nil
}

// Validate reports the first problem with cfg.
func (c Config) Validate() error {
	for _, f := range []struct{ name, value string }{
		{"fill", c.Fill},
		{"separator", c.Separator},
		{"rule", c.Rule},
	} {
		if _, err := parseChar(f.name, f.value); err != nil {
			return err
		}
	}
	for i, h := range c.Headers {
		if h.Width < 0 {
			return fmt.Errorf("%w: header %d: negative width %d", ErrInvalidConfig, i, h.Width)
		}
		if strings.ContainsAny(h.Label, "\t\n") {
			return fmt.Errorf("%w: header %d: label %q contains a tab or newline", ErrInvalidConfig, i, h.Label)
		}
	}
	return nil
}

// parseChar returns the single character in s, or 0 when s is empty.
func parseChar(name, s string) (rune, error) {
	if s == "" {
		return 0, nil
	}
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || size != len(s) || r == '\n' {
		return 0, fmt.Errorf("%w: %s must be a single character, got %q", ErrInvalidConfig, name, s)
	}
	return r, nil
}

// parseHeader parses a "label[:width]" flag value.
func parseHeader(s string) (HeaderConfig, error) {
	i := strings.LastIndexByte(s, ':')
	if i < 0 {
		return HeaderConfig{Label: s}, nil
	}
	w, err := strconv.Atoi(s[i+1:])
	if err != nil || w < 0 {
		return HeaderConfig{}, fmt.Errorf("%w: header %q: width must be a non-negative integer", ErrInvalidConfig, s)
	}
	return HeaderConfig{Label: s[:i], Width: w}, nil
}
