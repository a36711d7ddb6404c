package align

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// Snapshot is a serializable copy of a table's state. Saving a snapshot after
// one run and restoring it before the next keeps the column widths stable
// across runs.
type Snapshot struct {
	Widths    []int    `json:"widths" yaml:"widths"`
	Headers   []string `json:"headers,omitempty" yaml:"headers,omitempty"`
	Fill      string   `json:"fill,omitempty" yaml:"fill,omitempty"`
	Separator string   `json:"separator,omitempty" yaml:"separator,omitempty"`
	Rule      string   `json:"rule,omitempty" yaml:"rule,omitempty"`
}

// Snapshot returns a copy of the table state.
func (t *Table) Snapshot() Snapshot {
	return Snapshot{
		Widths:    slices.Clone(t.widths),
		Headers:   slices.Clone(t.headers),
		Fill:      string(t.Fill()),
		Separator: string(t.Separator()),
		Rule:      string(t.RuleChar()),
	}
}

// Restore replaces the table state with s. Empty characters in s keep the
// current setting.
func (t *Table) Restore(s Snapshot) error {
	for i, w := range s.Widths {
		if w < 0 {
			return fmt.Errorf("%w: negative width %d for column %d", ErrInvalidState, w, i)
		}
	}
	fill, err := snapshotChar("fill", s.Fill, t.Fill())
	if err != nil {
		return err
	}
	sep, err := snapshotChar("separator", s.Separator, t.Separator())
	if err != nil {
		return err
	}
	rule, err := snapshotChar("rule", s.Rule, t.RuleChar())
	if err != nil {
		return err
	}
	t.widths = slices.Clone(s.Widths)
	t.headers = slices.Clone(s.Headers)
	t.fill, t.sep, t.rule = fill, sep, rule
	return nil
}

func snapshotChar(name, s string, def rune) (rune, error) {
	if s == "" {
		return def, nil
	}
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || size != len(s) {
		return 0, fmt.Errorf("%w: %s must be a single character, got %q", ErrInvalidState, name, s)
	}
	return r, nil
}

// SaveState writes the table state to w as YAML.
func (t *Table) SaveState(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(t.Snapshot()); err != nil {
		return err
	}
	return enc.Close()
}

// LoadState reads YAML written by [Table.SaveState] and restores it. An
// empty input leaves the table unchanged.
func (t *Table) LoadState(r io.Reader) error {
	var s Snapshot
	if err := yaml.NewDecoder(r).Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%w: %w", ErrInvalidState, err)
	}
	return t.Restore(s)
}
