package align

import (
	"errors"
	"io"
	"slices"
)

// Sentinel errors for programmatic error handling.
var (
	ErrAttached     = errors.New("table already attached")
	ErrDetached     = errors.New("proxy detached")
	ErrInvalidState = errors.New("invalid table state")
)

const (
	defaultFill = ' '
	defaultSep  = ' '
	defaultRule = '-'
)

// Table holds the alignment state shared by every row written to it: the
// widest cell seen so far in each column, the column headers, and the
// formatting characters. The zero value is ready to use.
//
// A Table outlives the proxies attached to it, so one Table can be attached
// to several writers in turn and keep its column widths between them.
type Table struct {
	widths   []int
	headers  []string
	fill     rune
	sep      rune
	rule     rune
	attached bool
}

// New returns an empty table with the default formatting characters.
func New() *Table {
	return &Table{fill: defaultFill, sep: defaultSep, rule: defaultRule}
}

// Attach binds the table to w and returns the proxy through which all output
// must flow. Only one proxy may be live per table; call [Proxy.Detach]
// before attaching again.
func (t *Table) Attach(w io.Writer) (*Proxy, error) {
	if t.attached {
		return nil, ErrAttached
	}
	t.attached = true
	return &Proxy{
		t:          t,
		w:          &counter{w: w},
		atRowStart: true,
	}, nil
}

// Widths returns a copy of the known column widths.
func (t *Table) Widths() []int { return slices.Clone(t.widths) }

// Headers returns a copy of the declared column headers.
func (t *Table) Headers() []string { return slices.Clone(t.headers) }

// Columns returns the number of columns with a known width.
func (t *Table) Columns() int { return len(t.widths) }

// Fill returns the padding character.
func (t *Table) Fill() rune {
	if t.fill == 0 {
		return defaultFill
	}
	return t.fill
}

// Separator returns the character written between columns.
func (t *Table) Separator() rune {
	if t.sep == 0 {
		return defaultSep
	}
	return t.sep
}

// RuleChar returns the character used by horizontal rules.
func (t *Table) RuleChar() rune {
	if t.rule == 0 {
		return defaultRule
	}
	return t.rule
}

// growWidths makes sure column col has a width entry.
func (t *Table) growWidths(col int) {
	if col >= len(t.widths) {
		t.widths = append(t.widths, make([]int, col+1-len(t.widths))...)
	}
}

func (t *Table) growHeaders(col int) {
	if col >= len(t.headers) {
		t.headers = append(t.headers, make([]string, col+1-len(t.headers))...)
	}
}

func (t *Table) width(col int) int {
	if col < len(t.widths) {
		return t.widths[col]
	}
	return 0
}
