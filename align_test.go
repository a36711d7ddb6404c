package align_test

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/bjaus/align"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Helpers ---

type errWriter struct{}

func (e *errWriter) Write([]byte) (int, error) {
	return 0, errWriteFailed
}

// failAfterN fails on the (n+1)th call to Write.
type failAfterN struct {
	n     int
	calls int
	buf   bytes.Buffer
}

func (f *failAfterN) Write(p []byte) (int, error) {
	if f.calls >= f.n {
		return 0, errWriteFailed
	}
	f.calls++
	return f.buf.Write(p)
}

var errWriteFailed = errors.New("write failed")

func attach(t *testing.T) (*align.Table, *align.Proxy, *bytes.Buffer) {
	t.Helper()
	tbl := align.New()
	var buf bytes.Buffer
	p, err := tbl.Attach(&buf)
	require.NoError(t, err)
	return tbl, p, &buf
}

// ============================================================
// Tests
// ============================================================

func TestTabPadsToWidestCell(t *testing.T) {
	t.Parallel()
	tbl, p, buf := attach(t)
	require.NoError(t, p.Print("some", align.Tab, "data", align.EndRow))
	require.NoError(t, p.Print("some", align.Tab, "longer", align.Tab, "third", align.EndRow))
	require.NoError(t, p.Print("o", align.Tab, "hai", align.EndRow))

	assert.Equal(t, "some data\nsome longer third\no    hai\n", buf.String())
	assert.Equal(t, []int{4, 6, 5}, tbl.Widths())
}

func TestEndRowOnEmptyRowWritesNothing(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		ops  []any
		want string
	}{
		"at start": {
			ops:  []any{align.EndRow, align.EndRow},
			want: "",
		},
		"after a row": {
			ops:  []any{"a", align.EndRow, align.EndRow, align.EndRow},
			want: "a\n",
		},
		"after a tab": {
			ops:  []any{"a", align.Tab, align.EndRow, align.EndRow},
			want: "a \n",
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, p, buf := attach(t)
			require.NoError(t, p.Print(tt.ops...))
			assert.Equal(t, tt.want, buf.String())
			assert.Equal(t, 0, p.Col())
		})
	}
}

func TestRawMatchesExplicitCells(t *testing.T) {
	t.Parallel()
	rawTbl, rawP, rawBuf := attach(t)
	require.NoError(t, rawP.Raw("a\tbb\tc"))
	require.NoError(t, rawP.EndRow())
	require.NoError(t, rawP.Raw("aaa\tb\tcc\n"))

	opTbl, opP, opBuf := attach(t)
	require.NoError(t, opP.Print("a", align.Tab, "bb", align.Tab, "c", align.EndRow))
	require.NoError(t, opP.Print("aaa", align.Tab, "b", align.Tab, "cc", align.EndRow))

	assert.Equal(t, opBuf.String(), rawBuf.String())
	assert.Equal(t, opTbl.Widths(), rawTbl.Widths())
	assert.Equal(t, []int{3, 2, 2}, rawTbl.Widths())
}

func TestRaw(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		input   string
		want    string
		wantCol int
	}{
		"empty":            {input: "", want: "", wantCol: 0},
		"single cell":      {input: "abc", want: "abc", wantCol: 0},
		"open last cell":   {input: "a\tb", want: "a b", wantCol: 1},
		"trailing tab":     {input: "a\t", want: "a ", wantCol: 1},
		"two rows":         {input: "a\tb\ncc\td\n", want: "a b\ncc d\n", wantCol: 0},
		"empty cells":      {input: "\t\tx\n", want: "  x\n", wantCol: 0},
		"blank lines":      {input: "a\n\n\nb\n", want: "a\nb\n", wantCol: 0},
		"leading newline":  {input: "\na\n", want: "a\n", wantCol: 0},
		"open after row":   {input: "a\tb\nc", want: "a b\nc", wantCol: 0},
		"multi-byte cells": {input: "héllo\tx\nab\ty\n", want: "héllo x\nab    y\n", wantCol: 0},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, p, buf := attach(t)
			require.NoError(t, p.Raw(tt.input))
			assert.Equal(t, tt.want, buf.String())
			assert.Equal(t, tt.wantCol, p.Col())
		})
	}
}

func TestRawHeaders(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		input       string
		wantHeaders []string
		wantWidths  []int
		wantCol     int
	}{
		"empty": {
			input:   "",
			wantCol: 0,
		},
		"first line only": {
			input:       "Name\tAge\nignored\tline\n",
			wantHeaders: []string{"Name", "Age"},
			wantWidths:  []int{4, 3},
			wantCol:     0,
		},
		"no newline": {
			input:       "a\tbb",
			wantHeaders: []string{"a", "bb"},
			wantWidths:  []int{1, 2},
			wantCol:     2,
		},
		"empty label": {
			input:       "\tx\n",
			wantHeaders: []string{"", "x"},
			wantWidths:  []int{0, 1},
			wantCol:     0,
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			tbl, p, buf := attach(t)
			require.NoError(t, p.RawHeaders(tt.input))
			assert.Empty(t, buf.String())
			assert.Equal(t, tt.wantHeaders, tbl.Headers())
			assert.Equal(t, tt.wantWidths, tbl.Widths())
			assert.Equal(t, tt.wantCol, p.Col())
		})
	}
}

func TestHeaderRowAfterDeclaration(t *testing.T) {
	t.Parallel()
	tbl, p, buf := attach(t)
	require.NoError(t, p.SetHeader("Name", 0))
	require.NoError(t, p.SetHeader("Age", 0))
	require.NoError(t, p.EndRow())
	assert.Empty(t, buf.String())

	require.NoError(t, p.Print("Al", align.Tab, "30", align.EndRow))
	require.NoError(t, p.HeaderRow())

	assert.Equal(t, "Al   30\nName Age\n", buf.String())
	assert.Equal(t, []int{4, 3}, tbl.Widths())
}

func TestHeaderRowPadsToWiderData(t *testing.T) {
	t.Parallel()
	_, p, buf := attach(t)
	require.NoError(t, p.Print(align.Header{Label: "first", MinWidth: 10}, align.Header{Label: "second"}, align.Header{Label: "x"}, align.EndRow))
	require.NoError(t, p.Print("hi", align.Tab, "toolongvalue", align.Tab, "y", align.EndRow))
	require.NoError(t, p.Print(align.HeaderRow))

	assert.Equal(t,
		"hi         toolongvalue y\n"+
			"first      second       x\n",
		buf.String())
}

func TestHeaderRowMidRow(t *testing.T) {
	t.Parallel()
	_, p, buf := attach(t)
	require.NoError(t, p.RawHeaders("a\tb\tc\n"))
	require.NoError(t, p.Raw("xx\tyy\tzz\n"))
	require.NoError(t, p.Print("1", align.HeaderRow))

	assert.Equal(t, "xx yy zz\n1  b  c\n", buf.String())
}

func TestHeaderRowDegradesToEndRow(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		setup []any
		op    align.Op
		want  string
	}{
		"header row without columns": {
			setup: []any{"x"},
			op:    align.HeaderRow,
			want:  "x\n",
		},
		"header row with one column": {
			setup: []any{align.Header{Label: "only"}, align.EndRow, "x"},
			op:    align.HeaderRow,
			want:  "x\n",
		},
		"rule without columns": {
			setup: []any{"x"},
			op:    align.HRule,
			want:  "x\n",
		},
		"rule on last column": {
			setup: []any{"a", align.Tab, "b", align.EndRow, "c", align.Tab},
			op:    align.HRule,
			want:  "a b\nc \n",
		},
		"empty row": {
			op:   align.HeaderRow,
			want: "",
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, p, buf := attach(t)
			require.NoError(t, p.Print(tt.setup...))
			require.NoError(t, p.Print(tt.op))
			assert.Equal(t, tt.want, buf.String())
			assert.Equal(t, 0, p.Col())
		})
	}
}

func TestHRuleSpansAllColumns(t *testing.T) {
	t.Parallel()
	tbl, p, buf := attach(t)
	require.NoError(t, p.Raw("abcd\tx\thello!\n"))
	require.NoError(t, p.Raw("a\tyz\tb\n"))
	require.Equal(t, []int{4, 2, 6}, tbl.Widths())

	buf.Reset()
	require.NoError(t, p.HRule())
	assert.Equal(t, "----"+" "+"--"+" "+"------"+"\n", buf.String())
}

func TestHRuleMidRow(t *testing.T) {
	t.Parallel()
	_, p, buf := attach(t)
	require.NoError(t, p.Raw("aa\tbb\tcc\n"))
	require.NoError(t, p.Print("x", align.HRule, "oha", align.EndRow))
	assert.Equal(t, "aa bb cc\nx  -- --\noha\n", buf.String())
}

func TestPassThroughCounting(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		write func(p *align.Proxy) error
		want  int
	}{
		"print int": {
			write: func(p *align.Proxy) error { return p.Print(12345) },
			want:  5,
		},
		"fprintf padded": {
			write: func(p *align.Proxy) error {
				_, err := fmt.Fprintf(p, "%-10d", 123)
				return err
			},
			want: 10,
		},
		"fprintf hex": {
			write: func(p *align.Proxy) error {
				_, err := fmt.Fprintf(p, "%x", 456)
				return err
			},
			want: 3,
		},
		"stringer": {
			write: func(p *align.Proxy) error { return p.Print(stringer("abcdef")) },
			want:  6,
		},
		"several writes": {
			write: func(p *align.Proxy) error {
				if _, err := p.WriteString("ab"); err != nil {
					return err
				}
				_, err := p.Write([]byte("cd"))
				return err
			},
			want: 4,
		},
		"multi-byte": {
			write: func(p *align.Proxy) error { return p.Print("日本語") },
			want:  3,
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			tbl, p, _ := attach(t)
			require.NoError(t, tt.write(p))
			require.NoError(t, p.Tab())
			assert.Equal(t, []int{tt.want}, tbl.Widths())
		})
	}
}

type stringer string

func (s stringer) String() string { return string(s) }

func TestWidthsOnlyGrow(t *testing.T) {
	t.Parallel()
	rows := [][]string{
		{"a", "bbb", "cc"},
		{"aaaa", "b"},
		{"", "", "", "dddddd"},
		{"aa", "bbbbb", "c", "d"},
	}
	tbl, p, _ := attach(t)
	want := []int{}
	for _, row := range rows {
		require.NoError(t, align.WriteRow(p, row...))
		for i, cell := range row {
			if i >= len(want) {
				want = append(want, 0)
			}
			want[i] = max(want[i], len(cell))
		}
		assert.Equal(t, want, tbl.Widths())
	}
}

func TestSetHeaderWidths(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		data     string
		label    string
		minWidth int
		want     int
	}{
		"label wins":     {label: "label", minWidth: 2, want: 5},
		"min width wins": {label: "ab", minWidth: 8, want: 8},
		"data wins":      {data: "wider data\n", label: "ab", minWidth: 3, want: 10},
		"empty label":    {label: "", minWidth: 2, want: 2},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			tbl, p, _ := attach(t)
			require.NoError(t, p.Raw(tt.data))
			require.NoError(t, p.SetHeader(tt.label, tt.minWidth))
			assert.Equal(t, []int{tt.want}, tbl.Widths())
			assert.Equal(t, []string{tt.label}, tbl.Headers())
			assert.Equal(t, 1, p.Col())
		})
	}
}

func TestReset(t *testing.T) {
	t.Parallel()
	tbl, p, buf := attach(t)
	require.NoError(t, p.Print(align.Header{Label: "long header"}, align.Header{Label: "x"}, align.EndRow))
	require.NoError(t, p.Print(align.Reset))
	assert.Empty(t, tbl.Widths())
	assert.Empty(t, tbl.Headers())

	require.NoError(t, p.Raw("a\tb\n"))
	assert.Equal(t, "a b\n", buf.String())
}

func TestResetHeaders(t *testing.T) {
	t.Parallel()
	tbl, p, buf := attach(t)
	require.NoError(t, p.RawHeaders("Name\tAge\n"))
	require.NoError(t, p.Print(align.ResetHeaders))
	assert.Empty(t, tbl.Headers())
	assert.Equal(t, []int{4, 3}, tbl.Widths())

	require.NoError(t, p.HeaderRow())
	assert.Equal(t, "\n", buf.String())
}

func TestFormattingCharacters(t *testing.T) {
	t.Parallel()
	tbl, p, buf := attach(t)
	require.NoError(t, p.Print(align.Fill('.'), align.Separator('|'), align.RuleChar('=')))
	require.NoError(t, p.Raw("a\tbb\nccc\td\nx\ty\n"))
	require.NoError(t, p.HRule())

	assert.Equal(t, "a|bb\nccc|d\nx..|y\n===|==\n", buf.String())
	assert.Equal(t, '.', tbl.Fill())
	assert.Equal(t, '|', tbl.Separator())
	assert.Equal(t, '=', tbl.RuleChar())
}

func TestMultiByteFormattingCharacters(t *testing.T) {
	t.Parallel()
	_, p, buf := attach(t)
	p.SetFill('·')
	p.SetSeparator('│')
	p.SetRule('─')
	require.NoError(t, p.Raw("abc\td\ne\tf\n"))
	require.NoError(t, p.HRule())
	require.NoError(t, p.Raw("g\th\n"))

	assert.Equal(t, "abc│d\ne··│f\n───│─\ng··│h\n", buf.String())
}

func TestZeroValueTable(t *testing.T) {
	t.Parallel()
	var tbl align.Table
	var buf bytes.Buffer
	p, err := tbl.Attach(&buf)
	require.NoError(t, err)
	require.NoError(t, p.Raw("ab\tc\nd\te\n"))
	require.NoError(t, p.HRule())
	assert.Equal(t, "ab c\nd  e\n-- -\n", buf.String())
}

func TestAttachDetach(t *testing.T) {
	t.Parallel()
	tbl := align.New()
	var first, second bytes.Buffer

	p, err := tbl.Attach(&first)
	require.NoError(t, err)
	_, err = tbl.Attach(&second)
	require.ErrorIs(t, err, align.ErrAttached)

	require.NoError(t, p.Raw("long cell\tx\n"))
	require.NoError(t, p.Detach())
	require.ErrorIs(t, p.Detach(), align.ErrDetached)

	// Widths survive on the table.
	p2, err := tbl.Attach(&second)
	require.NoError(t, err)
	assert.Equal(t, 0, p2.Pos())
	require.NoError(t, p2.Raw("a\tb\n"))
	assert.Equal(t, "a         b\n", second.String())
	assert.Same(t, tbl, p2.Table())
}

func TestDetachedProxy(t *testing.T) {
	t.Parallel()
	tests := map[string]func(p *align.Proxy) error{
		"tab":           (*align.Proxy).Tab,
		"next":          (*align.Proxy).Next,
		"end row":       (*align.Proxy).EndRow,
		"header row":    (*align.Proxy).HeaderRow,
		"rule":          (*align.Proxy).HRule,
		"reset":         (*align.Proxy).Reset,
		"reset headers": (*align.Proxy).ResetHeaders,
		"set header":    func(p *align.Proxy) error { return p.SetHeader("x", 0) },
		"raw":           func(p *align.Proxy) error { return p.Raw("x") },
		"raw headers":   func(p *align.Proxy) error { return p.RawHeaders("x") },
		"print value":   func(p *align.Proxy) error { return p.Print("x") },
		"print fill":    func(p *align.Proxy) error { return p.Print(align.Fill('x')) },
		"write": func(p *align.Proxy) error {
			_, err := p.Write([]byte("x"))
			return err
		},
		"write string": func(p *align.Proxy) error {
			_, err := p.WriteString("x")
			return err
		},
	}
	for name, op := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, p, buf := attach(t)
			require.NoError(t, p.Detach())
			require.ErrorIs(t, op(p), align.ErrDetached)
			assert.Empty(t, buf.String())
		})
	}
}

func TestWriteErrors(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		n  int
		op func(p *align.Proxy) error
	}{
		"print": {
			op: func(p *align.Proxy) error { return p.Print("x") },
		},
		"tab": {
			n:  1,
			op: func(p *align.Proxy) error { return p.Print("x", align.Tab) },
		},
		"end row": {
			n:  1,
			op: func(p *align.Proxy) error { return p.Print("x", align.EndRow) },
		},
		"header row": {
			op: func(p *align.Proxy) error {
				return p.Print(align.Header{Label: "a"}, align.Header{Label: "b"}, align.EndRow, align.HeaderRow)
			},
		},
		"header row newline": {
			n: 1,
			op: func(p *align.Proxy) error {
				return p.Print(align.Header{Label: "a"}, align.Header{Label: "b"}, align.EndRow, align.HeaderRow)
			},
		},
		"rule mid row": {
			n: 1,
			op: func(p *align.Proxy) error {
				return p.Print(align.Header{Label: "a"}, align.Header{Label: "b"}, align.EndRow, "x", align.HRule)
			},
		},
		"raw": {
			n:  2,
			op: func(p *align.Proxy) error { return p.Raw("a\tb\tc") },
		},
		"raw trailing": {
			n:  2,
			op: func(p *align.Proxy) error { return p.Raw("a\tb") },
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			w := &failAfterN{n: tt.n}
			p, err := align.New().Attach(w)
			require.NoError(t, err)
			assert.ErrorIs(t, tt.op(p), errWriteFailed)
		})
	}
}

func TestWriteErrorNotCounted(t *testing.T) {
	t.Parallel()
	p, err := align.New().Attach(&errWriter{})
	require.NoError(t, err)
	_, err = p.WriteString("hello")
	require.ErrorIs(t, err, errWriteFailed)
	assert.Equal(t, 0, p.Pos())
}

func TestPos(t *testing.T) {
	t.Parallel()
	_, p, _ := attach(t)
	require.NoError(t, p.Print("ab", align.Tab, "c", align.EndRow, "abc", align.Tab))
	// "ab " + "c\n" + "abc "
	assert.Equal(t, 9, p.Pos())
}
