package align

import (
	"fmt"
	"unicode/utf8"
)

// Proxy is the single entry point for writing one table to one writer.
// Anything written through Write, WriteString, or Print is passed straight
// to the writer and counted toward the current cell. The structural
// operations (Tab, EndRow, HeaderRow, HRule, ...) pad, separate, and end
// rows using the widths recorded in the attached [Table].
//
// A Proxy is not safe for concurrent use.
type Proxy struct {
	t *Table
	w *counter

	col        int
	lastPos    int
	atRowStart bool
	detached   bool
}

// Write passes p to the underlying writer. The bytes count toward the width
// of the current cell.
func (p *Proxy) Write(b []byte) (int, error) {
	if p.detached {
		return 0, ErrDetached
	}
	return p.w.Write(b)
}

// WriteString is like Write but takes a string.
func (p *Proxy) WriteString(s string) (int, error) {
	if p.detached {
		return 0, ErrDetached
	}
	return p.w.WriteString(s)
}

// Detach releases the table so it can be attached again. The proxy must not
// be used afterwards.
func (p *Proxy) Detach() error {
	if p.detached {
		return ErrDetached
	}
	p.detached = true
	p.t.attached = false
	return nil
}

// Table returns the table the proxy writes to.
func (p *Proxy) Table() *Table { return p.t }

// Pos returns the number of characters written since the proxy was attached.
func (p *Proxy) Pos() int { return p.w.n }

// Col returns the zero-based index of the current column.
func (p *Proxy) Col() int { return p.col }

// Tab completes the current cell, pads it to the column width, writes the
// separator, and moves to the next column.
func (p *Proxy) Tab() error {
	if p.detached {
		return ErrDetached
	}
	if err := p.completeColumn(); err != nil {
		return err
	}
	p.atRowStart = false
	p.lastPos = p.w.n
	return nil
}

// Next is an alias for Tab.
func (p *Proxy) Next() error { return p.Tab() }

// EndRow completes the current row. Calling it on an empty row only resets
// the column, so repeated calls never produce blank lines.
func (p *Proxy) EndRow() error {
	if p.detached {
		return ErrDetached
	}
	if !(p.atRowStart && p.atColumnStart()) {
		p.preTab()
		if err := p.emit([]byte{'\n'}); err != nil {
			return err
		}
	}
	p.startRow()
	return nil
}

// HeaderRow writes the declared headers, padded to the column widths, and
// ends the row. With fewer than two columns left to fill it behaves like
// EndRow.
func (p *Proxy) HeaderRow() error {
	if p.detached {
		return ErrDetached
	}
	if p.col+1 >= len(p.t.widths) {
		return p.EndRow()
	}
	if !p.atColumnStart() {
		if err := p.completeColumn(); err != nil {
			return err
		}
	}

	var buf []byte
	headers := p.t.headers
	for i := p.col; i < len(headers); i++ {
		buf = append(buf, headers[i]...)
		if i+1 < len(headers) {
			buf = appendRepeat(buf, p.t.Fill(), p.t.width(i)-charCountString(headers[i]))
			buf = utf8.AppendRune(buf, p.t.Separator())
		}
	}
	if err := p.emit(buf); err != nil {
		return err
	}
	return p.completeRow()
}

// HRule fills the rest of the row with the rule character and ends the row.
// With fewer than two columns left to fill it behaves like EndRow.
func (p *Proxy) HRule() error {
	if p.detached {
		return ErrDetached
	}
	if p.col+1 >= len(p.t.widths) {
		return p.EndRow()
	}
	if !p.atColumnStart() {
		if err := p.completeColumn(); err != nil {
			return err
		}
	}

	var buf []byte
	widths := p.t.widths
	for i := p.col; i < len(widths); i++ {
		buf = appendRepeat(buf, p.t.RuleChar(), widths[i])
		if i+1 < len(widths) {
			buf = utf8.AppendRune(buf, p.t.Separator())
		}
	}
	if err := p.emit(buf); err != nil {
		return err
	}
	return p.completeRow()
}

// SetHeader declares the header of the current column and moves to the next
// column. The column is at least as wide as label and minWidth. Nothing is
// written.
func (p *Proxy) SetHeader(label string, minWidth int) error {
	if p.detached {
		return ErrDetached
	}
	t := p.t
	t.growHeaders(p.col)
	t.headers[p.col] = label

	w := max(minWidth, charCountString(label))
	t.growWidths(p.col)
	if w > t.widths[p.col] {
		t.widths[p.col] = w
	}
	p.col++
	return nil
}

// Reset forgets all column widths and headers.
func (p *Proxy) Reset() error {
	if p.detached {
		return ErrDetached
	}
	p.t.widths = nil
	p.t.headers = nil
	return nil
}

// ResetHeaders forgets the column headers but keeps the widths.
func (p *Proxy) ResetHeaders() error {
	if p.detached {
		return ErrDetached
	}
	p.t.headers = nil
	return nil
}

// SetFill sets the padding character. It has no effect once the proxy is
// detached.
func (p *Proxy) SetFill(r rune) {
	if !p.detached {
		p.t.fill = r
	}
}

// SetSeparator sets the character written between columns.
func (p *Proxy) SetSeparator(r rune) {
	if !p.detached {
		p.t.sep = r
	}
}

// SetRule sets the character used by HRule.
func (p *Proxy) SetRule(r rune) {
	if !p.detached {
		p.t.rule = r
	}
}

// Print writes each argument in turn. Operations such as [Tab] or
// [Header] are applied to the proxy; any other value is formatted as by
// [fmt.Fprint] and counted toward the current cell.
func (p *Proxy) Print(args ...any) error {
	for _, a := range args {
		if op, ok := a.(Op); ok {
			if err := op.apply(p); err != nil {
				return err
			}
			continue
		}
		if p.detached {
			return ErrDetached
		}
		if _, err := fmt.Fprint(p.w, a); err != nil {
			return err
		}
	}
	return nil
}

func (p *Proxy) atColumnStart() bool { return p.w.n == p.lastPos }

// preTab records the width of the current cell and returns how much padding
// it needs to reach the column width.
func (p *Proxy) preTab() int {
	t := p.t
	t.growWidths(p.col)
	w := max(p.w.n-p.lastPos, 0)
	if w > t.widths[p.col] {
		t.widths[p.col] = w
	}
	return t.widths[p.col] - w
}

func (p *Proxy) completeColumn() error {
	pad := p.preTab()
	buf := appendRepeat(nil, p.t.Fill(), pad)
	buf = utf8.AppendRune(buf, p.t.Separator())
	if err := p.emit(buf); err != nil {
		return err
	}
	p.col++
	return nil
}

func (p *Proxy) completeRow() error {
	if err := p.emit([]byte{'\n'}); err != nil {
		return err
	}
	p.startRow()
	return nil
}

func (p *Proxy) startRow() {
	p.col = 0
	p.lastPos = p.w.n
	p.atRowStart = true
}

func (p *Proxy) emit(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	_, err := p.w.Write(b)
	return err
}

func appendRepeat(buf []byte, r rune, n int) []byte {
	for range max(n, 0) {
		buf = utf8.AppendRune(buf, r)
	}
	return buf
}
