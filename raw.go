package align

import "strings"

// Raw writes s, treating each tab as [Proxy.Tab] and each newline as
// [Proxy.EndRow]. Text after the last tab or newline is written but the cell
// is left open.
//
//	p.Raw("hello\tworld\n")
//
// is equivalent to
//
//	p.Print("hello", align.Tab, "world", align.EndRow)
func (p *Proxy) Raw(s string) error {
	if p.detached {
		return ErrDetached
	}
	for len(s) > 0 {
		i := strings.IndexAny(s, "\t\n")
		if i < 0 {
			_, err := p.w.WriteString(s)
			return err
		}
		if i > 0 {
			if _, err := p.w.WriteString(s[:i]); err != nil {
				return err
			}
		}
		var err error
		if s[i] == '\n' {
			err = p.EndRow()
		} else {
			err = p.Tab()
		}
		if err != nil {
			return err
		}
		s = s[i+1:]
	}
	return nil
}

// RawHeaders declares one header per tab separated field of the first line
// of s. The first newline ends the header row; anything after it is ignored.
//
//	p.RawHeaders("hello\tworld\n")
//
// is equivalent to
//
//	p.Print(align.Header{Label: "hello"}, align.Header{Label: "world"}, align.EndRow)
func (p *Proxy) RawHeaders(s string) error {
	if p.detached {
		return ErrDetached
	}
	for len(s) > 0 {
		i := strings.IndexAny(s, "\t\n")
		if i < 0 {
			return p.SetHeader(s, 0)
		}
		if err := p.SetHeader(s[:i], 0); err != nil {
			return err
		}
		if s[i] == '\n' {
			return p.EndRow()
		}
		s = s[i+1:]
	}
	return nil
}
