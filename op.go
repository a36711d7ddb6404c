package align

// Op is a structural operation that [Proxy.Print] applies instead of
// writing. The set of operations is closed.
type Op interface {
	apply(p *Proxy) error
}

type opFunc func(*Proxy) error

func (f opFunc) apply(p *Proxy) error { return f(p) }

// Operations without parameters.
//
//	p.Print("hello", align.Tab, "world", align.EndRow)
var (
	Tab          Op = opFunc((*Proxy).Tab)
	Next         Op = opFunc((*Proxy).Tab)
	EndRow       Op = opFunc((*Proxy).EndRow)
	HeaderRow    Op = opFunc((*Proxy).HeaderRow)
	HRule        Op = opFunc((*Proxy).HRule)
	Reset        Op = opFunc((*Proxy).Reset)
	ResetHeaders Op = opFunc((*Proxy).ResetHeaders)
)

// Header declares a column header, see [Proxy.SetHeader].
//
//	p.Print(align.Header{Label: "first", MinWidth: 10}, align.Header{Label: "second"}, align.EndRow)
type Header struct {
	Label    string
	MinWidth int
}

func (h Header) apply(p *Proxy) error { return p.SetHeader(h.Label, h.MinWidth) }

// Raw writes tab and newline separated text, see [Proxy.Raw].
type Raw string

func (r Raw) apply(p *Proxy) error { return p.Raw(string(r)) }

// RawHeaders declares headers from tab separated text, see [Proxy.RawHeaders].
type RawHeaders string

func (r RawHeaders) apply(p *Proxy) error { return p.RawHeaders(string(r)) }

// Fill sets the padding character.
type Fill rune

func (f Fill) apply(p *Proxy) error {
	if p.detached {
		return ErrDetached
	}
	p.SetFill(rune(f))
	return nil
}

// Separator sets the column separator.
type Separator rune

func (s Separator) apply(p *Proxy) error {
	if p.detached {
		return ErrDetached
	}
	p.SetSeparator(rune(s))
	return nil
}

// RuleChar sets the horizontal rule character.
type RuleChar rune

func (r RuleChar) apply(p *Proxy) error {
	if p.detached {
		return ErrDetached
	}
	p.SetRule(rune(r))
	return nil
}
