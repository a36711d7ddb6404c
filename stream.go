package align

import (
	"iter"
)

// Rower provides the cells of one row.
type Rower interface {
	Row() []string
}

// Headed provides column headers. When the first streamed item implements
// it, a header row and a rule are written before the first data row.
type Headed interface {
	Header() []string
}

// Paged repeats the header row every PageSize data rows.
type Paged interface {
	PageSize() int
}

// Grouped returns a group key for the item. When consecutive items have
// different group keys, a rule is written between them. Grouping is enabled
// by the first item; later items that do not implement it stay in the
// current group.
type Grouped interface {
	Group() string
}

// WriteRow writes cells separated by tabs and ends the row.
func WriteRow(p *Proxy, cells ...string) error {
	for i, cell := range cells {
		if i > 0 {
			if err := p.Tab(); err != nil {
				return err
			}
		}
		if _, err := p.WriteString(cell); err != nil {
			return err
		}
	}
	return p.EndRow()
}

// WriteIter writes one row per item as items arrive from seq. Nothing is
// collected: column widths grow as wider cells are seen, so early rows may
// be narrower than later ones.
func WriteIter[T Rower](p *Proxy, seq iter.Seq[T]) error {
	var (
		first     = true
		headed    bool
		pageSize  int
		grouped   bool
		lastGroup string
		n         int
		streamErr error
	)
	seq(func(item T) bool {
		if first {
			first = false
			if h, ok := any(item).(Headed); ok {
				if streamErr = declareHeaders(p, h.Header()); streamErr != nil {
					return false
				}
				headed = true
			}
			if pg, ok := any(item).(Paged); ok {
				pageSize = pg.PageSize()
			}
			if g, ok := any(item).(Grouped); ok {
				grouped = true
				lastGroup = g.Group()
			}
		} else {
			// Items without a group key keep the current group.
			if g, ok := any(item).(Grouped); grouped && ok {
				if group := g.Group(); group != lastGroup {
					if streamErr = p.HRule(); streamErr != nil {
						return false
					}
					lastGroup = group
				}
			}
			if headed && pageSize > 0 && n%pageSize == 0 {
				if streamErr = writeHeaders(p); streamErr != nil {
					return false
				}
			}
		}
		if streamErr = WriteRow(p, item.Row()...); streamErr != nil {
			return false
		}
		n++
		return true
	})
	return streamErr
}

// WriteChan writes one row per item received from ch.
// It is a thin wrapper around [WriteIter].
func WriteChan[T Rower](p *Proxy, ch <-chan T) error {
	return WriteIter(p, chanToIter(ch))
}

func chanToIter[T any](ch <-chan T) iter.Seq[T] {
	return func(yield func(T) bool) {
		for item := range ch {
			if !yield(item) {
				return
			}
		}
	}
}

func declareHeaders(p *Proxy, header []string) error {
	if err := p.EndRow(); err != nil {
		return err
	}
	if err := p.ResetHeaders(); err != nil {
		return err
	}
	for _, h := range header {
		if err := p.SetHeader(h, 0); err != nil {
			return err
		}
	}
	if err := p.EndRow(); err != nil {
		return err
	}
	return writeHeaders(p)
}

func writeHeaders(p *Proxy) error {
	if err := p.HeaderRow(); err != nil {
		return err
	}
	return p.HRule()
}
