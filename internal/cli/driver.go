package cli

import (
	"bufio"
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/bjaus/align"
)

const maxLineSize = 1 << 20

// driver turns input lines into table operations.
type driver struct {
	p        *align.Proxy
	cfg      Config
	pageSize int
	logger   *log.Logger

	lines int // output lines on the current page
	rows  int // data rows written
}

func newDriver(p *align.Proxy, cfg Config, pageSize int, logger *log.Logger) *driver {
	return &driver{p: p, cfg: cfg, pageSize: pageSize, logger: logger}
}

// declare sets the configured headers and writes them with a rule below.
func (d *driver) declare(headers []HeaderConfig) error {
	if len(headers) == 0 {
		return nil
	}
	if err := d.p.EndRow(); err != nil {
		return err
	}
	if err := d.p.ResetHeaders(); err != nil {
		return err
	}
	for _, h := range headers {
		if err := d.p.SetHeader(h.Label, h.Width); err != nil {
			return err
		}
	}
	if err := d.p.EndRow(); err != nil {
		return err
	}
	return d.writeHeaders()
}

// run reads r line by line until EOF or until ctx is done.
func (d *driver) run(ctx context.Context, r io.Reader) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := d.line(strings.TrimSuffix(sc.Text(), "\r")); err != nil {
			return err
		}
	}
	return sc.Err()
}

func (d *driver) line(s string) error {
	switch {
	case hasPrefix(s, d.cfg.CommentPrefix):
		return nil
	case hasPrefix(s, d.cfg.HeaderPrefix):
		if err := d.p.ResetHeaders(); err != nil {
			return err
		}
		if err := d.p.RawHeaders(s[len(d.cfg.HeaderPrefix):]); err != nil {
			return err
		}
		// RawHeaders leaves the row open when there is no newline.
		if err := d.p.EndRow(); err != nil {
			return err
		}
		d.logger.Debug("headers declared", "headers", d.p.Table().Headers())
		return d.writeHeaders()
	case hasPrefix(s, d.cfg.RulePrefix):
		if err := d.paginate(); err != nil {
			return err
		}
		if err := d.p.HRule(); err != nil {
			return err
		}
		d.lines++
		return nil
	default:
		if err := d.paginate(); err != nil {
			return err
		}
		if err := d.p.Raw(s); err != nil {
			return err
		}
		if err := d.p.EndRow(); err != nil {
			return err
		}
		d.lines++
		d.rows++
		return nil
	}
}

// paginate repeats the headers when the current page is full.
func (d *driver) paginate() error {
	if d.pageSize <= 0 || d.lines < d.pageSize || !d.headersShown() {
		return nil
	}
	d.logger.Debug("page break", "rows", d.rows)
	return d.writeHeaders()
}

// writeHeaders writes the header row and rule. With fewer than two columns
// both degrade to an empty EndRow, so the page line count is left alone.
func (d *driver) writeHeaders() error {
	shown := d.headersShown()
	if err := d.p.HeaderRow(); err != nil {
		return err
	}
	if err := d.p.HRule(); err != nil {
		return err
	}
	if shown {
		d.lines = 2
	}
	return nil
}

// headersShown reports whether writeHeaders would print anything.
func (d *driver) headersShown() bool {
	tbl := d.p.Table()
	return len(tbl.Headers()) > 0 && tbl.Columns() >= 2
}

func hasPrefix(s, prefix string) bool {
	return prefix != "" && strings.HasPrefix(s, prefix)
}
