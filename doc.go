// Package align writes column-aligned tables to any [io.Writer] as a stream.
//
// Nothing is buffered: column widths are learned while rows are written, and
// each column is padded to the widest cell seen so far in that column. Early
// rows may therefore be narrower than later ones, but memory use does not
// grow with the number of rows.
//
// # Tables and Proxies
//
// A [Table] holds the state shared by every row: the column widths, the
// column headers, and the fill, separator, and rule characters. Attach it to
// a writer to get a [Proxy], then write through the proxy:
//
//	t := align.New()
//	p, err := t.Attach(os.Stdout)
//	if err != nil { ... }
//	defer p.Detach()
//
//	fmt.Fprintf(p, "%d", 12345)
//	p.Tab()
//	p.WriteString("hello")
//	p.EndRow()
//
// The proxy counts every character that reaches the writer, so values
// formatted with [fmt.Fprintf] or written with [Proxy.Write] count toward the
// width of the current cell just like text written by the proxy itself.
// A character is one UTF-8 encoded rune; display width is not considered.
//
// # Operations
//
//   - [Proxy.Tab] ends the current cell and pads it to the column width
//   - [Proxy.EndRow] ends the row; on an empty row it writes nothing
//   - [Proxy.SetHeader] declares a column header and minimum width
//   - [Proxy.HeaderRow] writes the declared headers as a row
//   - [Proxy.HRule] writes a horizontal rule across the known columns
//   - [Proxy.Raw] and [Proxy.RawHeaders] parse tab and newline separated text
//   - [Proxy.Reset] and [Proxy.ResetHeaders] forget widths and headers
//
// The same operations are available as [Op] values for [Proxy.Print]:
//
//	p.Print(align.Header{Label: "Name"}, align.Header{Label: "Age"}, align.EndRow)
//	p.Print("Al", align.Tab, 30, align.EndRow)
//	p.Print(align.HeaderRow, align.HRule)
//
// # Streaming Rows
//
// [WriteIter] and [WriteChan] write one row per [Rower] item. Items may
// implement [Headed], [Paged], and [Grouped] to add a header row, repeat it
// every few rows, or separate groups with a rule.
//
// # State
//
// [Table.SaveState] and [Table.LoadState] persist widths and headers as YAML
// so a later run can start with the same column layout.
//
// # Errors
//
// Write errors from the underlying writer are returned unchanged. The package
// also exports sentinel errors:
//
//   - [ErrAttached] - the table already has a live proxy
//   - [ErrDetached] - the proxy was detached
//   - [ErrInvalidState] - a snapshot could not be restored
//
// A table is not safe for concurrent use.
package align
