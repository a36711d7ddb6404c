package align

import "io"

// counter decorates a writer with a running character count. Every byte the
// underlying writer accepts is counted, no matter who issued the write.
//
// A character is any byte that is not a UTF-8 continuation byte, so a rune
// split across two writes is still counted exactly once.
type counter struct {
	w io.Writer
	n int
}

func (c *counter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	if n > 0 {
		c.n += charCount(p[:min(n, len(p))])
	}
	return n, err
}

func (c *counter) WriteString(s string) (int, error) {
	if sw, ok := c.w.(io.StringWriter); ok {
		n, err := sw.WriteString(s)
		if n > 0 {
			c.n += charCountString(s[:min(n, len(s))])
		}
		return n, err
	}
	return c.Write([]byte(s))
}

func charCount(p []byte) int {
	n := 0
	for _, b := range p {
		if b&0xC0 != 0x80 {
			n++
		}
	}
	return n
}

func charCountString(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i]&0xC0 != 0x80 {
			n++
		}
	}
	return n
}
