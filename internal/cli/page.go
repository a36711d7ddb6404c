package cli

import (
	"io"
	"os"

	"golang.org/x/term"
)

// pageSize resolves the number of output lines per page. A configured size
// wins; zero falls back to the terminal height when w is a terminal.
func pageSize(configured int, w io.Writer) int {
	switch {
	case configured > 0:
		return configured
	case configured < 0:
		return 0
	}
	f, ok := w.(*os.File)
	if !ok {
		return 0
	}
	return terminalHeight(int(f.Fd()))
}

// terminalHeight returns the number of rows of the terminal on fd, or 0 when
// fd is not a terminal.
func terminalHeight(fd int) int {
	if !term.IsTerminal(fd) {
		return 0
	}
	_, h, err := term.GetSize(fd)
	if err != nil || h <= 0 {
		return 0
	}
	return h
}
