package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"syscall"

	"github.com/zuul-tools/zuul-ls/internal/parser"
	"github.com/zuul-tools/zuul-ls/internal/repo"
)

// rowWriter prints tab separated rows. A closed pipe on the other end
// ends the output silently.
type rowWriter struct {
	w   *bufio.Writer
	err error
}

func newRowWriter(w io.Writer) *rowWriter {
	return &rowWriter{w: bufio.NewWriter(w)}
}

func (r *rowWriter) row(cols ...string) {
	if r.err != nil {
		return
	}
	_, r.err = fmt.Fprintln(r.w, strings.Join(cols, "\t"))
}

func (r *rowWriter) Flush() error {
	if r.err == nil {
		r.err = r.w.Flush()
	}
	if errors.Is(r.err, syscall.EPIPE) {
		return nil
	}
	return r.err
}

// position renders a location as path:line:col with 1-based numbers.
func position(s parser.StringLoc) string {
	return fmt.Sprintf("%s:%d:%d", repo.ShortenPath(s.Path.String()), s.Line+1, s.Col+1)
}

// locationCols renders a location as separate path, line and col
// columns with 1-based numbers.
func locationCols(s parser.StringLoc) []string {
	return []string{repo.ShortenPath(s.Path.String()), strconv.Itoa(s.Line + 1), strconv.Itoa(s.Col + 1)}
}
