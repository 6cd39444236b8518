package cmd

import (
	"bytes"
	"fmt"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zuul-tools/zuul-ls/internal/intern"
	"github.com/zuul-tools/zuul-ls/internal/parser"
)

type brokenPipe struct{}

func (brokenPipe) Write(p []byte) (int, error) {
	return 0, fmt.Errorf("write /dev/stdout: %w", syscall.EPIPE)
}

func TestRowWriter(t *testing.T) {
	var buf bytes.Buffer
	out := newRowWriter(&buf)
	out.row("base", "/abs/zuul.d/jobs.yaml:2:11")
	out.row("child")
	require.NoError(t, out.Flush())
	assert.Equal(t, "base\t/abs/zuul.d/jobs.yaml:2:11\nchild\n", buf.String())
}

func TestRowWriterBrokenPipe(t *testing.T) {
	out := newRowWriter(brokenPipe{})
	out.row("a", "b")
	assert.NoError(t, out.Flush())
}

func TestPosition(t *testing.T) {
	loc := parser.StringLoc{Value: "base", Path: intern.Intern("/nowhere/zuul.d/jobs.yaml"), Line: 1, Col: 10}
	assert.Equal(t, "/nowhere/zuul.d/jobs.yaml:2:11", position(loc))
	assert.Equal(t, []string{"/nowhere/zuul.d/jobs.yaml", "2", "11"}, locationCols(loc))
}
