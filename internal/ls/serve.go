package ls

import (
	"context"
	"io"

	"go.lsp.dev/jsonrpc2"
)

type stdio struct {
	io.Reader
	io.Writer
}

func (stdio) Close() error { return nil }

// Serve runs s over in and out until the connection closes or ctx is
// done.
func Serve(ctx context.Context, s *Server, in io.Reader, out io.Writer) error {
	stream := jsonrpc2.NewStream(stdio{Reader: in, Writer: out})
	conn := jsonrpc2.NewConn(stream)
	conn.Go(ctx, s.Handler())

	select {
	case <-ctx.Done():
		conn.Close()
		<-conn.Done()
		return ctx.Err()
	case <-conn.Done():
		return conn.Err()
	}
}
