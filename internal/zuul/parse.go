package zuul

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/zuul-tools/zuul-ls/internal/intern"
	"github.com/zuul-tools/zuul-ls/internal/logging"
	"github.com/zuul-tools/zuul-ls/internal/yamlloc"
)

// ParseText parses the configuration elements of one file's content.
func ParseText(text, path string, log *slog.Logger) (*Elements, error) {
	docs, err := yamlloc.Load(text)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return ParseDocuments(docs, intern.Intern(path), log), nil
}

// ParseFile reads and parses one configuration file.
func ParseFile(path string, log *slog.Logger) (*Elements, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return ParseText(string(data), path, log)
}

// ParseFiles parses every file concurrently. Files that cannot be read
// or loaded are logged and skipped; the result keeps the order of paths.
func ParseFiles(ctx context.Context, paths []string) (*Elements, error) {
	log := logging.FromContext(ctx)
	results := make([]*Elements, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			elems, err := ParseFile(path, log)
			if err != nil {
				log.Warn("skipping zuul config file", "path", path, "error", err)
				return nil
			}
			results[i] = elems
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	all := &Elements{}
	for _, elems := range results {
		if elems != nil {
			all.Extend(elems)
		}
	}
	return all, nil
}
