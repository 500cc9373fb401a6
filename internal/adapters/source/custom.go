package source

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"

	"go.trai.ch/tzmap/internal/core/domain"
	"go.trai.ch/tzmap/internal/core/ports"
	"go.trai.ch/zerr"
)

// custom sources carry caller supplied data and default to the lenient policy.
type custom struct {
	name string
	load func(ctx context.Context) ([]byte, error)
}

func (c *custom) Name() string { return c.name }

func (c *custom) DefaultPolicy() domain.Policy { return domain.LenientPolicy() }

func (c *custom) Load(ctx context.Context) ([]byte, error) { return c.load(ctx) }

// Text returns a source for an in-memory XML document.
func Text(xml string) ports.Source {
	return &custom{
		name: domain.SourceText,
		load: func(context.Context) ([]byte, error) {
			return []byte(xml), nil
		},
	}
}

// Reader returns a source that reads r to the end on Load. The reader is
// consumed once; it is not closed.
func Reader(r io.Reader) ports.Source {
	return &custom{
		name: domain.SourceReader,
		load: func(context.Context) ([]byte, error) {
			if r == nil {
				return nil, zerr.Wrap(domain.ErrInvalidArgument, "reader must not be nil")
			}
			data, err := io.ReadAll(r)
			if err != nil {
				return nil, zerr.Wrap(errors.Join(domain.ErrIO, err), "failed to read mapping document")
			}
			return data, nil
		},
	}
}

// File returns a source that reads the document at path on Load.
// Non-UTF-8 documents are decoded according to their XML declaration.
func File(path string) ports.Source {
	return &custom{
		name: domain.SourceFile,
		load: func(context.Context) ([]byte, error) {
			data, err := os.ReadFile(path) //nolint:gosec // path is chosen by the caller
			if err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					return nil, zerr.With(zerr.Wrap(domain.ErrFileNotFound, path), "path", path)
				}
				err = zerr.Wrap(errors.Join(domain.ErrIO, err), "failed to read mapping document")
				return nil, zerr.With(err, "path", path)
			}
			return data, nil
		},
	}
}
