// Package source abstracts where stimulus files live. The loader walks a
// Source instead of the OS filesystem directly, so stimuli can come from
// local disk or an S3-compatible object store without changing loading
// logic.
//
// Paths are forward-slash separated. Implementations must be safe for
// concurrent use.
package source

import (
	"context"
	"io"
)

// Info describes one entry in a source tree.
type Info struct {
	// Path is the full source path of the entry, usable with Stat/Open.
	Path string

	// Name is the base name of the entry.
	Name string

	// Dir reports whether the entry is a directory (or key prefix).
	Dir bool

	// Size is the entry size in bytes; zero for directories.
	Size int64
}

// Source is a read-only tree of stimulus files.
type Source interface {
	// Stat describes the named path. If the path does not exist, an error
	// wrapping fs.ErrNotExist is returned.
	Stat(ctx context.Context, path string) (Info, error)

	// List returns the direct children of dir, one level only.
	// The order follows the backend's enumeration order and is not
	// guaranteed to be sorted.
	List(ctx context.Context, dir string) ([]Info, error)

	// Open opens the named file for reading. The caller must close the
	// returned ReadCloser.
	Open(ctx context.Context, path string) (io.ReadCloser, error)
}
