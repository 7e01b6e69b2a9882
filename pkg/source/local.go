package source

import (
	"context"
	"io"
	"os"
	"path/filepath"
)

// Local implements Source on top of the local filesystem. Paths are plain
// OS paths, absolute or relative to the working directory.
type Local struct{}

// NewLocal creates a local filesystem source.
func NewLocal() Local { return Local{} }

// Stat describes the named path.
func (Local) Stat(_ context.Context, path string) (Info, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return Info{}, err
	}
	return Info{
		Path: path,
		Name: fi.Name(),
		Dir:  fi.IsDir(),
		Size: fi.Size(),
	}, nil
}

// List returns the direct entries of dir in filesystem enumeration order.
func (Local) List(_ context.Context, dir string) ([]Info, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	infos := make([]Info, 0, len(entries))
	for _, e := range entries {
		info := Info{
			Path: filepath.Join(dir, e.Name()),
			Name: e.Name(),
			Dir:  e.IsDir(),
		}
		if fi, err := e.Info(); err == nil {
			info.Size = fi.Size()
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// Open opens the named file for reading.
func (Local) Open(_ context.Context, path string) (io.ReadCloser, error) {
	return os.Open(path)
}
