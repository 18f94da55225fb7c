package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// FileFetcher reads the listings document from the local filesystem.
type FileFetcher struct {
	path string
}

// NewFileFetcher creates a FileFetcher for path.
func NewFileFetcher(path string) *FileFetcher {
	return &FileFetcher{path: path}
}

func (f *FileFetcher) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("file: %s: %w", f.path, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("file: read %q: %w", f.path, err)
	}
	return data, nil
}
