// Package storage is the string key/value persistence behind the note app.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Storage is a synchronous string key/value store.
type Storage interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

var ErrUnsupportedScheme = errors.New("unsupported storage scheme")

// Open returns a Storage based on a URL (mem://, file://, sqlite://).
// The returned Closer releases backend resources.
func Open(ctx context.Context, url string) (Storage, io.Closer, error) {
	scheme, rest, ok := strings.Cut(url, "://")
	if !ok {
		return nil, nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, url)
	}
	switch scheme {
	case "mem":
		return NewMem(), nopCloser{}, nil
	case "file":
		fs, err := openFile(expandHome(rest))
		if err != nil {
			return nil, nil, err
		}
		return fs, nopCloser{}, nil
	case "sqlite":
		return openSQLite(ctx, expandHome(rest))
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, scheme)
	}
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
