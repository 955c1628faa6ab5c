package records

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/klauspost/compress/zstd"
	gzip "github.com/klauspost/pgzip"
	"github.com/miku/collabnet/profile"
)

// ErrNoFiles is returned when a directory contains no matching export file.
var ErrNoFiles = errors.New("no input files found")

// compressionSuffixes are accepted after the format extension.
var compressionSuffixes = []string{"", ".gz", ".zst"}

// Discover returns the sorted paths of all files in dir with an extension of
// the given format, optionally compressed, e.g. "savedrecs.txt.gz".
func Discover(dir string, format profile.Format) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if matchesFormat(e.Name(), format) {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: %s (%s)", ErrNoFiles, dir, strings.Join(format.Extensions(), ", "))
	}
	sort.Strings(paths)
	return paths, nil
}

func matchesFormat(name string, format profile.Format) bool {
	name = strings.ToLower(name)
	for _, ext := range format.Extensions() {
		for _, suffix := range compressionSuffixes {
			if strings.HasSuffix(name, ext+suffix) {
				return true
			}
		}
	}
	return false
}

// Open opens a file and returns a reader, decompressing gzip and zstd files
// based on the file name suffix.
func Open(filename string) (io.ReadCloser, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	switch {
	case strings.HasSuffix(filename, ".gz"):
		zr, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		return &readCloser{Reader: zr, closers: []io.Closer{zr, f}}, nil
	case strings.HasSuffix(filename, ".zst"):
		zr, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		return &readCloser{Reader: zr, closers: []io.Closer{closerFunc(zr.Close), f}}, nil
	default:
		return f, nil
	}
}

type closerFunc func()

func (f closerFunc) Close() error {
	f()
	return nil
}

// readCloser closes the decompressor and the underlying file.
type readCloser struct {
	io.Reader
	closers []io.Closer
}

func (r *readCloser) Close() error {
	var errs []error
	for _, c := range r.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
