package graphio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/klauspost/compress/zstd"
	gzip "github.com/klauspost/pgzip"
	"github.com/miku/collabnet/records"
)

// ErrUnknownFormat is returned for an output format that cannot be written.
var ErrUnknownFormat = errors.New("unknown output format")

// Format of a graph file.
type Format string

const (
	FormatGraphML Format = "graphml"
	FormatDOT     Format = "dot"
)

// Formats lists the supported output formats.
var Formats = []Format{FormatGraphML, FormatDOT}

func (f Format) String() string { return string(f) }

func (f *Format) Set(s string) error {
	switch v := Format(strings.ToLower(strings.TrimSpace(s))); v {
	case FormatGraphML, FormatDOT:
		*f = v
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Write serializes a graph in the given format.
func Write(w io.Writer, g *Graph, format Format) error {
	switch format {
	case FormatGraphML:
		return WriteGraphML(w, g)
	case FormatDOT:
		return WriteDOT(w, g)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

var unsafeChars = regexp.MustCompile(`[^a-z0-9]+`)

// Filename returns the name of the output file for a run, e.g.
// "collab-scopus-t2-articles.graphml".
func Filename(profile string, threshold int, policy string, format Format) string {
	slug := strings.Trim(unsafeChars.ReplaceAllString(strings.ToLower(profile), "-"), "-")
	if slug == "" {
		slug = "custom"
	}
	return fmt.Sprintf("collab-%s-t%d-%s.%s", slug, threshold, strings.ToLower(policy), format)
}

// File is an output file that only appears under its final name once it
// has been closed without error.
type File struct {
	path string
	tmp  *os.File
	w    io.Writer
	zw   io.WriteCloser
	done bool
}

// Create opens a temporary file next to path. Data is compressed when path
// ends with ".gz" or ".zst".
func Create(path string) (*File, error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return nil, fmt.Errorf("error creating output file: %w", err)
	}
	f := &File{path: path, tmp: tmp, w: tmp}
	if err := tmp.Chmod(0644); err != nil {
		f.Abort()
		return nil, err
	}
	switch {
	case strings.HasSuffix(path, ".gz"):
		f.zw = gzip.NewWriter(tmp)
	case strings.HasSuffix(path, ".zst"):
		zw, err := zstd.NewWriter(tmp)
		if err != nil {
			f.Abort()
			return nil, fmt.Errorf("error creating zstd writer: %w", err)
		}
		f.zw = zw
	}
	if f.zw != nil {
		f.w = f.zw
	}
	return f, nil
}

// Name returns the final path.
func (f *File) Name() string { return f.path }

func (f *File) Write(p []byte) (int, error) {
	return f.w.Write(p)
}

// Close flushes all data and moves the file into place.
func (f *File) Close() error {
	if f.done {
		return nil
	}
	if f.zw != nil {
		if err := f.zw.Close(); err != nil {
			f.Abort()
			return err
		}
	}
	if err := f.tmp.Close(); err != nil {
		f.Abort()
		return err
	}
	f.done = true
	if err := os.Rename(f.tmp.Name(), f.path); err != nil {
		os.Remove(f.tmp.Name())
		return err
	}
	return nil
}

// Abort removes the temporary file. It is a no-op after Close.
func (f *File) Abort() {
	if f.done {
		return
	}
	f.done = true
	f.tmp.Close()
	os.Remove(f.tmp.Name())
}

// WriteFile writes a graph to path atomically.
func WriteFile(path string, g *Graph, format Format) error {
	f, err := Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, g, format); err != nil {
		f.Abort()
		return err
	}
	return f.Close()
}

// ReadFile reads a GraphML file, possibly compressed.
func ReadFile(path string) (*Graph, error) {
	rc, err := records.Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return ReadGraphML(rc)
}
