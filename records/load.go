// Package records reads bibliographic export files into de-duplicated
// records.
package records

import (
	"errors"
	"fmt"
	"strings"

	"github.com/miku/collabnet/coauthor"
	"github.com/miku/collabnet/normal"
	"github.com/miku/collabnet/profile"
)

// ErrMissingColumn is returned when a file lacks a column the profile needs.
var ErrMissingColumn = errors.New("missing column")

// Stats about loaded records.
type Stats struct {
	Files int `json:"files"`
	// Rows is the number of data rows read across all files.
	Rows int `json:"rows"`
	// Duplicates dropped, by unique identifier.
	Duplicates int `json:"duplicates"`
	// MissingAuthors is the number of rows dropped for an empty author field.
	MissingAuthors int `json:"missing_authors"`
	// Records is the number of records returned.
	Records int `json:"records"`
}

// Load reads all files, concatenates their rows, drops rows without authors
// and keeps only the first row for each unique identifier. Rows without an
// identifier are all kept.
func Load(p profile.Profile, paths []string) ([]coauthor.Record, Stats, error) {
	var (
		result []coauthor.Record
		stats  Stats
		seen   = make(map[string]struct{})
	)
	for _, path := range paths {
		n, err := loadFile(p, path, func(r coauthor.Record) {
			if strings.TrimSpace(r.Authors) == "" {
				stats.MissingAuthors++
				return
			}
			if r.ID != "" {
				if _, ok := seen[r.ID]; ok {
					stats.Duplicates++
					return
				}
				seen[r.ID] = struct{}{}
			}
			result = append(result, r)
		})
		if err != nil {
			return nil, stats, fmt.Errorf("%s: %w", path, err)
		}
		stats.Files++
		stats.Rows += n
	}
	stats.Records = len(result)
	return result, stats, nil
}

func loadFile(p profile.Profile, path string, emit func(coauthor.Record)) (int, error) {
	rc, err := Open(path)
	if err != nil {
		return 0, err
	}
	defer rc.Close()
	var (
		n       int
		checked bool
	)
	err = ReadTable(rc, p.Format, func(row Row) error {
		if !checked {
			for _, col := range []string{p.AuthorColumn, p.IDColumn, p.CitationColumn} {
				if _, ok := row.header[col]; !ok {
					return fmt.Errorf("%w: %q", ErrMissingColumn, col)
				}
			}
			checked = true
		}
		n++
		emit(coauthor.Record{
			ID:        strings.TrimSpace(row.Get(p.IDColumn)),
			Authors:   normal.ReplaceNewlineAndTab(row.Get(p.AuthorColumn)),
			Citations: row.Get(p.CitationColumn),
		})
		return nil
	})
	return n, err
}
