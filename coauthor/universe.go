package coauthor

import (
	"strings"

	"github.com/miku/collabnet/normal"
)

// Record is a publication as far as co-authorship is concerned.
type Record struct {
	// ID is the unique identifier of the record, e.g. a Scopus EID.
	ID string
	// Authors is the raw author list field.
	Authors string
	// Citations is the raw times cited value.
	Citations string
}

// Corpus holds normalized author fields and their tokens. Fields are
// normalized exactly once, every later stage works on these values.
type Corpus struct {
	Separator string
	Fields    []string
	Tokens    [][]string
	IDs       []string
	Citations []string
}

// NewCorpus normalizes the author field of every record and splits it on
// the separator. Empty tokens are dropped.
func NewCorpus(records []Record, n normal.Normalizer, sep string) *Corpus {
	c := &Corpus{
		Separator: sep,
		Fields:    make([]string, len(records)),
		Tokens:    make([][]string, len(records)),
		IDs:       make([]string, len(records)),
		Citations: make([]string, len(records)),
	}
	for i, r := range records {
		field := r.Authors
		if n != nil {
			field = n.Normalize(field)
		}
		c.Fields[i] = field
		c.Tokens[i] = Split(field, sep)
		c.IDs[i] = r.ID
		c.Citations[i] = r.Citations
	}
	return c
}

// Len returns the number of records.
func (c *Corpus) Len() int { return len(c.Fields) }

// Split splits a normalized author field into author tokens.
func Split(field, sep string) []string {
	if field == "" {
		return nil
	}
	parts := strings.Split(field, sep)
	tokens := parts[:0]
	for _, p := range parts {
		if p == "" {
			continue
		}
		tokens = append(tokens, p)
	}
	return tokens
}

// Universe is the ordered set of distinct authors together with the number
// of times each author occurs across all records.
type Universe struct {
	Authors   []string
	Histogram map[string]int
}

// BuildUniverse collects all authors in first seen order. An author listed
// twice in one record is counted twice.
func BuildUniverse(c *Corpus) *Universe {
	u := &Universe{Histogram: make(map[string]int)}
	for _, tokens := range c.Tokens {
		for _, t := range tokens {
			if _, ok := u.Histogram[t]; !ok {
				u.Authors = append(u.Authors, t)
			}
			u.Histogram[t]++
		}
	}
	return u
}

// Len returns the number of distinct authors.
func (u *Universe) Len() int { return len(u.Authors) }

// Count returns the publication count of an author.
func (u *Universe) Count(author string) int { return u.Histogram[author] }

// Max returns the largest publication count among the given authors.
func (u *Universe) Max(authors []string) int {
	var hi int
	for _, a := range authors {
		if v := u.Histogram[a]; v > hi {
			hi = v
		}
	}
	return hi
}
