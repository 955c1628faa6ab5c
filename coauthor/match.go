package coauthor

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Matcher finds the records an author appears in.
type Matcher interface {
	// Records returns the distinct positions of all records of an author, in
	// ascending order.
	Records(author string) []int
}

// MatchMode selects a Matcher implementation.
type MatchMode string

const (
	// MatchIndex uses an inverted index over author tokens.
	MatchIndex MatchMode = "index"
	// MatchScan scans every author field for a boundary-aware substring
	// match; slow, kept for comparison with older outputs.
	MatchScan MatchMode = "scan"
)

// NewMatcher returns the matcher for a mode.
func NewMatcher(mode MatchMode, c *Corpus) (Matcher, error) {
	switch mode {
	case MatchIndex, "":
		return NewIndex(c), nil
	case MatchScan:
		return NewScanner(c), nil
	default:
		return nil, &ConfigurationError{Field: "match mode", Value: mode, Reason: "use index or scan"}
	}
}

// Index maps an author to the records containing the author as a token.
type Index struct {
	postings map[string][]int
}

// NewIndex builds the inverted index in a single pass over all tokens.
func NewIndex(c *Corpus) *Index {
	idx := &Index{postings: make(map[string][]int)}
	for i, tokens := range c.Tokens {
		for _, t := range tokens {
			p := idx.postings[t]
			if len(p) > 0 && p[len(p)-1] == i {
				continue
			}
			idx.postings[t] = append(p, i)
		}
	}
	return idx
}

func (idx *Index) Records(author string) []int {
	return idx.postings[author]
}

// Scanner checks every author field with ContainsAuthor.
type Scanner struct {
	fields []string
}

func NewScanner(c *Corpus) *Scanner {
	return &Scanner{fields: c.Fields}
}

func (s *Scanner) Records(author string) []int {
	var result []int
	for i, f := range s.fields {
		if ContainsAuthor(f, author) {
			result = append(result, i)
		}
	}
	return result
}

// ContainsAuthor reports whether author occurs in field, followed by the end
// of the field or a rune that is not a letter, digit or underscore. SMITH
// does not match SMITHSON, but matches SMITH;DOE.
func ContainsAuthor(field, author string) bool {
	if author == "" {
		return false
	}
	for offset := 0; offset <= len(field)-len(author); {
		i := strings.Index(field[offset:], author)
		if i < 0 {
			return false
		}
		end := offset + i + len(author)
		if end == len(field) {
			return true
		}
		r, _ := utf8.DecodeRuneInString(field[end:])
		if !isWordRune(r) {
			return true
		}
		_, size := utf8.DecodeRuneInString(field[offset+i:])
		offset += i + size
	}
	return false
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func (m MatchMode) String() string { return string(m) }

// Set implements flag.Value.
func (m *MatchMode) Set(s string) error {
	switch v := MatchMode(strings.ToLower(s)); v {
	case MatchIndex, MatchScan:
		*m = v
		return nil
	default:
		return fmt.Errorf("invalid match mode %q, use index or scan", s)
	}
}
