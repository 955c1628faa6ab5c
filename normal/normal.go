// Package normal turns raw author list fields into a canonical form, so that
// the same person yields the same token across records.
package normal

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalizer rewrites a string.
type Normalizer interface {
	Normalize(string) string
}

// Func adapts a plain function to a Normalizer.
type Func func(string) string

func (f Func) Normalize(s string) string { return f(s) }

// Pipeline applies normalizers in order.
type Pipeline struct {
	Normalizer []Normalizer
}

func (p *Pipeline) Normalize(s string) string {
	for _, n := range p.Normalizer {
		s = n.Normalize(s)
	}
	return s
}

type UpperNormalizer struct{}

func (s *UpperNormalizer) Normalize(v string) string {
	return strings.ToUpper(v)
}

// RemoveWSNormalizer drops all whitespace.
type RemoveWSNormalizer struct{}

func (s *RemoveWSNormalizer) Normalize(v string) string {
	var b strings.Builder
	b.Grow(len(v))
	for _, c := range v {
		if unicode.IsSpace(c) {
			continue
		}
		b.WriteRune(c)
	}
	return b.String()
}

// ParenNormalizer turns "(" into a single space and drops ")". Names then
// never carry grouping characters, e.g. "SMITHJ.(JOHN)" becomes "SMITHJ. JOHN".
type ParenNormalizer struct{}

func (s *ParenNormalizer) Normalize(v string) string {
	var b strings.Builder
	b.Grow(len(v))
	for _, c := range v {
		switch c {
		case '(':
			b.WriteRune(' ')
		case ')':
		default:
			b.WriteRune(c)
		}
	}
	return b.String()
}

// ReplaceNormalizer replaces every occurrence of Old with New.
type ReplaceNormalizer struct {
	Old string
	New string
}

func (s *ReplaceNormalizer) Normalize(v string) string {
	if s.Old == "" {
		return v
	}
	return strings.ReplaceAll(v, s.Old, s.New)
}

// stripMarks returns a new transformer for each use, a chain is not safe for
// concurrent use.
func stripMarks() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}

// FoldNormalizer maps non-ASCII letters to their closest ASCII form, e.g.
// "Müller" to "Muller", "Łukasiewicz" to "Lukasiewicz", "Иванов" to
// "Ivanov". Transliteration may yield lowercase letters and spaces, so it
// runs before case and whitespace normalization.
type FoldNormalizer struct{}

func (s *FoldNormalizer) Normalize(v string) string {
	if isASCII(v) {
		return v
	}
	result, _, err := transform.String(stripMarks(), v)
	if err != nil {
		result = v
	}
	if isASCII(result) {
		return result
	}
	return unidecode.Unidecode(result)
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// ReplaceNewlineAndTab replaces newlines and tabs with a space, useful for
// cells coming from spreadsheet exports.
func ReplaceNewlineAndTab(s string) string {
	var sb strings.Builder
	for _, c := range s {
		if c == '\n' || c == '\t' || c == '\r' {
			sb.WriteString(" ")
		} else {
			sb.WriteRune(c)
		}
	}
	return sb.String()
}
