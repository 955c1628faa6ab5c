package coauthor

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Policy selects how node sizes are computed.
type Policy string

const (
	// PolicyArticles sizes nodes by number of publications.
	PolicyArticles Policy = "articles"
	// PolicyCitations sizes nodes by the sum of citations.
	PolicyCitations Policy = "citations"
)

// MaxArticleSize is the target upper size for the article policy.
const MaxArticleSize = 13

func (p Policy) Valid() bool {
	return p == PolicyArticles || p == PolicyCitations
}

func (p Policy) String() string { return string(p) }

// Set implements flag.Value.
func (p *Policy) Set(s string) error {
	v := Policy(strings.ToLower(s))
	if !v.Valid() {
		return fmt.Errorf("invalid policy %q, use articles or citations", s)
	}
	*p = v
	return nil
}

// ParseCitations parses a times cited value. Blank values count as zero,
// spreadsheet style integral floats like "12.0" are accepted.
func ParseCitations(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, true
	}
	if v, err := strconv.Atoi(s); err == nil {
		if v < 0 {
			return 0, false
		}
		return v, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 || f != math.Trunc(f) || f > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

// ScoreArticles sizes each author by publication count. With k being the
// largest count divided by MaxArticleSize, an author with count x gets
// floor(x/k + k) if x >= k and x + 1 otherwise.
func ScoreArticles(authors []string, u *Universe) map[string]int {
	scores := make(map[string]int, len(authors))
	k := float64(u.Max(authors)) / MaxArticleSize
	for _, a := range authors {
		x := u.Count(a)
		if float64(x) >= k && k > 0 {
			scores[a] = int(math.Floor(float64(x)/k + k))
		} else {
			scores[a] = x + 1
		}
	}
	return scores
}

// CitationScore compresses a citation sum into floor(sum^(1/4)) + 1.
func CitationScore(sum int) int {
	if sum <= 0 {
		return 1
	}
	// integer fourth root, exact for sums like 81
	r := int64(math.Pow(float64(sum), 0.25))
	for (r+1)*(r+1)*(r+1)*(r+1) <= int64(sum) {
		r++
	}
	for r > 0 && r*r*r*r > int64(sum) {
		r--
	}
	return int(r) + 1
}

// ScoreCitations sizes each author by the citations of all records found by
// the matcher. A malformed citation value fails with a
// MalformedCitationError if strict is set; otherwise the record counts as
// zero citations and the error is returned as a warning.
func ScoreCitations(authors []string, c *Corpus, matcher Matcher, strict bool) (map[string]int, []error, error) {
	var (
		citations = make([]int, c.Len())
		warnings  []error
	)
	for i, v := range c.Citations {
		n, ok := ParseCitations(v)
		if !ok {
			err := &MalformedCitationError{Record: i, ID: c.IDs[i], Value: v}
			if strict {
				return nil, nil, err
			}
			warnings = append(warnings, err)
			continue
		}
		citations[i] = n
	}
	scores := make(map[string]int, len(authors))
	for _, a := range authors {
		var sum int
		for _, id := range matcher.Records(a) {
			sum += citations[id]
		}
		scores[a] = CitationScore(sum)
	}
	return scores, warnings, nil
}
