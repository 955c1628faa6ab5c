package coauthor

import (
	"context"
	"time"

	"github.com/miku/collabnet/normal"
	"github.com/sirupsen/logrus"
)

// Options configure a run.
type Options struct {
	// Normalizer is applied to every author field, once.
	Normalizer normal.Normalizer
	// Separator between authors in a normalized field.
	Separator string
	// MinWeight is the minimum number of publications of an author, at least 1.
	MinWeight int
	// Policy for node sizes.
	Policy Policy
	// Strict fails the run on a malformed citation count, instead of
	// counting it as zero.
	Strict bool
	// Match selects how records of an author are found.
	Match MatchMode
	// Workers for the matrix stage, defaults to the number of CPUs.
	Workers int
	// Reporter gets progress updates during the matrix stage, may be nil.
	Reporter Reporter
	// Logger defaults to the logrus standard logger.
	Logger logrus.FieldLogger
}

// Validate checks options, without clamping any value.
func (o Options) Validate() error {
	if o.MinWeight < 1 {
		return &ConfigurationError{Field: "threshold", Value: o.MinWeight,
			Reason: "minimum number of publications must be at least 1"}
	}
	if o.Separator == "" {
		return &ConfigurationError{Field: "separator", Value: `""`, Reason: "separator must not be empty"}
	}
	if !o.Policy.Valid() {
		return &ConfigurationError{Field: "policy", Value: o.Policy, Reason: "use articles or citations"}
	}
	switch o.Match {
	case "", MatchIndex, MatchScan:
	default:
		return &ConfigurationError{Field: "match mode", Value: o.Match, Reason: "use index or scan"}
	}
	if o.Workers < 0 {
		return &ConfigurationError{Field: "workers", Value: o.Workers, Reason: "must not be negative"}
	}
	return nil
}

// Result of a run. Matrix contains only the authors that passed the
// threshold; Universe still describes all authors.
type Result struct {
	Corpus   *Corpus
	Universe *Universe
	Matrix   *Matrix
	Scores   map[string]int
	Warnings []error
	Timings  map[Stage]time.Duration
}

// Run builds the filtered co-authorship matrix and node scores for a set of
// de-duplicated records. Any failure is returned as a *StageError.
func Run(ctx context.Context, records []Record, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, &StageError{Stage: StageConfig, Err: err}
	}
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	var (
		result = &Result{Timings: make(map[Stage]time.Duration)}
		t      = time.Now()
	)
	result.Corpus = NewCorpus(records, opts.Normalizer, opts.Separator)
	result.Universe = BuildUniverse(result.Corpus)
	result.Timings[StageUniverse] = time.Since(t)
	log.WithFields(logrus.Fields{
		"records": result.Corpus.Len(),
		"authors": result.Universe.Len(),
	}).Info("built author universe")
	if result.Universe.Len() == 0 {
		return nil, &StageError{Stage: StageUniverse, Err: &EmptyGraphError{MinWeight: opts.MinWeight}}
	}
	t = time.Now()
	mode := opts.Match
	if mode == "" {
		mode = MatchIndex
	}
	matcher, err := NewMatcher(mode, result.Corpus)
	if err != nil {
		return nil, &StageError{Stage: StageMatrix, Err: err}
	}
	m, err := BuildMatrix(ctx, result.Corpus, result.Universe, matcher,
		WithWorkers(opts.Workers), WithReporter(opts.Reporter))
	if err != nil {
		return nil, &StageError{Stage: StageMatrix, Err: err}
	}
	result.Timings[StageMatrix] = time.Since(t)
	log.WithFields(logrus.Fields{
		"match":   mode,
		"elapsed": result.Timings[StageMatrix],
	}).Debug("built co-authorship matrix")
	t = time.Now()
	filtered, err := Filter(m, result.Universe, opts.MinWeight)
	if err != nil {
		return nil, &StageError{Stage: StageFilter, Err: err}
	}
	if filtered.Len() == 0 {
		return nil, &StageError{Stage: StageFilter, Err: &EmptyGraphError{
			Authors:   result.Universe.Len(),
			MinWeight: opts.MinWeight,
		}}
	}
	result.Matrix = filtered
	result.Timings[StageFilter] = time.Since(t)
	log.WithFields(logrus.Fields{
		"threshold": opts.MinWeight,
		"retained":  filtered.Len(),
		"dropped":   m.Len() - filtered.Len(),
	}).Info("applied publication threshold")
	t = time.Now()
	authors := filtered.Authors()
	switch opts.Policy {
	case PolicyArticles:
		result.Scores = ScoreArticles(authors, result.Universe)
	case PolicyCitations:
		scores, warnings, err := ScoreCitations(authors, result.Corpus, matcher, opts.Strict)
		if err != nil {
			return nil, &StageError{Stage: StageScore, Err: err}
		}
		for _, w := range warnings {
			log.WithField("stage", StageScore).Warn(w)
		}
		result.Scores, result.Warnings = scores, warnings
	}
	result.Timings[StageScore] = time.Since(t)
	return result, nil
}
