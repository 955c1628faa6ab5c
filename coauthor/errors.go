package coauthor

import "fmt"

// Stage names a step of the pipeline.
type Stage string

const (
	StageConfig   Stage = "config"
	StageUniverse Stage = "universe"
	StageMatrix   Stage = "matrix"
	StageFilter   Stage = "filter"
	StageScore    Stage = "score"
)

// StageError reports which stage of a run failed.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// ConfigurationError is returned for invalid run parameters, e.g. a
// threshold below one. Values are never clamped.
type ConfigurationError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Field, e.Value, e.Reason)
}

// EmptyGraphError is returned when no author is left to put into a graph.
type EmptyGraphError struct {
	// Authors is the number of distinct authors before filtering.
	Authors   int
	MinWeight int
}

func (e *EmptyGraphError) Error() string {
	if e.Authors == 0 {
		return "empty graph: no authors found in records"
	}
	return fmt.Sprintf("empty graph: none of %d authors has at least %d publications",
		e.Authors, e.MinWeight)
}

// MalformedCitationError is returned for a citation count that is not a
// non-negative integer.
type MalformedCitationError struct {
	// Record is the position of the record in the input.
	Record int
	ID     string
	Value  string
}

func (e *MalformedCitationError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("malformed citation count %q in record %d (%s)", e.Value, e.Record, e.ID)
	}
	return fmt.Sprintf("malformed citation count %q in record %d", e.Value, e.Record)
}

// AsymmetryError means row and column of a pair disagree, which points to a
// bug in the matrix construction or inconsistent record matching.
type AsymmetryError struct {
	A, B   string
	AB, BA int
}

func (e *AsymmetryError) Error() string {
	if e.A == e.B {
		return fmt.Sprintf("self loop for %q with weight %d", e.A, e.AB)
	}
	return fmt.Sprintf("asymmetric weights: %q->%q=%d, %q->%q=%d", e.A, e.B, e.AB, e.B, e.A, e.BA)
}
