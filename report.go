package collabnet

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/miku/collabnet/coauthor"
	"github.com/miku/collabnet/records"
	"github.com/segmentio/encoding/json"
)

// Report summarizes a run.
type Report struct {
	RunID     string        `json:"run_id"`
	Version   string        `json:"version"`
	Started   time.Time     `json:"started"`
	Elapsed   time.Duration `json:"elapsed_ns"`
	Profile   string        `json:"profile"`
	Policy    string        `json:"policy"`
	Threshold int           `json:"threshold"`
	Match     string        `json:"match"`
	Files     []string      `json:"files"`
	Records   records.Stats `json:"records"`
	Authors   int           `json:"authors"`
	Retained  int           `json:"retained"`
	Edges     int           `json:"edges"`
	// Timings are in seconds, by stage.
	Timings  map[string]float64 `json:"timings"`
	Warnings []string           `json:"warnings,omitempty"`
	Output   string             `json:"output"`
}

// NewReport starts a report with a fresh run id.
func NewReport() *Report {
	return &Report{
		RunID:   uuid.New().String(),
		Version: Version,
		Started: time.Now(),
		Timings: make(map[string]float64),
	}
}

// AddResult copies figures from a pipeline result.
func (r *Report) AddResult(res *coauthor.Result) {
	r.Authors = res.Universe.Len()
	r.Retained = res.Matrix.Len()
	r.Edges = len(res.Matrix.Edges())
	for stage, d := range res.Timings {
		r.Timings[string(stage)] = d.Seconds()
	}
	for _, w := range res.Warnings {
		r.Warnings = append(r.Warnings, w.Error())
	}
}

// Encode writes the report as indented JSON.
func (r *Report) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteFile writes the report to filename.
func (r *Report) WriteFile(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("error creating report: %w", err)
	}
	if err := r.Encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// FormatDuration renders a duration as hours, minutes and seconds, e.g.
// "1h 2m 3s".
func FormatDuration(d time.Duration) string {
	s := int(d.Round(time.Second).Seconds())
	h, s := s/3600, s%3600
	m, s := s/60, s%60
	return fmt.Sprintf("%dh %dm %ds", h, m, s)
}
