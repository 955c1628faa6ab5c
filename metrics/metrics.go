// Package metrics collects run figures into a prometheus registry, which can
// be written as a textfile for the node exporter.
package metrics

import (
	"errors"

	"github.com/miku/collabnet/coauthor"
	"github.com/miku/collabnet/records"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "collabnet"

// Metrics of a single run, labeled by profile and policy.
type Metrics struct {
	Registry *prometheus.Registry

	Files              prometheus.Gauge
	Rows               prometheus.Gauge
	Records            prometheus.Gauge
	Duplicates         prometheus.Gauge
	MissingAuthors     prometheus.Gauge
	Authors            prometheus.Gauge
	RetainedAuthors    prometheus.Gauge
	Edges              prometheus.Gauge
	MalformedCitations prometheus.Gauge
	StageSeconds       *prometheus.GaugeVec
	LastSuccess        prometheus.Gauge
}

// New registers all metrics on a fresh registry.
func New(profile, policy string) *Metrics {
	reg := prometheus.NewRegistry()
	labels := prometheus.Labels{"profile": profile, "policy": policy}
	f := promauto.With(reg)
	gauge := func(name, help string) prometheus.Gauge {
		return f.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        name,
			Help:        help,
			ConstLabels: labels,
		})
	}
	return &Metrics{
		Registry:           reg,
		Files:              gauge("input_files", "Number of input files read."),
		Rows:               gauge("input_rows", "Number of data rows read."),
		Records:            gauge("records", "Number of records after de-duplication."),
		Duplicates:         gauge("duplicate_records", "Number of rows dropped as duplicates."),
		MissingAuthors:     gauge("missing_author_records", "Number of rows dropped for an empty author field."),
		Authors:            gauge("authors", "Number of distinct authors."),
		RetainedAuthors:    gauge("retained_authors", "Number of authors at or above the threshold."),
		Edges:              gauge("edges", "Number of collaborations in the graph."),
		MalformedCitations: gauge("malformed_citations", "Number of records with an unparsable citation count."),
		StageSeconds: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "stage_duration_seconds",
			Help:        "Time spent per pipeline stage.",
			ConstLabels: labels,
		}, []string{"stage"}),
		LastSuccess: gauge("last_success_timestamp_seconds", "Time of the last successful run."),
	}
}

// ObserveRecords records loading figures.
func (m *Metrics) ObserveRecords(s records.Stats) {
	m.Files.Set(float64(s.Files))
	m.Rows.Set(float64(s.Rows))
	m.Records.Set(float64(s.Records))
	m.Duplicates.Set(float64(s.Duplicates))
	m.MissingAuthors.Set(float64(s.MissingAuthors))
}

// ObserveResult records pipeline figures.
func (m *Metrics) ObserveResult(r *coauthor.Result) {
	m.Authors.Set(float64(r.Universe.Len()))
	m.RetainedAuthors.Set(float64(r.Matrix.Len()))
	m.Edges.Set(float64(len(r.Matrix.Edges())))
	var n int
	for _, w := range r.Warnings {
		var mce *coauthor.MalformedCitationError
		if errors.As(w, &mce) {
			n++
		}
	}
	m.MalformedCitations.Set(float64(n))
	for stage, d := range r.Timings {
		m.StageSeconds.WithLabelValues(string(stage)).Set(d.Seconds())
	}
}

// WriteTextfile writes all metrics to filename in the text exposition
// format, marking the run as successful.
func (m *Metrics) WriteTextfile(filename string) error {
	m.LastSuccess.SetToCurrentTime()
	return prometheus.WriteToTextfile(filename, m.Registry)
}
