// Package metrics exposes Prometheus instruments for parsing and matching.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Parse outcomes.
const (
	OutcomeParsed    = "parsed"
	OutcomeEmpty     = "empty"
	OutcomeNoContent = "no_content"
	OutcomeRejected  = "rejected"
	OutcomeFailed    = "failed"
)

// Metrics groups the domain instruments. A nil *Metrics is valid and records nothing.
type Metrics struct {
	parses        *prometheus.CounterVec
	matchScore    prometheus.Histogram
	matchFailures *prometheus.CounterVec
	sections      *prometheus.CounterVec
}

// New creates the instruments and registers them on reg.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		parses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "resume_parse_total",
				Help: "Documents processed by the resume parser, by source and outcome.",
			},
			[]string{"source", "outcome"},
		),
		matchScore: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "match_score",
			Help:    "Distribution of resume to job description match scores.",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		}),
		matchFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "match_failures_total",
				Help: "Match requests that did not produce a result, by reason.",
			},
			[]string{"reason"},
		),
		sections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "resume_sections_detected_total",
				Help: "Sections found in parsed resumes.",
			},
			[]string{"section"},
		),
	}

	for _, c := range []prometheus.Collector{m.parses, m.matchScore, m.matchFailures, m.sections} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// ObserveParse counts one parse attempt.
func (m *Metrics) ObserveParse(source, outcome string) {
	if m == nil {
		return
	}
	m.parses.WithLabelValues(source, outcome).Inc()
}

// ObserveSections counts the sections present in a parsed record.
func (m *Metrics) ObserveSections(names []string) {
	if m == nil {
		return
	}
	for _, n := range names {
		m.sections.WithLabelValues(n).Inc()
	}
}

// ObserveMatch records a successful match score.
func (m *Metrics) ObserveMatch(score float64) {
	if m == nil {
		return
	}
	m.matchScore.Observe(score)
}

// MatchFailed counts a failed match.
func (m *Metrics) MatchFailed(reason string) {
	if m == nil {
		return
	}
	m.matchFailures.WithLabelValues(reason).Inc()
}
