// Package metrics holds the process-wide prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ProjectsScored = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "project_review",
		Name:      "projects_scored_total",
		Help:      "Projects scored, by trigger (submit, rescore, preview).",
	}, []string{"trigger"})

	OverallScore = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "project_review",
		Name:      "overall_score",
		Help:      "Distribution of overall project scores.",
		Buckets:   []float64{1, 1.5, 2, 2.5, 3, 3.5, 4, 4.5, 5},
	})

	ExtractionOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "project_review",
		Name:      "extraction_outcomes_total",
		Help:      "Text extraction results by kind and format.",
	}, []string{"kind", "format"})

	ReviewsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "project_review",
		Name:      "reviews_created_total",
		Help:      "Peer reviews created.",
	})

	InsightsFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "project_review",
		Name:      "insights_failures_total",
		Help:      "Failed optional insight calls, by step.",
	}, []string{"step"})
)
