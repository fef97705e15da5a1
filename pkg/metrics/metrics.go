package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedditRequestsTotal counts Reddit API calls by endpoint and outcome.
	RedditRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reddit_requests_total",
			Help: "Total Reddit API requests by endpoint and outcome",
		},
		[]string{"endpoint", "outcome"},
	)

	RedditRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "reddit_request_duration_seconds",
			Help:    "Reddit API request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	// AnalysesTotal counts /analyze requests by outcome (ok, validation, not_found, external, internal).
	AnalysesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sentiment_analyses_total",
			Help: "Total sentiment analysis requests by outcome",
		},
		[]string{"outcome"},
	)

	PostsScoredTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sentiment_posts_scored_total",
			Help: "Total posts scored by the sentiment analyzer",
		},
	)
)
