package services

import "github.com/prometheus/client_golang/prometheus"

var (
	searchCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "college_searches_total",
			Help: "Total number of executed searches by locale.",
		},
		[]string{"locale"},
	)
	searchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "college_search_duration_seconds",
			Help:    "Duration of corpus searches.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
		},
	)
	corpusLoadCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "college_corpus_loads_total",
			Help: "Corpus load attempts by source and result.",
		},
		[]string{"source", "result"},
	)
	corpusPublicationsGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "college_corpus_publications",
			Help: "Number of searchable publications in the active corpus.",
		},
	)
)

func init() {
	prometheus.MustRegister(searchCounter, searchDuration, corpusLoadCounter, corpusPublicationsGauge)
}
