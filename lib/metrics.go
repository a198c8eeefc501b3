package lib

import (
	"github.com/prometheus/client_golang/prometheus"
	"time"
)

var (
	graphNodes = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "chromjoin_graph_nodes",
			Help: "number of chromatograms in the relation graph",
		},
	)
	graphSeedNodes = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "chromjoin_graph_seed_nodes",
			Help: "number of composition-assigned chromatograms",
		},
	)
	edgesCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "chromjoin_edges_created_total",
			Help: "Total number of graph edges constructed.",
		},
	)
	seedsProcessed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "chromjoin_seeds_processed_total",
			Help: "Total number of seeds taken through edge discovery.",
		},
	)
	expansionDurationHist = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:                            "expansion_duration_milliseconds_histogram",
			Help:                            "Duration of graph expansion calls.",
			Buckets:                         prometheus.DefBuckets,
			NativeHistogramBucketFactor:     1.1,
			NativeHistogramMaxBucketNumber:  10,
			NativeHistogramMinResetDuration: 1 * time.Hour,
		},
	)
)

func init() {
	prometheus.MustRegister(graphNodes)
	prometheus.MustRegister(graphSeedNodes)
	prometheus.MustRegister(edgesCreated)
	prometheus.MustRegister(seedsProcessed)
	prometheus.MustRegister(expansionDurationHist)
}
