// Package prometheus exports refer operation metrics to Prometheus.
package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hupe1980/refer"
)

const namespace = "refer"

// Collector implements refer.MetricsCollector and prometheus.Collector.
type Collector struct {
	loadsTotal    *prometheus.CounterVec
	loadDuration  *prometheus.HistogramVec
	queriesTotal  *prometheus.CounterVec
	queryDuration *prometheus.HistogramVec
	queryResults  *prometheus.HistogramVec
	evalsTotal    *prometheus.CounterVec
	evalDuration  *prometheus.HistogramVec
}

var _ refer.MetricsCollector = (*Collector)(nil)

// NewCollector creates the metrics and registers them with reg.
// A nil reg uses prometheus.DefaultRegisterer.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	c := &Collector{
		loadsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "loads_total",
			Help:      "Total number of dataset index builds",
		}, []string{"dataset", "status"}),
		loadDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "load_duration_seconds",
			Help:      "Time taken to load and index a dataset",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 14),
		}, []string{"dataset"}),
		queriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "queries_total",
			Help:      "Total number of filter queries",
		}, []string{"op", "status"}),
		queryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "query_duration_seconds",
			Help:      "Time taken by filter queries",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 12),
		}, []string{"op"}),
		queryResults: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "query_results",
			Help:      "Number of ids returned by filter queries",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
		}, []string{"op"}),
		evalsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "evaluations_total",
			Help:      "Total number of computed evaluation metrics",
		}, []string{"metric", "status"}),
		evalDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "evaluation_duration_seconds",
			Help:      "Time taken to compute an evaluation metric",
			Buckets:   prometheus.DefBuckets,
		}, []string{"metric"}),
	}

	if err := reg.Register(c); err != nil {
		return nil, err
	}
	return c, nil
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	c.loadsTotal.Describe(ch)
	c.loadDuration.Describe(ch)
	c.queriesTotal.Describe(ch)
	c.queryDuration.Describe(ch)
	c.queryResults.Describe(ch)
	c.evalsTotal.Describe(ch)
	c.evalDuration.Describe(ch)
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.loadsTotal.Collect(ch)
	c.loadDuration.Collect(ch)
	c.queriesTotal.Collect(ch)
	c.queryDuration.Collect(ch)
	c.queryResults.Collect(ch)
	c.evalsTotal.Collect(ch)
	c.evalDuration.Collect(ch)
}

// RecordLoad implements refer.MetricsCollector.
func (c *Collector) RecordLoad(dataset string, d time.Duration, err error) {
	c.loadsTotal.WithLabelValues(dataset, status(err)).Inc()
	c.loadDuration.WithLabelValues(dataset).Observe(d.Seconds())
}

// RecordQuery implements refer.MetricsCollector.
func (c *Collector) RecordQuery(op string, results int, d time.Duration, err error) {
	c.queriesTotal.WithLabelValues(op, status(err)).Inc()
	c.queryDuration.WithLabelValues(op).Observe(d.Seconds())
	if err == nil {
		c.queryResults.WithLabelValues(op).Observe(float64(results))
	}
}

// RecordEvaluate implements refer.MetricsCollector.
func (c *Collector) RecordEvaluate(metric string, d time.Duration, err error) {
	c.evalsTotal.WithLabelValues(metric, status(err)).Inc()
	c.evalDuration.WithLabelValues(metric).Observe(d.Seconds())
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
