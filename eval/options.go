package eval

import (
	"runtime"

	"github.com/hupe1980/refer"
)

type options struct {
	scorers          []Scorer
	logger           *refer.Logger
	metricsCollector refer.MetricsCollector
	concurrency      int
}

func defaultOptions() options {
	return options{
		scorers:          DefaultScorers(),
		logger:           refer.NoopLogger(),
		metricsCollector: refer.NoopMetricsCollector{},
		concurrency:      runtime.GOMAXPROCS(0),
	}
}

// Option configures an Evaluator.
type Option func(*options)

// WithScorers replaces the default scorers.
func WithScorers(scorers ...Scorer) Option {
	return func(o *options) {
		if len(scorers) > 0 {
			o.scorers = scorers
		}
	}
}

// WithLogger sets the logger. If nil is passed, logging is disabled.
func WithLogger(l *refer.Logger) Option {
	return func(o *options) {
		if l == nil {
			l = refer.NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector sets the metrics collector.
func WithMetricsCollector(mc refer.MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = refer.NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithConcurrency bounds the number of scorers running at once.
func WithConcurrency(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.concurrency = n
		}
	}
}
