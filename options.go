package sinkscan

import (
	"log/slog"

	"golang.org/x/time/rate"

	"github.com/osmcheck/sinkscan/report"
)

type options struct {
	logger  *Logger
	metrics MetricsCollector
	// reporter receives accepted findings; nil means collect-only.
	reporter report.Reporter
	workers  int
	limiter  *rate.Limiter
}

// Option configures a Scanner.
type Option func(*options)

// WithLogger configures structured logging. Pass nil to disable.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel is a convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithMetricsCollector configures a metrics collector. Pass nil to disable.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metrics = mc
	}
}

// WithReporter streams accepted findings to the given reporter in addition
// to returning them from Scan.
func WithReporter(r report.Reporter) Option {
	return func(o *options) {
		o.reporter = r
	}
}

// WithWorkers runs searches on up to n goroutines. Values below 2 keep the
// scan sequential. Findings are identical either way up to ordering; the
// shared ledger makes duplicated work rare rather than impossible, and
// overlapping findings are merged before reporting.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithRateLimit throttles seed admission to roughly perSecond searches per
// second with the given burst. Useful when the scan shares a host with
// latency-sensitive work.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(o *options) {
		o.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		logger:  NoopLogger(),
		metrics: NoopMetricsCollector{},
		workers: 1,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
