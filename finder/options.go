package finder

import (
	"log/slog"
	"math"

	"github.com/viant/proximity/index/rtree"
	"github.com/viant/proximity/logging"
	"github.com/viant/proximity/metrics"
)

// DefaultEpsilon pads the k-nearest search sphere beyond the current k-th
// best distance, relative to that distance once it exceeds 1. It is the
// square root of the float64 machine epsilon.
const DefaultEpsilon = 1.490116119384765625e-8

type options struct {
	epsilon     float64
	logger      *slog.Logger
	metrics     metrics.Collector
	treeOptions []rtree.Option
}

// Option configures a finder.
type Option func(*options)

// WithEpsilon sets the k-nearest sphere padding. Negative and non-finite
// values are ignored.
func WithEpsilon(epsilon float64) Option {
	return func(o *options) {
		if epsilon >= 0 && !math.IsInf(epsilon, 1) {
			o.epsilon = epsilon
		}
	}
}

// WithLogger sets the logger. Queries log at debug level and incomplete
// searches at error level.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMetrics sets the collector notified after every needle.
func WithMetrics(collector metrics.Collector) Option {
	return func(o *options) {
		if collector != nil {
			o.metrics = collector
		}
	}
}

// WithTreeOptions configures the R-tree built by the FromPoints constructors
// and the one-shot sequences.
func WithTreeOptions(opts ...rtree.Option) Option {
	return func(o *options) {
		o.treeOptions = append(o.treeOptions, opts...)
	}
}

func newOptions(opts []Option) options {
	o := options{
		epsilon: DefaultEpsilon,
		logger:  logging.Discard(),
		metrics: metrics.Noop{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
