// Package metrics records proximity query statistics. Collector is the hook
// used by the finders; PrometheusCollector exports it.
package metrics

import (
	"sync/atomic"
	"time"
)

// Query kinds reported to a Collector.
const (
	KindRange    = "range"
	KindKNearest = "knearest"
)

// Collector receives one record per needle query.
type Collector interface {
	// RecordQuery is called after each needle is answered. candidates is the
	// number of index hits delivered to the finder, shrinks the number of
	// times the search sphere was narrowed, results the number of ids
	// returned. err is nil if successful.
	RecordQuery(kind string, candidates, shrinks, results int, duration time.Duration, err error)
}

// Noop is a Collector that records nothing.
type Noop struct{}

// RecordQuery implements Collector.
func (Noop) RecordQuery(string, int, int, int, time.Duration, error) {}

// Basic is an in-memory Collector, mostly useful in tests.
type Basic struct {
	Queries    atomic.Int64
	Errors     atomic.Int64
	Candidates atomic.Int64
	Shrinks    atomic.Int64
	Results    atomic.Int64
	TotalNanos atomic.Int64
}

// RecordQuery implements Collector.
func (b *Basic) RecordQuery(kind string, candidates, shrinks, results int, duration time.Duration, err error) {
	b.Queries.Add(1)
	b.Candidates.Add(int64(candidates))
	b.Shrinks.Add(int64(shrinks))
	b.Results.Add(int64(results))
	b.TotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.Errors.Add(1)
	}
}
