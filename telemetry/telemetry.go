// Package telemetry records how long the stages of an import run take.
//
// A Collector travels through context.Context so that the parser, the ledger
// indexer and the formatter can be timed without changing their signatures.
// When no collector is present, FromContext hands out a no-op implementation.
//
//	collector := telemetry.NewTimingCollector()
//	ctx := telemetry.WithCollector(context.Background(), collector)
//
//	timer := collector.Start("import checking.csv")
//	journal, err := parser.Parse(ctx, filename, src) // nested under the import timer
//	timer.End()
//
//	collector.Report(os.Stderr)
package telemetry

import (
	"context"
	"io"
)

type contextKey struct{}

var collectorKey = contextKey{}

// Collector collects timings for a run.
type Collector interface {
	// Start begins timing an operation. Operations started while another is
	// running are nested beneath it.
	Start(name string) Timer

	// Report writes the collected timings to w.
	Report(w io.Writer)
}

// Timer tracks a single operation's timing.
type Timer interface {
	End()
	Child(name string) Timer
}

// WithCollector adds a collector to a context.
func WithCollector(ctx context.Context, collector Collector) context.Context {
	return context.WithValue(ctx, collectorKey, collector)
}

// FromContext extracts the collector from context, or a no-op collector if
// there is none.
func FromContext(ctx context.Context) Collector {
	if collector, ok := ctx.Value(collectorKey).(Collector); ok {
		return collector
	}
	return noOpCollector{}
}

// Measure starts a timer on the collector carried by ctx and returns the
// function that ends it.
//
//	defer telemetry.Measure(ctx, "index ledger")()
func Measure(ctx context.Context, name string) func() {
	return FromContext(ctx).Start(name).End
}
