package telemetry

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"

	"github.com/robinvdvleuten/ledger-import/output"
)

// fakeClock advances by step every time it is read.
func fakeClock(step time.Duration) func() time.Time {
	now := time.Date(2016, 3, 20, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		now = now.Add(step)
		return now
	}
}

func newTestCollector(step time.Duration) *TimingCollector {
	c := NewTimingCollector()
	c.now = fakeClock(step)
	return c
}

func TestNoOpCollector(t *testing.T) {
	collector := noOpCollector{}

	timer := collector.Start("test")
	timer.Child("child").End()
	timer.End()

	var buf bytes.Buffer
	collector.Report(&buf)
	assert.Equal(t, 0, buf.Len())
}

func TestFromContextReturnsNoOpWhenMissing(t *testing.T) {
	collector := FromContext(context.Background())
	_, ok := collector.(noOpCollector)
	assert.True(t, ok, "expected noOpCollector, got %T", collector)
}

func TestWithCollector(t *testing.T) {
	collector := NewTimingCollector()
	ctx := WithCollector(context.Background(), collector)

	retrieved, ok := FromContext(ctx).(*TimingCollector)
	assert.True(t, ok)
	assert.True(t, retrieved == collector)
}

func TestTimingCollectorNesting(t *testing.T) {
	collector := newTestCollector(5 * time.Millisecond)

	root := collector.Start("import checking.csv")
	parse := collector.Start("parse main.ledger")
	parse.End()
	index := collector.Start("index ledger")
	index.End()
	root.End()

	var buf bytes.Buffer
	collector.Report(&buf)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, 3, len(lines))
	assert.True(t, strings.HasPrefix(lines[0], "import checking.csv: "))
	assert.Equal(t, "├─ parse main.ledger: 5ms", lines[1])
	assert.Equal(t, "└─ index ledger: 5ms", lines[2])
}

func TestTimingCollectorChild(t *testing.T) {
	collector := newTestCollector(time.Millisecond)

	t1 := collector.Start("Level 1")
	t2 := t1.Child("Level 2")
	t3 := t2.Child("Level 3")
	t3.End()
	t2.End()
	t1.End()

	var buf bytes.Buffer
	collector.Report(&buf)
	output := buf.String()

	assert.Contains(t, output, "Level 1")
	assert.Contains(t, output, "└─ Level 2")
	assert.Contains(t, output, "   └─ Level 3")
}

func TestMeasure(t *testing.T) {
	collector := newTestCollector(time.Millisecond)
	ctx := WithCollector(context.Background(), collector)

	root := collector.Start("check")
	Measure(ctx, "format")()
	root.End()

	var buf bytes.Buffer
	collector.Report(&buf)
	assert.Contains(t, buf.String(), "└─ format: 1ms")

	// Without a collector Measure is a no-op.
	Measure(context.Background(), "ignored")()
}

func TestReportWithStyles(t *testing.T) {
	var buf bytes.Buffer
	collector := NewTimingCollector(WithStyles(output.NewStyles(&buf)))
	collector.now = fakeClock(time.Millisecond)

	collector.Start("check").End()
	collector.Report(&buf)
	assert.Contains(t, buf.String(), "check")
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		duration time.Duration
		want     string
	}{
		{1 * time.Millisecond, "1ms"},
		{999 * time.Millisecond, "999ms"},
		{1 * time.Second, "1.00s"},
		{1500 * time.Millisecond, "1.50s"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatDuration(tt.duration))
	}
}

func TestTimingCollectorEmptyReport(t *testing.T) {
	collector := NewTimingCollector()

	var buf bytes.Buffer
	collector.Report(&buf)
	assert.Equal(t, 0, buf.Len())
}
