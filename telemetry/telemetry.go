// Package telemetry collects hierarchical operation timings. Collectors
// travel through context so instrumentation never changes function
// signatures; without a collector in the context every call is a no-op.
package telemetry

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/shieldai/inventory/output"
)

type contextKey struct{}

var collectorKey = contextKey{}

// Collector gathers operation timings for one run.
type Collector interface {
	// Start begins timing a top-level operation. End the returned timer
	// when the operation completes.
	Start(name string) Timer

	// Report writes the collected timing tree. styles adds terminal
	// styling and may be nil for plain output.
	Report(w io.Writer, styles *output.Styles)
}

// Timer tracks one operation. Nested operations go through Child.
type Timer interface {
	End()
	Child(name string) Timer
}

// WithCollector stores a collector in the context.
func WithCollector(ctx context.Context, c Collector) context.Context {
	return context.WithValue(ctx, collectorKey, c)
}

// FromContext returns the context's collector, or a no-op collector when
// none was stored.
func FromContext(ctx context.Context) Collector {
	if c, ok := ctx.Value(collectorKey).(Collector); ok {
		return c
	}
	return noopCollector{}
}

// TimingCollector records timings into a tree.
type TimingCollector struct {
	mu      sync.Mutex
	root    *span
	current *span
}

type span struct {
	name     string
	start    time.Time
	end      time.Time
	parent   *span
	children []*span
}

// NewTimingCollector creates an empty collector.
func NewTimingCollector() *TimingCollector {
	return &TimingCollector{}
}

// Start begins a timed span. The first span becomes the root; later ones
// nest under the currently open span.
func (c *TimingCollector) Start(name string) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := &span{name: name, start: time.Now()}
	if c.root == nil {
		c.root = s
	} else {
		s.parent = c.current
		c.current.children = append(c.current.children, s)
	}
	c.current = s
	return &timer{collector: c, span: s}
}

// Report writes the timing tree, one line per span:
//
//	Parse: 12ms
//	├─ Load workbook: 8ms
//	├─ Build tree: 3ms
//	└─ Allocate expenses: 1ms
//
// With styles, the root name is bold, tree characters and fast timings are
// dimmed, and slow spans (>= 100ms) are highlighted.
func (c *TimingCollector) Report(w io.Writer, styles *output.Styles) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.root == nil {
		return
	}

	name := c.root.name
	if styles != nil {
		name = styles.Keyword(name)
	}
	fmt.Fprintf(w, "%s: %s\n", name, formatDuration(c.root.end.Sub(c.root.start)))
	writeChildren(w, c.root, "", styles)
}

func writeChildren(w io.Writer, s *span, prefix string, styles *output.Styles) {
	for i, child := range s.children {
		branch, extension := "├─ ", "│  "
		if i == len(s.children)-1 {
			branch, extension = "└─ ", "   "
		}

		duration := child.end.Sub(child.start)
		lead := prefix + branch
		timing := formatDuration(duration)
		if styles != nil {
			lead = styles.Dim(lead)
			if duration >= 100*time.Millisecond {
				timing = styles.Warning(timing)
			} else {
				timing = styles.Dim(timing)
			}
		}
		fmt.Fprintf(w, "%s%s: %s\n", lead, child.name, timing)
		writeChildren(w, child, prefix+extension, styles)
	}
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.0fms", float64(d)/float64(time.Millisecond))
	}
	return fmt.Sprintf("%.2fs", float64(d)/float64(time.Second))
}

type timer struct {
	collector *TimingCollector
	span      *span
}

func (t *timer) End() {
	t.collector.mu.Lock()
	defer t.collector.mu.Unlock()

	t.span.end = time.Now()
	if t.span.parent != nil {
		t.collector.current = t.span.parent
	}
}

func (t *timer) Child(name string) Timer {
	t.collector.mu.Lock()
	defer t.collector.mu.Unlock()

	s := &span{name: name, start: time.Now(), parent: t.span}
	t.span.children = append(t.span.children, s)
	return &timer{collector: t.collector, span: s}
}

type noopCollector struct{}

func (noopCollector) Start(string) Timer               { return noopTimer{} }
func (noopCollector) Report(io.Writer, *output.Styles) {}

type noopTimer struct{}

func (noopTimer) End()               {}
func (noopTimer) Child(string) Timer { return noopTimer{} }
