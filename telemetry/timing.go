package telemetry

import (
	"io"
	"sync"
	"time"

	"github.com/robinvdvleuten/vesti/output"
)

// TimingCollector collects a forest of timers. It is safe for concurrent
// use, so files compiled in parallel can share one collector.
type TimingCollector struct {
	mu    sync.Mutex
	roots []*timerNode
}

type timerNode struct {
	name     string
	start    time.Time
	end      time.Time
	children []*timerNode
}

// NewTimingCollector creates a new timing collector.
func NewTimingCollector() *TimingCollector {
	return &TimingCollector{}
}

// Start begins timing a top-level operation.
func (c *TimingCollector) Start(name string) Timer {
	node := &timerNode{name: name, start: time.Now()}

	c.mu.Lock()
	c.roots = append(c.roots, node)
	c.mu.Unlock()

	return &timingTimer{collector: c, node: node}
}

// Report writes every top-level timer and its children as a tree.
func (c *TimingCollector) Report(w io.Writer, styles *output.Styles) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, root := range c.roots {
		formatTimingTree(w, root, styles)
	}
}

type timingTimer struct {
	collector *TimingCollector
	node      *timerNode
}

func (t *timingTimer) End() {
	t.collector.mu.Lock()
	defer t.collector.mu.Unlock()

	if t.node.end.IsZero() {
		t.node.end = time.Now()
	}
}

func (t *timingTimer) Child(name string) Timer {
	node := &timerNode{name: name, start: time.Now()}

	t.collector.mu.Lock()
	t.node.children = append(t.node.children, node)
	t.collector.mu.Unlock()

	return &timingTimer{collector: t.collector, node: node}
}

// duration returns the measured time, treating unfinished timers as still
// running.
func (n *timerNode) duration() time.Duration {
	if n.end.IsZero() {
		return time.Since(n.start)
	}
	return n.end.Sub(n.start)
}
