// Package timing provides named interval timers for basic per-stage
// profiling of a pipeline run. Probes are created on first Start and
// accumulate across repeated Start/Stop cycles.
package timing

import (
	"fmt"
	"io"
	"time"
)

// Probe accumulates elapsed time for one named interval.
type Probe struct {
	name    string
	start   time.Time
	total   time.Duration
	starts  int
	running bool
}

// Total returns the accumulated duration of the probe.
func (p *Probe) Total() time.Duration {
	return p.total
}

// Collector holds the probes of a single run, in first-start order.
type Collector struct {
	order  []string
	probes map[string]*Probe
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{probes: make(map[string]*Probe)}
}

// Start begins (or resumes) the named probe. Starting an already running
// probe restarts its current interval.
func (c *Collector) Start(name string) {
	p, ok := c.probes[name]
	if !ok {
		p = &Probe{name: name}
		c.probes[name] = p
		c.order = append(c.order, name)
	}
	p.start = time.Now()
	p.starts++
	p.running = true
}

// Stop ends the named probe's current interval and adds it to the total.
// Stopping an unknown or idle probe is a no-op.
func (c *Collector) Stop(name string) {
	p, ok := c.probes[name]
	if !ok || !p.running {
		return
	}
	p.total += time.Since(p.start)
	p.running = false
}

// Probe returns the named probe, or nil if it was never started.
func (c *Collector) Probe(name string) *Probe {
	return c.probes[name]
}

// Report writes a table of probe totals in first-start order.
func (c *Collector) Report(w io.Writer) {
	if len(c.order) == 0 {
		return
	}
	fmt.Fprintf(w, "%-16s %7s %12s\n", "Probe", "Starts", "Total (s)")
	for _, name := range c.order {
		p := c.probes[name]
		fmt.Fprintf(w, "%-16s %7d %12.4f\n", p.name, p.starts, p.total.Seconds())
	}
}
