// Package progress provides fractional progress reporting for a single
// pipeline run. Stages do not talk to an output stream directly; the caller
// injects a callback and the Reporter guarantees the values it receives are
// clamped to [0, 1] and never decrease.
package progress

// Func receives a fractional progress value in [0, 1].
type Func func(fraction float64)

// Reporter tracks the progress of one run and forwards updates to the
// injected callback. A nil callback is valid and makes every report a no-op,
// so stages never need to check whether reporting is enabled.
type Reporter struct {
	report Func
	last   float64
}

// NewReporter creates a reporter that forwards updates to fn.
func NewReporter(fn Func) *Reporter {
	return &Reporter{report: fn}
}

// Start reports the initial 0.0 fraction.
func (r *Reporter) Start() {
	r.last = 0
	if r.report != nil {
		r.report(0)
	}
}

// Report forwards a progress fraction. Values are clamped to [0, 1] and
// values below the last reported fraction are ignored, so interleaved
// per-stage reports cannot make progress run backwards.
func (r *Reporter) Report(fraction float64) {
	if fraction > 1 {
		fraction = 1
	}
	if fraction <= r.last {
		return
	}
	r.last = fraction
	if r.report != nil {
		r.report(fraction)
	}
}

// End reports completion (exactly 1.0).
func (r *Reporter) End() {
	r.Report(1.0)
}

// Current returns the last reported fraction.
func (r *Reporter) Current() float64 {
	return r.last
}
