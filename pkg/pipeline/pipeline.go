// Package pipeline drives a volblur run as a strict sequential pipeline:
// validate arguments, load the input volume, optionally smooth it, cast to
// the output pixel type and write. There is no rollback and no partial
// success; the first stage failure aborts the run and later stages never
// execute.
package pipeline

import (
	"fmt"
	"io"

	"gonum.org/v1/gonum/stat"

	"volblur/internal/models"
	"volblur/internal/progress"
	"volblur/internal/timing"
	"volblur/pkg/gaussian"
	"volblur/pkg/volume"
)

// Probe names used by the timing collector, one per pipeline stage. The
// blur probe exists only when the blur stage actually ran.
const (
	ProbeLoad = "Load data"
	ProbeBlur = "Gaussian blur"
	ProbeSave = "Save data"
)

// Params holds the configuration of one run. Created once from
// command-line input and read-only afterward.
type Params struct {
	// InputPath is the source image file. Required.
	InputPath string

	// OutputPath is the destination image file. Required.
	OutputPath string

	// GaussianBlurStdDev is the smoothing strength in samples. Values <= 0
	// disable the blur stage entirely.
	GaussianBlurStdDev float64

	// OutputPixelType optionally overrides the output pixel type by name
	// (e.g. "uint8", "float32"). Empty means: keep the input file's own
	// pixel type.
	OutputPixelType string

	// Progress receives fractional progress updates in [0, 1]. May be nil.
	Progress progress.Func

	// Verbose enables per-stage narration on stdout.
	Verbose bool
}

// Stats summarizes the working volume after the blur stage, computed just
// before writing.
type Stats struct {
	Min    float64
	Max    float64
	Mean   float64
	StdDev float64
}

// Runner executes one pipeline instance. A Runner is single-use: create,
// Process, inspect.
type Runner struct {
	params *Params
	timers *timing.Collector
	vol    *models.Volume
	stats  Stats
}

// NewRunner creates a runner for the given parameters.
func NewRunner(params *Params) *Runner {
	return &Runner{
		params: params,
		timers: timing.NewCollector(),
	}
}

// Process runs the pipeline to completion. The returned error, if any, is a
// *StageError classifying the failing stage.
func (r *Runner) Process() error {
	p := r.params

	// Stage 1: validate arguments. The output pixel type override is
	// resolved up front so a typo fails before any I/O happens.
	if p.InputPath == "" {
		return argumentErr("configuration", fmt.Errorf("input volume path must not be empty"))
	}
	if p.OutputPath == "" {
		return argumentErr("configuration", fmt.Errorf("output volume path must not be empty"))
	}

	outType := models.PixelType(-1)
	if p.OutputPixelType != "" {
		pt, err := models.ParsePixelType(p.OutputPixelType)
		if err != nil {
			return argumentErr("configuration", err)
		}
		outType = pt
	}

	reporter := progress.NewReporter(p.Progress)
	reporter.Start()

	// Stage 2: load.
	if p.Verbose {
		fmt.Printf("Loading input volume from %s...\n", p.InputPath)
	}
	r.timers.Start(ProbeLoad)
	vol, err := volume.Read(p.InputPath)
	if err != nil {
		return loadErr("image loader", err)
	}
	r.timers.Stop(ProbeLoad)
	reporter.Report(0.1)

	if p.Verbose {
		fmt.Printf("Loaded %d-D volume %v (%s samples)\n",
			vol.Dimensionality(), vol.Dims, vol.SourceType)
		fmt.Printf("Physical extent per axis: %v (spacing %v)\n",
			vol.PhysicalExtent(), vol.Spacing)
	}

	// Stage 3: blur. Skipped for non-positive deviations; the 0.8 progress
	// budget is split evenly across the axis passes.
	if p.GaussianBlurStdDev > 0 {
		if p.Verbose {
			fmt.Printf("Applying recursive Gaussian blur (sigma=%g)...\n", p.GaussianBlurStdDev)
		}
		r.timers.Start(ProbeBlur)
		vol, err = gaussian.Smooth(vol, p.GaussianBlurStdDev, func(axis, total int) {
			reporter.Report(0.1 + 0.8*float64(axis+1)/float64(total))
		})
		if err != nil {
			return argumentErr("blur stage", err)
		}
		r.timers.Stop(ProbeBlur)
	}

	r.vol = vol
	r.stats = computeStats(vol)

	// Stage 4: cast and write.
	if outType == models.PixelType(-1) {
		outType = vol.SourceType
	}
	if p.Verbose {
		fmt.Printf("Writing output volume to %s (%s)...\n", p.OutputPath, outType)
	}
	r.timers.Start(ProbeSave)
	if err := volume.Write(vol, p.OutputPath, outType); err != nil {
		return writeErr("image writer", err)
	}
	r.timers.Stop(ProbeSave)

	reporter.End()
	return nil
}

// Volume returns the working volume after a successful Process. It reflects
// the blurred data, before the output cast.
func (r *Runner) Volume() *models.Volume {
	return r.vol
}

// Stats returns the summary statistics of the working volume.
func (r *Runner) Stats() Stats {
	return r.stats
}

// Timers exposes the per-stage timing collector.
func (r *Runner) Timers() *timing.Collector {
	return r.timers
}

// ReportTimings writes the per-stage timing table.
func (r *Runner) ReportTimings(w io.Writer) {
	r.timers.Report(w)
}

// computeStats summarizes the volume with gonum.
func computeStats(v *models.Volume) Stats {
	if len(v.Data) == 0 {
		return Stats{}
	}

	min, max := v.Data[0], v.Data[0]
	for _, s := range v.Data {
		if s < min {
			min = s
		}
		if s > max {
			max = s
		}
	}

	return Stats{
		Min:    min,
		Max:    max,
		Mean:   stat.Mean(v.Data, nil),
		StdDev: stat.StdDev(v.Data, nil),
	}
}
