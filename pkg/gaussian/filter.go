// Package gaussian implements separable recursive Gaussian smoothing for
// multi-dimensional volumes.
//
// The 1-D pass is the Young–van Vliet third-order IIR approximation of
// Gaussian convolution (Young & van Vliet, "Recursive implementation of the
// Gaussian filter", Signal Processing 44, 1995): a causal forward sweep
// followed by an anti-causal backward sweep, each a three-tap recursion. The
// cost per sample is constant and independent of sigma, unlike a direct FIR
// kernel whose width grows with sigma. The filter is normalized to unit DC
// gain, so the response is invariant to scale and a constant signal passes
// through unchanged for any sigma.
package gaussian

import (
	"fmt"
	"math"

	"volblur/internal/models"
)

// Filter is a zero-order recursive Gaussian smoother for one standard
// deviation. It is stateless across calls and may be reused for any number
// of lines or volumes.
type Filter struct {
	sigma float64

	// Recursion coefficients of the third-order IIR system.
	b0, b1, b2, b3 float64

	// scale is the input gain that normalizes the combined forward and
	// backward passes to unit DC response.
	scale float64
}

// NewFilter creates a filter for the given standard deviation, measured in
// samples. Sigma must be positive; callers that want a no-op for sigma <= 0
// should use Smooth, which handles the pass-through case.
func NewFilter(sigma float64) (*Filter, error) {
	if sigma <= 0 {
		return nil, fmt.Errorf("sigma must be positive, got %g", sigma)
	}

	// The q parameter maps sigma onto the recursion poles; the two branches
	// are the published fits for large and small sigma.
	var q float64
	if sigma >= 2.5 {
		q = 0.98711*sigma - 0.96330
	} else {
		q = 3.97156 - 4.14554*math.Sqrt(1.0-0.26891*sigma)
	}

	q2 := q * q
	q3 := q2 * q

	f := &Filter{sigma: sigma}
	f.b0 = 1.57825 + 2.44413*q + 1.4281*q2 + 0.422205*q3
	f.b1 = 2.44413*q + 2.85619*q2 + 1.26661*q3
	f.b2 = -(1.4281*q2 + 1.26661*q3)
	f.b3 = 0.422205 * q3
	f.scale = 1.0 - (f.b1+f.b2+f.b3)/f.b0

	return f, nil
}

// Sigma returns the standard deviation the filter was built for.
func (f *Filter) Sigma() float64 {
	return f.sigma
}

// smoothLine applies the forward and backward recursions to one line in
// place. The warm-up state of each sweep is initialized to the steady state
// of the nearest boundary sample, which is equivalent to extending the line
// by replicating its edge values.
func (f *Filter) smoothLine(line []float64) {
	n := len(line)
	if n == 0 {
		return
	}

	inv := 1.0 / f.b0

	// Forward (causal) sweep.
	p1, p2, p3 := line[0], line[0], line[0]
	for i := 0; i < n; i++ {
		w := f.scale*line[i] + (f.b1*p1+f.b2*p2+f.b3*p3)*inv
		line[i] = w
		p3, p2, p1 = p2, p1, w
	}

	// Backward (anti-causal) sweep.
	p1, p2, p3 = line[n-1], line[n-1], line[n-1]
	for i := n - 1; i >= 0; i-- {
		y := f.scale*line[i] + (f.b1*p1+f.b2*p2+f.b3*p3)*inv
		line[i] = y
		p3, p2, p1 = p2, p1, y
	}
}

// SmoothAxis applies the 1-D recursive pass along one axis of the volume,
// modifying the volume in place. Lines along the axis are independent and
// are filtered one at a time through a scratch buffer.
func (f *Filter) SmoothAxis(v *models.Volume, axis int) error {
	if axis < 0 || axis >= len(v.Dims) {
		return fmt.Errorf("axis %d out of range for %d-dimensional volume", axis, len(v.Dims))
	}

	n := v.Dims[axis]

	// Row-major layout: elements along the axis are spaced by the product
	// of the faster-varying extents, and the lines tile the volume as
	// outer blocks of n*stride samples.
	stride := 1
	for i := axis + 1; i < len(v.Dims); i++ {
		stride *= v.Dims[i]
	}
	outer := 1
	for i := 0; i < axis; i++ {
		outer *= v.Dims[i]
	}

	line := make([]float64, n)
	for o := 0; o < outer; o++ {
		block := o * n * stride
		for s := 0; s < stride; s++ {
			base := block + s
			for k := 0; k < n; k++ {
				line[k] = v.Data[base+k*stride]
			}
			f.smoothLine(line)
			for k := 0; k < n; k++ {
				v.Data[base+k*stride] = line[k]
			}
		}
	}

	return nil
}

// Smooth applies isotropic separable Gaussian smoothing to the volume and
// returns the result as a new volume of identical shape. The 1-D pass runs
// once per axis in increasing axis order, with the output of each axis
// feeding the next; the composition order is part of the filter's contract
// and is kept fixed for reproducibility.
//
// A sigma <= 0 disables smoothing: the input volume is returned unchanged
// (not cloned). The axisDone callback, if non-nil, fires after each
// completed axis pass with the axis index and the total axis count; it is
// how the pipeline divides its progress budget across axes.
func Smooth(v *models.Volume, sigma float64, axisDone func(axis, total int)) (*models.Volume, error) {
	if sigma <= 0 {
		return v, nil
	}

	f, err := NewFilter(sigma)
	if err != nil {
		return nil, err
	}

	out := v.Clone()
	dims := len(out.Dims)
	for axis := 0; axis < dims; axis++ {
		if err := f.SmoothAxis(out, axis); err != nil {
			return nil, err
		}
		if axisDone != nil {
			axisDone(axis, dims)
		}
	}

	return out, nil
}
