package models

import (
	"fmt"
	"strings"
)

// PixelType identifies the scalar representation of one sample in an image
// file. The working representation in memory is always float64; PixelType
// matters only at the file boundary, when samples are decoded on load and
// cast on write.
type PixelType int

const (
	// UInt8 is an 8-bit unsigned integer sample (0..255).
	UInt8 PixelType = iota

	// Int16 is a 16-bit signed integer sample (-32768..32767).
	Int16

	// UInt16 is a 16-bit unsigned integer sample (0..65535).
	UInt16

	// Int32 is a 32-bit signed integer sample.
	Int32

	// Float32 is a 32-bit IEEE floating-point sample.
	Float32

	// Float64 is a 64-bit IEEE floating-point sample.
	Float64
)

// pixelTypeNames maps the canonical spelling of each pixel type. ParsePixelType
// accepts these case-insensitively.
var pixelTypeNames = map[PixelType]string{
	UInt8:   "uint8",
	Int16:   "int16",
	UInt16:  "uint16",
	Int32:   "int32",
	Float32: "float32",
	Float64: "float64",
}

// String returns the canonical name of the pixel type.
func (p PixelType) String() string {
	if name, ok := pixelTypeNames[p]; ok {
		return name
	}
	return fmt.Sprintf("PixelType(%d)", int(p))
}

// Integral reports whether the pixel type stores integer samples, and hence
// whether writing requires rounding and range clamping.
func (p PixelType) Integral() bool {
	switch p {
	case UInt8, Int16, UInt16, Int32:
		return true
	}
	return false
}

// Range returns the representable sample range for integral pixel types.
// For floating-point types it returns (0, 0) and the caller must not clamp.
func (p PixelType) Range() (min, max float64) {
	switch p {
	case UInt8:
		return 0, 255
	case Int16:
		return -32768, 32767
	case UInt16:
		return 0, 65535
	case Int32:
		return -2147483648, 2147483647
	}
	return 0, 0
}

// ParsePixelType resolves a pixel type from its canonical name.
func ParsePixelType(name string) (PixelType, error) {
	lower := strings.ToLower(strings.TrimSpace(name))
	for pt, n := range pixelTypeNames {
		if n == lower {
			return pt, nil
		}
	}
	return 0, fmt.Errorf("unknown pixel type %q (supported: uint8, int16, uint16, int32, float32, float64)", name)
}

// Volume is an image volume held in the floating-point working
// representation. Data is stored in row-major order with Dims[0] as the
// slowest-varying axis, so a 3-D volume with Dims = [depth, height, width]
// addresses sample (z, y, x) at index z*height*width + y*width + x.
type Volume struct {
	// Data holds the samples as a flat array in row-major order.
	Data []float64

	// Dims are the axis extents, slowest axis first. Length 2 or 3.
	Dims []int

	// Spacing is the physical distance between adjacent samples along each
	// axis, in the same order as Dims. Defaults to 1.0 per axis; the
	// supported file formats carry no spacing metadata.
	Spacing []float64

	// Origin is the physical position of the first sample along each axis.
	// Defaults to 0.0 per axis.
	Origin []float64

	// SourceType is the pixel type of the file the volume was loaded from.
	// It is the default output pixel type when the caller does not override.
	SourceType PixelType
}

// NewVolume allocates a zero-filled volume with the given axis extents and
// default spatial metadata.
func NewVolume(dims []int) *Volume {
	n := 1
	for _, d := range dims {
		n *= d
	}

	spacing := make([]float64, len(dims))
	origin := make([]float64, len(dims))
	for i := range spacing {
		spacing[i] = 1.0
	}

	return &Volume{
		Data:       make([]float64, n),
		Dims:       append([]int(nil), dims...),
		Spacing:    spacing,
		Origin:     origin,
		SourceType: Float64,
	}
}

// Dimensionality returns the number of spatial axes (2 or 3).
func (v *Volume) Dimensionality() int {
	return len(v.Dims)
}

// NumVoxels returns the total sample count.
func (v *Volume) NumVoxels() int {
	return len(v.Data)
}

// Clone returns a deep copy of the volume. Stages that transform a volume
// operate on a clone so the caller's data is never aliased.
func (v *Volume) Clone() *Volume {
	clone := &Volume{
		Data:       append([]float64(nil), v.Data...),
		Dims:       append([]int(nil), v.Dims...),
		Spacing:    append([]float64(nil), v.Spacing...),
		Origin:     append([]float64(nil), v.Origin...),
		SourceType: v.SourceType,
	}
	return clone
}

// PhysicalExtent returns the physical span covered by each axis, from the
// origin to the last sample, in the same units as Spacing.
func (v *Volume) PhysicalExtent() []float64 {
	extent := make([]float64, len(v.Dims))
	for i, d := range v.Dims {
		if d > 0 {
			extent[i] = v.Origin[i] + float64(d-1)*v.Spacing[i]
		}
	}
	return extent
}

// SameShape reports whether two volumes have identical axis extents.
func (v *Volume) SameShape(other *Volume) bool {
	if len(v.Dims) != len(other.Dims) {
		return false
	}
	for i, d := range v.Dims {
		if other.Dims[i] != d {
			return false
		}
	}
	return true
}
