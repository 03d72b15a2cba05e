package volume

import (
	"math"

	"volblur/internal/models"
)

// clampRound converts one working-representation sample to an integral
// pixel type's range: the value is clamped to [min, max] and then rounded
// half-away-from-zero. Clamping before rounding means out-of-range values
// saturate instead of wrapping, matching what image writers conventionally
// do when narrowing.
func clampRound(v, min, max float64) float64 {
	if v < min {
		v = min
	} else if v > max {
		v = max
	}
	return math.Round(v)
}

// castUint8 converts working samples to uint8 with clamping and rounding.
func castUint8(data []float64) []uint8 {
	min, max := models.UInt8.Range()
	out := make([]uint8, len(data))
	for i, v := range data {
		out[i] = uint8(clampRound(v, min, max))
	}
	return out
}

// castInt16 converts working samples to int16 with clamping and rounding.
func castInt16(data []float64) []int16 {
	min, max := models.Int16.Range()
	out := make([]int16, len(data))
	for i, v := range data {
		out[i] = int16(clampRound(v, min, max))
	}
	return out
}

// castUint16 converts working samples to uint16 with clamping and rounding.
func castUint16(data []float64) []uint16 {
	min, max := models.UInt16.Range()
	out := make([]uint16, len(data))
	for i, v := range data {
		out[i] = uint16(clampRound(v, min, max))
	}
	return out
}

// castInt32 converts working samples to int32 with clamping and rounding.
func castInt32(data []float64) []int32 {
	min, max := models.Int32.Range()
	out := make([]int32, len(data))
	for i, v := range data {
		out[i] = int32(clampRound(v, min, max))
	}
	return out
}

// castFloat32 converts working samples to float32. Floating-point targets
// are narrowed without clamping or rounding.
func castFloat32(data []float64) []float32 {
	out := make([]float32, len(data))
	for i, v := range data {
		out[i] = float32(v)
	}
	return out
}

// CastSamples applies the write-time cast to a copy of the samples and
// returns the result in the working representation. This is what a file
// written with pixel type pt will decode back to; tests use it to state the
// identity-modulo-cast property without a file round trip.
func CastSamples(data []float64, pt models.PixelType) []float64 {
	out := make([]float64, len(data))
	if pt.Integral() {
		min, max := pt.Range()
		for i, v := range data {
			out[i] = clampRound(v, min, max)
		}
		return out
	}
	if pt == models.Float32 {
		for i, v := range data {
			out[i] = float64(float32(v))
		}
		return out
	}
	copy(out, data)
	return out
}
