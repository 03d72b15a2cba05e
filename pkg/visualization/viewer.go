// Package visualization extracts 2-D cross-sections from a volume for
// preview purposes. Slices are rendered as 16-bit grayscale images with the
// intensity window spanning the volume's own sample range, so previews stay
// meaningful for any pixel type the working data originated from.
package visualization

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	"volblur/internal/models"
)

// Viewer renders cross-sections of a volume. A 2-D volume is treated as a
// single-slice stack along the z axis.
type Viewer struct {
	vol *models.Volume

	// dimensions of the volume
	width  int
	height int
	depth  int

	// intensity window for rendering
	lo, hi float64
}

// NewViewer creates a viewer for the volume. The intensity window is fixed
// at construction from the volume's min and max samples.
func NewViewer(vol *models.Volume) *Viewer {
	v := &Viewer{vol: vol}

	switch vol.Dimensionality() {
	case 2:
		v.depth = 1
		v.height = vol.Dims[0]
		v.width = vol.Dims[1]
	default:
		v.depth = vol.Dims[0]
		v.height = vol.Dims[1]
		v.width = vol.Dims[2]
	}

	if len(vol.Data) > 0 {
		v.lo, v.hi = vol.Data[0], vol.Data[0]
		for _, s := range vol.Data {
			if s < v.lo {
				v.lo = s
			}
			if s > v.hi {
				v.hi = s
			}
		}
	}

	return v
}

// window maps a sample into the 16-bit display range.
func (v *Viewer) window(sample float64) uint16 {
	if v.hi <= v.lo {
		return 0
	}
	f := (sample - v.lo) / (v.hi - v.lo)
	return uint16(f * 65535)
}

// at returns the sample at (x, y, z) in volume coordinates.
func (v *Viewer) at(x, y, z int) float64 {
	return v.vol.Data[z*v.width*v.height+y*v.width+x]
}

// SliceCount returns the number of slices available along the given axis.
func (v *Viewer) SliceCount(axis string) (int, error) {
	switch axis {
	case "x", "X":
		return v.width, nil
	case "y", "Y":
		return v.height, nil
	case "z", "Z":
		return v.depth, nil
	}
	return 0, fmt.Errorf("invalid axis: %s (must be x, y, or z)", axis)
}

// ExtractSlice extracts a 2-D cross-section at the given position along the
// specified axis.
func (v *Viewer) ExtractSlice(axis string, position int) (image.Image, error) {
	if position < 0 {
		return nil, fmt.Errorf("position must be non-negative")
	}

	var img *image.Gray16

	switch axis {
	case "x", "X":
		// Extract slice along YZ plane
		if position >= v.width {
			return nil, fmt.Errorf("position %d exceeds width %d", position, v.width)
		}

		img = image.NewGray16(image.Rect(0, 0, v.depth, v.height))
		for y := 0; y < v.height; y++ {
			for z := 0; z < v.depth; z++ {
				img.SetGray16(z, y, color.Gray16{Y: v.window(v.at(position, y, z))})
			}
		}

	case "y", "Y":
		// Extract slice along XZ plane
		if position >= v.height {
			return nil, fmt.Errorf("position %d exceeds height %d", position, v.height)
		}

		img = image.NewGray16(image.Rect(0, 0, v.width, v.depth))
		for z := 0; z < v.depth; z++ {
			for x := 0; x < v.width; x++ {
				img.SetGray16(x, z, color.Gray16{Y: v.window(v.at(x, position, z))})
			}
		}

	case "z", "Z":
		// Extract slice along XY plane
		if position >= v.depth {
			return nil, fmt.Errorf("position %d exceeds depth %d", position, v.depth)
		}

		img = image.NewGray16(image.Rect(0, 0, v.width, v.height))
		for y := 0; y < v.height; y++ {
			for x := 0; x < v.width; x++ {
				img.SetGray16(x, y, color.Gray16{Y: v.window(v.at(x, y, position))})
			}
		}

	default:
		return nil, fmt.Errorf("invalid axis: %s (must be x, y, or z)", axis)
	}

	return img, nil
}

// SaveSliceSequence extracts every slice along the given axis and writes
// each as a PNG file into outputDir, creating the directory if needed.
func (v *Viewer) SaveSliceSequence(axis string, outputDir string) error {
	count, err := v.SliceCount(axis)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	for i := 0; i < count; i++ {
		img, err := v.ExtractSlice(axis, i)
		if err != nil {
			return fmt.Errorf("failed to extract slice %d: %w", i, err)
		}

		path := filepath.Join(outputDir, fmt.Sprintf("slice_%03d.png", i))
		if err := imaging.Save(img, path); err != nil {
			return fmt.Errorf("failed to save slice %d: %w", i, err)
		}
	}

	return nil
}
