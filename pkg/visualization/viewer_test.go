package visualization

import (
	"image"
	"os"
	"path/filepath"
	"testing"

	"volblur/internal/models"
)

// gradientVolume builds a 3-D volume whose samples depend only on z, so
// every z-slice is constant and slices are easy to verify.
func gradientVolume(depth, height, width int) *models.Volume {
	v := models.NewVolume([]int{depth, height, width})
	for z := 0; z < depth; z++ {
		for i := 0; i < height*width; i++ {
			v.Data[z*height*width+i] = float64(z)
		}
	}
	return v
}

// TestExtractSliceZ verifies z-slice extraction and intensity windowing:
// the darkest slice maps to 0 and the brightest to 65535
func TestExtractSliceZ(t *testing.T) {
	v := gradientVolume(4, 6, 8)
	viewer := NewViewer(v)

	first, err := viewer.ExtractSlice("z", 0)
	if err != nil {
		t.Fatalf("ExtractSlice failed: %v", err)
	}
	last, err := viewer.ExtractSlice("z", 3)
	if err != nil {
		t.Fatalf("ExtractSlice failed: %v", err)
	}

	bounds := first.Bounds()
	if bounds.Dx() != 8 || bounds.Dy() != 6 {
		t.Errorf("Expected 8x6 slice, got %dx%d", bounds.Dx(), bounds.Dy())
	}

	firstGray := first.(*image.Gray16)
	lastGray := last.(*image.Gray16)
	if y := firstGray.Gray16At(3, 3).Y; y != 0 {
		t.Errorf("Expected darkest slice to map to 0, got %d", y)
	}
	if y := lastGray.Gray16At(3, 3).Y; y != 65535 {
		t.Errorf("Expected brightest slice to map to 65535, got %d", y)
	}
}

// TestExtractSliceBounds verifies invalid positions and axes are rejected
func TestExtractSliceBounds(t *testing.T) {
	viewer := NewViewer(gradientVolume(4, 6, 8))

	if _, err := viewer.ExtractSlice("z", 4); err == nil {
		t.Errorf("Expected error for out-of-range z position")
	}
	if _, err := viewer.ExtractSlice("x", -1); err == nil {
		t.Errorf("Expected error for negative position")
	}
	if _, err := viewer.ExtractSlice("w", 0); err == nil {
		t.Errorf("Expected error for invalid axis")
	}
}

// TestTwoDimensionalVolume verifies a 2-D volume is treated as a
// single-slice stack
func TestTwoDimensionalVolume(t *testing.T) {
	v := models.NewVolume([]int{6, 8})
	for i := range v.Data {
		v.Data[i] = float64(i)
	}
	viewer := NewViewer(v)

	count, err := viewer.SliceCount("z")
	if err != nil {
		t.Fatalf("SliceCount failed: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 z-slice for a 2-D volume, got %d", count)
	}

	img, err := viewer.ExtractSlice("z", 0)
	if err != nil {
		t.Fatalf("ExtractSlice failed: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 6 {
		t.Errorf("Expected 8x6 slice, got %dx%d", b.Dx(), b.Dy())
	}
}

// TestSaveSliceSequence verifies PNG export of every slice along an axis
func TestSaveSliceSequence(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "slices")
	viewer := NewViewer(gradientVolume(3, 4, 5))

	if err := viewer.SaveSliceSequence("z", dir); err != nil {
		t.Fatalf("SaveSliceSequence failed: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Failed to read output directory: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("Expected 3 slice files, got %d", len(entries))
	}
	if entries[0].Name() != "slice_000.png" {
		t.Errorf("Expected slice_000.png, got %s", entries[0].Name())
	}
}
