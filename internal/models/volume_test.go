package models

import "testing"

// TestParsePixelType verifies name resolution including case folding and
// rejection of unknown names
func TestParsePixelType(t *testing.T) {
	cases := map[string]PixelType{
		"uint8":   UInt8,
		"Int16":   Int16,
		" uint16": UInt16,
		"INT32":   Int32,
		"float32": Float32,
		"float64": Float64,
	}

	for name, want := range cases {
		got, err := ParsePixelType(name)
		if err != nil {
			t.Errorf("ParsePixelType(%q) failed: %v", name, err)
			continue
		}
		if got != want {
			t.Errorf("ParsePixelType(%q): expected %s, got %s", name, want, got)
		}
	}

	if _, err := ParsePixelType("complex64"); err == nil {
		t.Errorf("Expected error for unsupported pixel type")
	}
}

// TestPixelTypeRanges verifies the integral ranges used for clamping
func TestPixelTypeRanges(t *testing.T) {
	cases := []struct {
		pt       PixelType
		min, max float64
	}{
		{UInt8, 0, 255},
		{Int16, -32768, 32767},
		{UInt16, 0, 65535},
		{Int32, -2147483648, 2147483647},
	}

	for _, c := range cases {
		if !c.pt.Integral() {
			t.Errorf("Expected %s to be integral", c.pt)
		}
		min, max := c.pt.Range()
		if min != c.min || max != c.max {
			t.Errorf("%s: expected range [%g, %g], got [%g, %g]", c.pt, c.min, c.max, min, max)
		}
	}

	for _, pt := range []PixelType{Float32, Float64} {
		if pt.Integral() {
			t.Errorf("Expected %s to be floating-point", pt)
		}
	}
}

// TestVolumeCloneIsDeep verifies a clone shares nothing with the original
func TestVolumeCloneIsDeep(t *testing.T) {
	v := NewVolume([]int{2, 3})
	for i := range v.Data {
		v.Data[i] = float64(i)
	}

	clone := v.Clone()
	clone.Data[0] = 99
	clone.Dims[0] = 7

	if v.Data[0] != 0 {
		t.Errorf("Clone mutation leaked into original data")
	}
	if v.Dims[0] != 2 {
		t.Errorf("Clone mutation leaked into original dims")
	}
}

// TestPhysicalExtent verifies the origin-to-last-sample span per axis,
// with both default and explicit spacing
func TestPhysicalExtent(t *testing.T) {
	v := NewVolume([]int{3, 5})

	extent := v.PhysicalExtent()
	if extent[0] != 2 || extent[1] != 4 {
		t.Errorf("Expected extent [2 4] with unit spacing, got %v", extent)
	}

	v.Spacing = []float64{1.5, 0.5}
	v.Origin = []float64{10, -1}
	extent = v.PhysicalExtent()
	if extent[0] != 13 || extent[1] != 1 {
		t.Errorf("Expected extent [13 1], got %v", extent)
	}
}

// TestNewVolumeDefaults verifies allocation and default spatial metadata
func TestNewVolumeDefaults(t *testing.T) {
	v := NewVolume([]int{3, 4, 5})

	if v.NumVoxels() != 60 {
		t.Errorf("Expected 60 voxels, got %d", v.NumVoxels())
	}
	if v.Dimensionality() != 3 {
		t.Errorf("Expected dimensionality 3, got %d", v.Dimensionality())
	}
	for i, s := range v.Spacing {
		if s != 1.0 {
			t.Errorf("Expected default spacing 1.0 on axis %d, got %g", i, s)
		}
	}
	for i, o := range v.Origin {
		if o != 0.0 {
			t.Errorf("Expected default origin 0.0 on axis %d, got %g", i, o)
		}
	}
}
