package progress

import "testing"

// TestReporterClampsAndOrders verifies clamping to [0, 1] and suppression
// of non-increasing updates
func TestReporterClampsAndOrders(t *testing.T) {
	var got []float64
	r := NewReporter(func(f float64) { got = append(got, f) })

	r.Start()
	r.Report(0.1)
	r.Report(0.05) // backwards, dropped
	r.Report(0.1)  // duplicate, dropped
	r.Report(0.9)
	r.Report(1.7) // clamped to 1.0
	r.End()       // already at 1.0, dropped

	expected := []float64{0, 0.1, 0.9, 1.0}
	if len(got) != len(expected) {
		t.Fatalf("Expected %d updates, got %d: %v", len(expected), len(got), got)
	}
	for i, want := range expected {
		if got[i] != want {
			t.Errorf("Update %d: expected %g, got %g", i, want, got[i])
		}
	}

	if r.Current() != 1.0 {
		t.Errorf("Expected current fraction 1.0, got %g", r.Current())
	}
}

// TestReporterNilCallback verifies a nil callback makes reporting a no-op
// instead of panicking
func TestReporterNilCallback(t *testing.T) {
	r := NewReporter(nil)
	r.Start()
	r.Report(0.5)
	r.End()

	if r.Current() != 1.0 {
		t.Errorf("Expected current fraction 1.0, got %g", r.Current())
	}
}
