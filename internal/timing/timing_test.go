package timing

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

// TestCollectorAccumulates verifies that repeated Start/Stop cycles add up
// and that probes keep first-start order in the report
func TestCollectorAccumulates(t *testing.T) {
	c := NewCollector()

	c.Start("first")
	time.Sleep(time.Millisecond)
	c.Stop("first")

	c.Start("second")
	c.Stop("second")

	c.Start("first")
	time.Sleep(time.Millisecond)
	c.Stop("first")

	p := c.Probe("first")
	if p == nil {
		t.Fatal("Expected probe to exist")
	}
	if p.Total() < 2*time.Millisecond {
		t.Errorf("Expected at least 2ms accumulated, got %v", p.Total())
	}

	var buf bytes.Buffer
	c.Report(&buf)
	out := buf.String()

	if !strings.Contains(out, "first") || !strings.Contains(out, "second") {
		t.Errorf("Expected both probes in report, got:\n%s", out)
	}
	if strings.Index(out, "first") > strings.Index(out, "second") {
		t.Errorf("Expected first-start order in report, got:\n%s", out)
	}
}

// TestStopWithoutStart verifies stopping unknown or idle probes is harmless
func TestStopWithoutStart(t *testing.T) {
	c := NewCollector()
	c.Stop("never started")

	c.Start("probe")
	c.Stop("probe")
	c.Stop("probe") // second stop is a no-op

	if c.Probe("never started") != nil {
		t.Errorf("Expected no probe to be created by Stop")
	}
}

// TestEmptyReport verifies an empty collector writes nothing
func TestEmptyReport(t *testing.T) {
	var buf bytes.Buffer
	NewCollector().Report(&buf)
	if buf.Len() != 0 {
		t.Errorf("Expected empty report, got %q", buf.String())
	}
}
