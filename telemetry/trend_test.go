package telemetry

import "testing"

func TestVoltageTrendMeanStdDev(t *testing.T) {
	tr := NewVoltageTrend()
	for _, v := range []float64{12.0, 12.0, 12.0} {
		tr.Add(v)
	}
	mean, stddev := tr.MeanStdDev()
	if mean != 12.0 {
		t.Fatalf("expected mean 12.0, got %v", mean)
	}
	if stddev != 0 {
		t.Fatalf("expected stddev 0 for constant samples, got %v", stddev)
	}
}

func TestVoltageTrendEmptyIsZero(t *testing.T) {
	tr := NewVoltageTrend()
	mean, stddev := tr.MeanStdDev()
	if mean != 0 || stddev != 0 {
		t.Fatalf("expected zero mean/stddev on empty trend, got %v/%v", mean, stddev)
	}
}

func TestVoltageTrendWindowDropsOldest(t *testing.T) {
	tr := NewVoltageTrend()
	for i := 0; i < 100; i++ {
		tr.Add(1.0)
	}
	tr.mu.Lock()
	n := len(tr.samples)
	tr.mu.Unlock()
	if n > 50 {
		t.Fatalf("expected window to be bounded, got %d samples", n)
	}
}

func TestRecordOnNilWriterIsNoop(t *testing.T) {
	var w *Writer
	w.Record("team_changed", map[string]interface{}{"team": 3794})
}
