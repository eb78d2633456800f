package input

import "testing"

func TestLogicalIDFormula(t *testing.T) {
	cases := []struct {
		tracker, rawIndex, count, want int
	}{
		{1, 0, 1, 0},  // |1-1| = 0
		{2, 0, 2, 1},  // |2-1| = 1
		{2, 1, 2, 0},  // |2-2| = 0
		{3, 0, 3, 2},  // |3-1| = 2
		{5, 0, 3, 2},  // |5-1| = 4, >= 3, clamped to count-1 -> 2
	}
	for _, c := range cases {
		if got := LogicalID(c.tracker, c.rawIndex, c.count); got != c.want {
			t.Errorf("LogicalID(%d,%d,%d) = %d, want %d", c.tracker, c.rawIndex, c.count, got, c.want)
		}
	}
}

func TestAggregatorSnapshotAxisClamping(t *testing.T) {
	a := NewAggregator()
	a.Attach(0, 2, 1)
	a.UpdateAxis(0, 0, 5.0)
	a.UpdateAxis(0, 1, -5.0)
	a.UpdateButton(0, 0, true)

	snap := a.Snapshot()
	if len(snap) != 1 {
		t.Fatalf("expected 1 joystick, got %d", len(snap))
	}
	if snap[0].Axes[0] != 1.0 || snap[0].Axes[1] != -1.0 {
		t.Fatalf("expected axes clamped to [-1,1], got %v", snap[0].Axes)
	}
	if !snap[0].Buttons[0] {
		t.Fatal("expected button 0 pressed")
	}
}

func TestAggregatorDetachRemovesDevice(t *testing.T) {
	a := NewAggregator()
	a.Attach(0, 1, 1)
	a.Attach(1, 1, 1)
	if a.Count() != 2 {
		t.Fatalf("expected 2 devices, got %d", a.Count())
	}
	a.Detach(0)
	if a.Count() != 1 {
		t.Fatalf("expected 1 device after detach, got %d", a.Count())
	}
}

func TestAggregatorSnapshotHasOneSlotPerDevice(t *testing.T) {
	a := NewAggregator()
	for i := 0; i < 5; i++ {
		a.Attach(i, 1, 1)
	}
	snap := a.Snapshot()
	if len(snap) != 5 {
		t.Fatalf("expected 5 slots, got %d", len(snap))
	}
}
