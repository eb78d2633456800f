package socketmgr

import "testing"

func TestSweepRotatesInOrder(t *testing.T) {
	m := New(nil, nil)
	m.RefreshIPs([]string{"A", "B", "C"})

	got := []string{}
	for i := 0; i < 5; i++ {
		got = append(got, m.RobotAddress())
		m.Advance()
	}

	want := []string{"A", "B", "C", "A", "B"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("tick %d: got %v, want %v", i, got, want)
		}
	}
}

func TestPinAddressBypassesSweep(t *testing.T) {
	m := New(nil, nil)
	m.RefreshIPs([]string{"A", "B", "C"})
	m.PinAddress("10.1.18.5")

	for i := 0; i < 3; i++ {
		if got := m.RobotAddress(); got != "10.1.18.5" {
			t.Fatalf("expected pinned address, got %s", got)
		}
		m.Advance() // must be a no-op while pinned
	}

	m.PinAddress("")
	if got := m.RobotAddress(); got != "A" {
		t.Fatalf("expected sweep to resume at cursor, got %s", got)
	}
}

func TestRobotAddressEmptyBeforeAnyIPs(t *testing.T) {
	m := New(nil, nil)
	if got := m.RobotAddress(); got != "" {
		t.Fatalf("expected empty address before any refresh, got %q", got)
	}
}

func TestRefreshIPsResetsCursor(t *testing.T) {
	m := New(nil, nil)
	m.RefreshIPs([]string{"A", "B", "C"})
	m.Advance()
	m.Advance()
	if got := m.RobotAddress(); got != "C" {
		t.Fatalf("expected C after two advances, got %s", got)
	}

	m.RefreshIPs([]string{"X", "Y"})
	if got := m.RobotAddress(); got != "X" {
		t.Fatalf("expected cursor reset to X, got %s", got)
	}
}
