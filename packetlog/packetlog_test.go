package packetlog

import "testing"

func TestCaptureAndDecompressRoundTrips(t *testing.T) {
	r := New(4)
	r.Capture(Inbound, RobotChannel, []byte("hello robot"))

	entries := r.Snapshot()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	data, err := entries[0].Decompress()
	if err != nil {
		t.Fatalf("decompress: %v", err)
	}
	if string(data) != "hello robot" {
		t.Fatalf("expected round-tripped payload, got %q", data)
	}
}

func TestRingOverwritesOldestOnceFull(t *testing.T) {
	r := New(3)
	for i := 0; i < 5; i++ {
		r.Capture(Outbound, FMSChannel, []byte{byte(i)})
	}
	entries := r.Snapshot()
	if len(entries) != 3 {
		t.Fatalf("expected ring capped at 3 entries, got %d", len(entries))
	}
	first, err := entries[0].Decompress()
	if err != nil {
		t.Fatalf("decompress: %v", err)
	}
	if first[0] != 2 {
		t.Fatalf("expected oldest surviving entry to be index 2, got %d", first[0])
	}
	last, _ := entries[2].Decompress()
	if last[0] != 4 {
		t.Fatalf("expected newest entry to be index 4, got %d", last[0])
	}
}

func TestSnapshotBeforeFullReturnsOnlyWritten(t *testing.T) {
	r := New(10)
	r.Capture(Inbound, RobotChannel, []byte("a"))
	r.Capture(Inbound, RobotChannel, []byte("b"))
	entries := r.Snapshot()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries before ring fills, got %d", len(entries))
	}
}
