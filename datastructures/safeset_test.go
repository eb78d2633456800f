package datastructures

import "testing"

func TestSafeSetAddContainsRemove(t *testing.T) {
	s := NewSafeSet[string]()
	s.Add("A")
	s.Add("B")
	s.Add("A") // duplicate, no-op

	if s.Len() != 2 {
		t.Fatalf("expected len 2, got %d", s.Len())
	}
	if !s.Contains("A") || !s.Contains("B") {
		t.Fatal("expected both members present")
	}

	s.Remove("A")
	if s.Contains("A") {
		t.Fatal("expected A removed")
	}
	if s.Len() != 1 {
		t.Fatalf("expected len 1 after remove, got %d", s.Len())
	}
}

func TestSafeSetIterate(t *testing.T) {
	s := NewSafeSet[int]()
	want := map[int]bool{1: true, 2: true, 3: true}
	for v := range want {
		s.Add(v)
	}

	seen := map[int]bool{}
	for v := range s.Iterate() {
		seen[v] = true
	}

	if len(seen) != len(want) {
		t.Fatalf("expected %d items, got %d", len(want), len(seen))
	}
	for v := range want {
		if !seen[v] {
			t.Fatalf("missing %d from iteration", v)
		}
	}
}
