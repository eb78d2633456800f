package prober

import (
	"context"
	"net"
	"sync"
	"testing"
	"time"
)

func TestProberReportsConnectedAgainstOpenListener(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			conn.Close()
		}
	}()

	var mu sync.Mutex
	var states []State
	p := New(200*time.Millisecond, func(s State) {
		mu.Lock()
		states = append(states, s)
		mu.Unlock()
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		p.Start(ctx, func() string { return ln.Addr().String() }, 50*time.Millisecond)
		close(done)
	}()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if p.State() == Connected {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if p.State() != Connected {
		t.Fatalf("expected Connected, got %v", p.State())
	}

	cancel()
	<-done
}

func TestProberReportsDisconnectedAgainstClosedPort(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := ln.Addr().String()
	ln.Close() // nothing listening now

	p := New(200*time.Millisecond, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()
	p.Start(ctx, func() string { return addr }, 500*time.Millisecond)

	if p.State() != Disconnected {
		t.Fatalf("expected Disconnected, got %v", p.State())
	}
}

func TestProberEmptyTargetStaysDisconnectedWithoutDialing(t *testing.T) {
	p := New(50*time.Millisecond, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()
	p.Start(ctx, func() string { return "" }, 50*time.Millisecond)

	if p.State() != Disconnected {
		t.Fatalf("expected Disconnected for empty target, got %v", p.State())
	}
}
