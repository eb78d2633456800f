package datastructures

import (
	"testing"
	"time"
)

func TestSafeQueueEnqueueReadNonBlocking(t *testing.T) {
	q := NewSafeQueue[int](false)
	if _, ok := q.Read(false, nil); ok {
		t.Fatal("expected no item on empty queue")
	}

	q.Enqueue(7)
	v, ok := q.Read(false, nil)
	if !ok || v != 7 {
		t.Fatalf("expected (7, true), got (%d, %v)", v, ok)
	}
}

func TestSafeQueueBlockingReadWakesOnEnqueue(t *testing.T) {
	q := NewSafeQueue[string](true)
	done := make(chan struct{})
	result := make(chan string, 1)

	go func() {
		v, ok := q.Read(true, done)
		if ok {
			result <- v
		}
	}()

	time.Sleep(20 * time.Millisecond) // let the reader park
	q.Enqueue("hello")

	select {
	case v := <-result:
		if v != "hello" {
			t.Fatalf("expected hello, got %s", v)
		}
	case <-time.After(time.Second):
		t.Fatal("blocking Read never woke up")
	}
}

func TestSafeQueueBlockingReadUnblocksOnDone(t *testing.T) {
	q := NewSafeQueue[int](true)
	done := make(chan struct{})
	finished := make(chan bool, 1)

	go func() {
		_, ok := q.Read(true, done)
		finished <- ok
	}()

	time.Sleep(20 * time.Millisecond)
	close(done)

	select {
	case ok := <-finished:
		if ok {
			t.Fatal("expected ok=false after done closed")
		}
	case <-time.After(time.Second):
		t.Fatal("blocking Read never returned after done closed")
	}
}
