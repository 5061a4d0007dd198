package containers

import (
	"errors"
	"testing"
)

func TestRingQueue(t *testing.T) {
	rq := NewRingQueue[int](3)
	if _, err := rq.Dequeue(); !errors.Is(err, ErrQueueEmpty) {
		t.Fatalf("Dequeue() on empty error = %v", err)
	}
	for i := 1; i <= 3; i++ {
		if err := rq.Enqueue(i); err != nil {
			t.Fatalf("Enqueue(%d) error = %v", i, err)
		}
	}
	if err := rq.Enqueue(4); !errors.Is(err, ErrQueueFull) {
		t.Fatalf("Enqueue() on full error = %v", err)
	}
	if v, _ := rq.Peek(); v != 1 {
		t.Errorf("Peek() = %d, want 1", v)
	}

	dropped, ok := rq.Push(4)
	if !ok || dropped != 1 {
		t.Errorf("Push() dropped (%d, %v), want (1, true)", dropped, ok)
	}
	for _, want := range []int{2, 3, 4} {
		v, err := rq.Dequeue()
		if err != nil || v != want {
			t.Errorf("Dequeue() = (%d, %v), want %d", v, err, want)
		}
	}
	if !rq.IsEmpty() || rq.Len() != 0 {
		t.Errorf("queue not empty, len %d", rq.Len())
	}
}
