package sampler

import "testing"

func TestLoadQueuePollEmptyReturnsFalse(t *testing.T) {
	q := newLoadQueue()
	if _, ok := q.poll(); ok {
		t.Fatalf("poll on an empty queue returned ok=true")
	}
}

func TestLoadQueueSubmitThenPoll(t *testing.T) {
	q := newLoadQueue()
	samples := []float32{1, 2, 3}
	q.submit(samples, 2)

	req, ok := q.poll()
	if !ok {
		t.Fatalf("poll did not find the submitted request")
	}
	if req.instanceIndex != 2 || len(req.samples) != 3 {
		t.Fatalf("got request %+v, want instanceIndex=2 len(samples)=3", req)
	}

	if _, ok := q.poll(); ok {
		t.Fatalf("poll after drain returned another request")
	}
}
