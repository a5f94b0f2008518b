package sampler

import (
	"sync"
	"testing"
)

// TestSamplerSnapshotRace beats Render (producer) and SnapshotReader.Read
// (consumer) against each other concurrently. Beyond checking that each
// read returns one snapshot per instance, it relies on `go test -race`:
// the triple buffer must never be read torn, and neither side may
// data-race on the shared slots.
func TestSamplerSnapshotRace(t *testing.T) {
	s, reader := New(48000, 2)
	s.SetDensity(0, 15)
	s.NoteOn(60)

	var wg sync.WaitGroup
	wg.Add(2)

	stop := make(chan struct{})

	go func() {
		defer wg.Done()
		for i := 0; i < 48000*2; i++ {
			l, r := float32(0), float32(0)
			s.Render(&l, &r)
		}
		close(stop)
	}()

	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
				snaps := reader.Read()
				if len(snaps) != 2 {
					t.Errorf("snapshot count = %d, want 2", len(snaps))
					return
				}
			}
		}
	}()

	wg.Wait()
}
