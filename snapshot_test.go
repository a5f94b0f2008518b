package sampler

import "testing"

func TestTripleBufferPublishAndRead(t *testing.T) {
	tb := newTripleBuffer(1)

	slot := tb.writeSlot()
	slot[0].InputPeak = 0.5
	tb.publish()

	read := tb.read()
	if read[0].InputPeak != 0.5 {
		t.Fatalf("read InputPeak = %v, want 0.5", read[0].InputPeak)
	}

	slot2 := tb.writeSlot()
	slot2[0].InputPeak = 0.75
	tb.publish()

	read2 := tb.read()
	if read2[0].InputPeak != 0.75 {
		t.Fatalf("read InputPeak after second publish = %v, want 0.75", read2[0].InputPeak)
	}
}

func TestTripleBufferNeverReturnsUnpublishedData(t *testing.T) {
	tb := newTripleBuffer(1)

	before := tb.read()
	if before[0].InputPeak != 0 {
		t.Fatalf("read before any publish returned non-zero data")
	}

	slot := tb.writeSlot()
	slot[0].InputPeak = 1
	// Deliberately not published yet.
	stale := tb.read()
	if stale[0].InputPeak != 0 {
		t.Fatalf("read returned unpublished write-slot contents")
	}
}
