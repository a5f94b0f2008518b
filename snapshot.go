package sampler

import "sync/atomic"

// SnapshotGrain is one entry of a DrawSnapshot's grain list: a live
// grain's normalised position, gain and stereo position, or the zero
// value with Active=false for an inactive slot (spec §4.9).
type SnapshotGrain struct {
	Active        bool
	PosNormalized float32
	Gain          float32
	StereoPos     float32
}

// SnapshotPlayhead is a voice's tape-mode playhead as published to the
// UI; only meaningful (Active=true) when the instance is in Tape mode
// (spec §4.9).
type SnapshotPlayhead struct {
	Active        bool
	PosNormalized float32
}

// DrawSnapshot is the UI-facing copy of one instance published at
// ~33 Hz via the wait-free triple buffer (spec §4.9, GLOSSARY).
type DrawSnapshot struct {
	Grains     [VoiceNum * GrainNum]SnapshotGrain
	Playheads  [VoiceNum]SnapshotPlayhead
	Bars       [BarNum]float32
	State      InstanceState
	InputPeak  float32
	OutputPeak float32
}

// tripleBuffer is a wait-free triple buffer generalising the pattern
// used for video frame hand-off in the teacher engine: three
// preallocated slots, an atomically-swapped "shared" index, and a
// producer-owned write index / consumer-owned read index that never
// contend (spec §5, §9 — "publish snapshots through a wait-free triple
// buffer; three slots; atomic index swap on publish and on read").
type tripleBuffer struct {
	slots      [3][]DrawSnapshot
	writeIdx   int
	sharedIdx  atomic.Int32
	readingIdx int
}

func newTripleBuffer(instanceNum int) *tripleBuffer {
	tb := &tripleBuffer{writeIdx: 0, readingIdx: 2}
	for i := range tb.slots {
		tb.slots[i] = make([]DrawSnapshot, instanceNum)
	}
	tb.sharedIdx.Store(1)
	return tb
}

// writeSlot returns the producer's current write slot, filled in place
// by the audio thread before publish.
func (tb *tripleBuffer) writeSlot() []DrawSnapshot {
	return tb.slots[tb.writeIdx]
}

// freshBit is set in sharedIdx when the shared slot holds a snapshot
// published since the consumer's last exchange.
const freshBit = 4

// publish atomically exchanges the just-filled write slot for the
// previous shared slot, making the new snapshot visible to readers.
func (tb *tripleBuffer) publish() {
	tb.writeIdx = int(tb.sharedIdx.Swap(int32(tb.writeIdx)|freshBit) &^ freshBit)
}

// read atomically exchanges the consumer's reading slot for the
// current shared slot and returns its contents. If nothing has been
// published since the previous read, it returns the reading slot again.
func (tb *tripleBuffer) read() []DrawSnapshot {
	if tb.sharedIdx.Load()&freshBit == 0 {
		return tb.slots[tb.readingIdx]
	}
	newRead := int(tb.sharedIdx.Swap(int32(tb.readingIdx)) &^ freshBit)
	tb.readingIdx = newRead
	return tb.slots[tb.readingIdx]
}

// SnapshotReader is the UI thread's read-only handle onto a Sampler's
// published snapshots (spec §6).
type SnapshotReader struct {
	tb *tripleBuffer
}

// Read returns the latest published snapshot set. Wait-free: it never
// blocks on the audio thread.
func (r *SnapshotReader) Read() []DrawSnapshot {
	return r.tb.read()
}
