package sampler

// trigger is a phase accumulator driving grain spawn timing at a given
// frequency (spec §4.3): phase runs in [0, 1) and wraps once per period,
// mirroring the oscillator phase-increment pattern used throughout the
// teacher engine (ch.phase += phaseInc, wrapped at a fixed bound).
//
// A trigger fires once immediately after reset — so the first grain of
// a freshly note-on'd voice starts without waiting a full period — and
// then on every subsequent phase wrap.
type trigger struct {
	phase   float32
	inc     float32
	isReset bool
}

// reset arms the trigger to fire on the very next update call.
func (t *trigger) reset() {
	t.phase = 0
	t.isReset = true
}

// setFreq retunes the trigger to fire freqHz times per second at sampleRate.
func (t *trigger) setFreq(sampleRate, freqHz float32) {
	if freqHz <= 0 {
		t.inc = 0
		return
	}
	t.inc = freqHz / sampleRate
}

// update advances the trigger one sample and reports whether it fired.
func (t *trigger) update() bool {
	if t.isReset {
		t.isReset = false
		return true
	}
	t.phase += t.inc
	if t.phase >= 1 {
		t.phase -= 1
		return true
	}
	return false
}
