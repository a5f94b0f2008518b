package sampler

import "testing"

func TestTriggerFiresImmediatelyAfterReset(t *testing.T) {
	var tr trigger
	tr.setFreq(48000, 10)
	tr.reset()
	if !tr.update() {
		t.Fatalf("trigger did not fire on first update after reset")
	}
}

func TestTriggerFrequencyWithinTolerance(t *testing.T) {
	var tr trigger
	const sampleRate = 48000
	const freq = 20.0
	tr.setFreq(sampleRate, freq)
	tr.reset()

	const n = sampleRate * 5
	fires := 0
	for i := 0; i < n; i++ {
		if tr.update() {
			fires++
		}
	}
	want := float64(freq) * float64(n) / float64(sampleRate)
	diff := float64(fires) - want
	if diff < 0 {
		diff = -diff
	}
	if diff > want*0.02+1 {
		t.Fatalf("fires = %d, want close to %v", fires, want)
	}
}

func TestTriggerSetFreqDoesNotResetPhase(t *testing.T) {
	var tr trigger
	tr.setFreq(48000, 10)
	tr.reset()
	tr.update() // consumes the reset fire
	tr.phase = 0.9
	tr.setFreq(48000, 5)
	if tr.phase != 0.9 {
		t.Fatalf("setFreq altered phase: %v, want unchanged 0.9", tr.phase)
	}
}
