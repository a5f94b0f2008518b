package sampler

import "math"

// peakFollower is a one-pole envelope follower with instant attack and
// exponential release, used to drive the input/output meters published
// in DrawSnapshot (spec §4.8). Attack is instantaneous (the follower
// jumps straight to a louder peak) while release decays exponentially
// at releaseCoeff per sample, the same shape as the noise filter's
// one-pole smoothing in the teacher engine (NOISE_FILTER_OLD/NEW), here
// derived from a release time rather than a fixed coefficient.
type peakFollower struct {
	value        float32
	releaseCoeff float32
}

// newPeakFollower builds a follower with the given release time in
// milliseconds at sampleRate.
func newPeakFollower(sampleRate, releaseMs float32) *peakFollower {
	p := &peakFollower{}
	p.setRelease(sampleRate, releaseMs)
	return p
}

func (p *peakFollower) setRelease(sampleRate, releaseMs float32) {
	if releaseMs <= 0 {
		p.releaseCoeff = 0
		return
	}
	releaseSamples := releaseMs * 0.001 * sampleRate
	p.releaseCoeff = float32(math.Exp(-1.0 / float64(releaseSamples)))
}

// process feeds one sample through the follower and returns the
// current peak estimate.
func (p *peakFollower) process(x float32) float32 {
	abs := x
	if abs < 0 {
		abs = -abs
	}
	decayed := p.value * p.releaseCoeff
	if abs > decayed {
		p.value = abs
	} else {
		p.value = decayed
	}
	return p.value
}
