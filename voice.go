package sampler

import "math"

// voice owns a fixed-size grain pool, a trigger, an amplitude envelope,
// an anti-click envelope, and a tape-mode playhead (spec §3, §4.4). It
// consumes the owning instance's audio buffer indirectly: render emits
// playback positions and gains, and the instance performs the actual
// buffer sampling and stereo mixing.
type voice struct {
	grains    [GrainNum]grain
	grainData [GrainNum]GrainData

	trigger   trigger
	env       envelope
	antiClick antiClickEnvelope
	rng       *rng

	sampleRate float32
	bufferSize int

	midiNote  int
	isPlaying bool
	pitch     float32 // 2^((note-60)/12)
	playPos   float64 // absolute sample index, tape playhead / grain-spawn centre
	gain      float32 // effective voice gain for the current frame

	// Per-voice copies of instance-wide parameters (spec §4.4).
	speed       float32
	loopStart   float32
	loopLength  float32
	density     float32
	spray       float32
	spread      float32
	pan         float32
	grainLength float32
	attackSec   float32
	releaseSec  float32
	globalPitch int
	playDir     PlayDirection
	grainDir    PlayDirection
}

func newVoice(sampleRate float32, seed uint32) *voice {
	v := &voice{sampleRate: sampleRate, rng: newRNG(seed)}
	v.loopStart = defaultLoopStart
	v.loopLength = defaultLoopLength
	v.density = defaultDensity
	v.spray = defaultSpray
	v.spread = defaultSpread
	v.pan = defaultPan
	v.grainLength = defaultGrainLength
	v.speed = defaultPlaySpeed
	v.attackSec = defaultAttack
	v.releaseSec = defaultRelease

	v.trigger.setFreq(sampleRate, v.density)
	v.trigger.reset()
	v.env = envelope{state: envOff}
	v.env.setAttack(sampleRate, v.attackSec)
	v.env.setRelease(sampleRate, v.releaseSec)
	ac := newAntiClickEnvelope(sampleRate)
	v.antiClick = *ac
	return v
}

func (v *voice) setBufferSize(n int) { v.bufferSize = n }

// noteOn activates the voice for midiNote. The caller (Sampler) must
// guarantee the voice is idle before calling.
func (v *voice) noteOn(midiNote int) {
	v.midiNote = midiNote
	v.isPlaying = true
	v.pitch = float32(math.Pow(2, float64(midiNote-60)/12.0))
	v.playPos = float64(v.loopStart) * float64(v.bufferSize)
	v.env.setState(envAttack)
}

func (v *voice) noteOff() {
	v.env.setState(envRelease)
}

func (v *voice) setSpeed(x float32)       { v.speed = x }
func (v *voice) setLoopStart(x float32)   { v.loopStart = x }
func (v *voice) setLoopLength(x float32)  { v.loopLength = x }
func (v *voice) setSpray(x float32)       { v.spray = x }
func (v *voice) setSpread(x float32)      { v.spread = x }
func (v *voice) setPan(x float32)         { v.pan = x }
func (v *voice) setGrainLength(x float32) { v.grainLength = x }
func (v *voice) setGlobalPitch(semis int)          { v.globalPitch = semis }
func (v *voice) setPlayDirection(d PlayDirection)  { v.playDir = d }
func (v *voice) setGrainDirection(d PlayDirection) { v.grainDir = d }

func (v *voice) setDensity(hz float32) {
	v.density = hz
	v.trigger.setFreq(v.sampleRate, hz)
}

func (v *voice) setAttack(sec float32) {
	v.attackSec = sec
	v.env.setAttack(v.sampleRate, sec)
}

func (v *voice) setRelease(sec float32) {
	v.releaseSec = sec
	v.env.setRelease(v.sampleRate, sec)
}

// render advances the voice one sample (spec §4.4 steps 1-6) and
// returns the GrainData emitted this sample by every grain that was
// active when the sample began (including grains that end during it),
// using a reused scratch buffer: no allocation occurs.
func (v *voice) render(mode Mode) []GrainData {
	bufSize := v.bufferSize
	loopStartAbs := float64(v.loopStart) * float64(bufSize)
	loopEndSpan := v.loopStart + v.loopLength
	if loopEndSpan < 0 {
		loopEndSpan = 0
	} else if loopEndSpan > 1 {
		loopEndSpan = 1
	}
	loopEndAbs := float64(loopEndSpan) * float64(bufSize)

	// 1. Advance play_pos per mode/direction (spec §4.4 step 1).
	wasNearBoundary := v.tapeNearBoundary(loopStartAbs, loopEndAbs)
	switch {
	case mode == GrainMode && v.playDir == Forward:
		v.playPos += float64(v.speed)
		if v.playPos > loopEndAbs || v.playPos < loopStartAbs {
			v.playPos = loopStartAbs
		}
	case mode == GrainMode && v.playDir == Backward:
		v.playPos -= float64(v.speed)
		if v.playPos < loopStartAbs {
			v.playPos = loopEndAbs
		}
	case mode == TapeMode && v.playDir == Forward:
		v.playPos += float64(v.pitch) * float64(v.speed)
		if v.playPos > loopEndAbs || v.playPos < loopStartAbs {
			v.playPos = loopStartAbs
		}
	case mode == TapeMode && v.playDir == Backward:
		v.playPos -= float64(v.pitch) * float64(v.speed)
		if v.playPos < loopStartAbs {
			v.playPos = loopEndAbs
		}
	}

	// 2. AntiClick update (spec §4.2): only meaningful in Tape mode, but
	// advanced every frame so its state is consistent if mode toggles.
	if mode == TapeMode {
		nearBoundary := v.tapeNearBoundary(loopStartAbs, loopEndAbs)
		if nearBoundary {
			v.antiClick.setState(envRelease)
		} else if wasNearBoundary && !nearBoundary {
			v.antiClick.setState(envAttack)
		}
	}
	v.antiClick.update()

	// 3. Grain spawn on trigger (spec §4.4 step 3), Grain mode only.
	if mode == GrainMode && v.trigger.update() {
		if slot := v.firstInactiveGrain(); slot >= 0 {
			lengthSamples := int(v.sampleRate * v.grainLength)
			sprayRange := v.spray * v.sampleRate
			startPos := v.playPos + float64(v.rng.uniform(-0.5*sprayRange, 0.5*sprayRange))
			inc := float64(v.pitch) * math.Pow(2, float64(v.globalPitch)/12.0)
			stereoPos := v.pan + v.spread*v.rng.signed()
			if stereoPos < -1 {
				stereoPos = -1
			} else if stereoPos > 1 {
				stereoPos = 1
			}
			v.grains[slot].activate(lengthSamples, startPos, inc, bufSize, stereoPos, v.grainDir)
		}
		// else: no free slot, tick dropped (spec §4.4 step 3, §7).
	}

	// 4. Update Envelope; derive effective voice gain.
	envGain := v.env.update()
	if mode == TapeMode {
		v.gain = envGain * v.antiClick.gain()
	} else {
		v.gain = envGain
	}

	// 5. Advance every active grain, collecting outputs into the
	// reused scratch slice.
	n := 0
	for i := range v.grains {
		if !v.grains[i].active {
			continue
		}
		data, _ := v.grains[i].update(bufSize, v.gain)
		v.grainData[n] = data
		n++
	}

	// 6. Envelope reached Off: retire the voice.
	if v.env.state == envOff && v.isPlaying {
		v.midiNote = 0
		v.isPlaying = false
		v.trigger.reset()
		for i := range v.grains {
			v.grains[i].active = false
		}
	}

	return v.grainData[:n]
}

// tapeNearBoundary reports whether the tape playhead is within the
// anti-click trigger distance of the loop edge it is approaching (spec
// §4.2). The trigger distance is at least antiClickBoundarySamples, but
// widens to cover the anti-click envelope's own release time: entering
// Release with fewer samples left than the release needs to complete
// would let the playhead wrap before the gain reaches ≈0.
func (v *voice) tapeNearBoundary(loopStartAbs, loopEndAbs float64) bool {
	boundary := float64(antiClickBoundarySamples)
	if inc := v.antiClick.env.incRelease; inc > 0 {
		if releaseSamples := 1.0 / float64(inc); releaseSamples > boundary {
			boundary = releaseSamples
		}
	}
	if v.playDir == Forward {
		return loopEndAbs-v.playPos <= boundary
	}
	return v.playPos-loopStartAbs <= boundary
}

func (v *voice) firstInactiveGrain() int {
	for i := range v.grains {
		if !v.grains[i].active {
			return i
		}
	}
	return -1
}
