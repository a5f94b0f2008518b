package sampler

// InstanceState is the instance-wide control state, cloned verbatim
// into each published DrawSnapshot (spec §3, §4.9).
type InstanceState struct {
	LoopStart   float32
	LoopLength  float32
	Density     float32
	GrainLength float32
	PlaySpeed   float32
	Spray       float32
	Pan         float32
	Spread      float32
	Attack      float32
	Release     float32
	Pitch       int
	Gain        float32
	IsRecording bool
	IsHold      bool
	PlayDir     PlayDirection
	GrainDir    PlayDirection
	Mode        Mode
}

// instance owns the audio buffer, the record write-head, the voice
// pool, the downsampled draw buffer and the instance-wide control
// state (spec §3, §4.6).
type instance struct {
	sampleRate float32

	buffer            []float32 // length BufferSecondsMax * sampleRate
	writeIndex        int
	currentBufferSize int
	recBufferSize     int

	drawBuf bufferToDraw
	voices  [VoiceNum]voice

	state InstanceState
}

func newInstance(sampleRate float32, seed uint32) *instance {
	maxSize := int(BufferSecondsMax * sampleRate)
	recSize := int(BufferSecondsRecord * sampleRate)

	inst := &instance{
		sampleRate:    sampleRate,
		buffer:        make([]float32, maxSize),
		recBufferSize: recSize,
		state: InstanceState{
			LoopStart:   defaultLoopStart,
			LoopLength:  defaultLoopLength,
			Density:     defaultDensity,
			GrainLength: defaultGrainLength,
			PlaySpeed:   defaultPlaySpeed,
			Spray:       defaultSpray,
			Pan:         defaultPan,
			Spread:      defaultSpread,
			Attack:      defaultAttack,
			Release:     defaultRelease,
			Gain:        defaultGain,
			Mode:        GrainMode,
			PlayDir:     Forward,
			GrainDir:    Forward,
		},
	}
	inst.currentBufferSize = recSize
	inst.drawBuf.resize(recSize)

	for i := range inst.voices {
		inst.voices[i] = *newVoice(sampleRate, seed+uint32(i)*0x9e3779b9+1)
		inst.voices[i].setBufferSize(inst.currentBufferSize)
	}
	return inst
}

// record arms the instance for a fresh recording pass (spec §4.6).
func (inst *instance) record() {
	inst.state.IsRecording = true
	inst.writeIndex = 0
	inst.currentBufferSize = inst.recBufferSize
	inst.drawBuf.resize(inst.recBufferSize)
	for i := range inst.voices {
		inst.voices[i].setBufferSize(inst.currentBufferSize)
	}
}

// loadAudio replaces the instance buffer's content with samples if it
// fits within the preallocated capacity, silently rejecting oversized
// loads (spec §4.6, §7).
func (inst *instance) loadAudio(samples []float32) {
	if len(samples) > len(inst.buffer) {
		return
	}
	copy(inst.buffer, samples)
	inst.currentBufferSize = len(samples)
	inst.drawBuf.resize(len(samples))
	inst.drawBuf.reset()
	for _, s := range samples {
		inst.drawBuf.addSample(s)
	}
	for i := range inst.voices {
		inst.voices[i].setBufferSize(inst.currentBufferSize)
	}
}

func (inst *instance) setLoopStart(x float32) {
	inst.state.LoopStart = x
	for i := range inst.voices {
		inst.voices[i].setLoopStart(x)
	}
}

func (inst *instance) setLoopLength(x float32) {
	inst.state.LoopLength = x
	for i := range inst.voices {
		inst.voices[i].setLoopLength(x)
	}
}

func (inst *instance) setPlaySpeed(x float32) {
	inst.state.PlaySpeed = x
	for i := range inst.voices {
		inst.voices[i].setSpeed(x)
	}
}

func (inst *instance) setDensity(x float32) {
	inst.state.Density = x
	for i := range inst.voices {
		inst.voices[i].setDensity(x)
	}
}

func (inst *instance) setSpray(x float32) {
	inst.state.Spray = x
	for i := range inst.voices {
		inst.voices[i].setSpray(x)
	}
}

func (inst *instance) setGrainLength(x float32) {
	inst.state.GrainLength = x
	for i := range inst.voices {
		inst.voices[i].setGrainLength(x)
	}
}

func (inst *instance) setAttack(x float32) {
	inst.state.Attack = x
	for i := range inst.voices {
		inst.voices[i].setAttack(x)
	}
}

func (inst *instance) setRelease(x float32) {
	inst.state.Release = x
	for i := range inst.voices {
		inst.voices[i].setRelease(x)
	}
}

func (inst *instance) setGlobalPitch(semis int) {
	inst.state.Pitch = semis
	for i := range inst.voices {
		inst.voices[i].setGlobalPitch(semis)
	}
}

func (inst *instance) setPan(x float32) {
	inst.state.Pan = x
	for i := range inst.voices {
		inst.voices[i].setPan(x)
	}
}

func (inst *instance) setSpread(x float32) {
	inst.state.Spread = x
	for i := range inst.voices {
		inst.voices[i].setSpread(x)
	}
}

func (inst *instance) setGain(x float32) {
	inst.state.Gain = x
}

func (inst *instance) setMode(m Mode) {
	inst.state.Mode = m
}

func (inst *instance) toggleMode() {
	if inst.state.Mode == GrainMode {
		inst.state.Mode = TapeMode
	} else {
		inst.state.Mode = GrainMode
	}
}

// togglePlayDir flips the instance's play direction and pushes it to
// every voice (original implementation's toggle_play_dir).
func (inst *instance) togglePlayDir() {
	inst.state.PlayDir = flip(inst.state.PlayDir)
	for i := range inst.voices {
		inst.voices[i].setPlayDirection(inst.state.PlayDir)
	}
}

// toggleGrainDir flips the instance's grain direction and pushes it to
// every voice (original implementation's toggle_grain_dir).
func (inst *instance) toggleGrainDir() {
	inst.state.GrainDir = flip(inst.state.GrainDir)
	for i := range inst.voices {
		inst.voices[i].setGrainDirection(inst.state.GrainDir)
	}
}

// setPlayDirFromPreset and setGrainDirFromPreset set direction from a
// raw preset value without toggling (original implementation's
// set_play_dir_from_preset / set_grain_dir_from_preset).
func (inst *instance) setPlayDirFromPreset(raw uint8) {
	inst.state.PlayDir = directionFromRaw(raw)
	for i := range inst.voices {
		inst.voices[i].setPlayDirection(inst.state.PlayDir)
	}
}

func (inst *instance) setGrainDirFromPreset(raw uint8) {
	inst.state.GrainDir = directionFromRaw(raw)
	for i := range inst.voices {
		inst.voices[i].setGrainDirection(inst.state.GrainDir)
	}
}

func flip(d PlayDirection) PlayDirection {
	if d == Forward {
		return Backward
	}
	return Forward
}

func directionFromRaw(raw uint8) PlayDirection {
	if raw == 0 {
		return Forward
	}
	return Backward
}

// toggleHold latches (or releases) every currently-sounding voice
// (spec §4.6).
func (inst *instance) toggleHold() {
	inst.state.IsHold = !inst.state.IsHold
	for i := range inst.voices {
		v := &inst.voices[i]
		if v.midiNote == 0 {
			continue
		}
		if inst.state.IsHold {
			v.env.setState(envHold)
		} else {
			v.env.setState(envRelease)
		}
	}
}

// render advances the instance one sample (spec §4.6 steps 1-5).
func (inst *instance) render(input float32) (left, right float32) {
	// 1. Recording write-head.
	if inst.state.IsRecording {
		if inst.writeIndex < len(inst.buffer) {
			inst.buffer[inst.writeIndex] = input
		}
		inst.drawBuf.addSample(input)
		inst.writeIndex++
		if inst.writeIndex >= inst.recBufferSize {
			inst.writeIndex = 0
			inst.state.IsRecording = false
			inst.drawBuf.reset()
		}
	}

	bufLen := inst.currentBufferSize
	mode := inst.state.Mode

	// 3. Render every sounding voice; Tape mode mixes the playhead directly.
	for i := range inst.voices {
		v := &inst.voices[i]
		if v.midiNote == 0 {
			continue
		}
		grains := v.render(mode)

		if mode == TapeMode {
			sample := interpolate(inst.buffer, bufLen, v.playPos)
			left += sample * v.gain
			right += sample * v.gain
		}

		// 4. Mix every grain this voice produced this sample.
		for _, g := range grains {
			sample := interpolate(inst.buffer, bufLen, g.Pos)
			sp := g.StereoPos
			lGain := 0.5 * (1 - sp)
			rGain := 0.5 * (1 + sp)
			left += sample * g.Gain * lGain
			right += sample * g.Gain * rGain
		}
	}

	// 5. Scale by instance gain.
	left *= 0.5 * inst.state.Gain
	right *= 0.5 * inst.state.Gain
	return left, right
}
