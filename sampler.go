package sampler

// Sampler owns a fixed number of instances, the input/output peak
// followers, and the producer side of the triple-buffered snapshot; it
// exposes the process callback and every control setter (spec §3, §4.9).
//
// A Sampler is constructed once. Everything it does afterwards runs on
// the audio thread: Render and every setter are synchronous, bounded,
// and allocation-free (spec §5, §7). LoadBuf is the exception: it is
// called from a non-audio thread and blocks while a load is pending.
type Sampler struct {
	sampleRate float32
	instances  []*instance

	inputPeak  *peakFollower
	outputPeak *peakFollower

	tb            *tripleBuffer
	sampleCounter int
	publishEvery  int

	lSelect bool
	rSelect bool

	loadQ *loadQueue
}

// New builds a Sampler with instanceNum instances at sampleRate,
// preallocating every instance, voice, grain, and the triple-buffered
// snapshot vector up front (spec §4.9).
func New(sampleRate float32, instanceNum int) (*Sampler, *SnapshotReader) {
	if instanceNum < 1 {
		instanceNum = 1
	}
	s := &Sampler{
		sampleRate: sampleRate,
		instances:  make([]*instance, instanceNum),
		inputPeak:  newPeakFollower(sampleRate, peakFollowerReleaseMs),
		outputPeak: newPeakFollower(sampleRate, peakFollowerReleaseMs),
		tb:         newTripleBuffer(instanceNum),
		loadQ:      newLoadQueue(),
		lSelect:    true,
		rSelect:    true,
	}
	s.publishEvery = int(sampleRate / snapshotRateHz)
	if s.publishEvery < 1 {
		s.publishEvery = 1
	}
	for i := range s.instances {
		s.instances[i] = newInstance(sampleRate, uint32(i*0x2545f491+1))
	}
	return s, &SnapshotReader{tb: s.tb}
}

func (s *Sampler) instanceAt(index int) *instance {
	if index < 0 || index >= len(s.instances) {
		return nil
	}
	return s.instances[index]
}

// NoteOn allocates one idle voice per non-held instance for midiNote
// (spec §4.9's voice allocation policy: first idle voice, one per
// instance, no stealing).
func (s *Sampler) NoteOn(midiNote int) {
	for _, inst := range s.instances {
		if inst.state.IsHold {
			continue
		}
		for i := range inst.voices {
			v := &inst.voices[i]
			if !v.isPlaying {
				v.noteOn(midiNote)
				break
			}
		}
	}
}

// NoteOff releases the first matching, not-already-releasing voice per
// non-held instance (spec §4.9).
func (s *Sampler) NoteOff(midiNote int) {
	for _, inst := range s.instances {
		if inst.state.IsHold {
			continue
		}
		for i := range inst.voices {
			v := &inst.voices[i]
			if v.midiNote == midiNote && v.env.state != envRelease {
				v.noteOff()
				break
			}
		}
	}
}

// Per-instance setters: out-of-range indices are silently ignored
// (spec §4.9, §7).

func (s *Sampler) SetLoopStart(index int, x float32) {
	if inst := s.instanceAt(index); inst != nil {
		inst.setLoopStart(clamp(x, loopStartMin, loopStartMax))
	}
}

func (s *Sampler) SetLoopLength(index int, x float32) {
	if inst := s.instanceAt(index); inst != nil {
		inst.setLoopLength(clamp(x, loopLengthMin, loopLengthMax))
	}
}

func (s *Sampler) SetPlaySpeed(index int, x float32) {
	if inst := s.instanceAt(index); inst != nil {
		inst.setPlaySpeed(clamp(x, playSpeedMin, playSpeedMax))
	}
}

func (s *Sampler) SetDensity(index int, hz float32) {
	if inst := s.instanceAt(index); inst != nil {
		inst.setDensity(hz)
	}
}

func (s *Sampler) SetSpray(index int, x float32) {
	if inst := s.instanceAt(index); inst != nil {
		inst.setSpray(clamp(x, 0, 1))
	}
}

func (s *Sampler) SetGrainLength(index int, sec float32) {
	if inst := s.instanceAt(index); inst != nil {
		inst.setGrainLength(clamp(sec, grainLengthMin, grainLengthMax))
	}
}

func (s *Sampler) SetAttack(index int, sec float32) {
	if inst := s.instanceAt(index); inst != nil {
		inst.setAttack(clamp(sec, envTimeMin, envTimeMax))
	}
}

func (s *Sampler) SetRelease(index int, sec float32) {
	if inst := s.instanceAt(index); inst != nil {
		inst.setRelease(clamp(sec, envTimeMin, envTimeMax))
	}
}

func (s *Sampler) SetGlobalPitch(index int, semis int) {
	if inst := s.instanceAt(index); inst != nil {
		if semis < globalPitchMin {
			semis = globalPitchMin
		} else if semis > globalPitchMax {
			semis = globalPitchMax
		}
		inst.setGlobalPitch(semis)
	}
}

func (s *Sampler) SetPan(index int, x float32) {
	if inst := s.instanceAt(index); inst != nil {
		inst.setPan(clamp(x, panMin, panMax))
	}
}

func (s *Sampler) SetSpread(index int, x float32) {
	if inst := s.instanceAt(index); inst != nil {
		inst.setSpread(clamp(x, 0, 1))
	}
}

func (s *Sampler) SetGain(index int, x float32) {
	if inst := s.instanceAt(index); inst != nil {
		inst.setGain(clamp(x, 0, 1))
	}
}

func (s *Sampler) Record(index int) {
	if inst := s.instanceAt(index); inst != nil {
		inst.record()
	}
}

func (s *Sampler) ToggleHold(index int) {
	if inst := s.instanceAt(index); inst != nil {
		inst.toggleHold()
	}
}

func (s *Sampler) ToggleMode(index int) {
	if inst := s.instanceAt(index); inst != nil {
		inst.toggleMode()
	}
}

func (s *Sampler) TogglePlayDir(index int) {
	if inst := s.instanceAt(index); inst != nil {
		inst.togglePlayDir()
	}
}

func (s *Sampler) ToggleGrainDir(index int) {
	if inst := s.instanceAt(index); inst != nil {
		inst.toggleGrainDir()
	}
}

func (s *Sampler) SetPlayDirFromPreset(index int, raw uint8) {
	if inst := s.instanceAt(index); inst != nil {
		inst.setPlayDirFromPreset(raw)
	}
}

func (s *Sampler) SetGrainDirFromPreset(index int, raw uint8) {
	if inst := s.instanceAt(index); inst != nil {
		inst.setGrainDirFromPreset(raw)
	}
}

// SetSelectL and SetSelectR toggle the stereo input channel selects
// applied before the mono downmix in Render (spec §4.9).
func (s *Sampler) SetSelectL(on bool) { s.lSelect = on }
func (s *Sampler) SetSelectR(on bool) { s.rSelect = on }

// LoadBuf enqueues samples for instance index to be copied into its
// buffer on the next Render call (spec §4.9, §5). Safe to call from a
// non-audio thread; blocks if a load is already pending.
func (s *Sampler) LoadBuf(samples []float32, index int) {
	s.loadQ.submit(samples, index)
}

// clamp restricts x to [lo, hi].
func clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Render advances the sampler one stereo frame in place (spec §4.9).
// It applies the channel selects, drains at most one pending load
// request, renders every instance, updates both peak followers, and
// publishes a snapshot every ~1/33 s. It must not allocate, lock, or
// call into the OS beyond what Go's runtime itself does for a plain
// function call.
func (s *Sampler) Render(l, r *float32) {
	left, right := *l, *r
	if !s.lSelect {
		left = 0
	}
	if !s.rSelect {
		right = 0
	}
	mono := left + right
	s.inputPeak.process(mono)

	if req, ok := s.loadQ.poll(); ok {
		if inst := s.instanceAt(req.instanceIndex); inst != nil {
			inst.loadAudio(req.samples)
		}
	}

	var outL, outR float32
	for _, inst := range s.instances {
		il, ir := inst.render(mono)
		outL += il
		outR += ir
	}
	s.outputPeak.process(outL + outR)

	s.sampleCounter++
	if s.sampleCounter >= s.publishEvery {
		s.sampleCounter = 0
		s.fillSnapshot()
		s.tb.publish()
	}

	*l, *r = outL, outR
}

// fillSnapshot writes the current state of every instance into the
// triple buffer's write slot (spec §4.9).
func (s *Sampler) fillSnapshot() {
	slot := s.tb.writeSlot()
	inPeak := s.inputPeak.value
	outPeak := s.outputPeak.value

	for i, inst := range s.instances {
		snap := &slot[i]
		snap.State = inst.state
		snap.InputPeak = inPeak
		snap.OutputPeak = outPeak

		bufLen := inst.currentBufferSize
		inst.drawBuf.snapshot(snap.Bars[:])

		for vi := range inst.voices {
			v := &inst.voices[vi]

			if inst.state.Mode == TapeMode && v.midiNote != 0 {
				snap.Playheads[vi] = SnapshotPlayhead{
					Active:        true,
					PosNormalized: normalizedPos(v.playPos, bufLen),
				}
			} else {
				snap.Playheads[vi] = SnapshotPlayhead{}
			}

			base := vi * GrainNum
			for gi := range v.grains {
				g := &v.grains[gi]
				slotIdx := base + gi
				if g.active {
					snap.Grains[slotIdx] = SnapshotGrain{
						Active:        true,
						PosNormalized: normalizedPos(g.pos, bufLen),
						Gain:          g.lastGain,
						StereoPos:     g.stereoPos,
					}
				} else {
					snap.Grains[slotIdx] = SnapshotGrain{}
				}
			}
		}
	}
}

func normalizedPos(pos float64, bufLen int) float32 {
	if bufLen <= 0 {
		return 0
	}
	return float32(pos / float64(bufLen))
}
