package sampler

// grain is one grain of a voice's grain pool: a windowed playback
// cursor with a position, rate and pan, but no buffer access of its own
// — Instance samples the buffer at the position grain reports (spec
// §4.1, §4.5). Position is an absolute fractional sample index into
// the instance buffer (spec §9's normative choice), wrapping modulo
// buffer_size each update.
type grain struct {
	active bool

	length  int // length_samples
	counter int

	pos float64
	inc float64 // samples-per-sample, magnitude only; sign comes from direction

	stereoPos float32
	direction PlayDirection

	window windowEnv

	// lastGain is the most recent windowed gain this grain emitted,
	// retained only for snapshot publication (spec §4.9) — the render
	// path itself uses update's return value directly.
	lastGain float32
}

// activate enters the active state, storing all grain parameters and
// resetting the window so output begins at 0 (spec §4.1). Pre-condition:
// lengthSamples > 0, bufferSize > 0.
func (g *grain) activate(lengthSamples int, startPosAbs, incPerSample float64, bufferSize int, stereoPos float32, direction PlayDirection) {
	if lengthSamples < 1 {
		lengthSamples = 1
	}
	g.active = true
	g.length = lengthSamples
	g.counter = 0
	g.pos = wrapMod(startPosAbs, bufferSize)
	g.inc = incPerSample
	g.stereoPos = stereoPos
	g.direction = direction
	g.window.reset(lengthSamples)
}

// update advances the grain one sample and returns its (pos, gain,
// stereoPos) triple along with whether it is still active (spec §4.1).
// gain is the windowed product of the half-sine window and voiceGain.
func (g *grain) update(bufferSize int, voiceGain float32) (GrainData, bool) {
	if !g.active {
		return GrainData{}, false
	}

	win := g.window.step()
	data := GrainData{
		Pos:       g.pos,
		Gain:      win * voiceGain,
		StereoPos: g.stereoPos,
	}
	g.lastGain = data.Gain

	step := g.inc
	if g.direction == Backward {
		step = -step
	}
	g.pos = wrapMod(g.pos+step, bufferSize)

	g.counter++
	if g.counter > g.length {
		g.active = false
	}
	return data, g.active
}

// wrapMod folds a fractional absolute sample index back into
// [0, bufferSize) (spec §4.1's "wraps modulo buffer_size").
func wrapMod(pos float64, bufferSize int) float64 {
	if bufferSize <= 0 {
		return 0
	}
	n := float64(bufferSize)
	for pos >= n {
		pos -= n
	}
	for pos < 0 {
		pos += n
	}
	return pos
}

// interpolate linearly samples buf (its valid prefix of length bufLen)
// at fractional absolute index pos, wrapping the read at bufLen (spec §4.5):
// idx = floor(pos); frac = pos - idx; s = buf[idx]*(1-frac) + buf[(idx+1)%N]*frac.
func interpolate(buf []float32, bufLen int, pos float64) float32 {
	if bufLen <= 0 {
		return 0
	}
	i0 := int(pos)
	frac := float32(pos - float64(i0))
	i0 %= bufLen
	if i0 < 0 {
		i0 += bufLen
	}
	i1 := i0 + 1
	if i1 >= bufLen {
		i1 = 0
	}
	a := buf[i0]
	b := buf[i1]
	return a + (b-a)*frac
}
