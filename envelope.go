package sampler

// envelopeState is the per-voice amplitude envelope's current stage
// (spec §3).
type envelopeState int

const (
	envAttack envelopeState = iota
	envHold
	envRelease
	envOff
)

// envelope is a linear-segment attack/hold/release amplitude generator
// with anti-click protection built in at the caller (spec §4.2). Gain
// rises linearly to 1 in Attack, holds in Hold, falls linearly to 0 in
// Release, and latches at 0 once Off. Hold is never auto-entered from
// Release — only an explicit setState(envHold) call (used to latch
// notes, spec §4.2/§4.9) enters it.
type envelope struct {
	state      envelopeState
	gain       float32
	incAttack  float32
	incRelease float32
}

// newEnvelope builds an envelope with the given attack/release times in
// seconds at sampleRate.
func newEnvelope(sampleRate, attackSec, releaseSec float32) *envelope {
	e := &envelope{state: envOff}
	e.setAttack(sampleRate, attackSec)
	e.setRelease(sampleRate, releaseSec)
	return e
}

func (e *envelope) setAttack(sampleRate, attackSec float32) {
	if attackSec <= 0 {
		attackSec = 1.0 / sampleRate
	}
	e.incAttack = 1.0 / (sampleRate * attackSec)
}

func (e *envelope) setRelease(sampleRate, releaseSec float32) {
	if releaseSec <= 0 {
		releaseSec = 1.0 / sampleRate
	}
	e.incRelease = 1.0 / (sampleRate * releaseSec)
}

// setState forces a transition, used by note-on (Attack), note-off
// (Release) and hold-latch (Hold/Release).
func (e *envelope) setState(s envelopeState) {
	e.state = s
}

// update advances the envelope one sample and returns the new gain.
func (e *envelope) update() float32 {
	switch e.state {
	case envAttack:
		e.gain += e.incAttack
		if e.gain >= 1 {
			e.gain = 1
			e.state = envHold
		}
	case envRelease:
		e.gain -= e.incRelease
		if e.gain <= envelopeOffThreshold {
			e.gain = 0
			e.state = envOff
		}
	case envHold, envOff:
		// gain unchanged
	}
	return e.gain
}

// antiClickEnvelope is the fast-attack/fast-release gain used in tape
// mode to suppress seam clicks at loop boundaries (spec §4.2). It is
// the same state machine as envelope with attack = release = 1ms, and
// is driven explicitly by the owning Voice rather than by note on/off.
type antiClickEnvelope struct {
	env envelope
}

func newAntiClickEnvelope(sampleRate float32) *antiClickEnvelope {
	a := &antiClickEnvelope{}
	a.env.state = envHold
	a.env.gain = 1
	a.env.setAttack(sampleRate, antiClickSeconds)
	a.env.setRelease(sampleRate, antiClickSeconds)
	return a
}

func (a *antiClickEnvelope) setState(s envelopeState) { a.env.setState(s) }
func (a *antiClickEnvelope) update() float32          { return a.env.update() }
func (a *antiClickEnvelope) gain() float32            { return a.env.gain }
