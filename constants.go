package sampler

// ------------------------------------------------------------------------------
// Fixed sizing constants (compile-time pool limits)
// ------------------------------------------------------------------------------
const (
	VoiceNum           = 16  // voices per instance
	GrainNum           = 256 // grain slots per voice
	DefaultInstanceNum = 2   // typical instance count when unspecified

	BarNum = 100 // downsampled-waveform bars published per instance

	BufferSecondsRecord = 10  // default record length, seconds
	BufferSecondsMax    = 600 // preallocated capacity for loaded audio, seconds
)

// ------------------------------------------------------------------------------
// Parameter ranges (§6) — setters clamp to these at the boundary
// ------------------------------------------------------------------------------
const (
	loopStartMin = 0.0
	loopStartMax = 0.99

	loopLengthMin = 0.0
	loopLengthMax = 1.0

	playSpeedMin = 0.0
	playSpeedMax = 2.0

	grainLengthMin = 0.1
	grainLengthMax = 2.0

	envTimeMin = 0.0
	envTimeMax = 5.0

	globalPitchMin = -12
	globalPitchMax = 12

	panMin = -1.0
	panMax = 1.0
)

// ------------------------------------------------------------------------------
// Defaults, seeded from the original implementation's State::new()
// ------------------------------------------------------------------------------
const (
	defaultLoopStart   = 0.25
	defaultLoopLength  = 0.5
	defaultDensity     = 2.0  // Hz
	defaultGrainLength = 0.25 // seconds
	defaultPlaySpeed   = 1.0
	defaultSpray       = 0.1
	defaultPan         = 0.0
	defaultSpread      = 1.0
	defaultAttack      = 0.25 // seconds
	defaultRelease     = 0.25 // seconds
	defaultGain        = 0.5
)

// envelopeOffThreshold is the gain floor below which Release is
// considered to have reached Off (spec §3, ε ≈ 1.1e-5).
const envelopeOffThreshold = 1.1e-5

// antiClickSeconds is the fixed attack/release time of the tape-mode
// anti-click envelope (spec §4.2).
const antiClickSeconds = 0.001

// antiClickBoundarySamples is the minimum distance, in samples, from a
// loop edge at which the anti-click envelope is forced into Release
// (spec §4.2, §9). voice.tapeNearBoundary widens this floor to cover
// the envelope's own release time, so the seam fade always has enough
// samples to reach ≈0 before the playhead wraps.
const antiClickBoundarySamples = 10

// snapshotRateHz is the publication cadence of the UI-facing DrawSnapshot.
const snapshotRateHz = 33

// peakFollowerReleaseMs is the release time used by both of the
// Sampler's peak followers (spec §4.8).
const peakFollowerReleaseMs = 250.0
