package sampler

import "math"

// bufferToDraw downsamples a recorded instance buffer into BarNum
// RMS-style bars for waveform visualisation (spec §4.7), ported
// directly from the original implementation's BufferToDraw: low-level
// samples are pre-emphasised before squaring so quiet passages still
// register a visible bar, and each bar is the square root of the mean
// square of the samples that fed it.
type bufferToDraw struct {
	bars          [BarNum]float32
	samplesPerBar int
	sampleCount   int
	sampleSum     float64
	barIndex      int
}

// resize re-targets the downsampler at a buffer of the given total
// sample count, zeroing both the bars and the running counters.
func (b *bufferToDraw) resize(totalSamples int) {
	for i := range b.bars {
		b.bars[i] = 0
	}
	b.reset()
	if totalSamples < BarNum {
		totalSamples = BarNum
	}
	b.samplesPerBar = totalSamples / BarNum
}

// reset zeroes the running counters only, leaving the last published
// bars in place (used between recording passes that keep the same
// buffer length).
func (b *bufferToDraw) reset() {
	b.sampleCount = 0
	b.sampleSum = 0
	b.barIndex = 0
}

// addSample feeds one recorded sample into the downsampler, emitting a
// completed bar whenever samplesPerBar samples have accumulated.
func (b *bufferToDraw) addSample(sample float32) {
	if b.samplesPerBar <= 0 || b.barIndex >= BarNum {
		return
	}

	s := float64(sample)
	if s < 0.35 && s > -0.35 {
		s *= 3.0
	}
	b.sampleSum += s * s
	b.sampleCount++

	if b.sampleCount >= b.samplesPerBar {
		meanSquare := b.sampleSum / float64(b.sampleCount)
		b.bars[b.barIndex] = float32(math.Sqrt(meanSquare))
		b.barIndex++
		b.sampleSum = 0
		b.sampleCount = 0
	}
}

// snapshot copies the current bars into dst, which must be at least
// BarNum long.
func (b *bufferToDraw) snapshot(dst []float32) {
	copy(dst, b.bars[:])
}
