package main

import (
	"sync/atomic"
	"unsafe"

	"github.com/ebitengine/oto/v3"

	"github.com/aurelabs/grainforge"
)

// otoPlayer feeds the sampler's stereo output to an oto player. The
// engine pointer is swapped atomically so Read, called from oto's own
// callback goroutine, never takes a lock (grounded on the teacher's
// OtoPlayer.Read, which loads its SoundChip through an atomic.Pointer).
type otoPlayer struct {
	ctx       *oto.Context
	player    *oto.Player
	engine    atomic.Pointer[sampler.Sampler]
	sampleBuf []float32
}

func newOtoPlayer(sampleRate int) (*otoPlayer, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
		BufferSize:   4,
	})
	if err != nil {
		return nil, err
	}
	<-ready
	return &otoPlayer{ctx: ctx, sampleBuf: make([]float32, 4096)}, nil
}

func (op *otoPlayer) start(s *sampler.Sampler) {
	op.engine.Store(s)
	op.player = op.ctx.NewPlayer(op)
	op.player.Play()
}

// Read renders interleaved stereo float32 frames straight from the
// sampler into oto's output buffer; it never allocates on the steady
// path, only re-growing sampleBuf on the rare oversized callback.
func (op *otoPlayer) Read(p []byte) (int, error) {
	s := op.engine.Load()
	if s == nil {
		for i := range p {
			p[i] = 0
		}
		return len(p), nil
	}

	frames := len(p) / 8 // 2 channels * 4 bytes
	needed := frames * 2
	if len(op.sampleBuf) < needed {
		op.sampleBuf = make([]float32, needed)
	}
	buf := op.sampleBuf[:needed]

	for i := 0; i < frames; i++ {
		l, r := float32(0), float32(0)
		s.Render(&l, &r)
		buf[2*i] = l
		buf[2*i+1] = r
	}

	copy(p, (*[1 << 30]byte)(unsafe.Pointer(&buf[0]))[:len(p)])
	return len(p), nil
}

func (op *otoPlayer) close() {
	if op.player != nil {
		_ = op.player.Close()
	}
}
