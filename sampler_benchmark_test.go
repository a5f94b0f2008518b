package sampler

import "testing"

func BenchmarkSamplerRenderIdle(b *testing.B) {
	s, _ := New(48000, DefaultInstanceNum)
	l, r := float32(0), float32(0)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Render(&l, &r)
	}
}

func BenchmarkSamplerRenderFullyLoaded(b *testing.B) {
	s, _ := New(48000, DefaultInstanceNum)
	for idx := 0; idx < DefaultInstanceNum; idx++ {
		s.SetDensity(idx, 20)
		s.SetGrainLength(idx, 0.5)
	}
	for n := 0; n < VoiceNum; n++ {
		s.NoteOn(40 + n)
	}
	l, r := float32(0), float32(0)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Render(&l, &r)
	}
}

func BenchmarkVoiceRenderGrainMode(b *testing.B) {
	v := newVoice(48000, 1)
	v.setBufferSize(48000)
	v.setDensity(20)
	v.noteOn(60)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		v.render(GrainMode)
	}
}

func BenchmarkWindowEnvStep(b *testing.B) {
	var w windowEnv
	w.reset(48000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		w.step()
	}
}
