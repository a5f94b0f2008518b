package sampler

import "testing"

func TestVoiceNoteOnSetsPlayingAndNote(t *testing.T) {
	v := newVoice(48000, 1)
	v.setBufferSize(48000)
	v.noteOn(60)
	if !v.isPlaying || v.midiNote != 60 {
		t.Fatalf("voice after note_on(60): isPlaying=%v midiNote=%v", v.isPlaying, v.midiNote)
	}
	if v.pitch != 1.0 {
		t.Fatalf("pitch for note 60 (=60) = %v, want 1.0", v.pitch)
	}
}

func TestVoiceNoteOffLeadsToOff(t *testing.T) {
	v := newVoice(48000, 1)
	v.setBufferSize(48000)
	v.setAttack(0.001)
	v.setRelease(0.001)
	v.noteOn(60)
	v.noteOff()

	retired := false
	for i := 0; i < 48000; i++ {
		v.render(GrainMode)
		if !v.isPlaying {
			retired = true
			break
		}
	}
	if !retired {
		t.Fatalf("voice never retired after note_off")
	}
	if v.midiNote != 0 {
		t.Fatalf("midiNote after retirement = %v, want 0", v.midiNote)
	}
	for i := range v.grains {
		if v.grains[i].active {
			t.Fatalf("grain %d still active after voice retired", i)
		}
	}
}

func TestVoiceGrainModeSpawnsGrains(t *testing.T) {
	v := newVoice(48000, 1)
	v.setBufferSize(48000)
	v.setDensity(20)
	v.setGrainLength(0.05)
	v.noteOn(60)

	spawned := false
	for i := 0; i < 48000; i++ {
		if data := v.render(GrainMode); len(data) > 0 {
			spawned = true
			break
		}
	}
	if !spawned {
		t.Fatalf("no grain data produced within a second at 20Hz density")
	}
}

func TestVoiceBoundedGrainCount(t *testing.T) {
	v := newVoice(48000, 1)
	v.setBufferSize(48000)
	v.setDensity(1000) // unrealistically high, to try to exhaust the pool
	v.setGrainLength(2.0)
	v.noteOn(60)
	for i := 0; i < 48000; i++ {
		data := v.render(GrainMode)
		if len(data) > GrainNum {
			t.Fatalf("render emitted %d grains, exceeds GrainNum=%d", len(data), GrainNum)
		}
	}
}
