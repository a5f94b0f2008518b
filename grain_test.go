package sampler

import "testing"

func TestGrainActivateAndLifetime(t *testing.T) {
	var g grain
	const bufSize = 48000
	g.activate(100, 50, 1.0, bufSize, 0.5, Forward)
	if !g.active {
		t.Fatalf("grain not active after activate")
	}

	count := 0
	for {
		data, active := g.update(bufSize, 1.0)
		if data.StereoPos != 0.5 {
			t.Fatalf("stereoPos = %v, want 0.5", data.StereoPos)
		}
		count++
		if !active {
			break
		}
		if count > 1000 {
			t.Fatalf("grain never deactivated")
		}
	}
	if count != 101 {
		t.Fatalf("grain emitted %d samples, want length_samples+1 = 101", count)
	}
}

func TestGrainPositionWrapsModuloBufferSize(t *testing.T) {
	var g grain
	const bufSize = 1000
	g.activate(10, float64(bufSize-2), 1.0, bufSize, 0, Forward)
	for i := 0; i < 10; i++ {
		data, active := g.update(bufSize, 1.0)
		if data.Pos < 0 || data.Pos >= float64(bufSize) {
			t.Fatalf("pos out of [0,bufSize) at step %d: %v", i, data.Pos)
		}
		if !active {
			break
		}
	}
}

func TestGrainBackwardDirection(t *testing.T) {
	var g grain
	const bufSize = 1000
	g.activate(10, 10, 1.0, bufSize, 0, Backward)
	first, _ := g.update(bufSize, 1.0)
	second, _ := g.update(bufSize, 1.0)
	if second.Pos >= first.Pos {
		t.Fatalf("backward grain position did not decrease: %v -> %v", first.Pos, second.Pos)
	}
}

func TestInterpolateWrapsAtBufferEnd(t *testing.T) {
	buf := []float32{1, 0, -1, 0}
	got := interpolate(buf, 4, 3.5)
	want := float32(0.5) // halfway between buf[3]=0 and buf[0]=1
	if got != want {
		t.Fatalf("interpolate at wrap = %v, want %v", got, want)
	}
}
