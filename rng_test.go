package sampler

import "testing"

func TestRNGFloat01Bounded(t *testing.T) {
	r := newRNG(12345)
	for i := 0; i < 10000; i++ {
		v := r.float01()
		if v < 0 || v >= 1 {
			t.Fatalf("float01() = %v, want in [0,1)", v)
		}
	}
}

func TestRNGSignedBounded(t *testing.T) {
	r := newRNG(1)
	for i := 0; i < 10000; i++ {
		v := r.signed()
		if v < -1 || v >= 1 {
			t.Fatalf("signed() = %v, want in [-1,1)", v)
		}
	}
}

func TestRNGZeroSeedNeverLocksUp(t *testing.T) {
	r := newRNG(0)
	if r.state == 0 {
		t.Fatalf("zero seed left the generator in the absorbing all-zero state")
	}
	for i := 0; i < 100; i++ {
		if r.next() == 0 {
			t.Fatalf("generator produced 0 at iteration %d; period may have collapsed", i)
		}
	}
}

func TestRNGUniformRange(t *testing.T) {
	r := newRNG(99)
	for i := 0; i < 1000; i++ {
		v := r.uniform(-5, 5)
		if v < -5 || v >= 5 {
			t.Fatalf("uniform(-5,5) = %v, out of range", v)
		}
	}
}
