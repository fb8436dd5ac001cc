package mist

import (
	"math"
	"testing"
)

func engagedStep(x, y float64) TrailStep {
	return TrailStep{
		Delta:   0,
		Decay:   1.4,
		Radius:  0.14,
		Pointer: PointerSample{X: x, Y: y, Engaged: true},
	}
}

func TestNewTrailFieldZeroed(t *testing.T) {
	f := NewTrailField(37, 66)
	if f.Width() != 37 || f.Height() != 66 {
		t.Fatalf("size = %dx%d, want 37x66", f.Width(), f.Height())
	}
	if p := f.Peak(); p != 0 {
		t.Errorf("Peak = %v, want 0", p)
	}
}

func TestTrailStepDepositsNearPointer(t *testing.T) {
	f := NewTrailField(75, 133)
	f.Step(engagedStep(0.5, 0.5))

	center := f.Sample(0.5, 0.5)
	if center < 0.5 || center > DefaultDepositCap+epsilon {
		t.Errorf("center = %v, want in [0.5, %v]", center, DefaultDepositCap)
	}
	if far := f.At(0, 0); far != 0 {
		t.Errorf("corner = %v, want 0", far)
	}
	if p := f.Peak(); p > DefaultDepositCap+epsilon {
		t.Errorf("Peak = %v exceeds cap %v", p, DefaultDepositCap)
	}
}

func TestTrailStepCapOverride(t *testing.T) {
	f := NewTrailField(40, 40)
	s := engagedStep(0.5, 0.5)
	s.Cap = 0.3
	for i := 0; i < 10; i++ {
		f.Step(s)
	}
	if p := f.Peak(); p > 0.3+epsilon {
		t.Errorf("Peak = %v, want <= 0.3", p)
	}
}

func TestTrailRepeatedDepositDoesNotAccumulate(t *testing.T) {
	f := NewTrailField(40, 70)
	f.Step(engagedStep(0.4, 0.4))
	first := f.Peak()
	for i := 0; i < 30; i++ {
		f.Step(engagedStep(0.4, 0.4))
	}
	if got := f.Peak(); !approxEqual(got, first, 1e-12) {
		t.Errorf("Peak after holding still = %v, want %v", got, first)
	}
}

func TestTrailDecay(t *testing.T) {
	f := NewTrailField(40, 70)
	f.Step(engagedStep(0.5, 0.5))
	before := append([]float64(nil), f.Values()...)

	s := TrailStep{Delta: 0.1, Decay: 1.4, Radius: 0.14}
	f.Step(s)
	factor := math.Exp(-0.14)
	if !approxEqual(s.DecayFactor(), factor, epsilon) {
		t.Fatalf("DecayFactor = %v, want %v", s.DecayFactor(), factor)
	}
	for i, v := range f.Values() {
		if !approxEqual(v, before[i]*factor, 1e-12) {
			t.Fatalf("cell %d = %v, want %v", i, v, before[i]*factor)
		}
	}
}

func TestTrailDecaysTowardZero(t *testing.T) {
	f := NewTrailField(30, 50)
	f.Step(engagedStep(0.5, 0.5))
	s := TrailStep{Delta: 0.1, Decay: 1.4, Radius: 0.14}
	for i := 0; i < 300; i++ {
		f.Step(s)
	}
	if p := f.Peak(); p > 1e-15 {
		t.Errorf("Peak after 30s = %v, want ~0", p)
	}
}

func TestTrailReleaseNeverIncreases(t *testing.T) {
	f := NewTrailField(75, 133)
	hold := engagedStep(0.5, 0.5)
	hold.Delta = 1.0 / 60
	for i := 0; i < 60; i++ {
		f.Step(hold)
	}
	release := TrailStep{Delta: 1.0 / 60, Decay: 1.4, Radius: 0.14, Pointer: PointerSample{X: 0.5, Y: 0.5}}
	prev := f.Sample(0.5, 0.5)
	if prev < 0.5 {
		t.Fatalf("held deposit = %v, want >= 0.5", prev)
	}
	for i := 0; i < 600; i++ {
		f.Step(release)
		v := f.Sample(0.5, 0.5)
		if v > prev {
			t.Fatalf("frame %d: %v rose above %v after release", i, v, prev)
		}
		prev = v
	}
	if prev > 1e-5 {
		t.Errorf("value 10s after release = %v, want < 1e-5", prev)
	}
}

// stepQuantized models one GPU trail pass on an 8-bit texel.
func stepQuantized(q uint8, s TrailStep) uint8 {
	v := float64(q)*trailQuantum*s.DecayFactor() - s.quantizedFloor()
	return uint8(math.Round(clamp01(v) * 255))
}

func TestQuantizedTrailFadesToZero(t *testing.T) {
	for _, decay := range []float64{1.4, 0.5, 0.1} {
		s := TrailStep{Delta: 1.0 / 60, Decay: decay, Radius: 0.14}
		q := uint8(math.Round(DefaultDepositCap * 255))
		frames := int(5 / decay * 60)
		for i := 0; i < frames; i++ {
			next := stepQuantized(q, s)
			if next > q {
				t.Fatalf("decay %v frame %d: %d rose above %d", decay, i, next, q)
			}
			if q > 0 && next == q {
				t.Fatalf("decay %v frame %d: texel stalled at %d", decay, i, q)
			}
			q = next
		}
		if q != 0 {
			t.Errorf("decay %v: texel = %d after 5 time constants, want 0", decay, q)
		}
	}
}

func TestQuantizedFloorOnlyWhileDecaying(t *testing.T) {
	if f := (TrailStep{Delta: 0, Decay: 1.4}).quantizedFloor(); f != 0 {
		t.Errorf("floor with zero delta = %v, want 0", f)
	}
	if f := (TrailStep{Delta: 0.016, Decay: 0}).quantizedFloor(); f != 0 {
		t.Errorf("floor with zero decay = %v, want 0", f)
	}
	if f := (TrailStep{Delta: 0.016, Decay: 1.4}).quantizedFloor(); f <= 0.5*trailQuantum || f >= trailQuantum {
		t.Errorf("floor = %v, want between half and one 8-bit step", f)
	}
}

func TestTrailDisengagedPointerOnlyDecays(t *testing.T) {
	f := NewTrailField(30, 50)
	f.Step(TrailStep{Delta: 0.016, Decay: 1.4, Radius: 0.14, Pointer: PointerSample{X: 0.5, Y: 0.5}})
	if p := f.Peak(); p != 0 {
		t.Errorf("Peak = %v, want 0 without an engaged pointer", p)
	}
}

func TestTrailPingPong(t *testing.T) {
	f := NewTrailField(10, 10)
	r0 := f.read
	f.Step(engagedStep(0.5, 0.5))
	if f.read == r0 || f.read == f.write {
		t.Errorf("slots not swapped: read=%d write=%d", f.read, f.write)
	}
}

func TestTrailSampleClampsToEdge(t *testing.T) {
	f := NewTrailField(20, 20)
	f.Step(engagedStep(0, 0))
	if got, want := f.Sample(-1, -1), f.At(0, 0); !approxEqual(got, want, epsilon) {
		t.Errorf("Sample(-1,-1) = %v, want edge value %v", got, want)
	}
}

func TestTrailPointerOutsideIsClamped(t *testing.T) {
	a := NewTrailField(20, 35)
	b := NewTrailField(20, 35)
	a.Step(engagedStep(1.7, -3))
	b.Step(engagedStep(1, 0))
	for i := range a.Values() {
		if a.Values()[i] != b.Values()[i] {
			t.Fatalf("cell %d differs: %v vs %v", i, a.Values()[i], b.Values()[i])
		}
	}
}

func TestTrailReset(t *testing.T) {
	f := NewTrailField(20, 20)
	f.Step(engagedStep(0.5, 0.5))
	f.Reset()
	if p := f.Peak(); p != 0 {
		t.Errorf("Peak after Reset = %v, want 0", p)
	}
}

func TestTrailWriteR8(t *testing.T) {
	f := NewTrailField(4, 4)
	f.slots[f.read][5] = 1
	f.slots[f.read][6] = 0.5
	pix := make([]byte, 4*4*4)
	f.writeR8(pix)
	if pix[5*4] != 255 || pix[5*4+3] != 255 {
		t.Errorf("cell 5 = %v, want R=255 A=255", pix[5*4:5*4+4])
	}
	if pix[6*4] != 128 {
		t.Errorf("cell 6 R = %d, want 128", pix[6*4])
	}
	if pix[0] != 0 || pix[3] != 255 {
		t.Errorf("cell 0 = %v, want R=0 A=255", pix[0:4])
	}
}

func TestBrushIntensity(t *testing.T) {
	if got := BrushIntensity(0.5, 0.5, 0.5, 0.5, 0); got != 0 {
		t.Errorf("zero sigma = %v, want 0", got)
	}
	near := BrushIntensity(0.5, 0.5, 0.5, 0.5, 0.077)
	far := BrushIntensity(0.9, 0.9, 0.5, 0.5, 0.077)
	if near <= far {
		t.Errorf("near %v <= far %v", near, far)
	}
	if near > 1 || near < 0.7 {
		t.Errorf("near = %v, want in [0.7, 1]", near)
	}
}

func TestBrushEdgeNoiseYUp(t *testing.T) {
	px, py, tx, ty, sigma := 0.31, 0.22, 0.35, 0.3, 0.077
	warp := (ValueNoise(px*6, (1-py)*6)*0.65 + ValueNoise(px*13+4.1, (1-py)*13+2.7)*0.35 - 0.5) * brushWarpAmount
	dist := math.Hypot(px-tx, py-ty) + warp
	want := math.Exp(-dist * dist / (2 * sigma * sigma))
	if got := BrushIntensity(px, py, tx, ty, sigma); !approxEqual(got, want, 1e-12) {
		t.Errorf("BrushIntensity = %v, want %v with noise sampled at 1-y", got, want)
	}
}

func BenchmarkTrailStep(b *testing.B) {
	f := NewTrailField(374, 665)
	s := engagedStep(0.5, 0.5)
	s.Delta = 0.016
	for i := 0; i < b.N; i++ {
		f.Step(s)
	}
}
