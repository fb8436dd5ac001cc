package mist

import "testing"

func TestDensityScheduleTarget(t *testing.T) {
	d := DensitySchedule{Floor: DefaultDensityFloor}
	tests := []struct {
		name         string
		screen       Screen
		index, total int
		want         float64
	}{
		{"landing", ScreenLanding, 0, 6, 1},
		{"final", ScreenFinal, 5, 6, 0},
		{"first question", ScreenQuiz, 0, 6, 1},
		{"last question", ScreenQuiz, 5, 6, 0.35},
		{"middle question", ScreenQuiz, 2, 5, 1 - 2*0.65/4},
		{"index past end", ScreenQuiz, 9, 6, 0.35},
		{"negative index", ScreenQuiz, -3, 6, 1},
		{"single question", ScreenQuiz, 0, 1, 1},
		{"no questions", ScreenQuiz, 0, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := d.Target(tt.screen, tt.index, tt.total)
			if !approxEqual(got, tt.want, 1e-12) {
				t.Errorf("Target(%v, %d, %d) = %v, want %v", tt.screen, tt.index, tt.total, got, tt.want)
			}
		})
	}
}

func TestDensityScheduleDecreasing(t *testing.T) {
	d := DensitySchedule{Floor: DefaultDensityFloor}
	prev := 2.0
	for i := 0; i < 6; i++ {
		v := d.Target(ScreenQuiz, i, 6)
		if v >= prev {
			t.Fatalf("question %d: %v >= %v", i, v, prev)
		}
		prev = v
	}
}

func TestDensityScheduleSixQuestions(t *testing.T) {
	d := DensitySchedule{Floor: 0.35}
	want := []float64{1, 0.87, 0.74, 0.61, 0.48, 0.35}
	for i, w := range want {
		if got := d.Target(ScreenQuiz, i, 6); !approxEqual(got, w, 1e-12) {
			t.Errorf("question %d: Target = %v, want %v", i, got, w)
		}
	}
}

func TestScreenString(t *testing.T) {
	if ScreenQuiz.String() != "quiz" || Screen(9).String() != "unknown" {
		t.Errorf("unexpected Screen strings: %q %q", ScreenQuiz, Screen(9))
	}
}
