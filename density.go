package mist

// Screen identifies the navigation state the fog reacts to.
type Screen uint8

const (
	ScreenLanding Screen = iota // topic picker
	ScreenQuiz                  // one question of the quiz
	ScreenFinal                 // closing score screen
)

func (s Screen) String() string {
	switch s {
	case ScreenLanding:
		return "landing"
	case ScreenQuiz:
		return "quiz"
	case ScreenFinal:
		return "final"
	}
	return "unknown"
}

// DefaultDensityFloor is the target density on the last question.
const DefaultDensityFloor = 0.35

// DensitySchedule maps navigation state to a target density. It holds no
// animation state; smoothing belongs to the Compositor.
type DensitySchedule struct {
	// Floor is the density at the last question.
	Floor float64
}

// Target returns the target density in [0, 1]. Landing is 1, final is 0,
// and questions interpolate linearly from 1 at index 0 down to Floor at
// index total-1. Out-of-range indices are clamped; a one-question quiz sits
// at 1.
func (d DensitySchedule) Target(screen Screen, index, total int) float64 {
	switch screen {
	case ScreenLanding:
		return 1
	case ScreenFinal:
		return 0
	}
	if total <= 1 {
		return 1
	}
	index = Clamp(index, 0, total-1)
	floor := clamp01(d.Floor)
	return 1 - float64(index)*(1-floor)/float64(total-1)
}
