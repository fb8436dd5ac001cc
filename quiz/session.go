package quiz

import (
	"errors"
	"time"
)

// PointsPerCorrect is the score awarded for each correct answer.
const PointsPerCorrect = 100

// RevealDelay is the pause between choosing an answer and showing the
// explanation.
const RevealDelay = 600 * time.Millisecond

var (
	// ErrAlreadyAnswered is returned by Answer after the first choice.
	ErrAlreadyAnswered = errors.New("quiz: question already answered")
	// ErrBadAnswer is returned for an answer index out of range.
	ErrBadAnswer = errors.New("quiz: answer index out of range")
)

// Question tracks one answer attempt. Only the first choice counts.
type Question struct {
	Topic    Topic
	selected int
}

// NewQuestion starts an unanswered attempt at t.
func NewQuestion(t Topic) *Question {
	return &Question{Topic: t, selected: -1}
}

// Answer records choice i and reports whether it was correct.
func (q *Question) Answer(i int) (bool, error) {
	if q.selected >= 0 {
		return false, ErrAlreadyAnswered
	}
	if i < 0 || i >= len(q.Topic.Answers) {
		return false, ErrBadAnswer
	}
	q.selected = i
	return q.Topic.Answers[i].Correct, nil
}

// Answered reports whether a choice has been made.
func (q *Question) Answered() bool { return q.selected >= 0 }

// Selected returns the chosen index, or -1.
func (q *Question) Selected() int { return q.selected }

// Session scores a run through the quiz.
type Session struct {
	answered int
	correct  int
}

// Record adds one answered question.
func (s *Session) Record(correct bool) {
	s.answered++
	if correct {
		s.correct++
	}
}

// Answered returns how many questions were answered.
func (s *Session) Answered() int { return s.answered }

// Correct returns how many answers were correct.
func (s *Session) Correct() int { return s.correct }

// Score returns the leaderboard score.
func (s *Session) Score() int { return s.correct * PointsPerCorrect }

// Reset clears the tally for a new run.
func (s *Session) Reset() { *s = Session{} }
