// Package quiz holds the collaborators around the fog layer: topic content,
// the landing/quiz/final navigation state machine, per-question answer
// scoring, the leaderboard with its storage backends, and the password gate.
//
// Navigation changes are reported to listeners and to an optional [NavSink]
// (see the ecs package for a Donburi-backed sink) so the fog density can
// follow the player through the quiz.
//
// None of this is a security boundary: the gate is a placeholder compare and
// the leaderboard trusts its storage.
package quiz
