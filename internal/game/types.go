// internal/game/types.go
//
// Core type definitions for the scramble game session.
// Defines:
//   - Phase: coarse game status (playing/won/lost).
//   - FeedbackKind/Feedback: result of the last guess, as shown to the player.
//   - View: read-only snapshot handed to presentation layers.

package game

import "errors"

const (
	// StrikeLimit is the number of incorrect guesses that loses the game.
	StrikeLimit = 3
	// DefaultPasses is the skip budget of a fresh game.
	DefaultPasses = 3
)

var (
	ErrGameOver        = errors.New("game over")
	ErrNoPasses        = errors.New("no passes left")
	ErrEmptyVocabulary = errors.New("vocabulary is empty")
)

// Phase represents the coarse status of a session.
// Won and Lost are terminal until Restart.
type Phase string

const (
	PhasePlaying Phase = "playing"
	PhaseWon     Phase = "won"
	PhaseLost    Phase = "lost"
)

// FeedbackKind is the evaluation of the most recent guess.
type FeedbackKind string

const (
	FeedbackNone      FeedbackKind = "none"
	FeedbackCorrect   FeedbackKind = "correct"
	FeedbackIncorrect FeedbackKind = "incorrect"
)

// Feedback pairs the last guess result with whether it should be shown.
// A pass hides the message without forgetting the kind.
type Feedback struct {
	Kind    FeedbackKind `json:"kind"`
	Visible bool         `json:"visible"`
}

// View is everything a presentation layer may render.
// The unscrambled active word is deliberately absent.
type View struct {
	Scrambled   string   `json:"scrambled"`
	Points      int      `json:"points"`
	Strikes     int      `json:"strikes"`
	StrikeLimit int      `json:"strikeLimit"`
	Passes      int      `json:"passes"`
	Phase       Phase    `json:"phase"`
	Feedback    Feedback `json:"feedback"`
	Remaining   int      `json:"remaining"`
}
