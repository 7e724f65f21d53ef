// internal/game/session.go
//
// Game session state machine.
// Responsibilities:
//   - Own the word queue, score counters, phase and guess feedback.
//   - Apply guesses, passes and restarts, guarding out-of-contract calls.
//   - Derive the scrambled view of the active word.
//   - Persist durable fields to a Store after every mutation and rehydrate
//     from it on construction.
//
// A Session is not safe for concurrent use; callers serialize operations.

package game

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/scramble/internal/scramble"
)

// Session is one player's game.
type Session struct {
	vocab []string
	store Store
	rng   scramble.RNG
	log   zerolog.Logger

	words   []string // front is the active word
	points  int
	strikes int
	passes  int

	phase     Phase
	feedback  Feedback
	scrambled string
}

// Option configures a Session.
type Option func(*Session)

// WithRNG sets the random source used for shuffling and scrambling.
func WithRNG(rng scramble.RNG) Option {
	return func(s *Session) { s.rng = rng }
}

// WithLogger sets the logger used for persistence diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Session) { s.log = l }
}

// New builds a session from vocab, rehydrating any durable fields found in st
// and writing the resulting state back.
func New(ctx context.Context, vocab []string, st Store, opts ...Option) (*Session, error) {
	if len(vocab) == 0 {
		return nil, ErrEmptyVocabulary
	}
	s := &Session{
		vocab:    append([]string(nil), vocab...),
		store:    st,
		rng:      scramble.Default,
		log:      log.Logger,
		feedback: Feedback{Kind: FeedbackNone},
	}
	for _, o := range opts {
		o(s)
	}

	restored := materialize(load(ctx, st, s.vocab, s.log), s.vocab, s.rng)
	s.words = restored.Words
	s.points = restored.Points
	s.strikes = restored.Strikes
	s.passes = restored.Passes

	s.evaluate()
	s.rescramble()
	s.write(ctx, KeyWords, KeyPoints, KeyStrikes, KeyPasses)

	s.log.Debug().
		Int("remaining", len(s.words)).
		Int("points", s.points).
		Int("strikes", s.strikes).
		Int("passes", s.passes).
		Str("phase", string(s.phase)).
		Msg("session loaded")
	return s, nil
}

// SubmitGuess compares the lowercased guess against the active word.
// A match scores a point and advances the queue; a miss adds a strike.
func (s *Session) SubmitGuess(ctx context.Context, guess string) (Feedback, error) {
	if s.phase != PhasePlaying {
		return s.feedback, ErrGameOver
	}
	if len(s.words) == 0 {
		s.evaluate()
		return s.feedback, nil
	}

	if strings.ToLower(guess) == s.words[0] {
		s.points++
		s.words = s.words[1:]
		s.feedback = Feedback{Kind: FeedbackCorrect, Visible: true}
		s.rescramble()
	} else {
		s.strikes++
		s.feedback = Feedback{Kind: FeedbackIncorrect, Visible: true}
	}
	s.evaluate()
	s.write(ctx, KeyWords, KeyPoints, KeyStrikes)
	return s.feedback, nil
}

// Pass skips the active word at the cost of one pass.
func (s *Session) Pass(ctx context.Context) error {
	if s.phase != PhasePlaying {
		return ErrGameOver
	}
	if s.passes <= 0 {
		return ErrNoPasses
	}

	if len(s.words) > 0 {
		s.words = s.words[1:]
	}
	s.passes--
	s.feedback.Visible = false
	s.rescramble()
	s.evaluate()
	s.write(ctx, KeyWords, KeyPasses)
	return nil
}

// Restart reshuffles the full vocabulary and resets all counters.
// Valid in any phase.
func (s *Session) Restart(ctx context.Context) {
	s.words = scramble.Shuffle(s.vocab, s.rng)
	s.points = 0
	s.strikes = 0
	s.passes = DefaultPasses
	s.phase = PhasePlaying
	s.feedback = Feedback{Kind: FeedbackNone}
	s.rescramble()
	s.write(ctx, KeyWords, KeyPoints, KeyStrikes, KeyPasses)
}

// evaluate applies the phase rule. Reaching the strike limit takes precedence
// over an empty queue.
func (s *Session) evaluate() {
	s.phase = phaseFor(len(s.words), s.strikes)
}

func phaseFor(remaining, strikes int) Phase {
	switch {
	case strikes >= StrikeLimit:
		return PhaseLost
	case remaining == 0:
		return PhaseWon
	default:
		return PhasePlaying
	}
}

func (s *Session) rescramble() {
	s.scrambled = scramble.Word(s.ActiveWord(), s.rng)
}

// ActiveWord returns the word to guess, or "" when the queue is empty.
func (s *Session) ActiveWord() string {
	if len(s.words) == 0 {
		return ""
	}
	return s.words[0]
}

func (s *Session) Scrambled() string  { return s.scrambled }
func (s *Session) Points() int        { return s.points }
func (s *Session) Strikes() int       { return s.strikes }
func (s *Session) Passes() int        { return s.passes }
func (s *Session) Phase() Phase       { return s.phase }
func (s *Session) Feedback() Feedback { return s.feedback }
func (s *Session) Remaining() int     { return len(s.words) }

// View returns a snapshot for rendering.
func (s *Session) View() View {
	return View{
		Scrambled:   s.scrambled,
		Points:      s.points,
		Strikes:     s.strikes,
		StrikeLimit: StrikeLimit,
		Passes:      s.passes,
		Phase:       s.phase,
		Feedback:    s.feedback,
		Remaining:   len(s.words),
	}
}
