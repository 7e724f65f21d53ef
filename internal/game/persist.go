// internal/game/persist.go
//
// Persistence of the durable session fields through a key/value Store.
//
// Loading is two-phase:
//   1. load: read each key; absent, unreadable, malformed or out-of-range
//      values stay unset.
//   2. materialize: replace every unset field with its documented default.
// Neither phase returns an error; bad stored data is logged and discarded.

package game

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/robalobadob/scramble/internal/scramble"
)

// Store is the key/value side channel a Session persists through.
// Implementations live in internal/store.
type Store interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores value under key.
	Set(ctx context.Context, key string, value []byte) error
}

// Keys under which session fields are stored.
const (
	KeyWords   = "shuffledWords"
	KeyPoints  = "points"
	KeyStrikes = "strikes"
	KeyPasses  = "passes"
)

// persisted holds whatever could be recovered from a store.
// A nil field means "use the default".
type persisted struct {
	Words   *[]string
	Points  *int
	Strikes *int
	Passes  *int
}

// state is a fully materialized set of durable fields.
type state struct {
	Words   []string
	Points  int
	Strikes int
	Passes  int
}

// load reads all durable fields from st. A stored queue is kept only if it
// holds distinct words of vocab; counters are kept only within their bounds.
func load(ctx context.Context, st Store, vocab []string, log zerolog.Logger) persisted {
	var p persisted

	var words []string
	if readJSON(ctx, st, KeyWords, &words, log) {
		if validQueue(words, vocab) {
			p.Words = &words
		} else {
			log.Warn().Str("key", KeyWords).Int("len", len(words)).Msg("discarding stored queue not drawn from vocabulary")
		}
	}
	p.Points = readCount(ctx, st, KeyPoints, -1, log)
	p.Strikes = readCount(ctx, st, KeyStrikes, StrikeLimit, log)
	p.Passes = readCount(ctx, st, KeyPasses, DefaultPasses, log)
	return p
}

// validQueue reports whether words is a non-nil set of distinct vocab entries.
func validQueue(words, vocab []string) bool {
	if words == nil || len(words) > len(vocab) {
		return false
	}
	return lo.Every(vocab, words) && len(lo.Uniq(words)) == len(words)
}

// materialize fills unset fields with defaults.
// The default queue is a fresh shuffle of vocab.
func materialize(p persisted, vocab []string, rng scramble.RNG) state {
	s := state{Passes: DefaultPasses}
	if p.Words != nil {
		s.Words = *p.Words
	} else {
		s.Words = scramble.Shuffle(vocab, rng)
	}
	if p.Points != nil {
		s.Points = *p.Points
	}
	if p.Strikes != nil {
		s.Strikes = *p.Strikes
	}
	if p.Passes != nil {
		s.Passes = *p.Passes
	}
	return s
}

// readCount decodes an integer counter in [0, limit]. A negative limit means
// no upper bound.
func readCount(ctx context.Context, st Store, key string, limit int, log zerolog.Logger) *int {
	var n int
	if !readJSON(ctx, st, key, &n, log) {
		return nil
	}
	if n < 0 || (limit >= 0 && n > limit) {
		log.Warn().Str("key", key).Int("value", n).Msg("discarding out-of-range stored counter")
		return nil
	}
	return &n
}

// readJSON reports whether key was present and decoded into dst.
func readJSON(ctx context.Context, st Store, key string, dst any, log zerolog.Logger) bool {
	raw, ok, err := st.Get(ctx, key)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("store read failed, using default")
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("discarding malformed stored value")
		return false
	}
	return true
}

// write stores each named field. Failures are logged and not returned:
// the in-memory state stays authoritative.
func (s *Session) write(ctx context.Context, keys ...string) {
	for _, key := range keys {
		var v any
		switch key {
		case KeyWords:
			v = s.words
		case KeyPoints:
			v = s.points
		case KeyStrikes:
			v = s.strikes
		case KeyPasses:
			v = s.passes
		default:
			panic(fmt.Sprintf("game: unknown store key %q", key))
		}
		raw, err := json.Marshal(v)
		if err != nil {
			s.log.Error().Err(err).Str("key", key).Msg("encode session field")
			continue
		}
		if err := s.store.Set(ctx, key, raw); err != nil {
			s.log.Warn().Err(err).Str("key", key).Msg("store write failed")
		}
	}
}
