// internal/httpserver/server.go
//
// HTTP server wiring for the Scramble backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs, access log).
//   - Public endpoints: "/", "/health", "/debug/words".
//   - Game endpoints: GET /game, POST /game/guess, POST /game/pass, POST /game/restart.
//   - One game.Session per player, keyed by the player cookie (see player.go).
//
// Notes:
//   - Sessions are cached in memory and rehydrated from the store on first use,
//     so a restarted server picks up where each player left off.
//   - The cache is bounded (Options.MaxSessions); idle sessions are evicted
//     oldest first and reloaded from the store when their player returns.
//   - game.Session is not concurrency-safe; each cached session carries a
//     one-slot lock that waits no longer than the request context.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/scramble/internal/game"
	"github.com/robalobadob/scramble/internal/store"
)

// Options carries the presentation settings taken from config.
type Options struct {
	JWTSecret    string
	CookieName   string
	ClientOrigin string
	Secure       bool // Secure + SameSite=None cookies
	MaxSessions  int  // cached sessions before idle ones are evicted; 0 means DefaultMaxSessions
}

// DefaultMaxSessions bounds the session cache when Options leaves it unset.
const DefaultMaxSessions = 10000

// Server bundles router, store and the per-player session cache.
type Server struct {
	r     *chi.Mux
	kv    store.KV
	vocab []string
	opts  Options

	mu       sync.Mutex                // guards sessions and lastUsed
	sessions map[string]*playerSession // keyed by player ID
}

// playerSession serializes access to one player's game.
type playerSession struct {
	sem  chan struct{} // one-slot lock
	game *game.Session

	lastUsed time.Time // guarded by Server.mu
	evicted  bool      // set while holding sem; holders must reload
}

func newPlayerSession() *playerSession {
	return &playerSession{sem: make(chan struct{}, 1)}
}

// lock waits for the session or for ctx to end.
func (ps *playerSession) lock(ctx context.Context) error {
	select {
	case ps.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (ps *playerSession) tryLock() bool {
	select {
	case ps.sem <- struct{}{}:
		return true
	default:
		return false
	}
}

func (ps *playerSession) unlock() { <-ps.sem }

// New constructs a Server, installs middleware, and registers routes.
func New(kv store.KV, vocab []string, opts Options) *Server {
	if opts.MaxSessions <= 0 {
		opts.MaxSessions = DefaultMaxSessions
	}
	s := &Server{
		r:        chi.NewRouter(),
		kv:       kv,
		vocab:    vocab,
		opts:     opts,
		sessions: make(map[string]*playerSession),
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(accessLog)                       // structured request log
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(cors(opts.ClientOrigin))         // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"service":"scramble-go","endpoints":["/health","GET /game","POST /game/guess","POST /game/pass","POST /game/restart"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]int{"vocabulary": len(s.vocab)})
	})

	// Game endpoints, one session per player cookie
	s.r.Route("/game", func(r chi.Router) {
		r.Use(s.withPlayer)
		r.Get("/", s.handleView)
		r.Post("/guess", s.handleGuess)
		r.Post("/pass", s.handlePass)
		r.Post("/restart", s.handleRestart)
	})

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Handler exposes the router (used by main and tests).
func (s *Server) Handler() http.Handler { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for a single origin.
func cors(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// accessLog logs each request with structured fields.
func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		log.Info().
			Str("request_id", chimw.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int64("latency_ms", time.Since(start).Milliseconds()).
			Msg("request")
	})
}

// ------------------------------ GAME ---------------------------------------

// acquire returns playerID's session locked for the caller, loading it from
// the store on first use. Concurrent first requests share one load. The
// store is never touched while s.mu is held.
func (s *Server) acquire(ctx context.Context, playerID string) (*playerSession, error) {
	for {
		s.mu.Lock()
		ps, ok := s.sessions[playerID]
		if !ok {
			ps = newPlayerSession()
			ps.sem <- struct{}{} // held until loaded
			ps.lastUsed = time.Now()
			s.sessions[playerID] = ps
			s.evictLocked()
			s.mu.Unlock()

			if err := s.load(ctx, playerID, ps); err != nil {
				s.mu.Lock()
				if s.sessions[playerID] == ps {
					delete(s.sessions, playerID)
				}
				s.mu.Unlock()
				ps.evicted = true
				ps.unlock()
				return nil, err
			}
			return ps, nil
		}
		ps.lastUsed = time.Now()
		s.mu.Unlock()

		if err := ps.lock(ctx); err != nil {
			return nil, err
		}
		if !ps.evicted {
			return ps, nil
		}
		ps.unlock()
	}
}

// load builds the player's game from the store. Client cancellation must not
// cut a load short, or defaults would be cached over stored progress.
func (s *Server) load(ctx context.Context, playerID string, ps *playerSession) error {
	g, err := game.New(context.WithoutCancel(ctx), s.vocab, store.WithPrefix(s.kv, "player:"+playerID+":"),
		game.WithLogger(log.With().Str("player", playerID).Logger()))
	if err != nil {
		return err
	}
	ps.game = g
	return nil
}

// evictLocked drops the least recently used idle sessions once the cache
// outgrows MaxSessions, down to three quarters of it. Sessions held by a
// request are skipped. Caller holds s.mu.
func (s *Server) evictLocked() {
	if len(s.sessions) <= s.opts.MaxSessions {
		return
	}
	target := s.opts.MaxSessions - s.opts.MaxSessions/4

	type entry struct {
		id string
		ps *playerSession
	}
	entries := make([]entry, 0, len(s.sessions))
	for id, ps := range s.sessions {
		entries = append(entries, entry{id, ps})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ps.lastUsed.Before(entries[j].ps.lastUsed)
	})

	evicted := 0
	for _, e := range entries {
		if len(s.sessions) <= target {
			break
		}
		if !e.ps.tryLock() {
			continue
		}
		e.ps.evicted = true
		delete(s.sessions, e.id)
		e.ps.unlock()
		evicted++
	}
	log.Debug().Int("evicted", evicted).Int("cached", len(s.sessions)).Msg("session cache trimmed")
}

// withGame runs fn against the caller's session while holding its lock and
// writes the resulting view. A request whose context ends while waiting for
// the lock writes nothing; chimw.Timeout answers 504 on deadline.
func (s *Server) withGame(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, g *game.Session) error) {
	ps, err := s.acquire(r.Context(), playerFrom(r.Context()))
	if err != nil {
		if r.Context().Err() != nil {
			log.Warn().Err(err).Str("request_id", chimw.GetReqID(r.Context())).Msg("gave up waiting for session")
			return
		}
		log.Error().Err(err).Msg("load session")
		writeError(w, http.StatusInternalServerError, "session_unavailable")
		return
	}
	defer ps.unlock()

	if err := fn(r.Context(), ps.game); err != nil {
		switch {
		case errors.Is(err, game.ErrGameOver):
			writeError(w, http.StatusConflict, "game_over")
		case errors.Is(err, game.ErrNoPasses):
			writeError(w, http.StatusConflict, "no_passes_left")
		default:
			log.Error().Err(err).Msg("game operation")
			writeError(w, http.StatusInternalServerError, "internal_error")
		}
		return
	}
	writeJSON(w, http.StatusOK, ps.game.View())
}

// handleView returns the current view without mutating anything.
func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	s.withGame(w, r, func(context.Context, *game.Session) error { return nil })
}

// guessReq is the payload for POST /game/guess.
type guessReq struct {
	Guess string `json:"guess"`
}

// handleGuess submits a guess. Surrounding whitespace from the input box is trimmed.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	guess := strings.TrimSpace(req.Guess)
	s.withGame(w, r, func(ctx context.Context, g *game.Session) error {
		_, err := g.SubmitGuess(ctx, guess)
		return err
	})
}

// handlePass skips the active word.
func (s *Server) handlePass(w http.ResponseWriter, r *http.Request) {
	s.withGame(w, r, func(ctx context.Context, g *game.Session) error {
		return g.Pass(ctx)
	})
}

// handleRestart starts over with a reshuffled vocabulary.
func (s *Server) handleRestart(w http.ResponseWriter, r *http.Request) {
	s.withGame(w, r, func(ctx context.Context, g *game.Session) error {
		g.Restart(ctx)
		return nil
	})
}

// ------------------------------- small util --------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
