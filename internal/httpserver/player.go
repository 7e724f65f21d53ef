// internal/httpserver/player.go
//
// Player identity for the game endpoints.
// Each browser gets a random player ID (UUID) carried in an HS256-signed JWT
// cookie. The ID selects that player's namespace in the store, playing the
// role browser-local storage plays for a purely client-side game.

package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const playerCookieTTL = 180 * 24 * time.Hour

// ctxPlayerKey is the context key type for the player ID.
type ctxPlayerKey struct{}

// playerFrom returns the player ID stored by withPlayer.
func playerFrom(ctx context.Context) string {
	id, _ := ctx.Value(ctxPlayerKey{}).(string)
	return id
}

// withPlayer resolves the player cookie, issuing a new identity when it is
// missing or invalid. It never rejects a request.
func (s *Server) withPlayer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := s.playerFromCookie(r)
		if id == "" {
			id = uuid.NewString()
			if err := s.setPlayerCookie(w, id); err != nil {
				log.Error().Err(err).Msg("sign player token")
				writeError(w, http.StatusInternalServerError, "sign_failed")
				return
			}
			log.Debug().Str("player", id).Msg("issued player identity")
		}
		ctx := context.WithValue(r.Context(), ctxPlayerKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// playerFromCookie returns the verified player ID, or "" if absent/invalid.
func (s *Server) playerFromCookie(r *http.Request) string {
	c, err := r.Cookie(s.opts.CookieName)
	if err != nil || c.Value == "" {
		return ""
	}
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(c.Value, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.opts.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return ""
	}
	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return ""
	}
	return id.String()
}

// signPlayer creates an HS256 JWT whose subject is the player ID.
func (s *Server) signPlayer(id string, exp time.Time) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   id,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	return t.SignedString([]byte(s.opts.JWTSecret))
}

// setPlayerCookie writes the player token cookie with appropriate security attributes.
func (s *Server) setPlayerCookie(w http.ResponseWriter, id string) error {
	exp := time.Now().Add(playerCookieTTL)
	tok, err := s.signPlayer(id, exp)
	if err != nil {
		return err
	}
	sameSite := http.SameSiteLaxMode
	if s.opts.Secure {
		sameSite = http.SameSiteNoneMode // required for third-party contexts when Secure
	}
	http.SetCookie(w, &http.Cookie{
		Name:     s.opts.CookieName,
		Value:    tok,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.opts.Secure,
		SameSite: sameSite,
		Expires:  exp,
	})
	return nil
}
