package httpserver

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	errNoToken     = errors.New("missing token")
	errBadToken    = errors.New("invalid token")
	errWrongGameID = errors.New("token does not match game")
)

// gameClaims binds a token to exactly one game.
type gameClaims struct {
	GameID string `json:"gid"`
	jwt.RegisteredClaims
}

// signGameToken creates an HS256 JWT for gameID that expires after the
// configured token TTL.
func (s *Server) signGameToken(gameID string) (string, time.Time, error) {
	now := s.now()
	exp := now.Add(s.cfg.TokenTTL)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, gameClaims{
		GameID: gameID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})
	ss, err := t.SignedString([]byte(s.cfg.JWTSecret))
	return ss, exp, err
}

// authorizeGame checks that the request carries a valid token for gameID.
func (s *Server) authorizeGame(r *http.Request, gameID string) error {
	tok := s.bearerOrCookie(r)
	if tok == "" {
		return errNoToken
	}
	var claims gameClaims
	t, err := jwt.ParseWithClaims(tok, &claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil || !t.Valid {
		return errBadToken
	}
	if claims.GameID != gameID {
		return errWrongGameID
	}
	return nil
}

// bearerOrCookie extracts a bearer token from Authorization header or the token cookie.
func (s *Server) bearerOrCookie(r *http.Request) string {
	// Authorization: Bearer <token>
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(s.cfg.CookieName); err == nil {
		return c.Value
	}
	return ""
}

// setTokenCookie writes the game token cookie with appropriate security attributes.
func (s *Server) setTokenCookie(w http.ResponseWriter, token string, exp time.Time) {
	secure := s.cfg.Production
	sameSite := http.SameSiteLaxMode
	if secure {
		sameSite = http.SameSiteNoneMode // required for third-party contexts when Secure
	}
	http.SetCookie(w, &http.Cookie{
		Name:     s.cfg.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: sameSite,
		Expires:  exp,
	})
}
