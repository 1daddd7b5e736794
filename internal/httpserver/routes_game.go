// internal/httpserver/routes_game.go
//
// HTTP routes for playing a game:
//   - POST /game/new   → build a game for a word length and budget
//   - POST /game/guess → record one letter
//   - GET  /game/{id}  → current snapshot
//
// The server is the presentation layer: it normalizes and validates the raw
// letter before the engine sees it.

package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"unicode"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hangman/apps/go-server/internal/game"
	"github.com/robalobadob/hangman/apps/go-server/internal/store"
	"github.com/robalobadob/hangman/apps/go-server/internal/words"
)

// mountGame registers the /game routes.
func (s *Server) mountGame(r chi.Router) {
	r.Route("/game", func(r chi.Router) {
		r.Post("/new", s.handleNewGame)
		r.Post("/guess", s.handleGuess)
		r.Get("/{id}", s.handleGetGame)
	})
}

// newGameReq is the payload for POST /game/new. Missing fields fall back to
// the configured defaults; an explicit 0 budget is honoured.
type newGameReq struct {
	Length   *int `json:"length"`
	MaxWrong *int `json:"maxWrong"`
}

// newGameRes is returned by /game/new and /daily/new.
type newGameRes struct {
	GameID string    `json:"gameId"`
	Token  string    `json:"token"`
	Game   game.View `json:"game"`
}

// handleNewGame builds a game from the word source and stores it.
// A game with no words of the requested length is still created and reported
// as "unplayable".
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	length, maxWrong := s.cfg.Game.DefaultLength, s.cfg.Game.DefaultMaxWrong
	if req.Length != nil {
		length = *req.Length
	}
	if req.MaxWrong != nil {
		maxWrong = *req.MaxWrong
	}
	s.startGame(w, r, length, maxWrong, nil)
}

// startGame creates, stores and returns a new game. extra, when non-nil, is
// merged into the response under "daily".
func (s *Server) startGame(w http.ResponseWriter, r *http.Request, length, maxWrong int, extra any) {
	var candidates []string
	if length >= 1 {
		var err error
		if candidates, err = s.words.WordsOfLength(r.Context(), length); err != nil {
			log.Error().Err(err).Int("length", length).Msg("load words")
			writeError(w, http.StatusInternalServerError, "words_unavailable")
			return
		}
	}

	g, err := game.New(candidates, length, maxWrong)
	if err != nil {
		writeGameError(w, err)
		return
	}
	if err := s.store.Save(r.Context(), g); err != nil {
		log.Error().Err(err).Msg("save game")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}

	tok, exp, err := s.signGameToken(g.ID)
	if err != nil {
		log.Error().Err(err).Msg("sign token")
		writeError(w, http.StatusInternalServerError, "sign_failed")
		return
	}
	s.setTokenCookie(w, tok, exp)

	log.Info().
		Str("gameId", g.ID).
		Int("length", length).
		Int("maxWrong", maxWrong).
		Int("candidates", g.Remaining()).
		Msg("game started")

	res := newGameRes{GameID: g.ID, Token: tok, Game: g.View()}
	if extra == nil {
		writeJSON(w, http.StatusOK, res)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		newGameRes
		Daily any `json:"daily"`
	}{res, extra})
}

// guessReq/Res payloads for POST /game/guess.
type guessReq struct {
	GameID string `json:"gameId"`
	Letter string `json:"letter"`
}
type guessRes struct {
	Count int       `json:"count"` // positions holding the letter; 0 is a miss
	Game  game.View `json:"game"`
}

// handleGuess records one letter for a game the caller holds a token for.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	if !s.authorized(w, r, req.GameID) {
		return
	}
	letter, ok := parseLetter(req.Letter)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_letter")
		return
	}

	var res guessRes
	err := s.store.Update(r.Context(), req.GameID, func(g *game.Game) error {
		n, err := g.RecordGuess(letter)
		if err != nil {
			return err
		}
		res = guessRes{Count: n, Game: g.View()}
		return nil
	})
	if err != nil {
		writeGameError(w, err)
		return
	}
	if res.Game.Status.Terminal() {
		log.Info().Str("gameId", req.GameID).Str("status", string(res.Game.Status)).Msg("game finished")
	}
	writeJSON(w, http.StatusOK, res)
}

// handleGetGame returns the current snapshot of a game.
func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !s.authorized(w, r, id) {
		return
	}
	v, err := s.store.Get(r.Context(), id)
	if err != nil {
		writeGameError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// authorized writes the error response and returns false when the request
// may not touch gameID.
func (s *Server) authorized(w http.ResponseWriter, r *http.Request, gameID string) bool {
	if gameID == "" {
		writeError(w, http.StatusBadRequest, "missing_game_id")
		return false
	}
	switch err := s.authorizeGame(r, gameID); {
	case err == nil:
		return true
	case errors.Is(err, errWrongGameID):
		writeError(w, http.StatusForbidden, "forbidden")
	default:
		writeError(w, http.StatusUnauthorized, "unauthorized")
	}
	return false
}

// parseLetter normalizes raw input and accepts exactly one letter.
func parseLetter(raw string) (rune, bool) {
	s := words.Normalize(raw)
	if utf8.RuneCountInString(s) != 1 {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, unicode.IsLetter(r)
}

// writeGameError maps engine and store errors to HTTP responses.
func writeGameError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found")
	case errors.Is(err, game.ErrInvalidArgument):
		writeError(w, http.StatusBadRequest, "already_guessed")
	case errors.Is(err, game.ErrInvalidState):
		writeError(w, http.StatusConflict, "game_over")
	case errors.Is(err, game.ErrInvalidConfiguration):
		writeError(w, http.StatusBadRequest, "invalid_configuration")
	default:
		log.Error().Err(err).Msg("game operation")
		writeError(w, http.StatusInternalServerError, "internal")
	}
}
