// internal/httpserver/routes_daily.go
//
// HTTP route for the "Daily" mode:
//   - POST /daily/new → start a game with today's word length and budget
//
// The setup is derived from date + salt (see package daily), so every player
// gets the same puzzle parameters on the same UTC day. Results are not stored.

package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hangman/apps/go-server/internal/daily"
)

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	r.Route("/daily", func(r chi.Router) {
		r.Post("/new", s.handleDailyNew)
	})
}

// todaySetup picks today's setup among the lengths that have words.
func (s *Server) todaySetup(r *http.Request) (daily.Setup, error) {
	counts, err := s.words.Lengths(r.Context())
	if err != nil {
		return daily.Setup{}, err
	}
	lengths := make([]int, 0, len(counts))
	for n, c := range counts {
		if c > 0 && n > 0 {
			lengths = append(lengths, n)
		}
	}
	return daily.Pick(s.now(), s.cfg.Daily.Salt, lengths, s.cfg.Daily.MinWrong, s.cfg.Daily.MaxWrong), nil
}

// handleDailyNew starts a fresh game with today's setup.
func (s *Server) handleDailyNew(w http.ResponseWriter, r *http.Request) {
	setup, err := s.todaySetup(r)
	if err != nil {
		log.Error().Err(err).Msg("daily setup")
		writeError(w, http.StatusInternalServerError, "words_unavailable")
		return
	}
	if setup.Length == 0 {
		writeError(w, http.StatusServiceUnavailable, "no_words")
		return
	}
	s.startGame(w, r, setup.Length, setup.MaxWrong, setup)
}
