// internal/httpserver/server.go
//
// HTTP server wiring for the hangman backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs, logging).
//   - Public endpoints: "/", "/health", "/words/lengths".
//   - Game endpoints: POST /game/new, POST /game/guess, GET /game/{id}.
//   - Daily endpoint: POST /daily/new (mounted from routes_daily.go).
//   - Background pruning of idle games.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled (so cookies work).
//   - Every game is bound to a signed token handed out on creation; only its
//     holder can guess or read the game (token.go).

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hangman/apps/go-server/internal/config"
	"github.com/robalobadob/hangman/apps/go-server/internal/store"
	"github.com/robalobadob/hangman/apps/go-server/internal/words"
)

// pruneEvery is how often the janitor looks for idle games.
const pruneEvery = time.Minute

// Server bundles router, game store, word source and configuration.
type Server struct {
	r     *chi.Mux
	store store.Store
	words words.Source
	cfg   *config.Config
	now   func() time.Time
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, src words.Source, cfg *config.Config) *Server {
	s := &Server{r: chi.NewRouter(), store: st, words: src, cfg: cfg, now: time.Now}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(requestLogger)                   // zerolog access log
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(s.cors)                          // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"service":   "hangman-go",
			"endpoints": []string{"/health", "/words/lengths", "POST /game/new", "POST /game/guess", "GET /game/{id}", "POST /daily/new"},
		})
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	s.r.Get("/words/lengths", s.handleLengths)

	s.mountGame(s.r)
	s.mountDaily(s.r)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// Run serves HTTP on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	hs := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go s.janitor(ctx)

	errc := make(chan error, 1)
	go func() { errc <- hs.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := hs.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// janitor prunes games idle for longer than the configured TTL.
func (s *Server) janitor(ctx context.Context) {
	if s.cfg.GameIdleTTL <= 0 {
		return
	}
	t := time.NewTicker(pruneEvery)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := s.store.Prune(ctx, s.now().Add(-s.cfg.GameIdleTTL)); n > 0 {
				log.Info().Int("pruned", n).Msg("removed idle games")
			}
		}
	}
}

// lengthsRes is returned by GET /words/lengths.
type lengthsRes struct {
	Lengths []lengthCount `json:"lengths"`
}

type lengthCount struct {
	Length int `json:"length"`
	Words  int `json:"words"`
}

// handleLengths reports how many words exist per word length.
func (s *Server) handleLengths(w http.ResponseWriter, r *http.Request) {
	counts, err := s.words.Lengths(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("word lengths")
		writeError(w, http.StatusInternalServerError, "words_unavailable")
		return
	}
	out := lengthsRes{Lengths: make([]lengthCount, 0, len(counts))}
	for n, c := range counts {
		out.Lengths = append(out.Lengths, lengthCount{Length: n, Words: c})
	}
	sort.Slice(out.Lengths, func(i, j int) bool { return out.Lengths[i].Length < out.Lengths[j].Length })
	writeJSON(w, http.StatusOK, out)
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for the single configured client origin.
func (s *Server) cors(next http.Handler) http.Handler {
	origin := s.cfg.ClientOrigin
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requestLogger writes one debug line per request.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Debug().
			Str("reqId", chimw.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("took", time.Since(start)).
			Msg("request")
	})
}

// ------------------------------- helpers -----------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("encode response")
	}
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
