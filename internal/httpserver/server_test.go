package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/robalobadob/hangman/apps/go-server/internal/config"
	"github.com/robalobadob/hangman/apps/go-server/internal/game"
	"github.com/robalobadob/hangman/apps/go-server/internal/store"
	"github.com/robalobadob/hangman/apps/go-server/internal/words"
)

func testConfig() *config.Config {
	return &config.Config{
		Port:         "0",
		JWTSecret:    "test-secret",
		TokenTTL:     time.Hour,
		CookieName:   "hangman_token",
		ClientOrigin: "http://localhost:5173",
		GameIdleTTL:  time.Hour,
		Game:         config.GameConfig{DefaultLength: 3, DefaultMaxWrong: 3},
		Daily:        config.DailyConfig{Salt: "salt", MinWrong: 2, MaxWrong: 4},
	}
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	src := words.NewList([]string{"cat", "cot", "car", "can", "dog", "horse"})
	return New(store.NewMemoryStore(), src, testConfig())
}

func do(t *testing.T, s *Server, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[map[string]string](t, rec)["error"]
}

func newGame(t *testing.T, s *Server, body any) newGameRes {
	t.Helper()
	rec := do(t, s, http.MethodPost, "/game/new", "", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("POST /game/new status = %d, body %s", rec.Code, rec.Body.String())
	}
	return decode[newGameRes](t, rec)
}

func TestHealth(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/health", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/json; charset=utf-8" {
		t.Fatalf("content type = %q", got)
	}
}

func TestWordLengths(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/words/lengths", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	got := decode[lengthsRes](t, rec)
	want := []lengthCount{{Length: 3, Words: 5}, {Length: 5, Words: 1}}
	if len(got.Lengths) != len(want) || got.Lengths[0] != want[0] || got.Lengths[1] != want[1] {
		t.Fatalf("got = %+v, want %+v", got.Lengths, want)
	}
}

func TestNewGame(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	t.Run("defaults", func(t *testing.T) {
		res := newGame(t, s, nil)
		if res.GameID == "" || res.Token == "" {
			t.Fatalf("res = %+v", res)
		}
		if res.Game.Pattern != "_ _ _" || res.Game.GuessesLeft != 3 || res.Game.Remaining != 5 {
			t.Fatalf("game = %+v", res.Game)
		}
	})

	t.Run("explicit zero budget", func(t *testing.T) {
		res := newGame(t, s, map[string]int{"length": 3, "maxWrong": 0})
		if res.Game.Status != game.StatusLost {
			t.Fatalf("status = %s, want lost", res.Game.Status)
		}
	})

	t.Run("no words of length", func(t *testing.T) {
		res := newGame(t, s, map[string]int{"length": 9, "maxWrong": 3})
		if res.Game.Status != game.StatusUnplayable || res.Game.Pattern != "" {
			t.Fatalf("game = %+v", res.Game)
		}
	})

	t.Run("huge length is unplayable", func(t *testing.T) {
		res := newGame(t, s, map[string]int{"length": 1 << 40, "maxWrong": 3})
		if res.Game.Status != game.StatusUnplayable || res.Game.Pattern != "" || res.Game.Length != 1<<40 {
			t.Fatalf("game = %+v", res.Game)
		}
	})

	t.Run("invalid configuration", func(t *testing.T) {
		rec := do(t, s, http.MethodPost, "/game/new", "", map[string]int{"length": 0})
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
		if code := errorCode(t, rec); code != "invalid_configuration" {
			t.Fatalf("error = %q", code)
		}
	})

	t.Run("sets cookie", func(t *testing.T) {
		rec := do(t, s, http.MethodPost, "/game/new", "", nil)
		cookies := rec.Result().Cookies()
		if len(cookies) != 1 || cookies[0].Name != "hangman_token" || !cookies[0].HttpOnly {
			t.Fatalf("cookies = %+v", cookies)
		}
	})
}

func TestPlayThroughAPI(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)
	res := newGame(t, s, map[string]int{"length": 3, "maxWrong": 1})

	guess := func(letter string) *httptest.ResponseRecorder {
		return do(t, s, http.MethodPost, "/game/guess", res.Token, guessReq{GameID: res.GameID, Letter: letter})
	}

	// "c" keeps the four c-words over "dog".
	rec := guess("C")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	g := decode[guessRes](t, rec)
	if g.Count != 1 || g.Game.Pattern != "c _ _" || g.Game.Remaining != 4 {
		t.Fatalf("res = %+v", g)
	}

	rec = guess("c")
	if rec.Code != http.StatusBadRequest || errorCode(t, rec) != "already_guessed" {
		t.Fatalf("repeat: status = %d", rec.Code)
	}

	rec = guess("ab")
	if rec.Code != http.StatusBadRequest || errorCode(t, rec) != "invalid_letter" {
		t.Fatalf("two letters: status = %d", rec.Code)
	}
	rec = guess("7")
	if rec.Code != http.StatusBadRequest || errorCode(t, rec) != "invalid_letter" {
		t.Fatalf("digit: status = %d", rec.Code)
	}

	// Nothing has a z, so this is a miss and the budget runs out.
	rec = guess("z")
	g = decode[guessRes](t, rec)
	if g.Count != 0 || g.Game.Status != game.StatusLost || g.Game.Answer == "" {
		t.Fatalf("res = %+v", g)
	}

	rec = guess("a")
	if rec.Code != http.StatusConflict || errorCode(t, rec) != "game_over" {
		t.Fatalf("after loss: status = %d", rec.Code)
	}

	rec = do(t, s, http.MethodGet, "/game/"+res.GameID, res.Token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET status = %d", rec.Code)
	}
	v := decode[game.View](t, rec)
	if v.Status != game.StatusLost || len(v.Guessed) != 2 {
		t.Fatalf("view = %+v", v)
	}
}

func TestGuessAuthorization(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)
	a := newGame(t, s, nil)
	b := newGame(t, s, nil)

	rec := do(t, s, http.MethodPost, "/game/guess", "", guessReq{GameID: a.GameID, Letter: "a"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("no token: status = %d, want 401", rec.Code)
	}

	rec = do(t, s, http.MethodPost, "/game/guess", "garbage", guessReq{GameID: a.GameID, Letter: "a"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad token: status = %d, want 401", rec.Code)
	}

	rec = do(t, s, http.MethodPost, "/game/guess", b.Token, guessReq{GameID: a.GameID, Letter: "a"})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("other game's token: status = %d, want 403", rec.Code)
	}

	// A token signed for an id that is not stored gets through auth but 404s.
	tok, _, err := s.signGameToken("missing")
	if err != nil {
		t.Fatal(err)
	}
	rec = do(t, s, http.MethodPost, "/game/guess", tok, guessReq{GameID: "missing", Letter: "a"})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown game: status = %d, want 404", rec.Code)
	}
}

func TestCookieAuth(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)
	res := newGame(t, s, nil)

	req := httptest.NewRequest(http.MethodGet, "/game/"+res.GameID, nil)
	req.AddCookie(&http.Cookie{Name: "hangman_token", Value: res.Token})
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestExpiredToken(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)
	res := newGame(t, s, nil)

	s.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	rec := do(t, s, http.MethodGet, "/game/"+res.GameID, res.Token, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestDailyNew(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)
	s.now = func() time.Time { return time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC) }

	rec := do(t, s, http.MethodPost, "/daily/new", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var res struct {
		newGameRes
		Daily struct {
			Date     string `json:"date"`
			Length   int    `json:"length"`
			MaxWrong int    `json:"maxWrong"`
		} `json:"daily"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatal(err)
	}
	if res.Daily.Date != "2026-10-16" {
		t.Fatalf("date = %q", res.Daily.Date)
	}
	if res.Game.Length != res.Daily.Length || res.Game.GuessesLeft != res.Daily.MaxWrong {
		t.Fatalf("game = %+v, daily = %+v", res.Game, res.Daily)
	}
	if res.Daily.MaxWrong < 2 || res.Daily.MaxWrong > 4 {
		t.Fatalf("maxWrong = %d out of range", res.Daily.MaxWrong)
	}
}

func TestNotFoundRoute(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/nope", "", nil)
	if rec.Code != http.StatusNotFound || errorCode(t, rec) != "not_found" {
		t.Fatalf("status = %d", rec.Code)
	}
}
