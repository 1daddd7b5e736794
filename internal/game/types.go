// internal/game/types.go
//
// Core type definitions for the adaptive hangman engine.
// Defines:
//   - Status: coarse lifecycle state of a game (playing/won/lost/unplayable).
//   - Game: state for a single in-progress or finished game.
//   - View: read-only snapshot handed to presentation layers.
//   - Error kinds returned by the engine.

package game

import (
	"errors"

	mapset "github.com/deckarep/golang-set/v2"
)

// Placeholder marks a pattern position that has not been revealed yet.
const Placeholder = '_'

// Status represents where a game is in its lifecycle.
//   - "playing":    guesses are accepted.
//   - "won":        every position of the pattern is revealed.
//   - "lost":       the wrong-guess budget is used up.
//   - "unplayable": no word of the requested length exists.
type Status string

const (
	StatusPlaying    Status = "playing"
	StatusWon        Status = "won"
	StatusLost       Status = "lost"
	StatusUnplayable Status = "unplayable"
)

// Terminal reports whether no further guesses can be recorded.
func (s Status) Terminal() bool { return s != StatusPlaying }

// Error kinds. Returned errors wrap one of these, so callers use errors.Is.
var (
	// ErrInvalidConfiguration is returned by New for a word length below one
	// or a negative wrong-guess budget.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrInvalidState is returned when the game has no candidates, no
	// guesses left, or is otherwise finished.
	ErrInvalidState = errors.New("invalid state")

	// ErrInvalidArgument is returned when a letter is guessed twice.
	ErrInvalidArgument = errors.New("invalid argument")
)

// Game holds the state of a single adaptive hangman game.
// A Game is not safe for concurrent use; callers serialize turns.
type Game struct {
	ID string // Unique game identifier (uuid).

	length    int              // word length fixed at construction
	words     []string         // candidate words, sorted and distinct
	guessed   mapset.Set[rune] // letters tried so far
	pattern   []rune           // revealed letters or Placeholder, len == length
	remaining int              // wrong guesses still allowed
}

// View is a snapshot of a game suitable for JSON encoding.
type View struct {
	ID          string   `json:"id"`
	Length      int      `json:"length"`
	Pattern     string   `json:"pattern"`
	Guessed     []string `json:"guessed"`
	GuessesLeft int      `json:"guessesLeft"`
	Remaining   int      `json:"remaining"` // candidate words still possible
	Status      Status   `json:"status"`
	Answer      string   `json:"answer,omitempty"` // only once the game is over
}
