// internal/game/engine.go
//
// Core engine for a single adaptive hangman game.
// Responsibilities:
//   - Build a game from an arbitrary word list (filter by length, dedupe).
//   - Record letter guesses, choosing the answer family that keeps the most
//     candidate words alive (see partition.go).
//   - Track state transitions: playing → won/lost, or unplayable from the start.
//
// Notes:
//   - The engine never commits to a secret word; any remaining candidate is an
//     equally valid answer once the game is over.
//   - Case normalization is the caller's job. Word length is measured in runes.
//   - Every rejected call leaves the game untouched.
package game

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/google/uuid"
)

// New constructs a game over the words of exactly the given length.
// An empty candidate set is not an error: the game is reported as unplayable.
func New(words []string, length, maxWrong int) (*Game, error) {
	if length < 1 {
		return nil, fmt.Errorf("%w: word length %d must be at least 1", ErrInvalidConfiguration, length)
	}
	if maxWrong < 0 {
		return nil, fmt.Errorf("%w: wrong-guess budget %d must not be negative", ErrInvalidConfiguration, maxWrong)
	}

	seen := make(map[string]struct{}, len(words))
	candidates := make([]string, 0)
	for _, w := range words {
		if utf8.RuneCountInString(w) != length {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		candidates = append(candidates, w)
	}
	slices.Sort(candidates)

	// Only built when a word has this length: the requested length alone is
	// unbounded.
	var pattern []rune
	if len(candidates) > 0 {
		pattern = []rune(strings.Repeat(string(Placeholder), length))
	}

	return &Game{
		ID:        uuid.NewString(),
		length:    length,
		words:     candidates,
		guessed:   mapset.NewThreadUnsafeSet[rune](),
		pattern:   pattern,
		remaining: maxWrong,
	}, nil
}

// Length returns the word length fixed at construction.
func (g *Game) Length() int { return g.length }

// Candidates returns a sorted copy of the words still consistent with the game.
func (g *Game) Candidates() []string {
	return slices.Clone(g.words)
}

// Remaining returns the number of candidate words.
func (g *Game) Remaining() int { return len(g.words) }

// GuessBudget returns how many wrong guesses are still allowed.
func (g *Game) GuessBudget() int { return g.remaining }

// GuessedLetters returns the letters tried so far in ascending order.
func (g *Game) GuessedLetters() []rune {
	out := g.guessed.ToSlice()
	slices.Sort(out)
	return out
}

// DisplayPattern renders the revealed pattern with one space between symbols,
// e.g. "c _ _". It fails when no word is possible.
func (g *Game) DisplayPattern() (string, error) {
	if len(g.words) == 0 {
		return "", fmt.Errorf("%w: no candidate words", ErrInvalidState)
	}
	var b strings.Builder
	for i, r := range g.pattern {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String(), nil
}

// Status reports the coarse lifecycle state.
func (g *Game) Status() Status {
	switch {
	case len(g.words) == 0:
		return StatusUnplayable
	case !slices.Contains(g.pattern, Placeholder):
		return StatusWon
	case g.remaining <= 0:
		return StatusLost
	default:
		return StatusPlaying
	}
}

// RecordGuess records letter and returns how many positions of the chosen
// pattern hold it (0 means a miss, which costs one wrong guess).
//
// Errors:
//   - ErrInvalidState if the game is unplayable, lost or won.
//   - ErrInvalidArgument if letter was already guessed or is the Placeholder.
func (g *Game) RecordGuess(letter rune) (int, error) {
	if st := g.Status(); st.Terminal() {
		return 0, fmt.Errorf("%w: game is %s", ErrInvalidState, st)
	}
	if letter == Placeholder {
		return 0, fmt.Errorf("%w: %q is the placeholder symbol", ErrInvalidArgument, letter)
	}
	if g.guessed.Contains(letter) {
		return 0, fmt.Errorf("%w: %q already guessed", ErrInvalidArgument, letter)
	}

	families := partition(g.words, g.pattern, letter)
	key := choose(families)

	// Commit: nothing below can fail.
	g.guessed.Add(letter)
	g.words = families[key]
	g.pattern = []rune(key)

	count := 0
	for _, r := range g.pattern {
		if r == letter {
			count++
		}
	}
	if count == 0 {
		g.remaining--
	}
	return count, nil
}

// Answer returns one remaining candidate to reveal as "the answer".
// Every remaining candidate is equally valid; the first in sorted order is used.
func (g *Game) Answer() (string, bool) {
	if len(g.words) == 0 {
		return "", false
	}
	return g.words[0], true
}

// View returns a snapshot of the game. The answer is only included once the
// game is over.
func (g *Game) View() View {
	st := g.Status()
	pattern, _ := g.DisplayPattern()

	letters := g.GuessedLetters()
	guessed := make([]string, len(letters))
	for i, r := range letters {
		guessed[i] = string(r)
	}

	v := View{
		ID:          g.ID,
		Length:      g.length,
		Pattern:     pattern,
		Guessed:     guessed,
		GuessesLeft: g.remaining,
		Remaining:   len(g.words),
		Status:      st,
	}
	if st == StatusWon || st == StatusLost {
		v.Answer, _ = g.Answer()
	}
	return v
}
