// internal/words/words.go
//
// Word list management for the game engine.
//
// Responsibilities:
//   - Load a dictionary from a file or fall back to the embedded default.
//   - Normalize words (trim + Unicode lower-case) before they reach the engine.
//   - Serve words of one length and per-length counts through Source.
//
// File format:
//   - Whitespace separated words, any number per line.
//   - Lines starting with "#" are comments.
//
// The engine filters by length itself; Source implementations filter too so
// that large dictionaries are not copied into every game.

package words

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/robalobadob/hangman/apps/go-server/assets"
)

// Source supplies candidate words to new games.
type Source interface {
	// WordsOfLength returns every word of exactly n runes.
	WordsOfLength(ctx context.Context, n int) ([]string, error)

	// Lengths returns the number of words per word length.
	Lengths(ctx context.Context) (map[int]int, error)
}

// ErrEmpty is returned when a dictionary holds no words at all.
var ErrEmpty = errors.New("words: dictionary is empty")

// List is an in-memory Source.
type List struct {
	byLen map[int][]string
	total int
}

// NewList builds a List from already normalized words. Duplicates are kept
// once.
func NewList(ws []string) *List {
	l := &List{byLen: make(map[int][]string)}
	seen := make(map[string]struct{}, len(ws))
	for _, w := range ws {
		if w == "" {
			continue
		}
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		n := utf8.RuneCountInString(w)
		l.byLen[n] = append(l.byLen[n], w)
		l.total++
	}
	return l
}

// Load reads and normalizes the dictionary file at path.
func Load(path string) (*List, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ws, err := Read(f)
	if err != nil {
		return nil, err
	}
	if len(ws) == 0 {
		return nil, ErrEmpty
	}
	return NewList(ws), nil
}

// Embedded returns the dictionary compiled into the binary.
func Embedded() (*List, error) {
	f, err := assets.FS.Open(assets.DictionaryFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ws, err := Read(f)
	if err != nil {
		return nil, err
	}
	if len(ws) == 0 {
		return nil, ErrEmpty
	}
	return NewList(ws), nil
}

// Open loads path if it is set, otherwise the embedded dictionary.
func Open(path string) (*List, error) {
	if path == "" {
		return Embedded()
	}
	return Load(path)
}

// Read scans r for words, skipping comment lines, and normalizes each one.
func Read(r io.Reader) ([]string, error) {
	lower := cases.Lower(language.Und)
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		for _, w := range strings.Fields(line) {
			out = append(out, lower.String(w))
		}
	}
	return out, sc.Err()
}

// Normalize trims s and lower-cases it.
func Normalize(s string) string {
	return cases.Lower(language.Und).String(strings.TrimSpace(s))
}

// WordsOfLength returns a copy of the words with n runes.
func (l *List) WordsOfLength(_ context.Context, n int) ([]string, error) {
	return append([]string(nil), l.byLen[n]...), nil
}

// Lengths returns word counts keyed by length.
func (l *List) Lengths(_ context.Context) (map[int]int, error) {
	out := make(map[int]int, len(l.byLen))
	for n, ws := range l.byLen {
		out[n] = len(ws)
	}
	return out, nil
}

// All returns every word in the list.
func (l *List) All() []string {
	out := make([]string, 0, l.total)
	for _, ws := range l.byLen {
		out = append(out, ws...)
	}
	return out
}

// Len returns the number of distinct words.
func (l *List) Len() int { return l.total }
