// Package console is the text front end for a single game: it asks for the
// game setup, runs the turn loop and reports the outcome.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/robalobadob/hangman/apps/go-server/internal/game"
	"github.com/robalobadob/hangman/apps/go-server/internal/words"
)

// Session reads whitespace-separated tokens from its input and writes prompts and
// messages to Out.
type Session struct {
	Out       io.Writer
	ShowCount bool // print how many candidate words are left each turn

	in *bufio.Scanner
}

// NewSession returns a session reading from in.
func NewSession(in io.Reader, out io.Writer) *Session {
	sc := bufio.NewScanner(in)
	sc.Split(bufio.ScanWords)
	return &Session{Out: out, in: sc}
}

// Welcome prints the greeting.
func (s *Session) Welcome() {
	fmt.Fprintln(s.Out, "Welcome to the hangman word guessing game.")
	fmt.Fprintln(s.Out)
}

// next returns the next input token.
func (s *Session) next() (string, error) {
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", err
		}
		return "", io.ErrUnexpectedEOF
	}
	return s.in.Text(), nil
}

// AskInt prompts until a whole number is entered.
func (s *Session) AskInt(prompt string) (int, error) {
	for {
		fmt.Fprint(s.Out, prompt)
		tok, err := s.next()
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(tok)
		if err == nil {
			return n, nil
		}
		fmt.Fprintln(s.Out, "Please enter a whole number.")
	}
}

// Setup builds a game from src. A length or budget below zero is asked for
// interactively. It returns a nil game, after telling the player, when no
// word has the chosen length.
func (s *Session) Setup(ctx context.Context, src words.Source, length, maxWrong int) (*game.Game, error) {
	var err error
	if length < 0 {
		if length, err = s.AskInt("What length word do you want to use? "); err != nil {
			return nil, err
		}
	}
	if maxWrong < 0 {
		if maxWrong, err = s.AskInt("How many wrong answers allowed? "); err != nil {
			return nil, err
		}
		fmt.Fprintln(s.Out)
	}

	var dict []string
	if length >= 1 {
		if dict, err = src.WordsOfLength(ctx, length); err != nil {
			return nil, err
		}
	}
	g, err := game.New(dict, length, maxWrong)
	if err != nil {
		return nil, err
	}
	if g.Status() == game.StatusUnplayable {
		fmt.Fprintln(s.Out, "No words of that length in the dictionary.")
		return nil, nil
	}
	return g, nil
}

// Play runs turns until the game is won or lost.
func (s *Session) Play(g *game.Game) error {
	for g.Status() == game.StatusPlaying {
		pattern, err := g.DisplayPattern()
		if err != nil {
			return err
		}
		fmt.Fprintf(s.Out, "guesses : %d\n", g.GuessBudget())
		if s.ShowCount {
			fmt.Fprintf(s.Out, "words   : %d\n", g.Remaining())
		}
		fmt.Fprintf(s.Out, "guessed : %s\n", formatLetters(g.GuessedLetters()))
		fmt.Fprintf(s.Out, "current : %s\n", pattern)
		fmt.Fprint(s.Out, "Your guess? ")

		tok, err := s.next()
		if err != nil {
			return err
		}
		letter, _ := utf8.DecodeRuneInString(words.Normalize(tok))
		if !unicode.IsLetter(letter) {
			fmt.Fprintln(s.Out, "Please enter a letter.")
			fmt.Fprintln(s.Out)
			continue
		}

		n, err := g.RecordGuess(letter)
		switch {
		case errors.Is(err, game.ErrInvalidArgument):
			fmt.Fprintln(s.Out, "You already guessed that")
		case err != nil:
			return err
		case n == 0:
			fmt.Fprintf(s.Out, "Sorry, there are no %c's\n", letter)
		case n == 1:
			fmt.Fprintf(s.Out, "Yes, there is one %c\n", letter)
		default:
			fmt.Fprintf(s.Out, "Yes, there are %d %c's\n", n, letter)
		}
		fmt.Fprintln(s.Out)
	}
	return nil
}

// Results reveals an answer and the outcome.
func (s *Session) Results(g *game.Game) {
	if answer, ok := g.Answer(); ok {
		fmt.Fprintf(s.Out, "answer = %s\n", answer)
	}
	if g.Status() == game.StatusWon {
		fmt.Fprintln(s.Out, "You beat me")
	} else {
		fmt.Fprintln(s.Out, "Sorry, you lose")
	}
}

// Run is the whole console flow: greeting, setup, turns and results.
func (s *Session) Run(ctx context.Context, src words.Source, length, maxWrong int) error {
	s.Welcome()
	g, err := s.Setup(ctx, src, length, maxWrong)
	if err != nil || g == nil {
		return err
	}
	if err := s.Play(g); err != nil {
		return err
	}
	s.Results(g)
	return nil
}

// formatLetters renders letters as "[a, b, c]".
func formatLetters(rs []rune) string {
	parts := make([]string, len(rs))
	for i, r := range rs {
		parts[i] = string(r)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
