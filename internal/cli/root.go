package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/hangman/apps/go-server/internal/config"
	"github.com/robalobadob/hangman/apps/go-server/internal/dictionary"
	"github.com/robalobadob/hangman/apps/go-server/internal/words"
)

var (
	flagConfig string
	cfg        *config.Config
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "hangman",
		Short:         "A hangman game that never commits to a word until it has to",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, err := config.Load(flagConfig)
			if err != nil {
				return err
			}
			cfg = c
			setupLogging(c)
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (yaml, toml or json)")

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newPlayCmd())
	cmd.AddCommand(newImportCmd())
	cmd.AddCommand(newLengthsCmd())

	return cmd
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setupLogging applies the configured level and output format.
func setupLogging(c *config.Config) {
	if lvl, err := zerolog.ParseLevel(c.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if c.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

// openSource returns the configured word source: the SQLite dictionary when
// db_path is set (seeded from words_file or the embedded list if empty),
// otherwise an in-memory list. The returned func releases resources.
func openSource(ctx context.Context, c *config.Config) (words.Source, func(), error) {
	if c.DBPath == "" {
		l, err := words.Open(c.WordsFile)
		if err != nil {
			return nil, nil, fmt.Errorf("load word list: %w", err)
		}
		log.Debug().Int("words", l.Len()).Str("file", c.WordsFile).Msg("word list loaded")
		return l, func() {}, nil
	}

	st, err := dictionary.OpenStore(ctx, c.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open dictionary: %w", err)
	}
	n, err := st.Count(ctx)
	if err != nil {
		_ = st.Close()
		return nil, nil, err
	}
	if n == 0 {
		l, err := words.Open(c.WordsFile)
		if err != nil {
			_ = st.Close()
			return nil, nil, fmt.Errorf("load word list: %w", err)
		}
		added, err := st.Import(ctx, l.All())
		if err != nil {
			_ = st.Close()
			return nil, nil, fmt.Errorf("seed dictionary: %w", err)
		}
		log.Info().Int("words", added).Str("db", c.DBPath).Msg("seeded dictionary")
	}
	return st, func() { _ = st.Close() }, nil
}
