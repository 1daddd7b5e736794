package cli

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/hangman/apps/go-server/internal/dictionary"
	"github.com/robalobadob/hangman/apps/go-server/internal/words"
)

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Add the words of a file to the SQLite dictionary (db_path)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.DBPath == "" {
				return fmt.Errorf("db_path is required for import")
			}
			l, err := words.Load(args[0])
			if err != nil {
				return fmt.Errorf("load %s: %w", args[0], err)
			}

			st, err := dictionary.OpenStore(cmd.Context(), cfg.DBPath)
			if err != nil {
				return err
			}
			defer st.Close()

			added, err := st.Import(cmd.Context(), l.All())
			if err != nil {
				return err
			}
			log.Info().Int("read", l.Len()).Int("added", added).Str("db", cfg.DBPath).Msg("import finished")
			fmt.Fprintf(cmd.OutOrStdout(), "added %d of %d words\n", added, l.Len())
			return nil
		},
	}
}

func newLengthsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lengths",
		Short: "Show how many words the dictionary holds per length",
		RunE: func(cmd *cobra.Command, args []string) error {
			src, closeSrc, err := openSource(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer closeSrc()

			counts, err := src.Lengths(cmd.Context())
			if err != nil {
				return err
			}
			keys := make([]int, 0, len(counts))
			for n := range counts {
				keys = append(keys, n)
			}
			sort.Ints(keys)
			for _, n := range keys {
				fmt.Fprintf(cmd.OutOrStdout(), "%2d  %d\n", n, counts[n])
			}
			return nil
		},
	}
}
