package cli

import (
	"github.com/spf13/cobra"

	"github.com/robalobadob/hangman/apps/go-server/internal/console"
)

func newPlayCmd() *cobra.Command {
	var (
		length    int
		maxWrong  int
		showCount bool
	)

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play one game in the terminal",
		Long:  "Play one game in the terminal. Word length and wrong-guess budget are asked for unless given as flags.",
		RunE: func(cmd *cobra.Command, args []string) error {
			src, closeSrc, err := openSource(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer closeSrc()

			s := console.NewSession(cmd.InOrStdin(), cmd.OutOrStdout())
			s.ShowCount = showCount
			return s.Run(cmd.Context(), src, length, maxWrong)
		},
	}

	cmd.Flags().IntVar(&length, "length", -1, "word length (asked for when omitted)")
	cmd.Flags().IntVar(&maxWrong, "max-wrong", -1, "wrong guesses allowed (asked for when omitted)")
	cmd.Flags().BoolVar(&showCount, "show-count", false, "show how many words are still possible")
	return cmd
}
