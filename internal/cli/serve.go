package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/hangman/apps/go-server/internal/httpserver"
	"github.com/robalobadob/hangman/apps/go-server/internal/store"
)

func newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			src, closeSrc, err := openSource(ctx, cfg)
			if err != nil {
				return err
			}
			defer closeSrc()

			if port == "" {
				port = cfg.Port
			}
			srv := httpserver.New(store.NewMemoryStore(), src, cfg)
			log.Info().Str("port", port).Msg("starting go-server")
			return srv.Run(ctx, ":"+port)
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "listen port (overrides PORT)")
	return cmd
}
