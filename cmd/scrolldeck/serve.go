package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/scrolldeck/broadcast"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run a headless session behind the broadcast server",
	Long: `Runs a navigation session without a terminal. Scene state is served at
/state and streamed on /ws, and /jump/{index} and /anchor/{fragment} drive
the session. Embedded scenes have no scroll body here and never hold
navigation back.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger, lf := setupLogging(debug, cfg.Log.File)
		if lf != nil {
			defer lf.Close()
		}

		deck, err := loadDeck(cfg)
		if err != nil {
			return err
		}
		m, closer, err := openMarker(cfg)
		if err != nil {
			return err
		}
		defer closer.Close()

		addr := cfg.Server.Addr
		if serveAddr != "" {
			addr = serveAddr
		}

		sess := newSession(cfg, deck, m, nil, logger)
		hub := broadcast.NewHub(0)
		sess.Subscribe(hub.Publish)
		srv := broadcast.NewServer(sess, hub, broadcast.Config{
			Addr:     addr,
			AllowAll: cfg.Server.AllowAll,
			Logger:   logger.With("component", "broadcast"),
		})

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		runErr := make(chan error, 1)
		go func() { runErr <- sess.Run(ctx) }()

		srvErr := make(chan error, 1)
		go func() { srvErr <- srv.Start() }()

		fmt.Fprintf(os.Stderr, "scrolldeck serving %d scenes on %s (session %s)\n", deck.Registry.Len(), addr, sess.ID())

		select {
		case <-ctx.Done():
		case err = <-srvErr:
			if err != nil {
				err = fmt.Errorf("broadcast server: %w", err)
			}
		}

		shutdownCtx, done := context.WithTimeout(context.Background(), 2*time.Second)
		defer done()
		srv.Shutdown(shutdownCtx)
		cancel()

		if rerr := <-runErr; err == nil && rerr != nil && !errors.Is(rerr, context.Canceled) {
			err = rerr
		}
		return err
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default: config server.addr)")
	rootCmd.AddCommand(serveCmd)
}
