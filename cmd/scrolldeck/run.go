package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/lixenwraith/scrolldeck/audio"
	"github.com/lixenwraith/scrolldeck/broadcast"
	"github.com/lixenwraith/scrolldeck/core"
	"github.com/lixenwraith/scrolldeck/input"
	"github.com/lixenwraith/scrolldeck/render"
	"github.com/lixenwraith/scrolldeck/session"
)

var (
	runServe bool
	runAddr  string
	runMute  bool
)

var errNoTerminal = errors.New("run needs an interactive terminal, use serve for headless mode")

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Show the scene deck in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !term.IsTerminal(int(os.Stdout.Fd())) || !term.IsTerminal(int(os.Stdin.Fd())) {
			return errNoTerminal
		}

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

		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("creating screen: %w", err)
		}
		if err := screen.Init(); err != nil {
			return fmt.Errorf("initializing screen: %w", err)
		}
		core.RegisterTerminal(screen)
		defer func() {
			core.RegisterTerminal(nil)
			screen.Fini()
		}()
		screen.EnableMouse(tcell.MouseButtonEvents | tcell.MouseDragEvents)
		screen.HideCursor()

		content := render.NewDeck(deck.Registry, cfg.Terminal.CellHeight)
		sess := newSession(cfg, deck, m, content, logger)
		h := newHost(screen, sess, content, input.NewMachine(cfg.Terminal.CellHeight, cfg.Terminal.WheelDelta), cfg.Intro.Skippable, logger)
		h.presenter.Resize()

		// Audio is optional, a missing device only loses the cue
		if cfg.Terminal.Sound && !runMute {
			cue := audio.NewCue(0)
			if err := cue.Initialize(); err != nil {
				logger.Warn("audio unavailable", "error", err)
			} else {
				defer cue.Cleanup()
				sess.OnTransition(cue.Play)
			}
		}

		// Redraw on every state change, coalesced
		redraw := make(chan struct{}, 1)
		sess.Subscribe(func(_ session.State) {
			select {
			case redraw <- struct{}{}:
			default:
			}
		})

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		if runServe {
			addr := cfg.Server.Addr
			if runAddr != "" {
				addr = runAddr
			}
			hub := broadcast.NewHub(0)
			sess.Subscribe(hub.Publish)
			srv := broadcast.NewServer(sess, hub, broadcast.Config{
				Addr:     addr,
				AllowAll: cfg.Server.AllowAll,
				Logger:   logger.With("component", "broadcast"),
			})
			core.Go(func() {
				if err := srv.Start(); err != nil {
					logger.Error("broadcast server", "error", err)
				}
			})
			defer func() {
				shutdownCtx, done := context.WithTimeout(context.Background(), 2*time.Second)
				defer done()
				srv.Shutdown(shutdownCtx)
			}()
		}

		runErr := make(chan error, 1)
		core.Go(func() { runErr <- sess.Run(ctx) })

		events := make(chan tcell.Event, 64)
		core.Go(func() {
			for {
				ev := screen.PollEvent()
				if ev == nil {
					return
				}
				select {
				case events <- ev:
				case <-ctx.Done():
					return
				}
			}
		})

		h.draw()
		for {
			select {
			case ev := <-events:
				if !h.handle(ev) {
					cancel()
					<-runErr
					return nil
				}
			case <-redraw:
				h.draw()
			case err := <-runErr:
				if errors.Is(err, context.Canceled) {
					return nil
				}
				return err
			}
		}
	},
}

func init() {
	runCmd.Flags().BoolVar(&runServe, "serve", false, "also start the broadcast server")
	runCmd.Flags().StringVar(&runAddr, "addr", "", "broadcast listen address (default: config server.addr)")
	runCmd.Flags().BoolVar(&runMute, "mute", false, "disable the transition sound")
	rootCmd.AddCommand(runCmd)
}
