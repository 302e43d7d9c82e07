package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/scrolldeck/config"
)

var (
	cfgFile    string
	scenesPath string
	markerPath string
	anchor     string
	logFile    string
	debug      bool
)

var rootCmd = &cobra.Command{
	Use:   "scrolldeck",
	Short: "Full-screen scene deck driven by scroll, swipe and keys",
	Long: `scrolldeck shows an ordered deck of full-screen scenes and turns every
wheel notch, swipe or key press into exactly one scene transition. Scenes
with their own scrollable body are scrolled first and only hand over to
the deck once their edge is reached.`,
	SilenceUsage: true,
}

// Execute runs the root command until it returns or the process is interrupted
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", config.DefaultPath, "config file path")
	flags.StringVar(&scenesPath, "scenes", "", "scene deck YAML (default: config scenes.path or the built-in deck)")
	flags.StringVar(&markerPath, "marker", "", "intro marker path (default: config marker.path)")
	flags.StringVar(&anchor, "anchor", "", "deep-link fragment to start on")
	flags.StringVar(&logFile, "log-file", "", "debug log file (default: config log.file or logs/scrolldeck.log)")
	flags.BoolVar(&debug, "debug", false, "write debug logs")
}
