// jigsaw is a terminal jigsaw puzzle game with a card collection,
// battle pass, and reward wheel.
//
// Usage:
//
//	jigsaw play       - Play the next level (full TUI)
//	jigsaw status     - Show progression at a glance
//	jigsaw album      - Show the card album, collect pending cards
//	jigsaw pass       - Show battle pass progress
//	jigsaw wheel      - Spin the reward wheel
//	jigsaw reset      - Wipe all progress
//	jigsaw serve      - Start SSH server for remote play
//
// Global flags:
//
//	--db <path>      - Save database path (default from config)
//	--config <path>  - Custom config YAML
//	--seed <value>   - Wheel RNG seed for reproducible spins
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/dkovalev/tui-jigsaw/internal/app"
	"github.com/dkovalev/tui-jigsaw/internal/config"
	"github.com/dkovalev/tui-jigsaw/internal/wheel"
)

var (
	flagDBPath string
	flagConfig string
	flagSeed   int64
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "jigsaw",
	Short: "Jigsaw Club - a puzzle game with collectible cards",
	Long: `Jigsaw Club is a terminal jigsaw puzzle game. Completing levels earns
coins and unlocks the card album, the battle pass, and the reward wheel.

Examples:
  jigsaw play
  jigsaw status
  jigsaw album --collect
  jigsaw wheel
  jigsaw serve`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to save database (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "Wheel RNG seed (0 = crypto random)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(albumCmd)
	rootCmd.AddCommand(passCmd)
	rootCmd.AddCommand(wheelCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadConfig resolves the effective config from flags.
func loadConfig() config.Config {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v, using defaults\n", err)
		cfg = config.DefaultConfig()
	}
	if flagDBPath != "" {
		cfg.DB = flagDBPath
	}
	return cfg
}

// newSession builds a session for a CLI command.
func newSession() *app.Session {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "jigsaw"})

	opts := app.Options{}
	if flagSeed != 0 {
		opts.RNG = wheel.NewSeededRNG(uint64(flagSeed))
	}
	return app.NewSession(loadConfig(), logger, opts)
}
