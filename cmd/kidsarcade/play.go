package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/cristiparaschiv/kids-arcade/internal/config"
	"github.com/cristiparaschiv/kids-arcade/internal/core"
	"github.com/cristiparaschiv/kids-arcade/internal/games/match3"
	"github.com/cristiparaschiv/kids-arcade/internal/platform/tui"
	"github.com/cristiparaschiv/kids-arcade/internal/playtime"
	"github.com/cristiparaschiv/kids-arcade/internal/registry"
	"github.com/cristiparaschiv/kids-arcade/internal/storage"
)

var (
	flagConfig string
	flagLevel  int
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Controls:
  Arrows/WASD  - Move cursor
  Space/Enter  - Select and swap tiles
  P            - Pause
  R            - Restart (after game over)
  Q/Ctrl+C     - Quit

Screen time limits apply; a parent can override a blocked start by
entering the parent PIN (see 'kidsarcade limits set-pin').

Examples:
  kidsarcade play match3
  kidsarcade play match3 --level 5
  kidsarcade play match3_free
  kidsarcade play match3 --config ./my-rules.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().IntVar(&flagLevel, "level", 0, "Starting level (campaign only, 1-based)")
}

// terminalConfig builds a runtime config from the current terminal size
// and the global flags.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// loadLimits loads the effective screen time limits.
func loadLimits() playtime.Limits {
	cfg, err := config.LoadPlaytime("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not load playtime config: %v\n", err)
		cfg = config.PlaytimeConfig{}
	}
	return playtime.FromConfig(cfg)
}

// checkPlaytime evaluates the screen time policy before a game starts.
// When blocked, a parent may override with the stored PIN. Returns true
// if play may proceed.
func checkPlaytime(store *storage.Store, limits playtime.Limits) bool {
	var used time.Duration
	if store != nil {
		if u, err := store.UsedToday(time.Now()); err == nil {
			used = u
		}
	}

	d := limits.Evaluate(used, 0, time.Now())
	if d.Allowed {
		return true
	}

	fmt.Println(d.Reason.Describe())
	return parentOverride(store)
}

// parentOverride prompts for the parent PIN and verifies it against the
// stored hash. Returns true on a successful override.
func parentOverride(store *storage.Store) bool {
	if store == nil {
		return false
	}

	hash, err := store.GetSetting("parent_pin")
	if err != nil || hash == "" {
		fmt.Println("No parent PIN is set, so the limit cannot be overridden.")
		return false
	}

	fmt.Print("Parent PIN to override: ")
	pin, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return false
	}

	if err := playtime.VerifyPIN(hash, string(pin)); err != nil {
		fmt.Println("Wrong PIN.")
		return false
	}

	fmt.Println("Limit overridden for this game.")
	return true
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := args[0]

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'kidsarcade list' to see available games.")
		os.Exit(1)
	}

	cfg := terminalConfig()

	// Apply game options before creation
	if gameID == "match3" {
		match3.SetConfigPath(flagConfig)
		if flagLevel > 0 {
			match3.SetStartLevel(flagLevel)
		}
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	limits := loadLimits()
	if !checkPlaytime(store, limits) {
		if store != nil {
			store.Close()
		}
		os.Exit(1)
	}

	runErr := tui.Run(game, store, cfg, limits)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
